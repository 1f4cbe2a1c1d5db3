package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"summit-ticketing/internal/content"
	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
	"summit-ticketing/internal/utils"
)

type Handler struct {
	Content *content.ContentService
	Logger  *logger.Logger
}

func NewHandler(contentService *content.ContentService, log *logger.Logger) *Handler {
	return &Handler{Content: contentService, Logger: log}
}

// GetEvent serves the public landing payload: headline event plus active stats.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.Content.GetEvent(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetEvent: %v", err))
		utils.WriteError(w, http.StatusServiceUnavailable, "Store unavailable", "store_unavailable")
		return
	}

	stats, err := h.Content.ListStats(r.Context(), true)
	if err != nil {
		stats = []models.Stat{}
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("OK", map[string]interface{}{
		"event": event,
		"stats": stats,
	}))
}

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	h.listPackages(w, r, true)
}

func (h *Handler) ListAllPackages(w http.ResponseWriter, r *http.Request) {
	h.listPackages(w, r, false)
}

func (h *Handler) listPackages(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	packages, err := h.Content.ListPackages(r.Context(), activeOnly)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListPackages: %v", err))
		utils.WriteError(w, http.StatusServiceUnavailable, "Store unavailable", "store_unavailable")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("OK", packages))
}

func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req models.PackageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	pkg, err := h.Content.CreatePackage(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreatePackage: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create package", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Package created", pkg))
}

func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req models.PackageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	pkg, err := h.Content.UpdatePackage(r.Context(), id, req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdatePackage: %v", err))
		utils.WriteError(w, http.StatusNotFound, "Package not found", "not_found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Package updated", pkg))
}

func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Content.DeletePackage(r.Context(), id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeletePackage: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete package", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Package deleted", nil))
}

func (h *Handler) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	h.listSpeakers(w, r, true)
}

func (h *Handler) ListAllSpeakers(w http.ResponseWriter, r *http.Request) {
	h.listSpeakers(w, r, false)
}

func (h *Handler) listSpeakers(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	speakers, err := h.Content.ListSpeakers(r.Context(), activeOnly)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListSpeakers: %v", err))
		utils.WriteError(w, http.StatusServiceUnavailable, "Store unavailable", "store_unavailable")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("OK", speakers))
}

func (h *Handler) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	var req models.SpeakerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := h.Content.CreateSpeaker(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateSpeaker: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create speaker", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Speaker created", speaker))
}

func (h *Handler) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req models.SpeakerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := h.Content.UpdateSpeaker(r.Context(), id, req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateSpeaker: %v", err))
		utils.WriteError(w, http.StatusNotFound, "Speaker not found", "not_found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Speaker updated", speaker))
}

func (h *Handler) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Content.DeleteSpeaker(r.Context(), id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteSpeaker: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete speaker", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Speaker deleted", nil))
}

func (h *Handler) CreateStat(w http.ResponseWriter, r *http.Request) {
	var req models.StatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	stat, err := h.Content.CreateStat(r.Context(), req)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create stat", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Stat created", stat))
}

func (h *Handler) UpdateStat(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req models.StatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	stat, err := h.Content.UpdateStat(r.Context(), id, req)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Stat not found", "not_found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Stat updated", stat))
}

func (h *Handler) DeleteStat(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Content.DeleteStat(r.Context(), id); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete stat", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Stat deleted", nil))
}

func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	sections, err := h.Content.ListContent(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListContent: %v", err))
		utils.WriteError(w, http.StatusServiceUnavailable, "Store unavailable", "store_unavailable")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("OK", sections))
}

func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	contentRow, err := h.Content.GetContent(r.Context(), section)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetContent: %v", err))
		utils.WriteError(w, http.StatusServiceUnavailable, "Store unavailable", "store_unavailable")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("OK", contentRow))
}

func (h *Handler) SaveContent(w http.ResponseWriter, r *http.Request) {
	var req models.SiteContentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	contentRow, err := h.Content.SaveContent(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("SaveContent: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save content", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Content saved", contentRow))
}

func (h *Handler) GetContactInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Content.GetContactInfo(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetContactInfo: %v", err))
		utils.WriteError(w, http.StatusServiceUnavailable, "Store unavailable", "store_unavailable")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("OK", info))
}

func (h *Handler) SaveContactInfo(w http.ResponseWriter, r *http.Request) {
	var req models.ContactInfoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	info, err := h.Content.SaveContactInfo(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("SaveContactInfo: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save contact info", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Contact info saved", info))
}

func (h *Handler) SaveEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	event, err := h.Content.SaveEvent(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("SaveEvent: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save event", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Event saved", event))
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	if fields := utils.ValidateStruct(dst); fields != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ValidationResponse(fields))
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid id", "validation_error")
		return 0, false
	}
	return id, true
}
