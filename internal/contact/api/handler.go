package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"summit-ticketing/internal/contact"
	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
	"summit-ticketing/internal/utils"
)

type Handler struct {
	Contact *contact.ContactService
	Logger  *logger.Logger
}

func NewHandler(contactService *contact.ContactService, log *logger.Logger) *Handler {
	return &Handler{Contact: contactService, Logger: log}
}

// Submit handles the public POST /api/contact.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ValidationResponse(fields))
		return
	}

	form, err := h.Contact.Submit(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ContactSubmit: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to submit message", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Message received", map[string]int64{"id": form.ID}))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.Contact.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ContactList: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list contact forms", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("OK", forms))
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("contact-forms-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.Contact.ExportCSV(r.Context(), w); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ContactExport: %v", err))
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid id", "validation_error")
		return
	}
	if err := h.Contact.Delete(r.Context(), id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ContactDelete: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete contact form", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Contact form deleted", nil))
}
