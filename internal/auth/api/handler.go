package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"summit-ticketing/internal/auth"
	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
	"summit-ticketing/internal/utils"
)

type Handler struct {
	Auth       *auth.Service
	Logger     *logger.Logger
	Production bool
}

func NewHandler(authService *auth.Service, log *logger.Logger, production bool) *Handler {
	return &Handler{Auth: authService, Logger: log, Production: production}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email and password are required", "validation_error")
		return
	}

	token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid email or password", "invalid_credentials")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("Login: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Login failed", "internal_error")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, h.Auth.Tokens.Lifetime()))
	// Header mirror for clients that cannot carry cross-site cookies.
	w.Header().Set("X-Admin-Token", token)
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Logged in", map[string]string{"token": token}))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -time.Hour))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Logged out", nil))
}

// Me confirms the session and returns the admin identity attached by the gate.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.AdminFromContext(r.Context())
	if claims == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "missing token")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("OK", map[string]interface{}{
		"id":    claims.AdminID,
		"email": claims.Email,
	}))
}

func (h *Handler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: http.SameSiteNoneMode,
	}
}
