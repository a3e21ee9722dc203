package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/scribeapp/scribe/internal/service"
	"github.com/scribeapp/scribe/internal/transport/http/middleware"
	"github.com/scribeapp/scribe/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateRegister(input.Email, input.Username, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		writeServiceError(w, "register", err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateLogin(input.Email, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		writeServiceError(w, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.authService.Confirm(r.Context(), user.ID, input.Token); err != nil {
		writeServiceError(w, "confirm", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

func (h *AuthHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if _, err := h.authService.IssueConfirmation(r.Context(), user.ID); err != nil {
		writeServiceError(w, "resend confirmation", err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "confirmation sent"})
}

// RequestPasswordReset always answers 202: whether the email exists is
// not disclosed to the caller.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	// Ignore ErrNotFound deliberately.
	_ = h.authService.RequestPasswordReset(r.Context(), input.Email)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reset requested"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateNewPassword(input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), input.Token, input.Password); err != nil {
		writeServiceError(w, "reset password", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password reset"})
}

func (h *AuthHandler) RequestEmailChange(w http.ResponseWriter, r *http.Request) {
	var input struct {
		NewEmail string `json:"new_email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateEmailChange(input.NewEmail, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.authService.RequestEmailChange(r.Context(), user.ID, input.NewEmail, input.Password); err != nil {
		writeServiceError(w, "request email change", err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "email change requested"})
}

func (h *AuthHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.authService.ChangeEmail(r.Context(), user.ID, input.Token); err != nil {
		writeServiceError(w, "change email", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "email changed"})
}
