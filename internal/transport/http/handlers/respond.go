package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/service"
	"github.com/scribeapp/scribe/internal/token"
	"github.com/scribeapp/scribe/pkg/validator"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}

// writeServiceError maps the error kinds that cross the service
// boundary onto HTTP responses. Anything unrecognized is an internal
// error and gets logged.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, domain.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", "Resource already exists")
	case errors.Is(err, domain.ErrSelfUnfollow):
		writeError(w, http.StatusBadRequest, "SELF_UNFOLLOW", "You cannot unfollow yourself")
	case errors.Is(err, token.ErrInvalid):
		writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username is already taken")
	case errors.Is(err, service.ErrInvalidCreds):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("%s %s", vErr.Field, vErr.Msg))
	default:
		slog.Error("handler error", "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}

// pagination is the shared page/offset parsing for list endpoints.
// Pages are 1-based, per the ?page= query parameter.
type pagination struct {
	Page    int
	PerPage int
}

func parsePage(r *http.Request, perPage int) pagination {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	return pagination{Page: page, PerPage: perPage}
}

func (p pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// writePage writes the list envelope: the items under key, prev/next
// page URLs (null at either end) and the total count.
func writePage(w http.ResponseWriter, key string, items any, p pagination, total int, basePath string) {
	var prev, next *string
	if p.Page > 1 {
		u := fmt.Sprintf("%s?page=%d", basePath, p.Page-1)
		prev = &u
	}
	if p.Offset()+p.PerPage < total {
		u := fmt.Sprintf("%s?page=%d", basePath, p.Page+1)
		next = &u
	}

	writeJSON(w, http.StatusOK, map[string]any{
		key:        items,
		"prev_url": prev,
		"next_url": next,
		"count":    total,
	})
}
