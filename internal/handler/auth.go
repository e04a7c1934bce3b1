package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/folioadmin/folioadmin-go/internal/form"
	"github.com/folioadmin/folioadmin-go/internal/model"
	"github.com/folioadmin/folioadmin-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
	log     zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, log: log}
}

// HandleLogin handles POST /login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, messageResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		var fields form.FieldErrors
		switch {
		case errors.As(err, &fields):
			writeJSON(w, http.StatusBadRequest, messageResponse(fields.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, messageResponse(err.Error()))
		default:
			h.log.Error().Err(err).Msg("login failed")
			writeJSON(w, http.StatusInternalServerError, messageResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
