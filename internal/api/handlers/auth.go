package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/afrikoop/server/internal/api/middleware"
	"github.com/afrikoop/server/internal/api/problem"
	"github.com/afrikoop/server/internal/domain/accounts"
)

type AuthHandler struct {
	Service *accounts.Service
	Env     string
}

func NewAuthHandler(service *accounts.Service, env string) *AuthHandler {
	return &AuthHandler{Service: service, Env: env}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input registerRequest
	if err := decodeJSON(r, &input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	token, err := h.Service.Register(r.Context(), accounts.RegisterParams{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
	})
	if err != nil {
		var invalid accounts.ValidationError
		switch {
		case errors.As(err, &invalid):
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", invalid, h.Env,
				problem.WithDetail(invalid.Error()))
		case errors.Is(err, accounts.ErrUsernameTaken):
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
				problem.WithDetail("Username already exists."))
		case errors.Is(err, accounts.ErrEmailTaken):
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
				problem.WithDetail("Email already exists."))
		default:
			problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		}
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if err := decodeJSON(r, &input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", nil, h.Env,
			problem.WithDetail("Username and password are required."))
		return
	}

	token, err := h.Service.Login(r.Context(), username, input.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, h.Env,
				problem.WithDetail("Invalid credentials."))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Logout always succeeds so clients can unconditionally discard their
// token, even one the server no longer recognizes.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	key := middleware.TokenFromRequest(r)
	if err := h.Service.Logout(r.Context(), key); err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
