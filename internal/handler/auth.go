package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stockroom/stockroom/internal/handler/dto"
	"github.com/stockroom/stockroom/internal/service"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleAuthError(w, r, err)
		return
	}

	h.logger.Info("user_registered",
		slog.String("request_id", requestID(r)),
	)

	writeMessage(w, http.StatusCreated, "Registration successful. You can now log in.")
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleAuthError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// handleAuthError maps auth service errors to HTTP responses.
// Login failures share one message so accounts cannot be enumerated.
func (h *AuthHandler) handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Email is already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		h.logger.Error("auth request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID(r)),
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
