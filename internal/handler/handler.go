// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/stockroom/stockroom/internal/middleware"
	"github.com/stockroom/stockroom/internal/service"
)

// Response is the JSON envelope used by every endpoint.
type Response struct {
	Success bool                 `json:"success"`
	Data    any                  `json:"data,omitempty"`
	Message string               `json:"message,omitempty"`
	Errors  []service.FieldError `json:"errors,omitempty"`
}

// Handler serves the informational endpoints not tied to any service.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is the root info endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stockroom API online",
		Data:    map[string]string{"version": "1.0"},
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// requestID returns the request ID injected by the middleware chain.
func requestID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// The status line is already gone; nothing left to do.
		_ = err
	}
}

// writeData writes a success envelope carrying data.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// writeMessage writes a success envelope carrying only a message.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: true, Message: message})
}

// writeError writes a failure envelope with a message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeValidationError writes a 400 envelope listing every failing field.
func writeValidationError(w http.ResponseWriter, verr *service.ValidationError) {
	writeJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  verr.Fields,
	})
}
