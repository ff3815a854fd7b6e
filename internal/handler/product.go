package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroom/stockroom/internal/auth"
	"github.com/stockroom/stockroom/internal/handler/dto"
	"github.com/stockroom/stockroom/internal/service"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	svc    *service.ProductService
	logger *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/products.
// Recognized query parameters: category, minPrice, maxPrice, name.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := service.ParseProductFilter(r.URL.Query())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	products, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, product)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.svc.Create(r.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("product_created",
		slog.String("product_id", product.ID),
		slog.String("user_id", auth.UserIDFromContext(r.Context())),
		slog.String("request_id", requestID(r)),
	)

	writeData(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("product_updated",
		slog.String("product_id", product.ID),
		slog.String("user_id", auth.UserIDFromContext(r.Context())),
		slog.String("request_id", requestID(r)),
	)

	writeData(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}.
// Returns the deleted record's prior state.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("product_deleted",
		slog.String("product_id", product.ID),
		slog.String("user_id", auth.UserIDFromContext(r.Context())),
		slog.String("request_id", requestID(r)),
	)

	writeData(w, http.StatusOK, product)
}

// handleServiceError maps product service errors to HTTP responses.
func (h *ProductHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, service.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid product ID")
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	default:
		h.logger.Error("product request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID(r)),
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
