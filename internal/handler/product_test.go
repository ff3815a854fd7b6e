package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/stockroom/stockroom/internal/service"
)

// testProductRouter mounts the handler on a real router so URL
// parameters resolve. The nil repository is never reached because every
// exercised path fails validation first.
func testProductRouter() http.Handler {
	h := NewProductHandler(
		service.NewProductService(nil),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	r := chi.NewRouter()
	r.Get("/api/products", h.List)
	r.Get("/api/products/{id}", h.Get)
	r.Post("/api/products", h.Create)
	r.Put("/api/products/{id}", h.Update)
	r.Delete("/api/products/{id}", h.Delete)
	return r
}

func TestProductInvalidID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"get", http.MethodGet, "/api/products/not-a-ulid", ""},
		{"update", http.MethodPut, "/api/products/not-a-ulid", `{"price":9.99}`},
		{"delete", http.MethodDelete, "/api/products/not-a-ulid", ""},
	}

	router := testProductRouter()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			env := decodeEnvelope(t, rec)
			if env.Success {
				t.Error("success = true, want false")
			}
			if env.Message != "Invalid product ID" {
				t.Errorf("message = %q", env.Message)
			}
		})
	}
}

func TestCreateProductMalformedBody(t *testing.T) {
	t.Parallel()

	router := testProductRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Invalid request body" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestCreateProductValidationFailure(t *testing.T) {
	t.Parallel()

	router := testProductRouter()

	body := `{"name":"","description":"short","price":-1,"stock":-3,"category":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Validation failed" {
		t.Errorf("message = %q", env.Message)
	}

	want := []string{"name", "description", "price", "stock", "category"}
	if len(env.Errors) != len(want) {
		t.Fatalf("expected %d field errors, got %d: %+v", len(want), len(env.Errors), env.Errors)
	}
	got := map[string]bool{}
	for _, fe := range env.Errors {
		got[fe.Field] = true
	}
	for _, field := range want {
		if !got[field] {
			t.Errorf("missing field error for %q", field)
		}
	}
}

func TestListProductsMalformedPriceFilter(t *testing.T) {
	t.Parallel()

	router := testProductRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/products?minPrice=abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	env := decodeEnvelope(t, rec)
	if len(env.Errors) != 1 || env.Errors[0].Field != "minPrice" {
		t.Errorf("expected one minPrice field error, got %+v", env.Errors)
	}
}
