package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shoptrack/shoptrack-backend/api/middleware"
	"github.com/shoptrack/shoptrack-backend/internal/inventory"
	"github.com/shoptrack/shoptrack-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestCreateProduct(t *testing.T) {
	logg := testLogger()
	actorID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{product: &inventory.ProductDTO{Name: "Desk Lamp"}}
		body := `{"name":"Desk Lamp","category":"electronics","buying_price":"8.00","selling_price":"15.00","quantity":10,"supplier":"Lumen Co"}`

		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.WithActorID(req.Context(), actorID))
		rec := httptest.NewRecorder()

		CreateProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil {
			t.Fatal("expected CreateProduct to be invoked")
		}
		if stub.created.Name != "Desk Lamp" {
			t.Fatalf("unexpected name %q", stub.created.Name)
		}
		if stub.created.AddedByID == nil || *stub.created.AddedByID != actorID {
			t.Fatalf("expected actor id to be forwarded, got %v", stub.created.AddedByID)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		stub := &stubProductService{}
		body := `{"name":"Desk Lamp","category":"gadgets","buying_price":"8.00","selling_price":"15.00","quantity":10}`

		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.created != nil {
			t.Fatal("service should not be called for invalid category")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		stub := &stubProductService{}
		body := `{"category":"electronics","buying_price":"8.00","selling_price":"15.00","quantity":10}`

		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader("{"))
		rec := httptest.NewRecorder()

		CreateProduct(&stubProductService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetProduct(t *testing.T) {
	logg := testLogger()

	t.Run("invalid id", func(t *testing.T) {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("productId", "not-a-uuid")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()

		GetProduct(&stubProductService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		productID := uuid.New()
		stub := &stubProductService{product: &inventory.ProductDTO{ID: productID, Name: "Desk Lamp"}}

		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("productId", productID.String())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String(), nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()

		GetProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var envelope struct {
			Data inventory.ProductDTO `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope.Data.ID != productID {
			t.Fatalf("unexpected product id %s", envelope.Data.ID)
		}
	})
}

func TestListProducts(t *testing.T) {
	logg := testLogger()

	t.Run("filters forwarded", func(t *testing.T) {
		stub := &stubProductService{list: &inventory.ProductListResult{}}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?search=lamp&category=electronics&stock=low&limit=10", nil)
		rec := httptest.NewRecorder()

		ListProducts(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.listInput == nil {
			t.Fatal("expected ListProducts to be invoked")
		}
		if stub.listInput.Filters.Query != "lamp" {
			t.Fatalf("unexpected search %q", stub.listInput.Filters.Query)
		}
		if stub.listInput.Filters.Category == nil || stub.listInput.Filters.Stock == nil {
			t.Fatal("expected category and stock filters")
		}
		if stub.listInput.Pagination.Limit != 10 {
			t.Fatalf("unexpected limit %d", stub.listInput.Pagination.Limit)
		}
	})

	t.Run("invalid stock filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?stock=plenty", nil)
		rec := httptest.NewRecorder()

		ListProducts(&stubProductService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=abc", nil)
		rec := httptest.NewRecorder()

		ListProducts(&stubProductService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()

	stub := &stubProductService{}
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID.String())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()

	DeleteProduct(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !stub.deleted {
		t.Fatal("expected DeleteProduct to be invoked")
	}
}

type stubProductService struct {
	created   *inventory.CreateProductInput
	listInput *inventory.ListProductsInput
	deleted   bool
	product   *inventory.ProductDTO
	list      *inventory.ProductListResult
	err       error
}

func (s *stubProductService) CreateProduct(ctx context.Context, input inventory.CreateProductInput) (*inventory.ProductDTO, error) {
	s.created = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*inventory.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, input inventory.UpdateProductInput) (*inventory.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	s.deleted = true
	return s.err
}

func (s *stubProductService) ListProducts(ctx context.Context, input inventory.ListProductsInput) (*inventory.ProductListResult, error) {
	s.listInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubProductService) LowStockProducts(ctx context.Context) ([]inventory.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, nil
}
