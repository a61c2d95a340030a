package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/shoptrack/shoptrack-backend/api/middleware"
	"github.com/shoptrack/shoptrack-backend/internal/sales"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
)

func TestRecordSale(t *testing.T) {
	logg := testLogger()
	actorID := uuid.New()
	productID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubSaleService{sale: &sales.SaleDTO{ProductID: productID, QuantitySold: 3}}
		body := `{"product_id":"` + productID.String() + `","quantity_sold":3,"customer_name":"Dana"}`

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
		req = req.WithContext(middleware.WithActorID(req.Context(), actorID))
		rec := httptest.NewRecorder()

		RecordSale(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.recorded == nil {
			t.Fatal("expected RecordSale to be invoked")
		}
		if stub.recorded.ProductID != productID {
			t.Fatalf("unexpected product id %s", stub.recorded.ProductID)
		}
		if stub.recorded.SoldByID == nil || *stub.recorded.SoldByID != actorID {
			t.Fatalf("expected actor id to be forwarded, got %v", stub.recorded.SoldByID)
		}
		if stub.recorded.CustomerName == nil || *stub.recorded.CustomerName != "Dana" {
			t.Fatalf("unexpected customer %v", stub.recorded.CustomerName)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		stub := &stubSaleService{}
		body := `{"product_id":"` + productID.String() + `","quantity_sold":0}`

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()

		RecordSale(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.recorded != nil {
			t.Fatal("service should not be called for zero quantity")
		}
	})

	t.Run("invalid product id", func(t *testing.T) {
		body := `{"product_id":"not-a-uuid","quantity_sold":1}`

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()

		RecordSale(&stubSaleService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("insufficient stock", func(t *testing.T) {
		stub := &stubSaleService{
			err: pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
				WithDetails(map[string]int{"available": 2, "requested": 5}),
		}
		body := `{"product_id":"` + productID.String() + `","quantity_sold":5}`

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()

		RecordSale(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}

		var envelope struct {
			Error struct {
				Code    string         `json:"code"`
				Message string         `json:"message"`
				Details map[string]int `json:"details"`
			} `json:"error"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope.Error.Code != string(pkgerrors.CodeInsufficientStock) {
			t.Fatalf("unexpected code %q", envelope.Error.Code)
		}
		if envelope.Error.Details["available"] != 2 || envelope.Error.Details["requested"] != 5 {
			t.Fatalf("unexpected details %v", envelope.Error.Details)
		}
	})
}

func TestListSales(t *testing.T) {
	logg := testLogger()

	t.Run("filters forwarded", func(t *testing.T) {
		productID := uuid.New()
		stub := &stubSaleService{list: &sales.SaleListResult{}}

		url := "/api/v1/sales?search=dana&product_id=" + productID.String() + "&start=2026-08-01&end=2026-08-31&limit=20"
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()

		ListSales(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.listInput == nil {
			t.Fatal("expected ListSales to be invoked")
		}
		filters := stub.listInput.Filters
		if filters.Query != "dana" {
			t.Fatalf("unexpected search %q", filters.Query)
		}
		if filters.ProductID == nil || *filters.ProductID != productID {
			t.Fatalf("unexpected product filter %v", filters.ProductID)
		}
		if filters.Start == nil || filters.End == nil {
			t.Fatal("expected date window")
		}
		if stub.listInput.Pagination.Limit != 20 {
			t.Fatalf("unexpected limit %d", stub.listInput.Pagination.Limit)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales?start=yesterday", nil)
		rec := httptest.NewRecorder()

		ListSales(&stubSaleService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

type stubSaleService struct {
	recorded  *sales.RecordSaleInput
	listInput *sales.ListSalesInput
	sale      *sales.SaleDTO
	list      *sales.SaleListResult
	err       error
}

func (s *stubSaleService) RecordSale(ctx context.Context, input sales.RecordSaleInput) (*sales.SaleDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.recorded = &input
	return s.sale, nil
}

func (s *stubSaleService) GetSale(ctx context.Context, saleID uuid.UUID) (*sales.SaleDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sale, nil
}

func (s *stubSaleService) ListSales(ctx context.Context, input sales.ListSalesInput) (*sales.SaleListResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.listInput = &input
	return s.list, nil
}
