package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shoptrack/shoptrack-backend/api/middleware"
	"github.com/shoptrack/shoptrack-backend/api/responses"
	"github.com/shoptrack/shoptrack-backend/api/validators"
	"github.com/shoptrack/shoptrack-backend/internal/sales"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
	"github.com/shoptrack/shoptrack-backend/pkg/logger"
	"github.com/shoptrack/shoptrack-backend/pkg/pagination"
)

type recordSaleRequest struct {
	ProductID    string  `json:"product_id" validate:"required,uuid"`
	Quantity     int     `json:"quantity_sold" validate:"required,min=1"`
	CustomerName *string `json:"customer_name,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// RecordSale records a sale and decrements product stock.
func RecordSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		var payload recordSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := parseUUIDField(payload.ProductID, "product_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sale, err := svc.RecordSale(ctx, sales.RecordSaleInput{
			ProductID:    productID,
			Quantity:     payload.Quantity,
			SoldByID:     middleware.ActorIDFromContext(ctx),
			CustomerName: payload.CustomerName,
			Notes:        payload.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

// GetSale returns a single sale by id.
func GetSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		saleID, err := parseIDParam(r, "saleId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sale, err := svc.GetSale(ctx, saleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, sale)
	}
}

// ListSales returns the paginated, filtered sale history.
func ListSales(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := validators.ParseQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		start, err := validators.ParseQueryDate(r, "start")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		end, err := validators.ParseQueryDate(r, "end")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.ListSales(ctx, sales.ListSalesInput{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
			Filters: sales.SaleListFilters{
				Query:     strings.TrimSpace(r.URL.Query().Get("search")),
				ProductID: productID,
				Start:     start,
				End:       end,
			},
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parseUUIDField(raw, field string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return parsed, nil
}
