package controllers

import (
	"net/http"

	"github.com/shoptrack/shoptrack-backend/api/responses"
	"github.com/shoptrack/shoptrack-backend/api/validators"
	"github.com/shoptrack/shoptrack-backend/internal/reports"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
	"github.com/shoptrack/shoptrack-backend/pkg/logger"
)

// SalesSummary returns revenue, profit, and count totals for an optional
// date window.
func SalesSummary(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
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

		summary, err := svc.SalesSummary(ctx, reports.Window{Start: start, End: end})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// TopProducts ranks products by units sold.
func TopProducts(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, reports.MaxRankingLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rankings, err := svc.TopSellingProducts(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, rankings)
	}
}

// ProfitableProducts ranks products by accumulated profit.
func ProfitableProducts(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, reports.MaxRankingLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rankings, err := svc.MostProfitableProducts(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, rankings)
	}
}

// ExportSalesCSV streams the full sale history as a CSV attachment.
func ExportSalesCSV(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)

		if err := svc.ExportSalesCSV(ctx, w); err != nil {
			if logg != nil {
				logg.Error(ctx, "sales.export_failed", err)
			}
		}
	}
}
