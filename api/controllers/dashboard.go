package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shoptrack/shoptrack-backend/api/responses"
	"github.com/shoptrack/shoptrack-backend/internal/dashboard"
	"github.com/shoptrack/shoptrack-backend/internal/reports"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
	"github.com/shoptrack/shoptrack-backend/pkg/logger"
)

// DashboardStats returns the composite dashboard snapshot.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		stats, err := svc.Stats(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

// DashboardChart returns the daily series for the requested chart.
func DashboardChart(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		field := reports.SeriesField(strings.TrimSpace(chi.URLParam(r, "chart")))
		series, err := svc.Chart(ctx, field)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, series)
	}
}
