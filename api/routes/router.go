package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoptrack/shoptrack-backend/api/controllers"
	"github.com/shoptrack/shoptrack-backend/api/middleware"
	"github.com/shoptrack/shoptrack-backend/internal/dashboard"
	"github.com/shoptrack/shoptrack-backend/internal/inventory"
	"github.com/shoptrack/shoptrack-backend/internal/reports"
	"github.com/shoptrack/shoptrack-backend/internal/sales"
	"github.com/shoptrack/shoptrack-backend/internal/users"
	"github.com/shoptrack/shoptrack-backend/pkg/config"
	"github.com/shoptrack/shoptrack-backend/pkg/logger"
	"github.com/shoptrack/shoptrack-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database controllers.Pinger,
	cache controllers.Pinger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	userService users.Service,
	productService inventory.Service,
	saleService sales.Service,
	reportsService reports.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, cache))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(logg))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.CreateUser(userService, logg))
			r.Get("/{userId}", controllers.GetUser(userService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/low-stock", controllers.LowStockProducts(productService, logg))
			r.Get("/{productId}", controllers.GetProduct(productService, logg))
			r.Put("/{productId}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(productService, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSales(saleService, logg))
			r.Post("/", controllers.RecordSale(saleService, logg))
			r.Get("/{saleId}", controllers.GetSale(saleService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", controllers.SalesSummary(reportsService, logg))
			r.Get("/top-products", controllers.TopProducts(reportsService, logg))
			r.Get("/profitable-products", controllers.ProfitableProducts(reportsService, logg))
			r.Get("/sales.csv", controllers.ExportSalesCSV(reportsService, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", controllers.DashboardStats(dashboardService, logg))
			r.Get("/charts/{chart}", controllers.DashboardChart(dashboardService, logg))
		})
	})

	return r
}
