package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoptrack/shoptrack-backend/internal/inventory"
	"github.com/shoptrack/shoptrack-backend/internal/reports"
	"github.com/shoptrack/shoptrack-backend/internal/sales"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
	"github.com/shoptrack/shoptrack-backend/pkg/pagination"
	"github.com/shoptrack/shoptrack-backend/pkg/redis"
)

const recentSalesCount = 5

// StatsDTO is the aggregated dashboard payload.
type StatsDTO struct {
	TotalProducts    int64                       `json:"total_products"`
	LowStockCount    int64                       `json:"low_stock_count"`
	TodaySalesCount  int64                       `json:"today_sales_count"`
	TodayTotal       decimal.Decimal             `json:"today_total"`
	TodayProfit      decimal.Decimal             `json:"today_profit"`
	WeekProfit       decimal.Decimal             `json:"week_profit"`
	MonthProfit      decimal.Decimal             `json:"month_profit"`
	LowStockProducts []inventory.ProductDTO      `json:"low_stock_products"`
	RecentSales      []sales.SaleDTO             `json:"recent_sales"`
	TopProducts      []reports.ProductRankingDTO `json:"top_products"`
}

// Service assembles the dashboard read models.
type Service interface {
	Stats(ctx context.Context) (*StatsDTO, error)
	Chart(ctx context.Context, field reports.SeriesField) ([]reports.SeriesPointDTO, error)
}

type service struct {
	reports   reports.Service
	products  *inventory.Repository
	saleRepo  *sales.Repository
	cache     redis.Cache
	cacheTTL  time.Duration
}

// NewService constructs a dashboard service. The cache is optional; when nil
// every chart request recomputes the series.
func NewService(reportsSvc reports.Service, products *inventory.Repository, saleRepo *sales.Repository, cache redis.Cache, cacheTTL time.Duration) (Service, error) {
	if reportsSvc == nil {
		return nil, fmt.Errorf("reports service required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if saleRepo == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	return &service{
		reports:  reportsSvc,
		products: products,
		saleRepo: saleRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}, nil
}

// Stats assembles the dashboard counters and lists in one pass.
func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	lowStockCount, err := s.products.CountLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count low stock")
	}

	now := time.Now()
	todayStart := startOfDay(now)
	weekStart := todayStart.AddDate(0, 0, -6)
	monthStart := todayStart.AddDate(0, 0, -29)

	today, err := s.reports.SalesSummary(ctx, reports.Window{Start: &todayStart})
	if err != nil {
		return nil, err
	}
	week, err := s.reports.SalesSummary(ctx, reports.Window{Start: &weekStart})
	if err != nil {
		return nil, err
	}
	month, err := s.reports.SalesSummary(ctx, reports.Window{Start: &monthStart})
	if err != nil {
		return nil, err
	}

	lowStock, err := s.reports.LowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.reports.TopSellingProducts(ctx, reports.DefaultRankingLimit)
	if err != nil {
		return nil, err
	}

	recent, err := s.saleRepo.List(ctx, sales.ListSalesInput{
		Pagination: pagination.Params{Limit: recentSalesCount},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: recent sales")
	}

	return &StatsDTO{
		TotalProducts:    totalProducts,
		LowStockCount:    lowStockCount,
		TodaySalesCount:  today.TotalTransactions,
		TodayTotal:       today.TotalSales,
		TodayProfit:      today.TotalProfit,
		WeekProfit:       week.TotalProfit,
		MonthProfit:      month.TotalProfit,
		LowStockProducts: lowStock,
		RecentSales:      recent.Sales,
		TopProducts:      topProducts,
	}, nil
}

// Chart returns the 7-day series for the field, via the cache when warm.
// Cache failures fall back to recomputing; charts tolerate staleness.
func (s *service) Chart(ctx context.Context, field reports.SeriesField) ([]reports.SeriesPointDTO, error) {
	if !field.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown chart")
	}

	var key string
	if s.cache != nil {
		key = s.cache.ChartCacheKey(string(field), reports.ChartDays)
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var points []reports.SeriesPointDTO
			if jsonErr := json.Unmarshal([]byte(cached), &points); jsonErr == nil {
				return points, nil
			}
			// corrupted entry: drop it and recompute
			_ = s.cache.Del(ctx, key)
		}
	}

	points, err := s.reports.DailySeries(ctx, field, reports.ChartDays)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(points); err == nil {
			_ = s.cache.Set(ctx, key, string(payload), s.cacheTTL)
		}
	}
	return points, nil
}

func startOfDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}
