package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoptrack/shoptrack-backend/internal/inventory"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
)

const (
	// DefaultRankingLimit bounds top-product rankings when no limit is given.
	DefaultRankingLimit = 5
	// MaxRankingLimit is the hard ceiling for ranking queries.
	MaxRankingLimit = 50
	// ChartDays is the span of the dashboard chart series.
	ChartDays = 7

	csvPlaceholder = "N/A"
	dayFormat      = "2006-01-02"
)

// Service exposes the read-only aggregation operations. All methods tolerate
// reading a snapshot that lags the latest committed sale by one transaction.
type Service interface {
	SalesSummary(ctx context.Context, window Window) (*SummaryDTO, error)
	TopSellingProducts(ctx context.Context, limit int) ([]ProductRankingDTO, error)
	MostProfitableProducts(ctx context.Context, limit int) ([]ProductRankingDTO, error)
	DailySeries(ctx context.Context, field SeriesField, days int) ([]SeriesPointDTO, error)
	LowStockProducts(ctx context.Context) ([]inventory.ProductDTO, error)
	ExportSalesCSV(ctx context.Context, w io.Writer) error
}

// service implements the reports service.
type service struct {
	repo     *Repository
	products *inventory.Repository
}

// NewService constructs a reports service instance.
func NewService(repo *Repository, products *inventory.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, products: products}, nil
}

// SalesSummary totals the ledger over the optional window.
func (s *service) SalesSummary(ctx context.Context, window Window) (*SummaryDTO, error) {
	if window.Start != nil && window.End != nil && window.End.Before(*window.Start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end must not precede start")
	}
	summary, err := s.repo.Summary(ctx, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sales summary")
	}
	return summary, nil
}

// TopSellingProducts ranks products by units sold.
func (s *service) TopSellingProducts(ctx context.Context, limit int) ([]ProductRankingDTO, error) {
	rankings, err := s.repo.TopSellingProducts(ctx, normalizeRankingLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: top selling products")
	}
	return rankings, nil
}

// MostProfitableProducts ranks products by accumulated profit.
func (s *service) MostProfitableProducts(ctx context.Context, limit int) ([]ProductRankingDTO, error) {
	rankings, err := s.repo.MostProfitableProducts(ctx, normalizeRankingLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: most profitable products")
	}
	return rankings, nil
}

// DailySeries returns exactly `days` calendar-day buckets, oldest first,
// gap-filled with zero. Buckets follow the server's local calendar.
func (s *service) DailySeries(ctx context.Context, field SeriesField, days int) ([]SeriesPointDTO, error) {
	if !field.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown series field")
	}
	if days < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "days must be at least 1")
	}

	now := time.Now()
	start := startOfDay(now).AddDate(0, 0, -(days - 1))

	rows, err := s.repo.SalesSince(ctx, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load series sales")
	}

	buckets := make(map[string]decimal.Decimal, days)
	for _, row := range rows {
		key := row.DateSold.Local().Format(dayFormat)
		value := row.TotalCost
		if field == SeriesFieldProfit {
			value = row.Profit
		}
		buckets[key] = buckets[key].Add(value)
	}

	points := make([]SeriesPointDTO, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(dayFormat)
		points = append(points, SeriesPointDTO{Date: day, Value: buckets[day]})
	}
	return points, nil
}

// LowStockProducts returns every product at or below the threshold.
func (s *service) LowStockProducts(ctx context.Context) ([]inventory.ProductDTO, error) {
	rows, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list low stock")
	}
	out := make([]inventory.ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *inventory.NewProductDTO(&rows[i]))
	}
	return out, nil
}

// ExportSalesCSV writes the full ledger as CSV, newest first. Absent customer
// and seller values become "N/A".
func (s *service) ExportSalesCSV(ctx context.Context, w io.Writer) error {
	records, err := s.repo.ExportRows(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: export sales")
	}

	writer := csv.NewWriter(w)
	header := []string{"date_sold", "product", "category", "quantity_sold", "total_cost", "profit", "customer", "sold_by"}
	if err := writer.Write(header); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}

	for _, record := range records {
		row := []string{
			record.DateSold.Local().Format(time.RFC3339),
			record.ProductName,
			record.Category,
			fmt.Sprintf("%d", record.QuantitySold),
			record.TotalCost.StringFixed(2),
			record.Profit.StringFixed(2),
			orPlaceholder(record.CustomerName),
			orPlaceholder(record.SoldByName),
		}
		if err := writer.Write(row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return nil
}

func normalizeRankingLimit(limit int) int {
	if limit < 1 {
		return DefaultRankingLimit
	}
	if limit > MaxRankingLimit {
		return MaxRankingLimit
	}
	return limit
}

func orPlaceholder(value *string) string {
	if value == nil || *value == "" {
		return csvPlaceholder
	}
	return *value
}

func startOfDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}
