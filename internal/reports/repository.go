package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoptrack/shoptrack-backend/pkg/db/models"
)

// Repository runs the read-only aggregation queries over the sale ledger.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type summaryRecord struct {
	TotalSales        decimal.Decimal
	TotalProfit       decimal.Decimal
	TotalTransactions int64
}

// Summary sums the ledger over the optional window.
func (r *Repository) Summary(ctx context.Context, window Window) (*SummaryDTO, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("COALESCE(SUM(total_cost), 0) AS total_sales, COALESCE(SUM(profit), 0) AS total_profit, COUNT(*) AS total_transactions")
	if window.Start != nil {
		qb = qb.Where("date_sold >= ?", *window.Start)
	}
	if window.End != nil {
		qb = qb.Where("date_sold <= ?", *window.End)
	}

	var record summaryRecord
	if err := qb.Scan(&record).Error; err != nil {
		return nil, err
	}
	return &SummaryDTO{
		TotalSales:        record.TotalSales,
		TotalProfit:       record.TotalProfit,
		TotalTransactions: record.TotalTransactions,
	}, nil
}

type rankingRecord struct {
	ProductID     uuid.UUID
	Name          string
	Category      string
	TotalQuantity int64
	TotalProfit   decimal.Decimal
}

// TopSellingProducts ranks products by total quantity sold. Ties break on
// product id ascending so rankings are stable.
func (r *Repository) TopSellingProducts(ctx context.Context, limit int) ([]ProductRankingDTO, error) {
	var records []rankingRecord
	err := r.db.WithContext(ctx).
		Table("sales s").
		Select("p.id AS product_id, p.name, p.category, SUM(s.quantity_sold) AS total_quantity").
		Joins("JOIN products p ON p.id = s.product_id").
		Group("p.id, p.name, p.category").
		Order("total_quantity DESC").Order("p.id ASC").
		Limit(limit).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]ProductRankingDTO, 0, len(records))
	for _, record := range records {
		out = append(out, ProductRankingDTO{
			ProductID:     record.ProductID,
			Name:          record.Name,
			Category:      record.Category,
			TotalQuantity: record.TotalQuantity,
		})
	}
	return out, nil
}

// MostProfitableProducts ranks products by total recorded profit, same
// ordering rules as TopSellingProducts.
func (r *Repository) MostProfitableProducts(ctx context.Context, limit int) ([]ProductRankingDTO, error) {
	var records []rankingRecord
	err := r.db.WithContext(ctx).
		Table("sales s").
		Select("p.id AS product_id, p.name, p.category, SUM(s.profit) AS total_profit").
		Joins("JOIN products p ON p.id = s.product_id").
		Group("p.id, p.name, p.category").
		Order("total_profit DESC").Order("p.id ASC").
		Limit(limit).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]ProductRankingDTO, 0, len(records))
	for _, record := range records {
		out = append(out, ProductRankingDTO{
			ProductID:   record.ProductID,
			Name:        record.Name,
			Category:    record.Category,
			TotalProfit: record.TotalProfit,
		})
	}
	return out, nil
}

type seriesSale struct {
	DateSold  time.Time
	TotalCost decimal.Decimal
	Profit    decimal.Decimal
}

// SalesSince returns the slim sale rows recorded at or after the cutoff,
// for calendar-day bucketing in the service.
func (r *Repository) SalesSince(ctx context.Context, cutoff time.Time) ([]seriesSale, error) {
	var rows []seriesSale
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("date_sold, total_cost, profit").
		Where("date_sold >= ?", cutoff).
		Scan(&rows).Error
	return rows, err
}

type exportRecord struct {
	DateSold     time.Time
	ProductName  string
	Category     string
	QuantitySold int
	TotalCost    decimal.Decimal
	Profit       decimal.Decimal
	CustomerName *string
	SoldByName   *string
}

// ExportRows streams the full ledger joined with product and seller data,
// newest first.
func (r *Repository) ExportRows(ctx context.Context) ([]exportRecord, error) {
	var records []exportRecord
	err := r.db.WithContext(ctx).
		Table("sales s").
		Select("s.date_sold, p.name AS product_name, p.category, s.quantity_sold, s.total_cost, s.profit, s.customer_name, u.username AS sold_by_name").
		Joins("JOIN products p ON p.id = s.product_id").
		Joins("LEFT JOIN users u ON u.id = s.sold_by").
		Order("s.date_sold DESC").Order("s.id DESC").
		Scan(&records).Error
	return records, err
}
