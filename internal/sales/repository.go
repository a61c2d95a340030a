package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoptrack/shoptrack-backend/pkg/db/models"
	"github.com/shoptrack/shoptrack-backend/pkg/pagination"
)

// SaleRepository defines persistence operations for the sale ledger.
type SaleRepository interface {
	Create(context.Context, *models.Sale) (*models.Sale, error)
	FindByID(context.Context, uuid.UUID) (*models.Sale, error)
	List(context.Context, ListSalesInput) (*SaleListResult, error)
}

// SaleListFilters narrows the sale history listing.
type SaleListFilters struct {
	// Query matches product name, customer name, or notes, case-insensitive.
	Query     string
	ProductID *uuid.UUID
	Start     *time.Time
	End       *time.Time
}

// ListSalesInput bundles filters and pagination for sale listings.
type ListSalesInput struct {
	Pagination pagination.Params
	Filters    SaleListFilters
}

// Repository wires together sale persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new sale row. Sales are append-only.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// FindByID loads the sale with its product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns a page of sales ordered by date_sold DESC.
func (r *Repository) List(ctx context.Context, input ListSalesInput) (*SaleListResult, error) {
	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(input.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("sales s").
		Select(strings.Join([]string{
			"s.id",
			"s.product_id",
			"p.name AS product_name",
			"s.quantity_sold",
			"s.total_cost",
			"s.profit",
			"s.date_sold",
			"s.sold_by AS sold_by_id",
			"s.customer_name",
			"s.notes",
		}, ", ")).
		Joins("JOIN products p ON p.id = s.product_id")

	filter := input.Filters
	if filter.ProductID != nil {
		qb = qb.Where("s.product_id = ?", *filter.ProductID)
	}
	if filter.Start != nil {
		qb = qb.Where("s.date_sold >= ?", *filter.Start)
	}
	if filter.End != nil {
		qb = qb.Where("s.date_sold <= ?", *filter.End)
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(s.customer_name) LIKE ? OR LOWER(s.notes) LIKE ?)", pattern, pattern, pattern)
	}

	if cursor != nil {
		qb = qb.Where("(s.date_sold < ?) OR (s.date_sold = ? AND s.id < ?)", cursor.Timestamp, cursor.Timestamp, cursor.ID)
	}

	qb = qb.Order("s.date_sold DESC").Order("s.id DESC").Limit(limitWithBuffer)

	var records []saleRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{Timestamp: last.DateSold, ID: last.ID})
	}

	out := make([]SaleDTO, 0, len(resultRows))
	for _, record := range resultRows {
		out = append(out, record.toDTO())
	}

	return &SaleListResult{
		Sales:      out,
		NextCursor: nextCursor,
	}, nil
}

type saleRecord struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	TotalCost    decimal.Decimal
	Profit       decimal.Decimal
	DateSold     time.Time
	SoldByID     *uuid.UUID
	CustomerName *string
	Notes        *string
}

func (r saleRecord) toDTO() SaleDTO {
	sale := models.Sale{TotalCost: r.TotalCost, Profit: r.Profit}
	return SaleDTO{
		ID:           r.ID,
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		QuantitySold: r.QuantitySold,
		TotalCost:    r.TotalCost,
		Profit:       r.Profit,
		ProfitMargin: sale.ProfitMargin().Round(2),
		DateSold:     r.DateSold,
		SoldByID:     r.SoldByID,
		CustomerName: r.CustomerName,
		Notes:        r.Notes,
	}
}
