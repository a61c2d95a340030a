package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoptrack/shoptrack-backend/pkg/db/models"
)

// SaleDTO represents a recorded sale returned to clients. Cost and profit are
// the frozen values captured when the sale was recorded.
type SaleDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	QuantitySold int             `json:"quantity_sold"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
	DateSold     time.Time       `json:"date_sold"`
	SoldByID     *uuid.UUID      `json:"sold_by,omitempty"`
	CustomerName *string         `json:"customer_name,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
}

// SaleListResult pairs a page of sales with the next cursor.
type SaleListResult struct {
	Sales      []SaleDTO `json:"sales"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// NewSaleDTO builds a DTO from the persisted model.
func NewSaleDTO(sale *models.Sale) *SaleDTO {
	dto := &SaleDTO{
		ID:           sale.ID,
		ProductID:    sale.ProductID,
		QuantitySold: sale.QuantitySold,
		TotalCost:    sale.TotalCost,
		Profit:       sale.Profit,
		ProfitMargin: sale.ProfitMargin().Round(2),
		DateSold:     sale.DateSold,
		SoldByID:     sale.SoldByID,
		CustomerName: sale.CustomerName,
		Notes:        sale.Notes,
	}
	if sale.Product != nil {
		dto.ProductName = sale.Product.Name
	}
	return dto
}
