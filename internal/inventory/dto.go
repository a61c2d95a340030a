package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoptrack/shoptrack-backend/pkg/db/models"
)

// ProductDTO represents the product payload returned to clients, including
// the derived pricing fields.
type ProductDTO struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	BuyingPrice      decimal.Decimal `json:"buying_price"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	Quantity         int             `json:"quantity"`
	Supplier         string          `json:"supplier,omitempty"`
	AddedByID        *uuid.UUID      `json:"added_by,omitempty"`
	ProfitPerUnit    decimal.Decimal `json:"profit_per_unit"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	IsLowStock       bool            `json:"is_low_stock"`
	TotalValue       decimal.Decimal `json:"total_value"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResult pairs a page of products with the next cursor.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:               product.ID,
		Name:             product.Name,
		Category:         product.Category.String(),
		BuyingPrice:      product.BuyingPrice,
		SellingPrice:     product.SellingPrice,
		Quantity:         product.Quantity,
		Supplier:         product.Supplier,
		AddedByID:        product.AddedByID,
		ProfitPerUnit:    product.ProfitPerUnit(),
		ProfitPercentage: product.ProfitPercentage().Round(2),
		IsLowStock:       product.IsLowStock(),
		TotalValue:       product.TotalValue(),
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}
