package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is an immutable ledger entry. TotalCost and Profit are snapshots of
// the product's prices at the moment of sale and never change afterwards.
type Sale struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Product      *Product        `gorm:"foreignKey:ProductID"`
	QuantitySold int             `gorm:"column:quantity_sold;not null"`
	TotalCost    decimal.Decimal `gorm:"column:total_cost;type:numeric(10,2);not null"`
	Profit       decimal.Decimal `gorm:"column:profit;type:numeric(10,2);not null"`
	DateSold     time.Time       `gorm:"column:date_sold;autoCreateTime"`
	SoldByID     *uuid.UUID      `gorm:"column:sold_by;type:uuid"`
	SoldBy       *User           `gorm:"foreignKey:SoldByID;constraint:OnDelete:SET NULL"`
	CustomerName *string         `gorm:"column:customer_name"`
	Notes        *string         `gorm:"column:notes"`
}

// BeforeCreate assigns the ID when the caller did not provide one.
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ProfitMargin is profit relative to revenue, as a percentage. Zero when the
// total cost is zero (degenerate zero-price sale).
func (s Sale) ProfitMargin() decimal.Decimal {
	if !s.TotalCost.IsPositive() {
		return decimal.Zero
	}
	return s.Profit.Div(s.TotalCost).Mul(decimal.NewFromInt(100))
}
