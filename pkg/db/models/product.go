package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoptrack/shoptrack-backend/pkg/enums"
)

// LowStockThreshold is the fixed quantity at or below which a product is
// considered low on stock.
const LowStockThreshold = 5

// Product represents a tracked inventory item with pricing and stock counts.
type Product struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name         string                `gorm:"column:name;not null"`
	Category     enums.ProductCategory `gorm:"column:category;not null;default:other"`
	BuyingPrice  decimal.Decimal       `gorm:"column:buying_price;type:numeric(10,2);not null"`
	SellingPrice decimal.Decimal       `gorm:"column:selling_price;type:numeric(10,2);not null"`
	Quantity     int                   `gorm:"column:quantity;not null;default:0"`
	Supplier     string                `gorm:"column:supplier;not null"`
	AddedByID    *uuid.UUID            `gorm:"column:added_by;type:uuid"`
	AddedBy      *User                 `gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL"`
	Sales        []Sale                `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the ID when the caller did not provide one.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProfitPerUnit is the margin earned on a single unit at current prices.
func (p Product) ProfitPerUnit() decimal.Decimal {
	return p.SellingPrice.Sub(p.BuyingPrice)
}

// ProfitPercentage is the per-unit margin relative to the buying price,
// expressed as a percentage. Zero when the buying price is zero.
func (p Product) ProfitPercentage() decimal.Decimal {
	if !p.BuyingPrice.IsPositive() {
		return decimal.Zero
	}
	return p.ProfitPerUnit().Div(p.BuyingPrice).Mul(decimal.NewFromInt(100))
}

// IsLowStock reports whether the quantity is at or below the fixed threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity <= LowStockThreshold
}

// TotalValue is the inventory value at buying price.
func (p Product) TotalValue() decimal.Decimal {
	return p.BuyingPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// CanSell reports whether the requested quantity is available. Pure check;
// the authoritative reduction happens inside the sale transaction.
func (p Product) CanSell(qty int) bool {
	return qty <= p.Quantity
}
