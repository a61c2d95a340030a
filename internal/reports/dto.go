package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryDTO totals the ledger over an optional window. Values are zero,
// never null, when no sales match.
type SummaryDTO struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	TotalTransactions int64           `json:"total_transactions"`
}

// ProductRankingDTO is one row of a top-products ranking.
type ProductRankingDTO struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	TotalQuantity int64           `json:"total_quantity,omitempty"`
	TotalProfit   decimal.Decimal `json:"total_profit,omitempty"`
}

// SeriesPointDTO is one calendar-day bucket of a chart series.
type SeriesPointDTO struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// SeriesField selects which sale column a daily series sums.
type SeriesField string

const (
	SeriesFieldSales  SeriesField = "sales"
	SeriesFieldProfit SeriesField = "profit"
)

// IsValid reports whether the value is a known SeriesField.
func (f SeriesField) IsValid() bool {
	return f == SeriesFieldSales || f == SeriesFieldProfit
}

// Window is an optional inclusive [Start, End] date filter.
type Window struct {
	Start *time.Time
	End   *time.Time
}
