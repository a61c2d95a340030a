package enums

import "fmt"

// StockFilter narrows product listings by stock level.
type StockFilter string

const (
	StockFilterLow StockFilter = "low"
	StockFilterOut StockFilter = "out"
)

// IsValid reports whether the value is a known StockFilter.
func (f StockFilter) IsValid() bool {
	return f == StockFilterLow || f == StockFilterOut
}

// ParseStockFilter converts raw input into a StockFilter.
func ParseStockFilter(value string) (StockFilter, error) {
	switch StockFilter(value) {
	case StockFilterLow:
		return StockFilterLow, nil
	case StockFilterOut:
		return StockFilterOut, nil
	}
	return "", fmt.Errorf("invalid stock filter %q", value)
}
