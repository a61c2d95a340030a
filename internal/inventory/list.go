package inventory

import (
	"github.com/shoptrack/shoptrack-backend/pkg/enums"
	"github.com/shoptrack/shoptrack-backend/pkg/pagination"
)

// ProductListFilters narrows the product listing.
type ProductListFilters struct {
	// Query matches name, supplier, or category substrings, case-insensitive.
	Query    string
	Category *enums.ProductCategory
	Stock    *enums.StockFilter
}

// ListProductsInput bundles filters and pagination for product listings.
type ListProductsInput struct {
	Pagination pagination.Params
	Filters    ProductListFilters
}
