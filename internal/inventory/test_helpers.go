package inventory

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoptrack/shoptrack-backend/pkg/db/models"
	"github.com/shoptrack/shoptrack-backend/pkg/enums"
)

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New(),
		Username:  fmt.Sprintf("st_test_%s", uuid.NewString()),
		FirstName: "Repo",
		LastName:  "Tester",
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, name string, category enums.ProductCategory, buying, selling string, qty int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:         name,
		Category:     category,
		BuyingPrice:  decimal.RequireFromString(buying),
		SellingPrice: decimal.RequireFromString(selling),
		Quantity:     qty,
		Supplier:     "Acme Wholesale",
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func strPtr(value string) *string {
	return &value
}

func intPtr(value int) *int {
	return &value
}

func categoryPtr(value enums.ProductCategory) *enums.ProductCategory {
	return &value
}

func stockPtr(value enums.StockFilter) *enums.StockFilter {
	return &value
}

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
