package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shoptrack/shoptrack-backend/internal/inventory"
	"github.com/shoptrack/shoptrack-backend/pkg/db"
	"github.com/shoptrack/shoptrack-backend/pkg/db/models"
	"github.com/shoptrack/shoptrack-backend/pkg/enums"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
	"github.com/shoptrack/shoptrack-backend/pkg/pagination"
)

type stubUserChecker struct {
	known map[uuid.UUID]bool
}

func (s *stubUserChecker) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return s.known[id], nil
}

type testEnv struct {
	svc      Service
	conn     *gorm.DB
	products *inventory.Repository
	users    *stubUserChecker
}

func newTestService(t *testing.T) *testEnv {
	t.Helper()
	conn := newTestDB(t)
	products := inventory.NewRepository(conn)
	users := &stubUserChecker{known: map[uuid.UUID]bool{}}
	svc, err := NewService(NewRepository(conn), products, db.NewWithDB(conn), users)
	require.NoError(t, err)
	return &testEnv{svc: svc, conn: conn, products: products, users: users}
}

func mustSeedProduct(t *testing.T, conn *gorm.DB, name, buying, selling string, qty int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:         name,
		Category:     enums.ProductCategoryElectronics,
		BuyingPrice:  decimal.RequireFromString(buying),
		SellingPrice: decimal.RequireFromString(selling),
		Quantity:     qty,
		Supplier:     "Acme Wholesale",
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestRecordSale(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()

	product := mustSeedProduct(t, env.conn, "Tablet", "800.00", "1200.00", 15)

	sale, err := env.svc.RecordSale(ctx, RecordSaleInput{
		ProductID: product.ID,
		Quantity:  3,
	})
	require.NoError(t, err)
	require.Equal(t, product.ID, sale.ProductID)
	require.Equal(t, 3, sale.QuantitySold)
	require.True(t, sale.TotalCost.Equal(decimal.RequireFromString("3600.00")), "total %s", sale.TotalCost)
	require.True(t, sale.Profit.Equal(decimal.RequireFromString("1200.00")), "profit %s", sale.Profit)
	require.True(t, sale.ProfitMargin.Equal(decimal.RequireFromString("33.33")), "margin %s", sale.ProfitMargin)
	require.False(t, sale.DateSold.IsZero())

	qty, err := env.products.GetQuantity(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 12, qty)
}

func TestRecordSaleFreezesSnapshots(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()

	product := mustSeedProduct(t, env.conn, "Tablet", "800.00", "1200.00", 15)

	sale, err := env.svc.RecordSale(ctx, RecordSaleInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	// reprice after the sale; the ledger row must not move
	err = env.conn.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"buying_price":  decimal.RequireFromString("900.00"),
			"selling_price": decimal.RequireFromString("2000.00"),
		}).Error
	require.NoError(t, err)

	reloaded, err := env.svc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.True(t, reloaded.TotalCost.Equal(decimal.RequireFromString("1200.00")))
	require.True(t, reloaded.Profit.Equal(decimal.RequireFromString("400.00")))
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()

	product := mustSeedProduct(t, env.conn, "Desk Lamp", "10.00", "18.00", 2)

	_, err := env.svc.RecordSale(ctx, RecordSaleInput{ProductID: product.ID, Quantity: 3})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	require.Equal(t, map[string]int{"available": 2, "requested": 3}, typed.Details())

	// nothing mutated
	qty, err := env.products.GetQuantity(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, qty)

	var count int64
	require.NoError(t, env.conn.Model(&models.Sale{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestRecordSaleValidation(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	product := mustSeedProduct(t, env.conn, "Notebook", "1.00", "2.50", 10)
	unknownUser := uuid.New()

	cases := []struct {
		name  string
		input RecordSaleInput
		code  pkgerrors.Code
	}{
		{"zero quantity", RecordSaleInput{ProductID: product.ID, Quantity: 0}, pkgerrors.CodeValidation},
		{"negative quantity", RecordSaleInput{ProductID: product.ID, Quantity: -2}, pkgerrors.CodeValidation},
		{"unknown user", RecordSaleInput{ProductID: product.ID, Quantity: 1, SoldByID: &unknownUser}, pkgerrors.CodeValidation},
		{"unknown product", RecordSaleInput{ProductID: uuid.New(), Quantity: 1}, pkgerrors.CodeNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.RecordSale(ctx, tc.input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			require.Equal(t, tc.code, typed.Code())
		})
	}
}

func TestRecordSaleNeverOversells(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()

	product := mustSeedProduct(t, env.conn, "Keyboard", "20.00", "35.00", 5)

	sold := 0
	for i := 0; i < 8; i++ {
		_, err := env.svc.RecordSale(ctx, RecordSaleInput{ProductID: product.ID, Quantity: 2})
		if err == nil {
			sold += 2
			continue
		}
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		require.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	}
	require.Equal(t, 4, sold)

	qty, err := env.products.GetQuantity(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 1, qty)
}

func TestListSales(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()

	tablet := mustSeedProduct(t, env.conn, "Tablet", "800.00", "1200.00", 50)
	lamp := mustSeedProduct(t, env.conn, "Desk Lamp", "10.00", "18.00", 50)

	first, err := env.svc.RecordSale(ctx, RecordSaleInput{
		ProductID:    tablet.ID,
		Quantity:     2,
		CustomerName: strPtr("Dana"),
	})
	require.NoError(t, err)
	second, err := env.svc.RecordSale(ctx, RecordSaleInput{
		ProductID: lamp.ID,
		Quantity:  1,
		Notes:     strPtr("walk-in"),
	})
	require.NoError(t, err)

	all, err := env.svc.ListSales(ctx, ListSalesInput{Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, all.Sales, 2)
	require.Equal(t, second.ID, all.Sales[0].ID, "newest first")
	require.Equal(t, first.ID, all.Sales[1].ID)
	require.Equal(t, "Desk Lamp", all.Sales[0].ProductName)

	byProduct, err := env.svc.ListSales(ctx, ListSalesInput{
		Pagination: pagination.Params{Limit: 10},
		Filters:    SaleListFilters{ProductID: &tablet.ID},
	})
	require.NoError(t, err)
	require.Len(t, byProduct.Sales, 1)
	require.Equal(t, first.ID, byProduct.Sales[0].ID)

	search, err := env.svc.ListSales(ctx, ListSalesInput{
		Pagination: pagination.Params{Limit: 10},
		Filters:    SaleListFilters{Query: "dana"},
	})
	require.NoError(t, err)
	require.Len(t, search.Sales, 1)
	require.Equal(t, first.ID, search.Sales[0].ID)

	future := time.Now().Add(time.Hour)
	none, err := env.svc.ListSales(ctx, ListSalesInput{
		Pagination: pagination.Params{Limit: 10},
		Filters:    SaleListFilters{Start: &future},
	})
	require.NoError(t, err)
	require.Empty(t, none.Sales)

	past := time.Now().Add(-time.Hour)
	_, err = env.svc.ListSales(ctx, ListSalesInput{
		Pagination: pagination.Params{Limit: 10},
		Filters:    SaleListFilters{Start: &future, End: &past},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	firstPage, err := env.svc.ListSales(ctx, ListSalesInput{Pagination: pagination.Params{Limit: 1}})
	require.NoError(t, err)
	require.Len(t, firstPage.Sales, 1)
	require.NotEmpty(t, firstPage.NextCursor)

	secondPage, err := env.svc.ListSales(ctx, ListSalesInput{
		Pagination: pagination.Params{Limit: 1, Cursor: firstPage.NextCursor},
	})
	require.NoError(t, err)
	require.Len(t, secondPage.Sales, 1)
	require.Equal(t, first.ID, secondPage.Sales[0].ID)
}

func TestGetSaleNotFound(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	_, err := env.svc.GetSale(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func strPtr(value string) *string {
	return &value
}
