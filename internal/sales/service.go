package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoptrack/shoptrack-backend/internal/inventory"
	"github.com/shoptrack/shoptrack-backend/pkg/db"
	"github.com/shoptrack/shoptrack-backend/pkg/db/models"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
)

// Service exposes sale recording and history operations.
type Service interface {
	RecordSale(ctx context.Context, input RecordSaleInput) (*SaleDTO, error)
	GetSale(ctx context.Context, saleID uuid.UUID) (*SaleDTO, error)
	ListSales(ctx context.Context, input ListSalesInput) (*SaleListResult, error)
}

// RecordSaleInput holds the validated payload to record a sale.
type RecordSaleInput struct {
	ProductID    uuid.UUID
	Quantity     int
	SoldByID     *uuid.UUID
	CustomerName *string
	Notes        *string
}

type userChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// service implements the sale service.
type service struct {
	repo     *Repository
	products *inventory.Repository
	dbClient *db.Client
	users    userChecker
}

// NewService constructs a sale service instance.
func NewService(repo *Repository, products *inventory.Repository, dbClient *db.Client, users userChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, products: products, dbClient: dbClient, users: users}, nil
}

// RecordSale atomically checks stock, reduces it, and appends the ledger row.
// The sale's total_cost and profit are frozen at the product's current prices;
// later price edits never rewrite recorded sales.
func (s *service) RecordSale(ctx context.Context, input RecordSaleInput) (*SaleDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_sold must be at least 1")
	}
	if err := s.ensureUserExists(ctx, input.SoldByID); err != nil {
		return nil, err
	}

	var recorded *models.Sale
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txProducts := s.products.WithTx(tx)
		txSales := s.repo.WithTx(tx)

		product, err := txProducts.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		qty := decimal.NewFromInt(int64(input.Quantity))
		totalCost := product.SellingPrice.Mul(qty).Round(2)
		profit := product.ProfitPerUnit().Mul(qty).Round(2)

		reduced, err := txProducts.ReduceStock(ctx, product.ID, input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reduce stock")
		}
		if !reduced {
			available, err := txProducts.GetQuantity(ctx, product.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: read stock")
			}
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
				WithDetails(map[string]int{
					"available": available,
					"requested": input.Quantity,
				})
		}

		sale := &models.Sale{
			ProductID:    product.ID,
			QuantitySold: input.Quantity,
			TotalCost:    totalCost,
			Profit:       profit,
			SoldByID:     input.SoldByID,
			CustomerName: input.CustomerName,
			Notes:        input.Notes,
		}
		if _, err := txSales.Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale")
		}

		recorded = sale
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale")
	}

	sale, err := s.repo.FindByID(ctx, recorded.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return NewSaleDTO(sale), nil
}

// GetSale loads a single sale by ID.
func (s *service) GetSale(ctx context.Context, saleID uuid.UUID) (*SaleDTO, error) {
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return NewSaleDTO(sale), nil
}

// ListSales returns a filtered, cursor-paginated page of the ledger.
func (s *service) ListSales(ctx context.Context, input ListSalesInput) (*SaleListResult, error) {
	if input.Filters.Start != nil && input.Filters.End != nil && input.Filters.End.Before(*input.Filters.Start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end must not precede start")
	}
	result, err := s.repo.List(ctx, input)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales")
	}
	return result, nil
}

func (s *service) ensureUserExists(ctx context.Context, userID *uuid.UUID) error {
	if userID == nil {
		return nil
	}
	ok, err := s.users.Exists(ctx, *userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown user")
	}
	return nil
}
