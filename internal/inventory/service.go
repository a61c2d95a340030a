package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoptrack/shoptrack-backend/pkg/db/models"
	"github.com/shoptrack/shoptrack-backend/pkg/enums"
	pkgerrors "github.com/shoptrack/shoptrack-backend/pkg/errors"
)

// minPrice is the lowest accepted buying or selling price.
var minPrice = decimal.New(1, -2)

// Service exposes product management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	LowStockProducts(ctx context.Context) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name         string
	Category     enums.ProductCategory
	BuyingPrice  decimal.Decimal
	SellingPrice decimal.Decimal
	Quantity     int
	Supplier     string
	AddedByID    *uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name         *string
	Category     *enums.ProductCategory
	BuyingPrice  *decimal.Decimal
	SellingPrice *decimal.Decimal
	Quantity     *int
	Supplier     *string
}

type userChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// service implements the product service.
type service struct {
	repo  *Repository
	users userChecker
}

// NewService constructs a product service instance.
func NewService(repo *Repository, users userChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, users: users}, nil
}

// CreateProduct validates and persists a new product.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	if err := validatePrices(input.BuyingPrice, input.SellingPrice); err != nil {
		return nil, err
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}
	if err := s.ensureUserExists(ctx, input.AddedByID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:         input.Name,
		Category:     input.Category,
		BuyingPrice:  input.BuyingPrice.Round(2),
		SellingPrice: input.SellingPrice.Round(2),
		Quantity:     input.Quantity,
		Supplier:     strings.TrimSpace(input.Supplier),
		AddedByID:    input.AddedByID,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return NewProductDTO(created), nil
}

// GetProduct loads a single product by ID.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

// UpdateProduct applies the provided changes to an existing product.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	applyUpdate(product, input)

	if product.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !product.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	if err := validatePrices(product.BuyingPrice, product.SellingPrice); err != nil {
		return nil, err
	}
	if product.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes a product. Its sales go with it via the FK cascade.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

// ListProducts returns a filtered, cursor-paginated product page.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if input.Filters.Category != nil && !input.Filters.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	result, err := s.repo.List(ctx, input)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return result, nil
}

// LowStockProducts returns every product at or below the threshold.
func (s *service) LowStockProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list low stock")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
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

func validatePrices(buying, selling decimal.Decimal) error {
	if buying.LessThan(minPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "buying_price must be at least 0.01")
	}
	if selling.LessThan(minPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "selling_price must be at least 0.01")
	}
	if selling.LessThanOrEqual(buying) {
		return pkgerrors.New(pkgerrors.CodeValidation, "selling_price must exceed buying_price")
	}
	return nil
}

func applyUpdate(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.BuyingPrice != nil {
		product.BuyingPrice = input.BuyingPrice.Round(2)
	}
	if input.SellingPrice != nil {
		product.SellingPrice = input.SellingPrice.Round(2)
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Supplier != nil {
		product.Supplier = strings.TrimSpace(*input.Supplier)
	}
}
