package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-service/models"
	"catalog-service/repository"
	"catalog-service/search"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// SearchRequest is a validated search invocation: raw query text plus the
// structured filters already parsed by the controller.
type SearchRequest struct {
	Query    string
	Category *uint
	Brand    *uint
	MinPrice *float64
	MaxPrice *float64
}

// ListRequest controls plain product listing.
type ListRequest struct {
	Category *uint
	Brand    *uint
	Ordering string // name, -name, price, -price, created_at, -created_at
	Page     int
	Limit    int
}

// ProductService defines the catalog business logic interface.
type ProductService interface {
	Search(ctx context.Context, req SearchRequest) ([]models.ProductSummary, *ServiceError)
	GetProduct(ctx context.Context, id uint) (*models.Product, *ServiceError)
	ListProducts(ctx context.Context, req ListRequest) ([]models.ProductSummary, int64, *ServiceError)
	ListCategories(ctx context.Context) ([]models.Category, *ServiceError)
	ListBrands(ctx context.Context) ([]models.Brand, *ServiceError)
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, logger: logger}
}

// Search classifies the query and delegates to the store. Store failures
// propagate as-is with no retry: retrying expensive ranking queries only
// amplifies load, so retry policy belongs to the caller.
func (s *productServiceImpl) Search(ctx context.Context, req SearchRequest) ([]models.ProductSummary, *ServiceError) {
	query := search.Classify(req.Query)

	results, err := s.repo.Search(ctx, repository.SearchParams{
		Query:    query,
		Category: req.Category,
		Brand:    req.Brand,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		s.logger.Error("Search query failed", zap.String("query", query.Text), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to execute search"}
	}

	summaries := make([]models.ProductSummary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, r.Product.Summary())
	}

	s.logger.Info("Search completed",
		zap.String("query", query.Text),
		zap.Int("lang", int(query.Lang)),
		zap.Int("count", len(summaries)),
	)
	return summaries, nil
}

// GetProduct loads an active product with brand, category and nutrition
// facts. Inactive products are invisible to the read API and surface as
// not found.
func (s *productServiceImpl) GetProduct(ctx context.Context, id uint) (*models.Product, *ServiceError) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.Uint("id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}
	return product, nil
}

// ListProducts returns one page of active products with the total count.
func (s *productServiceImpl) ListProducts(ctx context.Context, req ListRequest) ([]models.ProductSummary, int64, *ServiceError) {
	ordering, ok := orderingClause(req.Ordering)
	if !ok {
		return nil, 0, &ServiceError{StatusCode: 400, Message: fmt.Sprintf("Invalid ordering field: %s", req.Ordering)}
	}

	products, total, err := s.repo.FindAll(ctx, repository.ListParams{
		Category: req.Category,
		Brand:    req.Brand,
		Ordering: ordering,
		Page:     req.Page,
		Limit:    req.Limit,
	})
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list products"}
	}

	summaries := make([]models.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}
	return summaries, total, nil
}

// ListCategories returns all categories.
func (s *productServiceImpl) ListCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list categories"}
	}
	return categories, nil
}

// ListBrands returns all brands.
func (s *productServiceImpl) ListBrands(ctx context.Context) ([]models.Brand, *ServiceError) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		s.logger.Error("Failed to list brands", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list brands"}
	}
	return brands, nil
}

// orderingClause maps an ordering param (name, -price, ...)
// to a SQL ORDER BY clause. Only whitelisted columns pass through.
func orderingClause(ordering string) (string, bool) {
	if ordering == "" {
		return "name ASC", true
	}

	direction := "ASC"
	field := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		field = ordering[1:]
	}

	switch field {
	case "name", "price", "created_at":
		return field + " " + direction, true
	default:
		return "", false
	}
}
