package repository

import (
	"context"
	"fmt"
	"strings"

	"catalog-service/models"
	"catalog-service/search"

	"gorm.io/gorm"
)

// SearchParams carries a classified query plus the structured filters.
// Nil filter fields are not applied.
type SearchParams struct {
	Query    search.Query
	Category *uint
	Brand    *uint
	MinPrice *float64
	MaxPrice *float64
}

// ListParams controls plain (non-search) product listing.
type ListParams struct {
	Category *uint
	Brand    *uint
	Ordering string // validated by the service layer
	Page     int
	Limit    int
}

// ProductRepository defines read access to the catalog store.
type ProductRepository interface {
	Search(ctx context.Context, params SearchParams) ([]models.SearchResult, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindAll(ctx context.Context, params ListParams) ([]models.Product, int64, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
}

// GormProductRepository implements ProductRepository against Postgres.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// searchRow is the flat projection scanned from the fused search query.
type searchRow struct {
	ID           uint
	Name         string
	NameAr       *string
	SKU          string `gorm:"column:sku"`
	Price        float64
	BrandID      uint
	CategoryID   uint
	IsActive     bool
	BrandName    string
	CategoryName string
	Relevance    float64
}

// Search runs the three retrieval strategies as one fused query: the
// full-text, trigram and substring predicates are OR-ed so the store
// returns the deduplicated candidate union, each row annotated with the
// combined relevance (GREATEST mirrors the best-signal-wins combiner in
// the search package, using the same weight constants). Structured
// filters are conjoined after the base predicate; ordering is relevance
// descending with name ascending as the tie-break.
//
// With an empty query the call degenerates to filter-only retrieval over
// active products ordered by name.
func (r *GormProductRepository) Search(ctx context.Context, params SearchParams) ([]models.SearchResult, error) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString(`SELECT p.id, p.name, p.name_ar, p.sku, p.price, p.brand_id, p.category_id, p.is_active, `)
	sb.WriteString(`b.name AS brand_name, c.name AS category_name`)

	q := params.Query
	if q.IsEmpty() {
		sb.WriteString(`, 0.0 AS relevance`)
	} else {
		nameArWeight := search.NameArWeight(q.Lang)

		sb.WriteString(`, GREATEST(`)
		sb.WriteString(`ts_rank(p.search_vector, plainto_tsquery('english', ?)) * ?, `)
		args = append(args, q.Text, search.FullTextWeight)
		if q.Lang == search.LangBilingual {
			sb.WriteString(`ts_rank(p.search_vector, plainto_tsquery('simple', ?)) * ?, `)
			args = append(args, q.Text, search.FullTextWeight)
		}
		sb.WriteString(`similarity(p.name, ?) * ?, `)
		args = append(args, q.Text, search.NameWeight)
		sb.WriteString(`similarity(coalesce(p.name_ar, ''), ?) * ?, `)
		args = append(args, q.Text, nameArWeight)
		sb.WriteString(`similarity(b.name, ?) * ?, `)
		args = append(args, q.Text, search.BrandWeight)
		sb.WriteString(`0.0) AS relevance`)
	}

	sb.WriteString(` FROM products p`)
	sb.WriteString(` JOIN brands b ON b.id = p.brand_id`)
	sb.WriteString(` JOIN categories c ON c.id = p.category_id`)
	sb.WriteString(` WHERE p.is_active = TRUE`)

	if !q.IsEmpty() {
		like := "%" + escapeLike(q.Text) + "%"

		sb.WriteString(` AND (`)
		sb.WriteString(`p.search_vector @@ plainto_tsquery('english', ?)`)
		args = append(args, q.Text)
		if q.Lang == search.LangBilingual {
			sb.WriteString(` OR p.search_vector @@ plainto_tsquery('simple', ?)`)
			args = append(args, q.Text)
		}
		sb.WriteString(` OR similarity(p.name, ?) > ?`)
		args = append(args, q.Text, search.SimilarityThreshold)
		sb.WriteString(` OR similarity(coalesce(p.name_ar, ''), ?) > ?`)
		args = append(args, q.Text, search.SimilarityThreshold)
		sb.WriteString(` OR similarity(b.name, ?) > ?`)
		args = append(args, q.Text, search.SimilarityThreshold)
		sb.WriteString(` OR p.name ILIKE ?`)
		sb.WriteString(` OR coalesce(p.name_ar, '') ILIKE ?`)
		sb.WriteString(` OR coalesce(p.description, '') ILIKE ?`)
		sb.WriteString(` OR coalesce(p.description_ar, '') ILIKE ?`)
		sb.WriteString(` OR b.name ILIKE ?`)
		sb.WriteString(` OR c.name ILIKE ?`)
		args = append(args, like, like, like, like, like, like)
		sb.WriteString(`)`)
	}

	if params.Category != nil {
		sb.WriteString(` AND p.category_id = ?`)
		args = append(args, *params.Category)
	}
	if params.Brand != nil {
		sb.WriteString(` AND p.brand_id = ?`)
		args = append(args, *params.Brand)
	}
	if params.MinPrice != nil {
		sb.WriteString(` AND p.price >= ?`)
		args = append(args, *params.MinPrice)
	}
	if params.MaxPrice != nil {
		sb.WriteString(` AND p.price <= ?`)
		args = append(args, *params.MaxPrice)
	}

	if q.IsEmpty() {
		sb.WriteString(` ORDER BY p.name ASC`)
	} else {
		sb.WriteString(` ORDER BY relevance DESC, p.name ASC`)
	}

	var rows []searchRow
	if err := r.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}

	results := make([]models.SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.SearchResult{
			Product: models.Product{
				ID:         row.ID,
				Name:       row.Name,
				NameAr:     row.NameAr,
				SKU:        row.SKU,
				Price:      row.Price,
				BrandID:    row.BrandID,
				CategoryID: row.CategoryID,
				IsActive:   row.IsActive,
				Brand:      models.Brand{ID: row.BrandID, Name: row.BrandName},
				Category:   models.Category{ID: row.CategoryID, Name: row.CategoryName},
			},
			Relevance: row.Relevance,
		})
	}
	return results, nil
}

// FindByID loads an active product with its brand, category and
// nutrition facts.
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("NutritionFacts").
		Where("is_active = ?", true).
		First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAll returns a page of active products plus the total count.
func (r *GormProductRepository) FindAll(ctx context.Context, params ListParams) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)
	if params.Category != nil {
		query = query.Where("category_id = ?", *params.Category)
	}
	if params.Brand != nil {
		query = query.Where("brand_id = ?", *params.Brand)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ordering := params.Ordering
	if ordering == "" {
		ordering = "name ASC"
	}

	offset := (params.Page - 1) * params.Limit
	if err := query.
		Preload("Brand").
		Preload("Category").
		Order(ordering).
		Offset(offset).Limit(params.Limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListCategories returns all categories ordered by name.
func (r *GormProductRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListBrands returns all brands ordered by name.
func (r *GormProductRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// escapeLike neutralizes LIKE metacharacters so the substring strategy
// matches the query text literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
