package models

import (
	"time"
)

// Category groups products (e.g. Dairy, Beverages).
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Category.
func (Category) TableName() string {
	return "categories"
}

// Brand is a product manufacturer or label.
type Brand struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Description     *string   `gorm:"type:text" json:"description,omitempty"`
	CountryOfOrigin *string   `gorm:"type:varchar(100)" json:"country_of_origin,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Brand.
func (Brand) TableName() string {
	return "brands"
}

// NutritionFact holds optional per-product nutrition data. Owned 1:1 by a
// product; it has no independent lifecycle.
type NutritionFact struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Calories      *float64 `gorm:"check:calories >= 0" json:"calories,omitempty"`
	Protein       *float64 `gorm:"check:protein >= 0" json:"protein,omitempty"`       // grams
	Carbohydrates *float64 `gorm:"check:carbohydrates >= 0" json:"carbohydrates,omitempty"` // grams
	Fat           *float64 `gorm:"check:fat >= 0" json:"fat,omitempty"`               // grams
	Sugar         *float64 `gorm:"check:sugar >= 0" json:"sugar,omitempty"`           // grams
	Sodium        *float64 `gorm:"check:sodium >= 0" json:"sodium,omitempty"`         // mg
}

// TableName specifies the table name for NutritionFact.
func (NutritionFact) TableName() string {
	return "nutrition_facts"
}

// Product is the catalog entity persisted in Postgres. SearchVector is a
// tsvector column maintained by a database trigger; the application never
// writes it directly.
type Product struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	NameAr          *string        `gorm:"type:varchar(255)" json:"name_ar,omitempty"`
	Description     *string        `gorm:"type:text" json:"description,omitempty"`
	DescriptionAr   *string        `gorm:"type:text" json:"description_ar,omitempty"`
	SKU             string         `gorm:"column:sku;type:varchar(100);not null;uniqueIndex" json:"sku"`
	Price           float64        `gorm:"type:decimal(10,2);not null;check:price >= 0" json:"price"`
	BrandID         uint           `gorm:"not null;index" json:"brand_id"`
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`
	NutritionFactID *uint          `gorm:"uniqueIndex" json:"-"`
	IsActive        bool           `gorm:"not null;default:true" json:"is_active"`
	SearchVector    string         `gorm:"type:tsvector;->" json:"-"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Brand          Brand          `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Category       Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	NutritionFacts *NutritionFact `gorm:"foreignKey:NutritionFactID" json:"nutrition_facts,omitempty"`
}

// TableName specifies the table name for Product.
func (Product) TableName() string {
	return "products"
}

// ProductSummary is the list/search representation of a product.
type ProductSummary struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	NameAr       *string `json:"name_ar"`
	SKU          string  `json:"sku"`
	Price        float64 `json:"price"`
	BrandName    string  `json:"brand_name"`
	CategoryName string  `json:"category_name"`
	IsActive     bool    `json:"is_active"`
}

// Summary projects a product (with preloaded brand/category) into its
// list representation.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		NameAr:       p.NameAr,
		SKU:          p.SKU,
		Price:        p.Price,
		BrandName:    p.Brand.Name,
		CategoryName: p.Category.Name,
		IsActive:     p.IsActive,
	}
}

// SearchResult pairs a product with the relevance score computed for the
// query that retrieved it.
type SearchResult struct {
	Product   Product `json:"product"`
	Relevance float64 `json:"relevance"`
}
