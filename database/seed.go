package database

import (
	"fmt"
	"math/rand"

	"catalog-service/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

type seedProduct struct {
	name, nameAr, description, descriptionAr, sku string
	price                                         float64
	brand, category                               string
	inactive                                      bool
	nutrition                                     models.NutritionFact
}

// Seed loads the sample catalog used for manual testing. It is
// idempotent: categories and brands upsert by name, products by SKU.
func Seed(db *gorm.DB, logger *zap.Logger) error {
	categories := []models.Category{
		{Name: "Beverages", Description: strPtr("Drinks and liquids")},
		{Name: "Dairy", Description: strPtr("Milk and dairy products")},
		{Name: "Bakery", Description: strPtr("Bread and baked goods")},
		{Name: "Fruits", Description: strPtr("Fresh fruits")},
		{Name: "Vegetables", Description: strPtr("Fresh vegetables")},
		{Name: "Snacks", Description: strPtr("Chips, nuts, and other snacks")},
		{Name: "Canned Goods", Description: strPtr("Canned and jarred items")},
		{Name: "Frozen Foods", Description: strPtr("Frozen meals and ingredients")},
	}
	for i := range categories {
		if err := db.Where(models.Category{Name: categories[i].Name}).
			FirstOrCreate(&categories[i]).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", categories[i].Name, err)
		}
	}

	brands := []models.Brand{
		{Name: "Nestle", CountryOfOrigin: strPtr("Switzerland")},
		{Name: "Pepsi", CountryOfOrigin: strPtr("USA")},
		{Name: "Coca-Cola", CountryOfOrigin: strPtr("USA")},
		{Name: "Danone", CountryOfOrigin: strPtr("France")},
		{Name: "Kellogg's", CountryOfOrigin: strPtr("USA")},
		{Name: "General Mills", CountryOfOrigin: strPtr("USA")},
		{Name: "Kraft Heinz", CountryOfOrigin: strPtr("USA")},
		{Name: "Unilever", CountryOfOrigin: strPtr("UK/Netherlands")},
		{Name: "Al Marai", CountryOfOrigin: strPtr("Saudi Arabia")},
		{Name: "Nadec", CountryOfOrigin: strPtr("Saudi Arabia")},
	}
	for i := range brands {
		if err := db.Where(models.Brand{Name: brands[i].Name}).
			FirstOrCreate(&brands[i]).Error; err != nil {
			return fmt.Errorf("seed brand %q: %w", brands[i].Name, err)
		}
	}

	categoryByName := make(map[string]uint, len(categories))
	for _, c := range categories {
		categoryByName[c.Name] = c.ID
	}
	brandByName := make(map[string]uint, len(brands))
	for _, b := range brands {
		brandByName[b.Name] = b.ID
	}

	products := []seedProduct{
		{
			name: "Milk", nameAr: "حليب",
			description: "Fresh cow milk", descriptionAr: "حليب بقر طازج",
			sku: "MILK001", price: 3.99, brand: "Al Marai", category: "Dairy",
			nutrition: models.NutritionFact{
				Calories: f64Ptr(150), Protein: f64Ptr(8), Carbohydrates: f64Ptr(12),
				Fat: f64Ptr(8), Sugar: f64Ptr(12), Sodium: f64Ptr(100),
			},
		},
		{
			name: "Whole Wheat Bread", nameAr: "خبز القمح الكامل",
			description: "Healthy whole wheat bread", descriptionAr: "خبز صحي من القمح الكامل",
			sku: "BREAD001", price: 2.49, brand: "Nadec", category: "Bakery",
			nutrition: models.NutritionFact{
				Calories: f64Ptr(80), Protein: f64Ptr(4), Carbohydrates: f64Ptr(15),
				Fat: f64Ptr(1), Sugar: f64Ptr(2), Sodium: f64Ptr(150),
			},
		},
		{
			name: "Cola Drink", nameAr: "مشروب الكولا",
			description: "Refreshing cola beverage", descriptionAr: "مشروب كولا منعش",
			sku: "COLA001", price: 1.99, brand: "Coca-Cola", category: "Beverages",
			nutrition: models.NutritionFact{
				Calories: f64Ptr(140), Protein: f64Ptr(0), Carbohydrates: f64Ptr(39),
				Fat: f64Ptr(0), Sugar: f64Ptr(39), Sodium: f64Ptr(45),
			},
		},
		// Discontinued item, kept for exercising is_active filtering.
		{
			name: "Discontinued Soda", nameAr: "صودا متوقفة",
			description: "No longer sold", descriptionAr: "لم تعد تباع",
			sku: "SODA001", price: 0.99, brand: "Pepsi", category: "Beverages",
			inactive: true,
			nutrition: models.NutritionFact{
				Calories: f64Ptr(120), Sugar: f64Ptr(33),
			},
		},
	}

	// Filler products for exercising pagination and ranking on a larger
	// corpus.
	rng := rand.New(rand.NewSource(42))
	for i := 1; i <= 100; i++ {
		products = append(products, seedProduct{
			name:          fmt.Sprintf("Product %d", i),
			nameAr:        fmt.Sprintf("منتج %d", i),
			description:   fmt.Sprintf("Description for Product %d", i),
			descriptionAr: fmt.Sprintf("وصف للمنتج %d", i),
			sku:           fmt.Sprintf("SKU%04d", i),
			price:         float64(int(rng.Float64()*9900+99)) / 100,
			brand:         brands[rng.Intn(len(brands))].Name,
			category:      categories[rng.Intn(len(categories))].Name,
			nutrition: models.NutritionFact{
				Calories: f64Ptr(float64(rng.Intn(500))),
				Protein:  f64Ptr(float64(rng.Intn(30))),
			},
		})
	}

	created := 0
	for _, sp := range products {
		var existing int64
		if err := db.Model(&models.Product{}).Where("sku = ?", sp.sku).Count(&existing).Error; err != nil {
			return fmt.Errorf("seed product %q: %w", sp.sku, err)
		}
		if existing > 0 {
			continue
		}

		nutrition := sp.nutrition
		if err := db.Create(&nutrition).Error; err != nil {
			return fmt.Errorf("seed nutrition for %q: %w", sp.sku, err)
		}

		product := models.Product{
			Name:            sp.name,
			NameAr:          strPtr(sp.nameAr),
			Description:     strPtr(sp.description),
			DescriptionAr:   strPtr(sp.descriptionAr),
			SKU:             sp.sku,
			Price:           sp.price,
			BrandID:         brandByName[sp.brand],
			CategoryID:      categoryByName[sp.category],
			NutritionFactID: &nutrition.ID,
			IsActive:        !sp.inactive,
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sku"}},
			DoNothing: true,
		}).Create(&product)
		if res.Error != nil {
			return fmt.Errorf("seed product %q: %w", sp.sku, res.Error)
		}
		if res.RowsAffected > 0 {
			created++
		}
	}

	logger.Info("Sample data loaded", zap.Int("products_created", created))
	return nil
}
