package database

import (
	"fmt"
	"os"
	"time"

	"catalog-service/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the shared GORM handle.
var DB *gorm.DB

// ConnectPostgres opens the catalog database, retrying with backoff, and
// runs schema migrations.
func ConnectPostgres(logger *zap.Logger) (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	dbUser := os.Getenv("POSTGRES_USER")
	dbPassword := os.Getenv("POSTGRES_PASSWORD")
	dbName := os.Getenv("POSTGRES_DB")
	dbHost := os.Getenv("POSTGRES_HOST")
	dbPort := os.Getenv("POSTGRES_PORT")
	dbSSLMode := os.Getenv("POSTGRES_SSLMODE")

	if dbUser == "" {
		return nil, fmt.Errorf("POSTGRES_USER not set")
	}
	if dbPassword == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD not set")
	}
	if dbName == "" {
		return nil, fmt.Errorf("POSTGRES_DB not set")
	}

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbSSLMode == "" {
		dbSSLMode = "disable"
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbHost, dbUser, dbPassword, dbName, dbPort, dbSSLMode,
	)

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, poolErr := db.DB()
			if poolErr == nil {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
			}

			logger.Info("Connected to PostgreSQL successfully")

			if err := Migrate(db); err != nil {
				return nil, err
			}
			return db, nil
		}

		logger.Warn("DB connection failed, retrying",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(time.Duration(i+1) * 2 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to PostgreSQL after retries: %w", err)
}

// Migrate runs GORM auto-migration for the catalog entities, then the raw
// SQL the search query depends on: the pg_trgm extension, GIN indexes and
// the trigger that keeps products.search_vector in sync with the text
// fields. The trigger is the store-side guarantee that the vector is
// always current.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.NutritionFact{},
		&models.Product{},
	); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,

		`CREATE INDEX IF NOT EXISTS idx_products_search_vector
		 ON products USING GIN (search_vector)`,
		`CREATE INDEX IF NOT EXISTS idx_products_name_trgm
		 ON products USING GIN (name gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_products_name_ar_trgm
		 ON products USING GIN (name_ar gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_brands_name_trgm
		 ON brands USING GIN (name gin_trgm_ops)`,

		// Arabic text goes through the 'simple' config: tokens match
		// verbatim without stemming, which degrades gracefully on
		// installations without an arabic dictionary.
		`CREATE OR REPLACE FUNCTION products_search_vector_update() RETURNS trigger AS $$
		 BEGIN
		   NEW.search_vector :=
		     setweight(to_tsvector('english', coalesce(NEW.name, '')), 'A') ||
		     setweight(to_tsvector('simple', coalesce(NEW.name_ar, '')), 'A') ||
		     setweight(to_tsvector('english', coalesce(NEW.description, '')), 'B') ||
		     setweight(to_tsvector('simple', coalesce(NEW.description_ar, '')), 'B');
		   RETURN NEW;
		 END
		 $$ LANGUAGE plpgsql`,

		`DROP TRIGGER IF EXISTS trg_products_search_vector ON products`,
		`CREATE TRIGGER trg_products_search_vector
		 BEFORE INSERT OR UPDATE OF name, name_ar, description, description_ar
		 ON products FOR EACH ROW EXECUTE FUNCTION products_search_vector_update()`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration statement failed: %w", err)
		}
	}
	return nil
}

// Connect initializes the package-level DB handle.
func Connect(logger *zap.Logger) error {
	var err error
	DB, err = ConnectPostgres(logger)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", zap.Error(err))
		return err
	}
	return nil
}

// Close releases the underlying connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
