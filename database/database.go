package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/tilakWebkorps/Healthy-meal/config"
	"github.com/tilakWebkorps/Healthy-meal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init initializes the database connection using the driver and DSN from the
// application config. For sqlite, a DSN of "memory" (or empty) opens a shared
// in-memory database; anything else is treated as a file path. For postgres,
// the DSN is passed through unchanged.
func Init() (*gorm.DB, error) {
	driver := config.AppConfig.Database.Driver
	dsn := config.AppConfig.Database.DSN

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{
		Logger: gormLogger,
	}

	switch driver {
	case "postgres":
		log.Printf("INFO: [Database] Initializing PostgreSQL database.")
		db, err := gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres database: %w", err)
		}
		return db, nil
	case "sqlite", "":
		if dsn == "memory" || dsn == "" {
			log.Println("INFO: [Database] Initializing in-memory SQLite database (DSN: 'memory' or empty).")
			db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormConfig)
			if err != nil {
				return nil, fmt.Errorf("failed to open in-memory sqlite database: %w", err)
			}
			return db, nil
		}
		log.Printf("INFO: [Database] Initializing file-based SQLite database at DSN: '%s'.", dsn)
		dbDir := filepath.Dir(dsn)
		if dbDir != "." && dbDir != "/" {
			if _, statErr := os.Stat(dbDir); os.IsNotExist(statErr) {
				if mkErr := os.MkdirAll(dbDir, 0o755); mkErr != nil {
					return nil, fmt.Errorf("failed to create database directory '%s': %w", dbDir, mkErr)
				}
			}
		}
		db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database at '%s': %w", dsn, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driver)
	}
}

var memDBSeq int64

// InitInMemory opens a private in-memory SQLite database, bypassing the
// application config. Intended for tests. Each call returns an isolated
// database; the named shared-cache DSN keeps every pooled connection on the
// same store.
func InitInMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared", atomic.AddInt64(&memDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory sqlite database: %w", err)
	}
	return db, nil
}

// Migrate applies the schema and seeds the fixed meal category rows.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Plan{},
		&models.Day{},
		&models.Meal{},
		&models.MealCategory{},
		&models.Recipe{},
		&models.User{},
		&models.ActivePlanRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	if err := seedMealCategories(db); err != nil {
		return err
	}
	log.Println("INFO: [Database] Schema migration and category seeding complete.")
	return nil
}

// seedMealCategories inserts the five fixed categories with their stable IDs.
// Existing rows are left untouched so the seed is safe to re-run.
func seedMealCategories(db *gorm.DB) error {
	for _, name := range models.MealCategoryNames {
		category := models.MealCategory{ID: models.MealCategoryIDs[name], Name: name}
		err := db.Where(models.MealCategory{ID: category.ID}).FirstOrCreate(&category).Error
		if err != nil {
			return fmt.Errorf("failed to seed meal category '%s': %w", name, err)
		}
	}
	return nil
}
