package db

import (
	"time"

	"github.com/monocle-dev/storefront/internal/logger"
	"github.com/monocle-dev/storefront/internal/models"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Gorm(),
		TranslateError: true,
	})

	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	sqlDB, err := db.DB()

	if err != nil {
		return nil, errors.Wrap(err, "access connection pool")
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func MigrateDatabase(db *gorm.DB) error {
	// Order matters: referenced tables first.
	tables := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Color{},
		&models.Size{},
		&models.ColorProduct{},
		&models.ProductImage{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	}

	for _, model := range tables {
		if err := db.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "migrate %T", model)
		}
	}

	return nil
}

func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}
