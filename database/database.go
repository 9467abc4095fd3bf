package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sweetshop/config"
	"sweetshop/models"
)

// Open connects to Postgres and returns the handle. Callers own the
// handle and pass it down explicitly; there is no package-level
// connection.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host,
		cfg.Username,
		cfg.Password,
		cfg.DatabaseName,
		cfg.Port,
		cfg.SSLMode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Sweet{}, &models.Transaction{})
}
