package repository

import (
	"fmt"

	"amc-crm/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц
	err = db.AutoMigrate(
		&ds.User{},
		&ds.Client{},
		&ds.Product{},
		&ds.Order{},
		&ds.PaymentTerm{},
		&ds.License{},
		&ds.Customization{},
		&ds.AdditionalService{},
		&ds.AMC{},
		&ds.AMCPayment{},
		&ds.Reminder{},
		&ds.EmailRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}
