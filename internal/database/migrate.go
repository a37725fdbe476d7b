package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/babychef/backend/internal/model"
)

// Models lists every table owned by this service
func Models() []interface{} {
	return []interface{}{
		&model.Profile{},
		&model.Recipe{},
		&model.FridgePhoto{},
	}
}

// RunMigrations creates or updates the schema
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
