package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FridgePhoto records what the model detected on an uploaded photo
type FridgePhoto struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	StoragePath   string        `gorm:"size:512;not null" json:"storage_path"`
	DetectedItems DetectedItems `gorm:"type:jsonb;not null;default:'[]'" json:"detected_items"`
}

func (FridgePhoto) TableName() string {
	return "fridge_photos"
}

// BeforeCreate assigns the primary key
func (p *FridgePhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
