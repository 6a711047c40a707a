package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string   `gorm:"uniqueIndex;not null" json:"title"`
	CategoryID uint     `gorm:"index;not null" json:"category_id"`
	Category   Category `json:"category"`
	// Count is available stock. The CHECK constraint is the storage-level
	// authority that stock never goes negative, whatever the application does.
	Count     int             `gorm:"not null;check:count >= 0" json:"count"`
	Price     decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
