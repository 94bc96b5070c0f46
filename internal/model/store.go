package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store is a rated entity with its own login identity. AverageRating is a
// materialized aggregate over the store's ratings: it is never set by a
// client, only recomputed by the rating service in the same transaction as
// the rating write.
type Store struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:60;not null"`
	Email         string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password      string          `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
	Address       string          `json:"address" gorm:"size:400;not null"`
	AverageRating decimal.Decimal `json:"average_rating" gorm:"type:decimal(2,1);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Ratings []Rating `json:"-" gorm:"foreignKey:StoreID"`
}

// TableName pins the table name used by the schema.
func (Store) TableName() string { return "stores" }
