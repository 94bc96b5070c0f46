package model

import "time"

// Rating is one user's opinion of one store. The composite unique index keeps
// at most one row per (user, store) pair; resubmissions update in place.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_store,priority:1"`
	StoreID   uint      `json:"store_id" gorm:"not null;uniqueIndex:idx_user_store,priority:2;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Store Store `json:"-" gorm:"foreignKey:StoreID"`
}

// TableName pins the table name used by the schema.
func (Rating) TableName() string { return "ratings" }
