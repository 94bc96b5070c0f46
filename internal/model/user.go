package model

import "time"

// Role values stored on User. Store owners have no User row; their role is
// implied by logging in as a Store (see auth.Identity).
const (
	RoleSystemAdmin = "system_admin"
	RoleNormalUser  = "normal_user"
	RoleStoreOwner  = "store_owner"
)

// User represents an end customer or an administrator.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:60;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
	Address   string    `json:"address" gorm:"size:400;not null"`
	Role      string    `json:"role" gorm:"type:enum('system_admin','normal_user','store_owner');not null;default:'normal_user';index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Ratings []Rating `json:"-" gorm:"foreignKey:UserID"`
}

// TableName pins the table name used by the schema.
func (User) TableName() string { return "users" }
