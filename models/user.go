package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user account can hold.
const (
	RoleCustomer    = "customer"
	RoleMerchant    = "merchant"
	RoleAdmin       = "admin"
	RoleDeliveryBoy = "delivery_boy"
)

// User represents a login account in the system. Credentials are seeded,
// plaintext demo data; there is no real identity provider behind them.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"uniqueIndex;not null" json:"username"`
	Password      string         `gorm:"not null" json:"-"` // demo credential, compared verbatim
	Name          string         `gorm:"not null" json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Role          string         `gorm:"not null;default:'customer'" json:"role"` // customer, merchant, admin, delivery_boy
	MerchantID    *string        `gorm:"index" json:"merchant_id,omitempty"`      // set for merchant accounts
	DeliveryBoyID *string        `gorm:"index" json:"delivery_boy_id,omitempty"`  // set for delivery accounts
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
