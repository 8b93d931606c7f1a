package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryBoy represents a delivery agent. Name and phone are seed data;
// CurrentOrders and IsAvailable are runtime state owned by the store and
// never persisted.
type DeliveryBoy struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Phone         string         `json:"phone"`
	IsAvailable   bool           `gorm:"-" json:"is_available"`
	CurrentOrders []string       `gorm:"-" json:"current_orders"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the DeliveryBoy model
func (DeliveryBoy) TableName() string {
	return "delivery_boys"
}
