package models

import (
	"time"

	"gorm.io/gorm"
)

// Merchant represents a vendor customers can invite to quote an order.
// Merchant records are seed data and do not change within a session.
type Merchant struct {
	ID                   string                  `gorm:"primaryKey" json:"id"`
	Name                 string                  `gorm:"not null" json:"name"`
	ImageKey             *string                 `json:"image_key,omitempty"`          // storage key for the display image
	ImageURL             *string                 `gorm:"-" json:"image_url,omitempty"` // computed field, resolved from ImageKey
	Rating               float64                 `json:"rating"`
	Categories           []string                `gorm:"serializer:json" json:"categories"`
	DeliveryTimeEstimate string                  `json:"delivery_time_estimate"`
	Inventory            []MerchantInventoryItem `gorm:"foreignKey:MerchantID" json:"inventory"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
	DeletedAt            gorm.DeletedAt          `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Merchant model
func (Merchant) TableName() string {
	return "merchants"
}

// MerchantInventoryItem is one stocked product in a merchant's inventory.
// Auto-population of quotes matches order lines against these by name and unit.
type MerchantInventoryItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	MerchantID  string  `gorm:"not null;index" json:"merchant_id"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Unit        string  `gorm:"not null" json:"unit"`
	IsAvailable bool    `gorm:"not null;default:true" json:"is_available"`
	Category    string  `json:"category"`
}

// TableName specifies the table name for the MerchantInventoryItem model
func (MerchantInventoryItem) TableName() string {
	return "merchant_inventory_items"
}

// CatalogItem is an entry in the fixed product catalog customers browse
// when building a shopping list. No pagination, no server-side filtering.
type CatalogItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `json:"description"`
	Category     string  `gorm:"index" json:"category"`
	Unit         string  `gorm:"not null" json:"unit"`
	TypicalPrice float64 `json:"typical_price"`
}

// TableName specifies the table name for the CatalogItem model
func (CatalogItem) TableName() string {
	return "catalog_items"
}
