// Package seed loads the demo dataset: login accounts, the merchant
// directory with inventories, the product catalog and the delivery-boy
// roster. This is the mock data source behind the whole application; there
// is no real backend feeding it.
package seed

import (
	"fmt"

	"github.com/kitchencart/kitchencart-api/models"
	"gorm.io/gorm"
)

// Run migrates the reference tables and inserts the demo dataset. It is
// idempotent: a database that already has users is left alone, so a
// persistent PostgreSQL database is not reseeded on every boot.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Merchant{},
		&models.MerchantInventoryItem{},
		&models.CatalogItem{},
		&models.DeliveryBoy{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing seed data: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(Users()).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := db.Create(Merchants()).Error; err != nil {
		return fmt.Errorf("failed to seed merchants: %w", err)
	}
	if err := db.Create(CatalogItems()).Error; err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	if err := db.Create(DeliveryBoys()).Error; err != nil {
		return fmt.Errorf("failed to seed delivery boys: %w", err)
	}
	return nil
}

func strptr(s string) *string { return &s }

// Users returns the hard-coded demo accounts, one per role plus a second
// customer and merchant for multi-party flows.
func Users() []models.User {
	return []models.User{
		{Username: "arjun", Password: "customer123", Name: "Arjun Mehta", Email: "arjun@example.com", Phone: "+91-9876543210", Role: models.RoleCustomer},
		{Username: "sneha", Password: "customer123", Name: "Sneha Rao", Email: "sneha@example.com", Phone: "+91-9876543211", Role: models.RoleCustomer},
		{Username: "freshmart", Password: "merchant123", Name: "FreshMart Grocers", Email: "owner@freshmart.example.com", Phone: "+91-9876500001", Role: models.RoleMerchant, MerchantID: strptr("m1")},
		{Username: "dailybazaar", Password: "merchant123", Name: "Daily Bazaar", Email: "owner@dailybazaar.example.com", Phone: "+91-9876500002", Role: models.RoleMerchant, MerchantID: strptr("m2")},
		{Username: "greenbasket", Password: "merchant123", Name: "Green Basket", Email: "owner@greenbasket.example.com", Phone: "+91-9876500003", Role: models.RoleMerchant, MerchantID: strptr("m3")},
		{Username: "admin", Password: "admin123", Name: "Platform Admin", Email: "admin@kitchencart.example.com", Role: models.RoleAdmin},
		{Username: "ramesh", Password: "delivery123", Name: "Ramesh Kumar", Phone: "+91-9876511111", Role: models.RoleDeliveryBoy, DeliveryBoyID: strptr("db1")},
		{Username: "suresh", Password: "delivery123", Name: "Suresh Yadav", Phone: "+91-9876522222", Role: models.RoleDeliveryBoy, DeliveryBoyID: strptr("db2")},
	}
}

// Merchants returns the seeded merchant directory with inventories.
func Merchants() []models.Merchant {
	return []models.Merchant{
		{
			ID:                   "m1",
			Name:                 "FreshMart Grocers",
			Rating:               4.5,
			Categories:           []string{"grocery", "vegetables", "dairy"},
			DeliveryTimeEstimate: "30-45 mins",
			Inventory: []models.MerchantInventoryItem{
				{Name: "Tomatoes", Price: 40, Unit: models.UnitKg, IsAvailable: true, Category: "vegetables"},
				{Name: "Onions", Price: 30, Unit: models.UnitKg, IsAvailable: true, Category: "vegetables"},
				{Name: "Potatoes", Price: 25, Unit: models.UnitKg, IsAvailable: true, Category: "vegetables"},
				{Name: "Milk", Price: 60, Unit: models.UnitLiter, IsAvailable: true, Category: "dairy"},
				{Name: "Eggs", Price: 7, Unit: models.UnitNumber, IsAvailable: true, Category: "dairy"},
				{Name: "Basmati Rice", Price: 120, Unit: models.UnitKg, IsAvailable: false, Category: "grains"},
			},
		},
		{
			ID:                   "m2",
			Name:                 "Daily Bazaar",
			Rating:               4.2,
			Categories:           []string{"grocery", "grains", "spices"},
			DeliveryTimeEstimate: "45-60 mins",
			Inventory: []models.MerchantInventoryItem{
				{Name: "Tomatoes", Price: 38, Unit: models.UnitKg, IsAvailable: true, Category: "vegetables"},
				{Name: "Basmati Rice", Price: 110, Unit: models.UnitKg, IsAvailable: true, Category: "grains"},
				{Name: "Wheat Flour", Price: 45, Unit: models.UnitKg, IsAvailable: true, Category: "grains"},
				{Name: "Turmeric Powder", Price: 20, Unit: models.UnitGram, IsAvailable: true, Category: "spices"},
				{Name: "Sunflower Oil", Price: 140, Unit: models.UnitLiter, IsAvailable: true, Category: "oils"},
			},
		},
		{
			ID:                   "m3",
			Name:                 "Green Basket",
			Rating:               4.7,
			Categories:           []string{"organic", "vegetables", "fruits"},
			DeliveryTimeEstimate: "25-40 mins",
			Inventory: []models.MerchantInventoryItem{
				{Name: "Tomatoes", Price: 55, Unit: models.UnitKg, IsAvailable: true, Category: "vegetables"},
				{Name: "Spinach", Price: 35, Unit: models.UnitKg, IsAvailable: true, Category: "vegetables"},
				{Name: "Bananas", Price: 50, Unit: models.UnitKg, IsAvailable: true, Category: "fruits"},
				{Name: "Apples", Price: 180, Unit: models.UnitKg, IsAvailable: true, Category: "fruits"},
			},
		},
	}
}

// CatalogItems returns the fixed browse catalog.
func CatalogItems() []models.CatalogItem {
	return []models.CatalogItem{
		{Name: "Tomatoes", Description: "Fresh red tomatoes", Category: "vegetables", Unit: models.UnitKg, TypicalPrice: 40},
		{Name: "Onions", Description: "Medium-sized onions", Category: "vegetables", Unit: models.UnitKg, TypicalPrice: 30},
		{Name: "Potatoes", Description: "Washed potatoes", Category: "vegetables", Unit: models.UnitKg, TypicalPrice: 25},
		{Name: "Spinach", Description: "Leafy spinach bunch", Category: "vegetables", Unit: models.UnitKg, TypicalPrice: 35},
		{Name: "Milk", Description: "Full-cream milk", Category: "dairy", Unit: models.UnitLiter, TypicalPrice: 60},
		{Name: "Eggs", Description: "Farm eggs", Category: "dairy", Unit: models.UnitNumber, TypicalPrice: 7},
		{Name: "Basmati Rice", Description: "Long-grain basmati", Category: "grains", Unit: models.UnitKg, TypicalPrice: 115},
		{Name: "Wheat Flour", Description: "Whole wheat atta", Category: "grains", Unit: models.UnitKg, TypicalPrice: 45},
		{Name: "Turmeric Powder", Description: "Ground turmeric", Category: "spices", Unit: models.UnitGram, TypicalPrice: 20},
		{Name: "Sunflower Oil", Description: "Refined sunflower oil", Category: "oils", Unit: models.UnitLiter, TypicalPrice: 140},
		{Name: "Bananas", Description: "Ripe bananas", Category: "fruits", Unit: models.UnitKg, TypicalPrice: 50},
		{Name: "Apples", Description: "Shimla apples", Category: "fruits", Unit: models.UnitKg, TypicalPrice: 180},
	}
}

// DeliveryBoys returns the delivery-agent roster.
func DeliveryBoys() []models.DeliveryBoy {
	return []models.DeliveryBoy{
		{ID: "db1", Name: "Ramesh Kumar", Phone: "+91-9876511111"},
		{ID: "db2", Name: "Suresh Yadav", Phone: "+91-9876522222"},
		{ID: "db3", Name: "Mahesh Singh", Phone: "+91-9876533333"},
	}
}
