package services

import (
	"fmt"

	"github.com/kitchencart/kitchencart-api/models"
	"gorm.io/gorm"
)

// CatalogService reads the fixed product catalog and merchant directory
// from the reference database. No pagination and no server-side filtering;
// the dataset is small seed data.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a catalog service backed by the given database.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Catalog returns every catalog entry.
func (s *CatalogService) Catalog() ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := s.db.Order("category, name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return items, nil
}

// Merchants returns the merchant directory with inventories, resolving
// each merchant's display-image URL when an image has been uploaded.
func (s *CatalogService) Merchants() ([]models.Merchant, error) {
	var merchants []models.Merchant
	if err := s.db.Preload("Inventory").Order("id").Find(&merchants).Error; err != nil {
		return nil, fmt.Errorf("failed to load merchants: %w", err)
	}
	for i := range merchants {
		resolveMerchantImage(&merchants[i])
	}
	return merchants, nil
}

// Merchant returns a single merchant with inventory.
func (s *CatalogService) Merchant(id string) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := s.db.Preload("Inventory").First(&merchant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	resolveMerchantImage(&merchant)
	return &merchant, nil
}

// SetMerchantImage stores the uploaded image key on the merchant record.
func (s *CatalogService) SetMerchantImage(id, imageKey string) error {
	result := s.db.Model(&models.Merchant{}).Where("id = ?", id).Update("image_key", imageKey)
	if result.Error != nil {
		return fmt.Errorf("failed to update merchant image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func resolveMerchantImage(m *models.Merchant) {
	if m.ImageKey == nil || *m.ImageKey == "" {
		return
	}
	svc := GetImageService()
	if svc == nil {
		return
	}
	url, err := svc.GetImageURL(*m.ImageKey)
	if err != nil || url == "" {
		return
	}
	m.ImageURL = &url
}

var catalogServiceInstance *CatalogService

// InitCatalogService initializes the global catalog service instance.
func InitCatalogService(db *gorm.DB) *CatalogService {
	catalogServiceInstance = NewCatalogService(db)
	return catalogServiceInstance
}

// GetCatalogService returns the initialized catalog service instance.
func GetCatalogService() *CatalogService {
	return catalogServiceInstance
}

// SetCatalogService sets the catalog service instance (primarily for testing).
func SetCatalogService(s *CatalogService) {
	catalogServiceInstance = s
}
