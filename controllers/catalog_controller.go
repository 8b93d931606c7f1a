package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kitchencart/kitchencart-api/services"
	"gorm.io/gorm"
)

// GetCatalog handles GET /api/v1/catalog - returns the fixed product
// catalog customers browse when building a shopping list
func GetCatalog(c *gin.Context) {
	items, err := services.GetCatalogService().Catalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load catalog",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// ListMerchants handles GET /api/v1/merchants - returns the merchant
// directory with inventories
func ListMerchants(c *gin.Context) {
	merchants, err := services.GetCatalogService().Merchants()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load merchants",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    merchants,
	})
}

// GetMerchant handles GET /api/v1/merchants/:id - returns one merchant
func GetMerchant(c *gin.Context) {
	merchant, err := services.GetCatalogService().Merchant(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MERCHANT_NOT_FOUND",
					"message": "Merchant not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load merchant",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    merchant,
	})
}
