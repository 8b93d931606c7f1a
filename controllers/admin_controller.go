package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kitchencart/kitchencart-api/store"
)

// GetCommissionStats handles GET /api/v1/admin/commissions - aggregated
// commission over completed orders. The persisted figures were stamped by
// the completion transitions; the derived figures are recomputed from each
// order's total at read time. Both are reported side by side.
func GetCommissionStats(c *gin.Context) {
	summary := store.Get().Commissions()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

// ListDeliveryBoys handles GET /api/v1/admin/delivery-boys - the roster
// with current load and availability
func ListDeliveryBoys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store.Get().DeliveryBoys(),
	})
}
