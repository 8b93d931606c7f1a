package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kitchencart/kitchencart-api/middleware"
	"github.com/kitchencart/kitchencart-api/models"
	"github.com/kitchencart/kitchencart-api/services"
	"github.com/kitchencart/kitchencart-api/store"
)

// AssignDeliveryRequest represents the request body for assigning a
// delivery boy
type AssignDeliveryRequest struct {
	DeliveryBoyID string `json:"delivery_boy_id" binding:"required"`
}

// DeliveryStatusRequest represents the request body for moving a delivery
// along
type DeliveryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processing delivering completed"`
}

// ListActiveDeliveries handles GET /api/v1/delivery/orders - the orders
// the logged-in delivery boy is currently carrying
func ListActiveDeliveries(c *gin.Context) {
	boyID, ok := currentDeliveryBoyID(c)
	if !ok {
		return
	}

	orders := store.Get().ActiveDeliveries(boyID)
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListDeliveryHistory handles GET /api/v1/delivery/history - the orders
// the logged-in delivery boy has completed
func ListDeliveryHistory(c *gin.Context) {
	boyID, ok := currentDeliveryBoyID(c)
	if !ok {
		return
	}

	orders := store.Get().DeliveryHistory(boyID)
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// AssignDelivery handles POST /api/v1/orders/:id/assign - binds the order
// to a delivery boy and forces it into delivering (admins only)
func AssignDelivery(c *gin.Context) {
	var req AssignDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	orderID := c.Param("id")
	if _, ok := store.Get().Order(orderID); !ok {
		respondOrderNotFound(c)
		return
	}
	if _, ok := store.Get().DeliveryBoy(req.DeliveryBoyID); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELIVERY_BOY_NOT_FOUND",
				"message": "Delivery boy not found",
			},
		})
		return
	}

	store.Get().AssignDeliveryBoy(orderID, req.DeliveryBoyID)

	updated, _ := store.Get().Order(orderID)
	boy, _ := store.Get().DeliveryBoy(req.DeliveryBoyID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order":        updated,
			"delivery_boy": boy,
		},
	})
}

// UpdateDeliveryStatus handles POST /api/v1/orders/:id/status - the
// assigned delivery boy moves the order along; completing it settles the
// commission and releases the boy's slot
func UpdateDeliveryStatus(c *gin.Context) {
	boyID, ok := currentDeliveryBoyID(c)
	if !ok {
		return
	}

	var req DeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, found := store.Get().Order(c.Param("id"))
	if !found || order.DeliveryBoyID != boyID {
		respondOrderNotFound(c)
		return
	}

	store.Get().UpdateDeliveryStatus(order.ID, req.Status)
	if req.Status == models.StatusCompleted {
		services.GetTrackingService().Stop(order.ID)
	}

	updated, _ := store.Get().Order(order.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// GetTracking handles GET /api/v1/orders/:id/tracking - returns the
// simulated live position for a delivering order, starting the simulation
// on first poll
func GetTracking(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	order, found := store.Get().Order(c.Param("id"))
	if !found || !orderVisibleTo(user, order) {
		respondOrderNotFound(c)
		return
	}
	if order.Status != models.StatusDelivering {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_DELIVERING",
				"message": "Order is not out for delivery",
			},
		})
		return
	}

	// The simulation outlives this request; it is torn down when the
	// delivery completes.
	position := services.GetTrackingService().Start(context.Background(), order.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order_id": order.ID,
			"position": position,
		},
	})
}

// currentDeliveryBoyID resolves the logged-in delivery boy's roster ID,
// writing the error response itself when the account is not one.
func currentDeliveryBoyID(c *gin.Context) (string, bool) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return "", false
	}
	if user.DeliveryBoyID == nil {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Account is not linked to a delivery boy",
			},
		})
		return "", false
	}
	return *user.DeliveryBoyID, true
}
