package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kitchencart/kitchencart-api/middleware"
	"github.com/kitchencart/kitchencart-api/models"
	"github.com/kitchencart/kitchencart-api/store"
)

// CreateOrderRequest represents the request body for converting the cart
// into an order
type CreateOrderRequest struct {
	SelectedMerchants []string `json:"selected_merchants" binding:"required,min=1"`
	DeliveryAddress   string   `json:"delivery_address"`
	CustomerPhone     string   `json:"customer_phone"`
}

// SelectQuoteRequest represents the request body for choosing a quote
type SelectQuoteRequest struct {
	MerchantID string `json:"merchant_id" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders - converts the customer's cart
// into a new order and clears the cart (customers only)
func CreateOrder(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req CreateOrderRequest
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

	cart := store.Get().Cart(user.ID)
	if len(cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_CART",
				"message": "Cannot create an order from an empty cart",
			},
		})
		return
	}

	order := store.Get().CreateOrder(store.CreateOrderInput{
		CustomerID:        user.ID,
		Products:          cart,
		SelectedMerchants: req.SelectedMerchants,
		DeliveryAddress:   req.DeliveryAddress,
		CustomerPhone:     req.CustomerPhone,
	})
	store.Get().ClearCart(user.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - customers see their own orders,
// admins see everything
func ListOrders(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var orders []models.Order
	if user.Role == models.RoleAdmin {
		orders = store.Get().Orders()
	} else {
		orders = store.Get().OrdersForCustomer(user.ID)
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id
func GetOrder(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	order, ok := store.Get().Order(c.Param("id"))
	if !ok || !orderVisibleTo(user, order) {
		respondOrderNotFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderQuotes handles GET /api/v1/orders/:id/quotes - returns only the
// submitted quotes; verification-in-progress records are filtered out
func GetOrderQuotes(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	order, ok := store.Get().Order(c.Param("id"))
	if !ok || !orderVisibleTo(user, order) {
		respondOrderNotFound(c)
		return
	}

	quotes := store.Get().SubmittedQuotes(order.ID)
	if quotes == nil {
		quotes = []models.MerchantQuote{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quotes,
	})
}

// SelectQuote handles POST /api/v1/orders/:id/select-quote - the customer
// picks a merchant's quote, confirming the order
func SelectQuote(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req SelectQuoteRequest
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

	order, ok := store.Get().Order(c.Param("id"))
	if !ok || order.CustomerID != user.ID {
		respondOrderNotFound(c)
		return
	}

	store.Get().SelectMerchantQuote(order.ID, req.MerchantID)

	updated, _ := store.Get().Order(order.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// UpdateOrder handles PATCH /api/v1/orders/:id - generic merge patch
// (admins only)
func UpdateOrder(c *gin.Context) {
	var patch store.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
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

	store.Get().UpdateOrder(orderID, patch)

	updated, _ := store.Get().Order(orderID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// orderVisibleTo reports whether a user may read an order: its customer,
// an invited merchant, the assigned delivery boy, or an admin.
func orderVisibleTo(user models.User, order models.Order) bool {
	switch user.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		return order.CustomerID == user.ID
	case models.RoleMerchant:
		if user.MerchantID == nil {
			return false
		}
		for _, id := range order.SelectedMerchants {
			if id == *user.MerchantID {
				return true
			}
		}
		return false
	case models.RoleDeliveryBoy:
		return user.DeliveryBoyID != nil && order.DeliveryBoyID == *user.DeliveryBoyID
	}
	return false
}

func respondOrderNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ORDER_NOT_FOUND",
			"message": "Order not found",
		},
	})
}
