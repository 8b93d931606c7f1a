package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kitchencart/kitchencart-api/middleware"
	"github.com/kitchencart/kitchencart-api/models"
	"github.com/kitchencart/kitchencart-api/store"
)

// AddCartItemRequest represents the request body for adding a cart item
type AddCartItemRequest struct {
	ID            string   `json:"id" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	ExpectedPrice *float64 `json:"expected_price"`
	Quantity      float64  `json:"quantity" binding:"required,gt=0"`
	Unit          string   `json:"unit" binding:"required,oneof=gram kg number liter piece"`
}

// UpdateCartItemRequest represents the request body for setting a quantity
type UpdateCartItemRequest struct {
	Quantity float64 `json:"quantity" binding:"required"`
}

// GetCart handles GET /api/v1/cart - returns the customer's cart
func GetCart(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store.Get().Cart(user.ID),
	})
}

// AddCartItem handles POST /api/v1/cart/items - adds a product to the
// cart, merging quantities when the product is already present
func AddCartItem(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req AddCartItemRequest
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

	store.Get().AddCartItem(user.ID, models.Product{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		ExpectedPrice: req.ExpectedPrice,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store.Get().Cart(user.ID),
	})
}

// UpdateCartItem handles PATCH /api/v1/cart/items/:productId - sets the
// stored quantity exactly; zero or negative removes the item
func UpdateCartItem(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req UpdateCartItemRequest
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

	store.Get().SetCartQuantity(user.ID, c.Param("productId"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store.Get().Cart(user.ID),
	})
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:productId
func RemoveCartItem(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	store.Get().RemoveCartItem(user.ID, c.Param("productId"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store.Get().Cart(user.ID),
	})
}

// ClearCart handles DELETE /api/v1/cart - empties the cart
func ClearCart(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	store.Get().ClearCart(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
	})
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Could not extract user information",
		},
	})
}
