package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kitchencart/kitchencart-api/middleware"
	"github.com/kitchencart/kitchencart-api/models"
	"github.com/kitchencart/kitchencart-api/store"
)

// VerifyProductRequest represents the request body for verifying a product
type VerifyProductRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	IsAvailable *bool   `json:"is_available" binding:"required"`
	Notes       string  `json:"notes"`
}

// SubmitQuoteRequest represents the request body for submitting a quote
type SubmitQuoteRequest struct {
	EstimatedDeliveryTime string `json:"estimated_delivery_time" binding:"required"`
	Notes                 string `json:"notes"`
	PaymentMethod         string `json:"payment_method" binding:"required,oneof=COD Online UPI"`
}

// ListMerchantOrders handles GET /api/v1/merchant/orders - the merchant's
// work queue: orders they were invited to and have not submitted a quote
// for yet
func ListMerchantOrders(c *gin.Context) {
	merchantID, ok := currentMerchantID(c)
	if !ok {
		return
	}

	orders := store.Get().OrdersForMerchant(merchantID)
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// VerifyProduct handles POST /api/v1/orders/:id/verify - records the
// merchant's availability and price check for one product
func VerifyProduct(c *gin.Context) {
	merchantID, ok := currentMerchantID(c)
	if !ok {
		return
	}

	var req VerifyProductRequest
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

	store.Get().VerifyProduct(orderID, merchantID, req.ProductID, req.Price, *req.IsAvailable, req.Notes)

	updated, _ := store.Get().Order(orderID)
	quote, _ := updated.QuoteFor(merchantID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
	})
}

// AutoPopulateQuote handles POST /api/v1/orders/:id/auto-populate - fills
// the merchant's verification record from their inventory
func AutoPopulateQuote(c *gin.Context) {
	merchantID, ok := currentMerchantID(c)
	if !ok {
		return
	}

	orderID := c.Param("id")
	if _, ok := store.Get().Order(orderID); !ok {
		respondOrderNotFound(c)
		return
	}

	store.Get().AutoPopulateMerchantQuote(orderID, merchantID)

	updated, _ := store.Get().Order(orderID)
	quote, _ := updated.QuoteFor(merchantID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
	})
}

// SubmitQuote handles POST /api/v1/orders/:id/quote - submits the
// merchant's quote. Every product in the verification record must be
// verified first; that precondition is checked here at the boundary, not
// inside the state machine.
func SubmitQuote(c *gin.Context) {
	merchantID, ok := currentMerchantID(c)
	if !ok {
		return
	}

	var req SubmitQuoteRequest
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
	if !found {
		respondOrderNotFound(c)
		return
	}

	record, hasRecord := order.QuoteFor(merchantID)
	if !hasRecord {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOTHING_VERIFIED",
				"message": "Verify the order's products before submitting a quote",
			},
		})
		return
	}
	for _, p := range record.Products {
		if !p.IsVerified {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNVERIFIED_PRODUCTS",
					"message": "All products must be verified before submitting a quote",
				},
			})
			return
		}
	}

	store.Get().SubmitMerchantQuote(order.ID, models.MerchantQuote{
		MerchantID:            merchantID,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
		Notes:                 req.Notes,
		PaymentMethod:         req.PaymentMethod,
	})

	updated, _ := store.Get().Order(order.ID)
	quote, _ := updated.QuoteFor(merchantID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"quote":  quote,
			"status": updated.Status,
		},
	})
}

// currentMerchantID resolves the logged-in merchant's directory ID,
// writing the error response itself when the account is not a merchant.
func currentMerchantID(c *gin.Context) (string, bool) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return "", false
	}
	if user.MerchantID == nil {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Account is not linked to a merchant",
			},
		})
		return "", false
	}
	return *user.MerchantID, true
}
