package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
)

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	City            string `json:"city" binding:"required"`
	PhoneNumber     string `json:"phone_number" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required,oneof=MTN ORANGE CASH SHOP"`
	Notes           string `json:"notes"`
}

// CheckoutPreview shows the order summary before confirmation: cart lines,
// the shipping fee for the visitor's city, and the accepted payment methods.
// The customer's saved city and address prefill the form when present.
func CheckoutPreview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	cart, ok := requestCart(c)
	if !ok {
		return
	}

	if cart.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_CART",
				"message": "The cart is empty",
			},
		})
		return
	}

	db := config.GetDB()
	items, err := cart.Items(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load cart items",
			},
		})
		return
	}
	for i := range items {
		attachShoeImageURLs(&items[i].Shoe)
	}

	city := cart.City()
	var prefill gin.H
	if user.Profile != nil {
		if city == "" {
			city = user.Profile.City
		}
		prefill = gin.H{
			"city":         user.Profile.City,
			"address":      user.Profile.Address,
			"phone_number": user.Profile.PhoneNumber,
		}
	}

	subtotal := cart.Total()
	shippingFee := services.ShippingFeeFor(city)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":           items,
			"subtotal":        subtotal,
			"city":            city,
			"shipping_fee":    shippingFee,
			"total":           subtotal + shippingFee,
			"payment_methods": models.PaymentMethods(),
			"prefill":         prefill,
		},
	})
}

// PlaceOrder converts the session cart into a persisted order. Stock is
// decremented atomically per line inside one transaction; any shortage
// rolls the whole order back.
func PlaceOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	cart, ok := requestCart(c)
	if !ok {
		return
	}

	db := config.GetDB()
	order, err := services.PlaceOrder(c.Request.Context(), db, cart, user, services.CheckoutInfo{
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		PhoneNumber:     req.PhoneNumber,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMPTY_CART",
					"message": "The cart is empty",
				},
			})
			return
		}
		var stockErr *services.InsufficientStockError
		if errors.As(err, &stockErr) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_STOCK",
					"message": "Not enough stock for " + stockErr.Name,
					"details": gin.H{"shoe_id": stockErr.ShoeID},
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_FAILED",
				"message": "Failed to place the order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}
