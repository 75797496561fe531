package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
)

type AddToCartRequest struct {
	Size     int    `json:"size" binding:"required"`
	Color    string `json:"color" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,gt=0"`
}

type UpdateCartRequest struct {
	Size     int    `json:"size" binding:"required"`
	Color    string `json:"color" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type RemoveFromCartRequest struct {
	Size  int    `json:"size" binding:"required"`
	Color string `json:"color" binding:"required"`
}

type SetCartCityRequest struct {
	City string `json:"city" binding:"required"`
}

// AddToCart adds a quantity of a shoe in a given size and color to the
// session cart. The unit price is captured from the catalog on the first
// add of a given line and kept for the life of the session.
func AddToCart(c *gin.Context) {
	shoeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid shoe ID",
			},
		})
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid cart data",
				"details": bindingDetails(err),
			},
		})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	db := config.GetDB()
	var shoe models.Shoe
	if err := db.First(&shoe, uint(shoeID)).Error; err != nil {
		notFoundOrServerError(c, err, "SHOE_NOT_FOUND", "Shoe not found")
		return
	}

	if req.Size < shoe.MinSize || req.Size > shoe.MaxSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_SIZE",
				"message": "Size not available for this shoe",
			},
		})
		return
	}

	cart, ok := requestCart(c)
	if !ok {
		return
	}

	cart.Add(&shoe, req.Quantity, req.Size, req.Color)
	if err := cart.Save(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to save the cart",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"cart_count": cart.Len(),
	})
}

// UpdateCart replaces the quantity of an existing cart line. Absent lines
// are left untouched and reported with updated=false.
func UpdateCart(c *gin.Context) {
	shoeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid shoe ID",
			},
		})
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid cart data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	cart, ok := requestCart(c)
	if !ok {
		return
	}

	updated := cart.Update(uint(shoeID), req.Quantity, req.Size, req.Color)
	if err := cart.Save(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to save the cart",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"updated":    updated,
		"cart_count": cart.Len(),
	})
}

// RemoveFromCart drops a cart line. Removing a line that does not exist
// succeeds without changing anything.
func RemoveFromCart(c *gin.Context) {
	shoeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid shoe ID",
			},
		})
		return
	}

	var req RemoveFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid cart data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	cart, ok := requestCart(c)
	if !ok {
		return
	}

	cart.Remove(uint(shoeID), req.Size, req.Color)
	if err := cart.Save(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to save the cart",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"cart_count": cart.Len(),
	})
}

// CartDetail returns the cart contents with current catalog data, the
// snapshot subtotals, and a shipping fee preview for the selected city.
func CartDetail(c *gin.Context) {
	cart, ok := requestCart(c)
	if !ok {
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

	subtotal := cart.Total()
	shippingFee := services.ShippingFeeFor(cart.City())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":        items,
			"cart_count":   cart.Len(),
			"subtotal":     subtotal,
			"city":         cart.City(),
			"shipping_fee": shippingFee,
			"total":        subtotal + shippingFee,
		},
	})
}

// SetCartCity records the delivery city on the session so the shipping
// fee preview and checkout use it.
func SetCartCity(c *gin.Context) {
	var req SetCartCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid city data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	cart, ok := requestCart(c)
	if !ok {
		return
	}

	cart.SetCity(req.City)
	if err := cart.Save(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to save the cart",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"city":         req.City,
		"shipping_fee": services.ShippingFeeFor(req.City),
	})
}
