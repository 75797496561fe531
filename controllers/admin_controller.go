package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
)

const (
	dashboardRecentOrderCount = 10
	adminOrderPageSize        = 20
)

type ShoeRequest struct {
	Name            string `json:"name" binding:"required"`
	Slug            string `json:"slug" binding:"required"`
	Description     string `json:"description"`
	Price           int64  `json:"price" binding:"required,gt=0"`
	CategoryID      uint   `json:"category_id" binding:"required"`
	MainColor       string `json:"main_color" binding:"required"`
	AvailableColors string `json:"available_colors"`
	MinSize         int    `json:"min_size" binding:"required"`
	MaxSize         int    `json:"max_size" binding:"required"`
	Stock           int    `json:"stock" binding:"omitempty,gte=0"`
	Featured        bool   `json:"featured"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

type TransitionOrdersRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required,min=1"`
	Status   string `json:"status" binding:"required"`
}

// VendorDashboard aggregates the back office landing numbers: the latest
// orders, order counts, and delivered revenue.
func VendorDashboard(c *gin.Context) {
	db := config.GetDB()

	var recentOrders []models.Order
	if err := db.Preload("Customer").
		Order("created_at DESC").
		Limit(dashboardRecentOrderCount).
		Find(&recentOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load recent orders",
			},
		})
		return
	}

	var totalOrders, pendingOrders int64
	if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&pendingOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count pending orders",
			},
		})
		return
	}

	var revenue int64
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to compute revenue",
			},
		})
		return
	}

	var pendingMessages int64
	if err := db.Model(&models.ContactMessage{}).
		Where("approved = ?", false).
		Count(&pendingMessages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"recent_orders":     recentOrders,
			"total_orders":      totalOrders,
			"pending_orders":    pendingOrders,
			"delivered_revenue": revenue,
			"pending_messages":  pendingMessages,
		},
	})
}

// ListOrders lists orders for the back office, filterable by status,
// city, and payment method, twenty per page.
func ListOrders(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Order{}).Preload("Customer").Preload("Items")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Unknown order status",
				},
			})
			return
		}
		query = query.Where("status = ?", status)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if payment := c.Query("payment_method"); payment != "" {
		query = query.Where("payment_method = ?", payment)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").
		Offset((page - 1) * adminOrderPageSize).
		Limit(adminOrderPageSize).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"orders":      orders,
			"page":        page,
			"page_size":   adminOrderPageSize,
			"total":       total,
			"total_pages": int((total + adminOrderPageSize - 1) / adminOrderPageSize),
		},
	})
}

// VendorOrderDetail returns any order with its customer and lines.
func VendorOrderDetail(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid order ID",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Customer").Preload("Customer.Profile").
		Preload("Items").Preload("Items.Shoe").
		First(&order, uint(orderID)).Error; err != nil {
		notFoundOrServerError(c, err, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// TransitionOrders moves a batch of orders to a new status. Orders whose
// current status does not allow the move are skipped and reported, not
// failed.
func TransitionOrders(c *gin.Context) {
	var req TransitionOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid transition data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	target := models.OrderStatus(req.Status)
	if !target.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown order status",
			},
		})
		return
	}

	db := config.GetDB()
	result, err := services.TransitionOrders(db, req.OrderIDs, target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"updated": result.Updated,
			"skipped": result.Skipped,
		},
	})
}

// CreateShoe adds a shoe to the catalog.
func CreateShoe(c *gin.Context) {
	var req ShoeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid shoe data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	shoe := models.Shoe{
		Name:            req.Name,
		Slug:            req.Slug,
		Description:     req.Description,
		Price:           req.Price,
		CategoryID:      req.CategoryID,
		MainColor:       req.MainColor,
		AvailableColors: req.AvailableColors,
		MinSize:         req.MinSize,
		MaxSize:         req.MaxSize,
		Stock:           req.Stock,
		Featured:        req.Featured,
	}
	if !shoe.ValidSizeRange() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_SIZE_RANGE",
				"message": "Size range must stay within 35 to 50",
			},
		})
		return
	}

	db := config.GetDB()
	if err := db.Create(&shoe).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLUG_EXISTS",
					"message": "A shoe with this slug already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create the shoe",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    shoe,
	})
}

// UpdateShoe replaces the editable fields of a shoe.
func UpdateShoe(c *gin.Context) {
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

	var req ShoeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid shoe data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	db := config.GetDB()
	var shoe models.Shoe
	if err := db.First(&shoe, uint(shoeID)).Error; err != nil {
		notFoundOrServerError(c, err, "SHOE_NOT_FOUND", "Shoe not found")
		return
	}

	shoe.Name = req.Name
	shoe.Slug = req.Slug
	shoe.Description = req.Description
	shoe.Price = req.Price
	shoe.CategoryID = req.CategoryID
	shoe.MainColor = req.MainColor
	shoe.AvailableColors = req.AvailableColors
	shoe.MinSize = req.MinSize
	shoe.MaxSize = req.MaxSize
	shoe.Stock = req.Stock
	shoe.Featured = req.Featured
	if !shoe.ValidSizeRange() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_SIZE_RANGE",
				"message": "Size range must stay within 35 to 50",
			},
		})
		return
	}

	if err := db.Save(&shoe).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLUG_EXISTS",
					"message": "A shoe with this slug already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update the shoe",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    shoe,
	})
}

// DeleteShoe soft deletes a shoe. Past order lines keep their snapshot
// data so order history survives.
func DeleteShoe(c *gin.Context) {
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

	db := config.GetDB()
	var shoe models.Shoe
	if err := db.First(&shoe, uint(shoeID)).Error; err != nil {
		notFoundOrServerError(c, err, "SHOE_NOT_FOUND", "Shoe not found")
		return
	}

	if err := db.Delete(&shoe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete the shoe",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Shoe deleted",
	})
}

// CreateCategory adds a catalog category.
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid category data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}

	db := config.GetDB()
	if err := db.Create(&category).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLUG_EXISTS",
					"message": "A category with this slug already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create the category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory soft deletes a category. Shoes keep their category_id
// reference.
func DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid category ID",
			},
		})
		return
	}

	db := config.GetDB()
	var category models.Category
	if err := db.First(&category, uint(categoryID)).Error; err != nil {
		notFoundOrServerError(c, err, "CATEGORY_NOT_FOUND", "Category not found")
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete the category",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted",
	})
}

// ListMessages lists contact messages for moderation, optionally only
// the unapproved ones.
func ListMessages(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.ContactMessage{})

	if c.Query("pending") == "true" {
		query = query.Where("approved = ?", false)
	}
	if c.Query("testimonials") == "true" {
		query = query.Where("is_testimonial = ?", true)
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// ApproveMessage marks one contact message as approved so it can show on
// the storefront.
func ApproveMessage(c *gin.Context) {
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid message ID",
			},
		})
		return
	}

	db := config.GetDB()
	var message models.ContactMessage
	if err := db.First(&message, uint(messageID)).Error; err != nil {
		notFoundOrServerError(c, err, "MESSAGE_NOT_FOUND", "Message not found")
		return
	}

	if err := db.Model(&message).Update("approved", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to approve the message",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    message,
	})
}
