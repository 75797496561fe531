package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
)

const (
	featuredShoeCount    = 8
	relatedShoeCount     = 4
	homeTestimonialCount = 3
	shopPageSize         = 12
)

// Home returns the storefront landing data: featured shoes, the category
// list, and a few approved testimonials.
func Home(c *gin.Context) {
	db := config.GetDB()

	var featured []models.Shoe
	if err := db.Where("featured = ?", true).
		Order("created_at DESC").
		Limit(featuredShoeCount).
		Find(&featured).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load featured shoes",
			},
		})
		return
	}
	for i := range featured {
		attachShoeImageURLs(&featured[i])
	}

	var categories []models.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load categories",
			},
		})
		return
	}

	var testimonials []models.ContactMessage
	if err := db.Where("approved = ? AND is_testimonial = ?", true, true).
		Order("created_at DESC").
		Limit(homeTestimonialCount).
		Find(&testimonials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load testimonials",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"featured_shoes": featured,
			"categories":     categories,
			"testimonials":   testimonials,
		},
	})
}

// ListShoes lists the catalog with optional category, text, color, and
// price filters, paginated twelve per page. The same handler backs the
// shop page and the search page.
func ListShoes(c *gin.Context) {
	db := config.GetDB()

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	query := db.Model(&models.Shoe{}).Preload("Category")

	if categorySlug := c.Query("categorie"); categorySlug != "" {
		var category models.Category
		if err := db.Where("slug = ?", categorySlug).First(&category).Error; err != nil {
			notFoundOrServerError(c, err, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		query = query.Where("category_id = ?", category.ID)
	}

	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	if color := c.Query("couleur"); color != "" {
		query = query.Where("main_color = ? OR available_colors LIKE ?", color, "%"+color+"%")
	}

	if minPrice, err := strconv.ParseInt(c.Query("prix_min"), 10, 64); err == nil && minPrice >= 0 {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice, err := strconv.ParseInt(c.Query("prix_max"), 10, 64); err == nil && maxPrice >= 0 {
		query = query.Where("price <= ?", maxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count shoes",
			},
		})
		return
	}

	var shoes []models.Shoe
	if err := query.Order("created_at DESC").
		Offset((page - 1) * shopPageSize).
		Limit(shopPageSize).
		Find(&shoes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load shoes",
			},
		})
		return
	}
	for i := range shoes {
		attachShoeImageURLs(&shoes[i])
	}

	totalPages := int((total + shopPageSize - 1) / shopPageSize)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"shoes":       shoes,
			"page":        page,
			"page_size":   shopPageSize,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// GetShoe returns one shoe with its images, size range, colors, and up to
// four related shoes from the same category.
func GetShoe(c *gin.Context) {
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
	if err := db.Preload("Category").Preload("Images").First(&shoe, uint(shoeID)).Error; err != nil {
		notFoundOrServerError(c, err, "SHOE_NOT_FOUND", "Shoe not found")
		return
	}
	attachShoeImageURLs(&shoe)

	var related []models.Shoe
	if err := db.Where("category_id = ? AND id != ?", shoe.CategoryID, shoe.ID).
		Order("created_at DESC").
		Limit(relatedShoeCount).
		Find(&related).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load related shoes",
			},
		})
		return
	}
	for i := range related {
		attachShoeImageURLs(&related[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"shoe":            shoe,
			"available_sizes": shoe.AvailableSizes(),
			"colors":          shoe.ColorsList(),
			"related_shoes":   related,
		},
	})
}
