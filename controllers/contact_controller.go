package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
)

const testimonialPageCount = 5

type SubmitContactRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	City          string `json:"city"`
	Subject       string `json:"subject" binding:"required"`
	Message       string `json:"message" binding:"required"`
	IsTestimonial bool   `json:"is_testimonial"`
}

// SubmitContact stores a contact message or testimonial. Everything lands
// unapproved and stays hidden until a vendor approves it.
func SubmitContact(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid contact data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	message := models.ContactMessage{
		Name:          req.Name,
		Email:         req.Email,
		City:          req.City,
		Subject:       req.Subject,
		Message:       req.Message,
		Approved:      false,
		IsTestimonial: req.IsTestimonial,
	}

	db := config.GetDB()
	if err := db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save the message",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you, your message has been received",
	})
}

// ListTestimonials returns the latest approved testimonials.
func ListTestimonials(c *gin.Context) {
	db := config.GetDB()

	var testimonials []models.ContactMessage
	if err := db.Where("approved = ? AND is_testimonial = ?", true, true).
		Order("created_at DESC").
		Limit(testimonialPageCount).
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
		"data":    testimonials,
	})
}
