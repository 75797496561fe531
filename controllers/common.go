package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/middleware"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
)

// currentUser loads the authenticated user for the request. On failure it
// writes the error response and returns false.
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Preload("Profile").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Account not found",
			},
		})
		return nil, false
	}

	return &user, true
}

// requestCart loads the visitor's cart from the session store. On failure
// it writes the error response and returns false.
func requestCart(c *gin.Context) (*services.Cart, bool) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Could not identify the visitor session",
			},
		})
		return nil, false
	}

	cart, err := services.LoadCart(c.Request.Context(), services.GetSessionStore(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to load the cart",
			},
		})
		return nil, false
	}

	return cart, true
}

// bindingDetails turns binding errors into per-field messages so forms can
// re-render with field-level validation errors
func bindingDetails(err error) interface{} {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			switch fieldErr.Tag() {
			case "required":
				details[fieldErr.Field()] = "This field is required"
			case "email":
				details[fieldErr.Field()] = "Must be a valid email address"
			case "min":
				details[fieldErr.Field()] = "Too short"
			case "eqfield":
				details[fieldErr.Field()] = "Fields do not match"
			case "oneof":
				details[fieldErr.Field()] = "Not an accepted value"
			case "gt", "gte":
				details[fieldErr.Field()] = "Must be a positive number"
			default:
				details[fieldErr.Field()] = "Invalid value"
			}
		}
		return details
	}
	return err.Error()
}

// attachShoeImageURLs fills the computed presigned URL fields on a shoe
// and its secondary images. URL generation failures leave the field empty.
func attachShoeImageURLs(shoe *models.Shoe) {
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}

	if shoe.ImageS3Key != nil {
		if url, err := imageService.GetImageURL(*shoe.ImageS3Key); err == nil && url != "" {
			shoe.ImageURL = &url
		}
	}
	for i := range shoe.Images {
		if url, err := imageService.GetImageURL(shoe.Images[i].S3Key); err == nil && url != "" {
			shoe.Images[i].URL = &url
		}
	}
}

// notFoundOrServerError maps a gorm lookup error to 404 or 500
func notFoundOrServerError(c *gin.Context, err error, code, message string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": message,
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Database lookup failed",
		},
	})
}
