package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
)

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
	PhoneNumber     string `json:"phone_number"`
	City            string `json:"city"`
	Address         string `json:"address"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	PhoneNumber *string `json:"phone_number"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"date_of_birth"`
}

type PasswordResetRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirmBody struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

// Register creates a customer account and its profile in one transaction,
// then returns a signed token so the storefront can log the customer in
// immediately.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid registration data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to create the account",
			},
		})
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}

	db := config.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.UserProfile{
			UserID:      user.ID,
			PhoneNumber: req.PhoneNumber,
			City:        req.City,
			Address:     req.Address,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = &profile
		return nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_EXISTS",
					"message": "Username or email already taken",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create the account",
			},
		})
		return
	}

	token, err := services.NewAuthService(config.GetConfig()).GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to issue a token",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

// Login verifies the credentials and returns a signed token. Username
// lookup also accepts the email address.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid login data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	err := db.Preload("Profile").
		Where("username = ? OR email = ?", req.Username, strings.ToLower(req.Username)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CREDENTIALS",
					"message": "Incorrect username or password",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Login failed",
			},
		})
		return
	}

	if !services.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Incorrect username or password",
			},
		})
		return
	}

	token, err := services.NewAuthService(config.GetConfig()).GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to issue a token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

// Logout is stateless. Tokens expire on their own; the storefront drops
// its copy.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// GetProfile returns the customer's account, profile, and order history.
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if user.Profile != nil && user.Profile.PictureS3Key != nil {
		if imageService := services.GetImageService(); imageService != nil {
			if url, err := imageService.GetImageURL(*user.Profile.PictureS3Key); err == nil && url != "" {
				user.Profile.PictureURL = &url
			}
		}
	}

	db := config.GetDB()
	var orders []models.Order
	if err := db.Preload("Items").
		Where("customer_id = ?", user.ID).
		Order("created_at DESC").
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
			"user":   user,
			"orders": orders,
		},
	})
}

// UpdateProfile patches the profile fields that were provided.
func UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid profile data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	updates := map[string]interface{}{}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid profile data",
					"details": gin.H{"date_of_birth": "Must be a date in YYYY-MM-DD format"},
				},
			})
			return
		}
		updates["date_of_birth"] = dob
	}

	db := config.GetDB()
	if len(updates) > 0 {
		if err := db.Model(&models.UserProfile{}).
			Where("user_id = ?", user.ID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update the profile",
				},
			})
			return
		}
	}

	var profile models.UserProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load the profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// OrderDetail returns one of the customer's own orders with its lines.
func OrderDetail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

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
	if err := db.Preload("Items").Preload("Items.Shoe").
		Where("id = ? AND customer_id = ?", uint(orderID), user.ID).
		First(&order).Error; err != nil {
		notFoundOrServerError(c, err, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// RequestPasswordReset starts the reset flow. The response is the same
// whether or not the email matches an account.
func RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid email",
				"details": bindingDetails(err),
			},
		})
		return
	}

	db := config.GetDB()
	auth := services.NewAuthService(config.GetConfig())
	if _, err := auth.CreatePasswordReset(db, strings.ToLower(req.Email)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to start the password reset",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the email is registered, reset instructions were sent",
	})
}

// ConfirmPasswordReset sets a new password from a reset token. Tokens are
// single use and expire after one hour.
func ConfirmPasswordReset(c *gin.Context) {
	var req PasswordResetConfirmBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid reset data",
				"details": bindingDetails(err),
			},
		})
		return
	}

	db := config.GetDB()
	auth := services.NewAuthService(config.GetConfig())
	if err := auth.ResetPassword(db, req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_RESET_TOKEN",
					"message": "The reset link is invalid or has expired",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to reset the password",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated",
	})
}

// PasswordResetSent acknowledges the request step of the reset sequence
func PasswordResetSent(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the email is registered, reset instructions were sent",
	})
}

// PasswordResetComplete acknowledges the end of the reset sequence
func PasswordResetComplete(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset complete, you can sign in",
	})
}
