package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
	"github.com/franckshoes/franck-shoes-api/utils"
)

func uploadServiceAvailable(c *gin.Context) (services.ImageService, bool) {
	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOADS_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return nil, false
	}
	return imageService, true
}

func uploadErrorResponse(c *gin.Context, err error) {
	var uploadErr *utils.FileUploadError
	if errors.As(err, &uploadErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"message": uploadErr.Message,
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UPLOAD_FAILED",
			"message": "Failed to upload the image",
		},
	})
}

// UploadShoeImage attaches an image to a shoe. The first upload becomes
// the main image; later ones are appended to the gallery.
func UploadShoeImage(c *gin.Context) {
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
	if err := db.Preload("Images").First(&shoe, uint(shoeID)).Error; err != nil {
		notFoundOrServerError(c, err, "SHOE_NOT_FOUND", "Shoe not found")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "No image file provided",
			},
		})
		return
	}

	imageService, ok := uploadServiceAvailable(c)
	if !ok {
		return
	}

	s3Key, err := imageService.UploadImage(fileHeader, services.ShoeImagePrefix(shoe.ID))
	if err != nil {
		uploadErrorResponse(c, err)
		return
	}

	if shoe.ImageS3Key == nil {
		if err := db.Model(&shoe).Update("image_s3_key", s3Key).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to attach the image",
				},
			})
			return
		}
	} else {
		image := models.ShoeImage{
			ShoeID:   shoe.ID,
			S3Key:    s3Key,
			Position: len(shoe.Images) + 1,
		}
		if err := db.Create(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to attach the image",
				},
			})
			return
		}
	}

	url, _ := imageService.GetImageURL(s3Key)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"s3_key":    s3Key,
			"image_url": url,
		},
	})
}

// UploadProfilePicture replaces the customer's profile picture. The old
// picture is removed from storage on a best effort basis.
func UploadProfilePicture(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "No image file provided",
			},
		})
		return
	}

	imageService, ok := uploadServiceAvailable(c)
	if !ok {
		return
	}

	s3Key, err := imageService.UploadImage(fileHeader, services.ProfileImagePrefix(user.ID))
	if err != nil {
		uploadErrorResponse(c, err)
		return
	}

	db := config.GetDB()
	oldKey := ""
	if user.Profile != nil && user.Profile.PictureS3Key != nil {
		oldKey = *user.Profile.PictureS3Key
	}
	if err := db.Model(&models.UserProfile{}).
		Where("user_id = ?", user.ID).
		Update("picture_s3_key", s3Key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save the profile picture",
			},
		})
		return
	}

	if oldKey != "" && oldKey != s3Key {
		_ = imageService.DeleteImage(oldKey)
	}

	url, _ := imageService.GetImageURL(s3Key)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"s3_key":      s3Key,
			"picture_url": url,
		},
	})
}
