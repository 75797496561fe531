package services

import (
	"fmt"
	"mime/multipart"

	"github.com/franckshoes/franck-shoes-api/utils"
)

// ShoeImagePrefix scopes object keys under the owning shoe so a product's
// photos share a common key prefix.
func ShoeImagePrefix(shoeID uint) string {
	return fmt.Sprintf("shoes/%d", shoeID)
}

// ProfileImagePrefix scopes profile picture keys under the owning user.
func ProfileImagePrefix(userID uint) string {
	return fmt.Sprintf("profiles/%d", userID)
}

// ImageService handles upload, URL generation, and deletion of product and
// profile images.
type ImageService interface {
	// UploadImage validates and stores an image, returning the object key
	UploadImage(fileHeader *multipart.FileHeader, keyPrefix string) (string, error)

	// GetImageURL returns a URL a browser can load the image from
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(imageKey string) error
}

// S3ImageService backs ImageService with AWS S3
type S3ImageService struct {
	s3Service S3Interface
}

var imageServiceInstance ImageService

// InitImageService wires the image service to an S3 backend
func InitImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{
		s3Service: s3Service,
	}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance.
// Returns nil when no S3 bucket is configured; callers treat that as
// uploads being unavailable.
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

func (s *S3ImageService) UploadImage(fileHeader *multipart.FileHeader, keyPrefix string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader, keyPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s3Key, nil
}

// GetImageURL generates a presigned URL. An empty key yields an empty URL,
// not an error, so templates can render shoes without photos.
func (s *S3ImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return url, nil
}

func (s *S3ImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
