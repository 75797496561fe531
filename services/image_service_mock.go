package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/franckshoes/franck-shoes-api/utils"
)

// MockImageService is an in-memory ImageService for controller tests. It
// applies the same file validation as the real service so rejected formats
// behave identically.
type MockImageService struct {
	images map[string][]byte
	mu     sync.RWMutex
}

// NewMockImageService creates an empty in-memory image store
func NewMockImageService() *MockImageService {
	return &MockImageService{
		images: make(map[string][]byte),
	}
}

// SetAsMockForTesting installs this mock as the global image service
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates and stores an image under a deterministic key
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader, keyPrefix string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	imageKey := fmt.Sprintf("%s/mock_%s", keyPrefix, fileHeader.Filename)

	m.mu.Lock()
	m.images[imageKey] = content
	m.mu.Unlock()

	return imageKey, nil
}

// GetImageURL returns a fake URL for a stored image
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.images[imageKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("image not found in mock storage: %s", imageKey)
	}

	return fmt.Sprintf("https://franck-shoes-media.s3.eu-west-3.amazonaws.com/%s?mock=true", imageKey), nil
}

// DeleteImage removes an image; empty keys are a no-op
func (m *MockImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.images, imageKey)
	m.mu.Unlock()

	return nil
}

// ImageExists reports whether an image is held in mock storage
func (m *MockImageService) ImageExists(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.images[imageKey]
	return exists
}

// Clear empties the mock store between tests
func (m *MockImageService) Clear() {
	m.mu.Lock()
	m.images = make(map[string][]byte)
	m.mu.Unlock()
}
