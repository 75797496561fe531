package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Auto-migrate all models
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Shoe{},
		&models.ShoeImage{},
		&models.User{},
		&models.UserProfile{},
		&models.PasswordResetToken{},
		&models.Order{},
		&models.OrderItem{},
		&models.ContactMessage{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// setupTestSessionStore installs a fresh in-memory session store and the
// default shipping table
func setupTestSessionStore() *services.MockSessionStore {
	store := services.NewMockSessionStore()
	store.SetAsMockForTesting()
	services.SetShippingTable(config.DefaultShippingTable())
	return store
}

func setupTestConfig() *config.Config {
	cfg := &config.Config{
		GoEnv:       "test",
		JWTIssuer:   "franck-shoes-api",
		JWTAudience: "franck-shoes-storefront",
	}
	config.SetConfig(cfg)
	return cfg
}

// mockAuthMiddleware simulates the JWT middleware for testing. It sets up
// the context exactly as the real EnsureValidToken middleware does.
func mockAuthMiddleware(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

// mockSessionMiddleware pins the request to a fixed session ID the way
// the cookie middleware would
func mockSessionMiddleware(sessionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("session_id", sessionID)
		c.Next()
	}
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	return response
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) models.Category {
	t.Helper()

	category := models.Category{Name: name, Slug: slug}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	return category
}

func seedShoe(t *testing.T, db *gorm.DB, categoryID uint, name, slug string, price int64, stock int) models.Shoe {
	t.Helper()

	shoe := models.Shoe{
		Name:       name,
		Slug:       slug,
		Price:      price,
		CategoryID: categoryID,
		MainColor:  "noir",
		MinSize:    36,
		MaxSize:    44,
		Stock:      stock,
	}
	if err := db.Create(&shoe).Error; err != nil {
		t.Fatalf("Failed to seed shoe: %v", err)
	}
	return shoe
}

func seedCustomer(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	hash, err := services.HashPassword("motdepasse1")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	profile := models.UserProfile{UserID: user.ID, City: "Douala"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to seed profile: %v", err)
	}
	user.Profile = &profile
	return user
}
