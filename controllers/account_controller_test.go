package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
)

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	router := setupTestRouter()
	router.POST("/compte/inscription", Register)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Valid registration",
			requestBody: map[string]interface{}{
				"username":         "mireille",
				"email":            "Mireille@Example.com",
				"password":         "motdepasse1",
				"password_confirm": "motdepasse1",
				"city":             "Douala",
				"phone_number":     "+237655555555",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate username",
			requestBody: map[string]interface{}{
				"username":         "mireille",
				"email":            "autre@example.com",
				"password":         "motdepasse1",
				"password_confirm": "motdepasse1",
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "USER_EXISTS",
		},
		{
			name: "Password confirmation mismatch",
			requestBody: map[string]interface{}{
				"username":         "paul",
				"email":            "paul@example.com",
				"password":         "motdepasse1",
				"password_confirm": "autre-chose",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Password too short",
			requestBody: map[string]interface{}{
				"username":         "paul",
				"email":            "paul@example.com",
				"password":         "court",
				"password_confirm": "court",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Invalid email",
			requestBody: map[string]interface{}{
				"username":         "paul",
				"email":            "pas-un-email",
				"password":         "motdepasse1",
				"password_confirm": "motdepasse1",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/compte/inscription", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := parseResponse(t, w)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			} else {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.NotEmpty(t, data["token"])

				user := data["user"].(map[string]interface{})
				assert.Equal(t, "mireille@example.com", user["email"], "Email is stored lowercased")
				assert.Equal(t, "customer", user["role"])
				assert.NotContains(t, user, "password_hash")

				// The profile row is created alongside the account
				var profile models.UserProfile
				err := db.Where("user_id = ?", uint(user["id"].(float64))).First(&profile).Error
				assert.NoError(t, err)
				assert.Equal(t, "Douala", profile.City)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	seedCustomer(t, db, "aline")

	router := setupTestRouter()
	router.POST("/compte/connexion", Login)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Login with username",
			requestBody: map[string]interface{}{
				"username": "aline",
				"password": "motdepasse1",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Login with email",
			requestBody: map[string]interface{}{
				"username": "aline@example.com",
				"password": "motdepasse1",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong password",
			requestBody: map[string]interface{}{
				"username": "aline",
				"password": "mauvais",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIALS",
		},
		{
			name: "Unknown user",
			requestBody: map[string]interface{}{
				"username": "inconnu",
				"password": "motdepasse1",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIALS",
		},
		{
			name:           "Missing fields",
			requestBody:    map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/compte/connexion", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := parseResponse(t, w)

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			} else {
				data := response["data"].(map[string]interface{})
				assert.NotEmpty(t, data["token"])
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := seedCustomer(t, db, "aline")
	other := seedCustomer(t, db, "paul")

	db.Create(&models.Order{
		CustomerID:      user.ID,
		TotalAmount:     52000,
		ShippingFee:     2000,
		PaymentMethod:   models.PaymentMTN,
		Status:          models.OrderStatusPending,
		ShippingAddress: "Akwa",
		City:            "Douala",
		PhoneNumber:     "+237655555555",
	})
	db.Create(&models.Order{
		CustomerID:      other.ID,
		TotalAmount:     30000,
		ShippingFee:     5000,
		PaymentMethod:   models.PaymentCash,
		Status:          models.OrderStatusPending,
		ShippingAddress: "Centre",
		City:            "Kribi",
		PhoneNumber:     "+237600000000",
	})

	router := setupTestRouter()
	router.GET("/compte/profil", mockAuthMiddleware(user.ID, models.RoleCustomer), GetProfile)

	w := performRequest(router, http.MethodGet, "/compte/profil", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	profileUser := data["user"].(map[string]interface{})
	assert.Equal(t, "aline", profileUser["username"])

	orders := data["orders"].([]interface{})
	assert.Len(t, orders, 1, "Only the customer's own orders are listed")
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := seedCustomer(t, db, "aline")

	router := setupTestRouter()
	router.PUT("/compte/profil", mockAuthMiddleware(user.ID, models.RoleCustomer), UpdateProfile)

	t.Run("Partial update", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, "/compte/profil", map[string]interface{}{
			"city":          "Yaoundé",
			"date_of_birth": "1995-04-12",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var profile models.UserProfile
		assert.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
		assert.Equal(t, "Yaoundé", profile.City)
		if assert.NotNil(t, profile.DateOfBirth) {
			assert.Equal(t, 1995, profile.DateOfBirth.Year())
		}
	})

	t.Run("Bad date format", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, "/compte/profil", map[string]interface{}{
			"date_of_birth": "12/04/1995",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderDetailOwnership(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := seedCustomer(t, db, "aline")
	other := seedCustomer(t, db, "paul")

	order := models.Order{
		CustomerID:      other.ID,
		TotalAmount:     30000,
		ShippingFee:     5000,
		PaymentMethod:   models.PaymentCash,
		Status:          models.OrderStatusPending,
		ShippingAddress: "Centre",
		City:            "Kribi",
		PhoneNumber:     "+237600000000",
	}
	db.Create(&order)

	router := setupTestRouter()
	router.GET("/compte/commandes/:id", mockAuthMiddleware(user.ID, models.RoleCustomer), OrderDetail)

	// Someone else's order reads as not found, never as forbidden
	w := performRequest(router, http.MethodGet, fmt.Sprintf("/compte/commandes/%d", order.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	response := parseResponse(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "ORDER_NOT_FOUND", errorData["code"])
}

func TestPasswordResetFlow(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	user := seedCustomer(t, db, "aline")

	router := setupTestRouter()
	router.POST("/compte/mot-de-passe/demande", RequestPasswordReset)
	router.POST("/compte/mot-de-passe/confirmation", ConfirmPasswordReset)

	t.Run("Unknown email gets the same answer", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/compte/mot-de-passe/demande",
			map[string]interface{}{"email": "inconnu@example.com"})
		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.PasswordResetToken{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Known email creates a token and the reset works", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/compte/mot-de-passe/demande",
			map[string]interface{}{"email": "aline@example.com"})
		assert.Equal(t, http.StatusOK, w.Code)

		var token models.PasswordResetToken
		assert.NoError(t, db.Where("user_id = ?", user.ID).First(&token).Error)

		w = performRequest(router, http.MethodPost, "/compte/mot-de-passe/confirmation",
			map[string]interface{}{
				"token":            token.Token,
				"password":         "nouveaumotdepasse",
				"password_confirm": "nouveaumotdepasse",
			})
		assert.Equal(t, http.StatusOK, w.Code)

		var updated models.User
		assert.NoError(t, db.First(&updated, user.ID).Error)
		assert.True(t, services.CheckPassword(updated.PasswordHash, "nouveaumotdepasse"))
	})

	t.Run("Used token is rejected", func(t *testing.T) {
		var token models.PasswordResetToken
		assert.NoError(t, db.Where("user_id = ?", user.ID).First(&token).Error)

		w := performRequest(router, http.MethodPost, "/compte/mot-de-passe/confirmation",
			map[string]interface{}{
				"token":            token.Token,
				"password":         "encoreunautre1",
				"password_confirm": "encoreunautre1",
			})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		response := parseResponse(t, w)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_RESET_TOKEN", errorData["code"])
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		expired := models.PasswordResetToken{
			UserID:    user.ID,
			Token:     "expired-token",
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		assert.NoError(t, db.Create(&expired).Error)

		w := performRequest(router, http.MethodPost, "/compte/mot-de-passe/confirmation",
			map[string]interface{}{
				"token":            "expired-token",
				"password":         "encoreunautre1",
				"password_confirm": "encoreunautre1",
			})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
