package testutil

import (
	"fmt"
	"net/http/httptest"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/middleware"
	"github.com/franckshoes/franck-shoes-api/models"
	"github.com/franckshoes/franck-shoes-api/services"
)

// MockValidatedClaims creates a ValidatedClaims value shaped like the ones
// the auth middleware produces
func MockValidatedClaims(userID uint, role string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  "franck-shoes-api",
			Subject: fmt.Sprintf("%d", userID),
		},
		CustomClaims: &middleware.CustomClaims{
			Role: role,
		},
	}
}

// SetMockAuthContext populates a Gin context the way the auth middleware
// would after validating a token
func SetMockAuthContext(c *gin.Context, userID uint, role string) {
	c.Set("user_id", userID)
	c.Set("user_role", role)
	c.Set("validated_claims", MockValidatedClaims(userID, role))
}

// CreateTestContext creates a test Gin context with a usable recorder
func CreateTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// IssueTestToken signs a real token for a user so middleware-inclusive
// tests can authenticate over HTTP
func IssueTestToken(user *models.User) (string, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		cfg = &config.Config{
			GoEnv:       "test",
			JWTIssuer:   "franck-shoes-api",
			JWTAudience: "franck-shoes-storefront",
		}
		config.SetConfig(cfg)
	}
	return services.NewAuthService(cfg).GenerateToken(user)
}
