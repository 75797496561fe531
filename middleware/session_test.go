package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCartSessionAssignsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var captured string
	router := gin.New()
	router.Use(CartSession())
	router.GET("/panier", func(c *gin.Context) {
		id, err := GetSessionID(c)
		assert.NoError(t, err)
		captured = id
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/panier", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, captured, "A session ID should be assigned")

	cookies := w.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == SessionCookieName {
			sessionCookie = cookie
		}
	}
	assert.NotNil(t, sessionCookie, "Session cookie should be set")
	assert.Equal(t, captured, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly, "Session cookie should be HTTP-only")
}

func TestCartSessionReusesExistingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var captured string
	router := gin.New()
	router.Use(CartSession())
	router.GET("/panier", func(c *gin.Context) {
		captured, _ = GetSessionID(c)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/panier", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "existing-session-id"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "existing-session-id", captured, "Existing session ID should be reused")
	for _, cookie := range w.Result().Cookies() {
		assert.NotEqual(t, SessionCookieName, cookie.Name, "No new cookie should be issued")
	}
}

func TestGetSessionIDMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	_, err := GetSessionID(c)
	assert.Error(t, err)
}
