package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the visitor's cart session ID
const SessionCookieName = "franck_session"

// sessionCookieMaxAge matches the cart TTL in the session store
const sessionCookieMaxAge = 14 * 24 * 60 * 60

// CartSession assigns every visitor a session ID via an HTTP-only cookie.
// The ID keys the cart blob in the session store; nothing else hangs off it.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   sessionCookieMaxAge,
				HttpOnly: true,
			})
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}

// GetSessionID extracts the visitor session ID from the Gin context
func GetSessionID(c *gin.Context) (string, error) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return "", &AuthError{Code: "MISSING_SESSION", Message: "Session ID not found in context"}
	}

	id, ok := sessionID.(string)
	if !ok || id == "" {
		return "", &AuthError{Code: "INVALID_SESSION", Message: "Session ID is not a string"}
	}

	return id, nil
}
