package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionIDContextKey is a gin context key for the basket session identifier.
	SessionIDContextKey = "sessionID"
	sessionCookieName   = "megano_session"
	sessionMaxAge       = 30 * 24 * 60 * 60
)

// Session assigns every client a stable identifier for the basket. A missing
// or empty cookie gets a fresh random id minted and sent back.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookieName, sessionID, sessionMaxAge, "/", "", false, true)
		}

		c.Set(SessionIDContextKey, sessionID)
		c.Next()
	}
}
