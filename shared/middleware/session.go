package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "console_session"
	sessionKey    = "sessionID"
)

// SessionMiddleware makes sure every request carries a session id. A missing
// or malformed cookie is replaced with a fresh random id.
func SessionMiddleware(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err == nil {
			if _, parseErr := uuid.Parse(id); parseErr != nil {
				err = parseErr
			}
		}
		if err != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, maxAge, "/", "", false, true)
		c.Set(sessionKey, id)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) (string, bool) {
	id, exists := c.Get(sessionKey)
	if !exists {
		return "", false
	}
	sessionID, ok := id.(string)
	return sessionID, ok && sessionID != ""
}
