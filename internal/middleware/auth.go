package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"taskflow/internal/constants"
)

// RequireAuth checks if the user is authenticated via session. Anonymous
// requests are redirected to the login page with the originally requested
// path carried in the next parameter.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.SessionKeyUserID)

		if userID == nil {
			next := c.Request.URL.RequestURI()
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(next))
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// CurrentUserID reads the authenticated user ID straight from the session,
// for routes that are public but branch on authentication state.
func CurrentUserID(c *gin.Context) (uint64, bool) {
	session := sessions.Default(c)
	value := session.Get(constants.SessionKeyUserID)
	if value == nil {
		return 0, false
	}
	if id, ok := value.(uint64); ok {
		return id, true
	}
	return 0, false
}
