package middleware

import (
	"net/http"                    // HTTP status codes
	"papertrade/internal/session" // Session store

	"github.com/gin-gonic/gin" // Gin web framework
)

// LoginRequired gates portfolio and trading routes behind an active
// session. A missing or expired session redirects the browser to /login.
func LoginRequired(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(session.CookieName) // Read the session cookie
		if err != nil {
			// No cookie, send the browser to the login form
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		userID, err := store.Get(c.Request.Context(), sid) // Resolve the session
		if err != nil {
			// Unknown or expired session, same redirect
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set("userID", userID) // Store userID in context
		c.Next()                // Proceed to the next handler
	}
}
