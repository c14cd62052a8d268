package api

import (
	"math" // Cents rounding
	"time" // Timestamp formatting

	"github.com/Rhymond/go-money" // Currency display
	"github.com/gin-gonic/gin"    // Gin web framework
)

// apology renders the uniform user-facing error page with the given HTTP
// status code and a short message. Every validation, business-rule and
// internal failure goes through here; no structured error format exists.
func apology(c *gin.Context, status int, message string) {
	c.HTML(status, "apology.html", gin.H{
		"Code":    status,  // HTTP status code
		"Message": message, // Short human-readable message
	})
	c.Abort()
}

// usd formats a dollar amount for display, e.g. 4000.0 -> "$4,000.00".
// Registered as a template func; also used when logging trades.
func usd(v float64) string {
	return money.New(int64(math.Round(v*100)), money.USD).Display()
}

// fmtTime truncates a trade timestamp to whole-second precision
func fmtTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// currentUser returns the logged-in user's id placed in the context by the
// LoginRequired middleware
func currentUser(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// noCache keeps responses out of browser caches so a back-navigation after
// logout cannot show portfolio data
func noCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
