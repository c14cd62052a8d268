package api

import (
	"errors"   // Error comparison
	"net/http" // HTTP status codes

	"papertrade/internal/quote" // Quote lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// QuoteFormHandler renders the quote form
func QuoteFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "quote.html", nil)
	}
}

// QuoteHandler looks up a single symbol and renders the result; nothing is
// persisted
func QuoteHandler(quotes quote.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		symbol := c.PostForm("symbol")

		q, err := quotes.Lookup(c.Request.Context(), symbol)
		if errors.Is(err, quote.ErrNotFound) {
			apology(c, http.StatusNotFound, "stock not found")
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err.Error()}).Error("Quote lookup failed")
			apology(c, http.StatusInternalServerError, "quote lookup failed")
			return
		}

		c.HTML(http.StatusOK, "quoted.html", gin.H{
			"Name":   q.Name,   // Company name
			"Symbol": q.Symbol, // Normalized symbol
			"Price":  q.Price,  // Current unit price
		})
	}
}
