package api

import (
	"net/http" // HTTP status codes

	"papertrade/internal/domain" // Importing domain models
	"papertrade/internal/quote"  // Quote lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// holdingRow is one line of the portfolio table. A row whose live quote
// failed renders degraded: dash for the name, blank price and value, and
// its position is excluded from the grand total.
type holdingRow struct {
	Symbol   string  // Stock symbol
	Name     string  // Company name ("—" when the quote failed)
	Stocks   int     // Share count
	Price    float64 // Current unit price
	Value    float64 // Position value (price * stocks)
	Degraded bool    // True when the live quote failed
}

// IndexHandler shows the logged-in user's portfolio: each holding enriched
// with a live quote, plus cash and the grand total
func IndexHandler(db *gorm.DB, quotes quote.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			return
		}

		// Get users current cash
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			apology(c, http.StatusInternalServerError, "internal server error")
			return
		}

		// Get users holdings
		var holdings []domain.Holding
		if err := db.Where("user_id = ?", userID).Order("symbol asc").Find(&holdings).Error; err != nil {
			apology(c, http.StatusInternalServerError, "internal server error")
			return
		}

		// Enrich each holding with a live quote; a failed lookup degrades
		// the row instead of aborting the whole view
		total := user.Cash
		rows := make([]holdingRow, 0, len(holdings))
		for _, h := range holdings {
			q, err := quotes.Lookup(c.Request.Context(), h.Symbol)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": userID,
					"symbol":  h.Symbol,
					"error":   err.Error(),
				}).Warn("Portfolio quote failed")
				rows = append(rows, holdingRow{Symbol: h.Symbol, Name: "—", Stocks: h.Stocks, Degraded: true})
				continue
			}
			value := q.Price * float64(h.Stocks)
			total += value
			rows = append(rows, holdingRow{
				Symbol: h.Symbol,
				Name:   q.Name,
				Stocks: h.Stocks,
				Price:  q.Price,
				Value:  value,
			})
		}

		c.HTML(http.StatusOK, "index.html", gin.H{
			"Holdings": rows,      // Enriched holdings
			"Cash":     user.Cash, // Current cash balance
			"Total":    total,     // Positions plus cash
		})
	}
}
