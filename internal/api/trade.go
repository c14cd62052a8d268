package api

import (
	"errors"   // Error comparison
	"net/http" // HTTP status codes
	"strconv"  // Share count parsing
	"strings"  // Symbol normalization

	"papertrade/internal/domain" // Importing domain models
	"papertrade/internal/quote"  // Quote lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// parseShares validates the "shares" form field: it must parse as an
// integer and be at least 1. A zero-share trade would only write empty
// rows, so zero is rejected along with negatives.
func parseShares(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// BuyFormHandler renders the buy form
func BuyFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "buy.html", nil)
	}
}

// BuyHandler executes a purchase: validate the symbol and share count,
// check affordability, then apply the three trade writes atomically
func BuyHandler(db *gorm.DB, quotes quote.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			return
		}

		// Ensure stock was submitted
		symbol := strings.ToUpper(strings.TrimSpace(c.PostForm("symbol")))
		if symbol == "" {
			apology(c, http.StatusForbidden, "stock name is required")
			return
		}

		// Ensure stock is valid
		q, err := quotes.Lookup(c.Request.Context(), symbol)
		if errors.Is(err, quote.ErrNotFound) {
			apology(c, http.StatusForbidden, "enter valid stock name")
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err.Error()}).Error("Quote lookup failed")
			apology(c, http.StatusInternalServerError, "quote lookup failed")
			return
		}

		// Ensure a positive number of shares
		shares, ok := parseShares(c.PostForm("shares"))
		if !ok {
			apology(c, http.StatusForbidden, "enter valid number of shares")
			return
		}

		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			apology(c, http.StatusInternalServerError, "internal server error")
			return
		}

		// Ensure user has enough cash to purchase; no partial fills
		cost := q.Price * float64(shares)
		if cost > user.Cash {
			apology(c, http.StatusForbidden, "unable to purchase: cannot afford")
			return
		}

		// Apply the three writes atomically: history insert, holding
		// upsert, cash debit. A failure rolls all of them back.
		err = db.Transaction(func(tx *gorm.DB) error {
			// Add new transaction to history
			entry := domain.HistoryEntry{
				UserID: userID,
				Symbol: symbol,
				Stocks: shares,
				Price:  cost,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			// Update the existing holding or create a new one
			var holding domain.Holding
			err := tx.Where("user_id = ? AND symbol = ?", userID, symbol).First(&holding).Error
			switch {
			case err == nil:
				if err := tx.Model(&holding).Update("stocks", gorm.Expr("stocks + ?", shares)).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&domain.Holding{UserID: userID, Symbol: symbol, Stocks: shares}).Error; err != nil {
					return err
				}
			default:
				return err
			}
			// Debit the user's cash
			return tx.Model(&domain.User{}).Where("id = ?", userID).
				Update("cash", gorm.Expr("cash - ?", cost)).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"symbol":  symbol,
				"shares":  shares,
				"error":   err.Error(),
			}).Error("Buy failed")
			apology(c, http.StatusInternalServerError, "buy failed")
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"symbol":  symbol,
			"shares":  shares,
			"cost":    usd(cost),
			"type":    "buy",
		}).Info("Buy transaction")

		// Redirect user to the portfolio view
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// SellFormHandler renders the sell form with the user's holdings as the
// selectable symbols
func SellFormHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		var holdings []domain.Holding
		if err := db.Where("user_id = ?", userID).Order("symbol asc").Find(&holdings).Error; err != nil {
			apology(c, http.StatusInternalServerError, "internal server error")
			return
		}
		c.HTML(http.StatusOK, "sell.html", gin.H{"Holdings": holdings})
	}
}

// SellHandler executes a sale: the user must hold the symbol and at least
// the requested quantity. The history insert, holding decrement (or
// removal at zero) and cash credit happen atomically.
func SellHandler(db *gorm.DB, quotes quote.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			return
		}

		// Ensure a stock was selected
		symbol := strings.ToUpper(strings.TrimSpace(c.PostForm("symbol")))
		if symbol == "" {
			apology(c, http.StatusForbidden, "no stock selected")
			return
		}

		// Ensure the user owns the selected stock
		var holding domain.Holding
		err := db.Where("user_id = ? AND symbol = ?", userID, symbol).First(&holding).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apology(c, http.StatusForbidden, "stock not owned")
			return
		}
		if err != nil {
			apology(c, http.StatusInternalServerError, "internal server error")
			return
		}

		// Ensure shares were submitted
		if c.PostForm("shares") == "" {
			apology(c, http.StatusForbidden, "must enter shares")
			return
		}
		// Ensure a positive number of shares
		shares, ok := parseShares(c.PostForm("shares"))
		if !ok {
			apology(c, http.StatusForbidden, "enter valid number of shares")
			return
		}
		// Ensure the user owns enough shares; no short selling
		if shares > holding.Stocks {
			apology(c, http.StatusForbidden, "too many shares")
			return
		}

		// Price the sale
		q, err := quotes.Lookup(c.Request.Context(), symbol)
		if errors.Is(err, quote.ErrNotFound) {
			apology(c, http.StatusForbidden, "enter valid stock name")
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err.Error()}).Error("Quote lookup failed")
			apology(c, http.StatusInternalServerError, "quote lookup failed")
			return
		}
		proceeds := q.Price * float64(shares)
		remaining := holding.Stocks - shares

		// Apply the writes atomically: history insert, holding decrement
		// or removal, cash credit
		err = db.Transaction(func(tx *gorm.DB) error {
			// Enter the transaction into history with a negative count
			entry := domain.HistoryEntry{
				UserID: userID,
				Symbol: symbol,
				Stocks: -shares,
				Price:  proceeds,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			// Update the holding; a zero remainder removes the row,
			// scoped to this user and symbol only
			if remaining == 0 {
				if err := tx.Where("user_id = ? AND symbol = ?", userID, symbol).
					Delete(&domain.Holding{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&holding).Update("stocks", remaining).Error; err != nil {
					return err
				}
			}
			// Credit the user's cash
			return tx.Model(&domain.User{}).Where("id = ?", userID).
				Update("cash", gorm.Expr("cash + ?", proceeds)).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"symbol":  symbol,
				"shares":  shares,
				"error":   err.Error(),
			}).Error("Sell failed")
			apology(c, http.StatusInternalServerError, "sell failed")
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"symbol":   symbol,
			"shares":   shares,
			"proceeds": usd(proceeds),
			"type":     "sell",
		}).Info("Sell transaction")

		// Redirect user to the portfolio view
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// HistoryHandler shows the user's transactions in insertion order
func HistoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		var entries []domain.HistoryEntry
		if err := db.Where("user_id = ?", userID).Order("id asc").Find(&entries).Error; err != nil {
			apology(c, http.StatusInternalServerError, "internal server error")
			return
		}
		c.HTML(http.StatusOK, "history.html", gin.H{"History": entries})
	}
}
