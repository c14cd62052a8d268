package api

import (
	"errors"   // Error comparison
	"net/http" // HTTP status codes

	"papertrade/internal/domain"  // Importing domain models
	"papertrade/internal/session" // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// setSessionCookie attaches the session id to the response. The cookie is
// HttpOnly and, in production, Secure; it carries no state beyond the id.
func setSessionCookie(c *gin.Context, sid string, maxAge int, secure bool) {
	c.SetCookie(session.CookieName, sid, maxAge, "/", "", secure, true)
}

// clearSession destroys any session the browser presented and expires the
// cookie. Safe to call when no session exists.
func clearSession(c *gin.Context, store session.Store, secure bool) {
	if sid, err := c.Cookie(session.CookieName); err == nil {
		_ = store.Destroy(c.Request.Context(), sid)
	}
	setSessionCookie(c, "", -1, secure)
}

// RegisterFormHandler renders the registration form
func RegisterFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "register.html", nil)
	}
}

// RegisterHandler creates a new account with the starting cash balance.
// The new user is not logged in automatically; they land on the login form.
func RegisterHandler(db *gorm.DB, startingCash float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")
		confirm := c.PostForm("confirm")

		// Ensure username was submitted
		if username == "" {
			apology(c, http.StatusForbidden, "must provide username")
			return
		}
		// Ensure password was submitted and confirmed
		if password == "" || confirm == "" {
			apology(c, http.StatusForbidden, "must confirm password")
			return
		}
		// Ensure password and confirmation match
		if password != confirm {
			apology(c, http.StatusForbidden, "passwords don't match")
			return
		}

		// Ensure username does not already exist (case-sensitive exact match)
		var existing domain.User
		err := db.Where("username = ?", username).First(&existing).Error
		if err == nil {
			apology(c, http.StatusForbidden, "username already exists")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithFields(logrus.Fields{"username": username, "error": err.Error()}).Error("Registration lookup failed")
			apology(c, http.StatusInternalServerError, "internal server error")
			return
		}

		// Hash the password; the plaintext is never stored
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			apology(c, http.StatusInternalServerError, "internal server error")
			return
		}
		user := domain.User{Username: username, Hash: string(hash), Cash: startingCash}
		if err := db.Create(&user).Error; err != nil {
			// Unique constraint can still fire on a racing duplicate
			apology(c, http.StatusForbidden, "username already exists")
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User registered")

		// No auto-login: the user must log in after registering
		c.Redirect(http.StatusSeeOther, "/login")
	}
}

// LoginFormHandler renders the login form. Any session the browser still
// presents is cleared first.
func LoginFormHandler(store session.Store, isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSession(c, store, isProd)
		c.HTML(http.StatusOK, "login.html", nil)
	}
}

// LoginHandler authenticates a user and establishes a session. The failure
// message is identical for unknown usernames and wrong passwords so the
// endpoint cannot be used to enumerate accounts.
func LoginHandler(db *gorm.DB, store session.Store, ttlSeconds int, isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Forget any existing session before authenticating (session fixation)
		clearSession(c, store, isProd)

		username := c.PostForm("username")
		password := c.PostForm("password")

		// Ensure username was submitted
		if username == "" {
			apology(c, http.StatusForbidden, "must provide username")
			return
		}
		// Ensure password was submitted
		if password == "" {
			apology(c, http.StatusForbidden, "must provide password")
			return
		}

		// Query database for username
		var user domain.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			apology(c, http.StatusForbidden, "invalid username and/or password")
			return
		}
		// Verify the stored hash; uniform message on mismatch
		if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
			apology(c, http.StatusForbidden, "invalid username and/or password")
			return
		}

		// Establish a fresh session bound to this user
		sid, err := store.Create(c.Request.Context(), user.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Session create failed")
			apology(c, http.StatusInternalServerError, "internal server error")
			return
		}
		setSessionCookie(c, sid, ttlSeconds, isProd)

		logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("User logged in")

		// Redirect user to home page
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// LogoutHandler clears session state unconditionally; logging out twice is
// the same as logging out once
func LogoutHandler(store session.Store, isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSession(c, store, isProd)
		c.Redirect(http.StatusFound, "/login")
	}
}
