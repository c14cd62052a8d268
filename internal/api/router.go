package api

import (
	"html/template" // Template parsing
	"net/http"      // HTTP status codes

	"papertrade/internal/config"     // Application configuration
	"papertrade/internal/middleware" // Session gate
	"papertrade/internal/quote"      // Quote lookup
	"papertrade/internal/session"    // Session store
	"papertrade/web"                 // Embedded templates

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// NewRouter assembles the gin engine: templates, response headers, the
// public auth routes and the session-gated portfolio routes
func NewRouter(db *gorm.DB, sessions session.Store, quotes quote.Service, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	// Panics surface as the generic internal-error apology; no internals
	// reach the client
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		apology(c, http.StatusInternalServerError, "internal server error")
	}))
	r.Use(noCache())

	// Parse the embedded templates with the usd and fmtTime helpers
	tmpl := template.Must(template.New("").
		Funcs(template.FuncMap{"usd": usd, "fmtTime": fmtTime}).
		ParseFS(web.Templates, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	ttlSeconds := int(cfg.SessionTTL.Seconds())

	// Public routes
	r.GET("/register", RegisterFormHandler())
	r.POST("/register", RegisterHandler(db, cfg.StartingCash))
	r.GET("/login", LoginFormHandler(sessions, cfg.IsProd))
	r.POST("/login", LoginHandler(db, sessions, ttlSeconds, cfg.IsProd))
	r.GET("/logout", LogoutHandler(sessions, cfg.IsProd))

	// Portfolio and trading routes require an active session
	auth := r.Group("/")
	auth.Use(middleware.LoginRequired(sessions))
	auth.GET("", IndexHandler(db, quotes))
	auth.GET("buy", BuyFormHandler())
	auth.POST("buy", BuyHandler(db, quotes))
	auth.GET("sell", SellFormHandler(db))
	auth.POST("sell", SellHandler(db, quotes))
	auth.GET("history", HistoryHandler(db))
	auth.GET("quote", QuoteFormHandler())
	auth.POST("quote", QuoteHandler(quotes))

	// Unknown paths get the apology page, not gin's default 404
	r.NoRoute(func(c *gin.Context) {
		apology(c, http.StatusNotFound, "not found")
	})

	return r
}
