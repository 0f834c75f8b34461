package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/service"
)

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. db may be nil.
func NewRouter(services *service.Services, cfg *config.Config, db HealthChecker, log zerolog.Logger) (*gin.Engine, error) {
	templates, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	router := gin.New()
	router.HTMLRender = templates

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(sessionMiddleware(services.Auth, cfg.Auth.CookieName, log))

	// Handlers
	contentHandler := NewContentHandler(services, cfg, log)
	authHandler := NewAuthHandler(services, cfg, log)
	adminHandler := NewAdminHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck(services, db))

	// Public pages
	router.GET("/", contentHandler.Home)
	router.GET("/search", contentHandler.Search)
	router.GET("/category/:slug", contentHandler.Category)
	router.GET("/about-us", contentHandler.StaticPage("about-us"))
	router.GET("/contact-us", contentHandler.StaticPage("contact-us"))
	router.GET("/page/:slug", contentHandler.StaticPage(""))

	articles := router.Group("/article/:slug")
	{
		articles.GET("", contentHandler.Article)
		articles.POST("/comments", contentHandler.PostComment)
		articles.POST("/summary", contentHandler.Summarize)
	}

	// Accounts
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.GET("/register", authHandler.RegisterForm)
	router.POST("/register", authHandler.Register)
	router.POST("/logout", authHandler.Logout)
	router.GET("/profile", requireAuth(), authHandler.Profile)

	// Admin area
	admin := router.Group("/admin", requireAuth(), requireAdmin())
	{
		admin.GET("", adminHandler.Dashboard)
		for _, section := range settingsSections {
			admin.GET("/"+section.Name, adminHandler.ShowSection(section))
			admin.POST("/"+section.Name, adminHandler.SaveSection(section))
		}
		admin.POST("/reset", adminHandler.Reset)
		admin.GET("/users", adminHandler.Users)
		admin.POST("/users/:id/role", adminHandler.ChangeRole)
		admin.POST("/users/:id/delete", adminHandler.DeleteUser)
	}

	router.NoRoute(func(c *gin.Context) {
		contentHandler.fail(c, service.ErrNotFound, msgPageNotFound)
	})

	return router, nil
}

// healthCheck returns the health status
func healthCheck(services *service.Services, db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		checks := gin.H{}

		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
				checks["database"] = err.Error()
			} else {
				checks["database"] = "ok"
			}
		}

		if services.Content.Shell(c.Request.Context()).Unavailable {
			checks["content"] = "unavailable"
			if code == http.StatusOK {
				status = "degraded"
			}
		} else {
			checks["content"] = "ok"
		}

		c.JSON(code, gin.H{
			"status":    status,
			"checks":    checks,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "wamuzi-news",
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// sessionMiddleware resolves the session cookie to a user
func sessionMiddleware(auth service.AuthService, cookieName string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), id)
		if err != nil {
			log.Error().Err(err).Msg("Failed to resolve session")
		}
		if user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// requireAuth sends anonymous visitors to the login page
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdmin sends non-admins to the homepage
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
