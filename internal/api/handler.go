package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/service"
	"github.com/wamuzi-news/internal/validation"
)

// User-facing messages
const (
	msgContentUnavailable = "Failed to load content from WordPress. Please ensure your site is online and the REST API is accessible."
	msgArticleNotFound    = "Article not found."
	msgPageNotFound       = "Page not found."
	msgCategoryNotFound   = "Category not found."
	msgInternal           = "Something went wrong. Please try again later."
	msgSummaryFailed      = "Failed to generate summary. The AI model may be temporarily unavailable."
)

// userKey is the gin context key of the logged-in user
const userKey = "user"

// view is the data every page template receives
type view struct {
	Title    string
	Settings models.ThemeSettings
	Shell    *service.ShellView
	User     *models.User
	Now      time.Time
	Path     string
	Query    string
	Flash    string
	Error    string
	Data     any
}

// base holds what every handler needs
type base struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// page assembles the layout data for the current request. Settings failures
// fall back to the defaults so the shell always renders.
func (b *base) page(c *gin.Context, title string, data any) view {
	ctx := c.Request.Context()

	settings, err := b.services.Settings.Get(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("Failed to load settings, using defaults")
		settings = models.DefaultThemeSettings()
	}

	return view{
		Title:    title,
		Settings: settings,
		Shell:    b.services.Content.Shell(ctx),
		User:     currentUser(c),
		Now:      time.Now(),
		Path:     c.Request.URL.Path,
		Query:    c.Query("q"),
		Data:     data,
	}
}

// render writes a full page
func (b *base) render(c *gin.Context, status int, name string, v view) {
	c.HTML(status, name, v)
}

// fail renders the error page matching err. notFound is the message used
// when err is service.ErrNotFound.
func (b *base) fail(c *gin.Context, err error, notFound string) {
	status, msg := http.StatusInternalServerError, msgInternal

	switch {
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, notFound
	case errors.Is(err, service.ErrContentUnavailable), errors.Is(err, service.ErrUpstream):
		status, msg = http.StatusBadGateway, msgContentUnavailable
	default:
		b.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}

	v := b.page(c, "Error", nil)
	v.Error = msg
	b.render(c, status, "error", v)
}

// validationErrors extracts form errors from err
func validationErrors(err error) (validation.Errors, bool) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// currentUser returns the logged-in user, or nil
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// redirect sends a 303 so the browser follows with GET
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
