package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/service"
	"github.com/wamuzi-news/internal/validation"
)

const (
	msgEmailTaken         = "An account with this email already exists."
	msgInvalidCredentials = "Invalid email or password"
	msgRegistered         = "Registration successful! Please log in."
)

// AuthHandler handles accounts, sessions and the profile page
type AuthHandler struct {
	base
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{base{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "auth").Logger(),
	}}
}

// authPage is the data of the login and register templates
type authPage struct {
	Email    string
	Username string
	Errors   validation.Errors
}

// profilePage is the data of the profile template
type profilePage struct {
	User     *models.User
	Comments []historyEntry
}

// historyEntry is one of the user's comments with the article it was left on
type historyEntry struct {
	Comment models.Comment
	Article *models.Article
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if currentUser(c) != nil {
		redirect(c, "/profile")
		return
	}
	v := h.page(c, "Login", &authPage{})
	if c.Query("registered") != "" {
		v.Flash = msgRegistered
	}
	h.render(c, http.StatusOK, "login", v)
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form models.LoginForm
	_ = c.ShouldBind(&form)

	session, user, err := h.services.Auth.Login(c.Request.Context(), &form)
	if err != nil {
		page := &authPage{Email: form.Email}
		v := h.page(c, "Login", page)
		switch errs, ok := validationErrors(err); {
		case ok:
			page.Errors = errs
			v.Error = errs.First()
		case errors.Is(err, service.ErrInvalidCredentials):
			v.Error = msgInvalidCredentials
		default:
			h.fail(c, err, msgPageNotFound)
			return
		}
		h.render(c, http.StatusUnprocessableEntity, "login", v)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Auth.CookieName, session.ID, int(h.cfg.Auth.SessionTTL.Seconds()), "/", "", h.cfg.Auth.CookieSecure, true)

	h.log.Debug().Int64("user_id", user.ID).Msg("Session cookie set")
	redirect(c, "/profile")
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	if currentUser(c) != nil {
		redirect(c, "/profile")
		return
	}
	h.render(c, http.StatusOK, "register", h.page(c, "Register", &authPage{}))
}

// Register handles POST /register. A new account is not logged in.
func (h *AuthHandler) Register(c *gin.Context) {
	var form models.RegisterForm
	_ = c.ShouldBind(&form)

	if _, err := h.services.Auth.Register(c.Request.Context(), &form); err != nil {
		page := &authPage{Email: form.Email, Username: form.Username}
		v := h.page(c, "Register", page)
		switch errs, ok := validationErrors(err); {
		case ok:
			page.Errors = errs
			v.Error = errs.First()
		case errors.Is(err, service.ErrEmailTaken):
			v.Error = msgEmailTaken
		default:
			h.fail(c, err, msgPageNotFound)
			return
		}
		h.render(c, http.StatusUnprocessableEntity, "register", v)
		return
	}

	redirect(c, "/login?registered=1")
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.cfg.Auth.CookieName); err == nil {
		if err := h.services.Auth.Logout(c.Request.Context(), id); err != nil {
			h.log.Error().Err(err).Msg("Failed to delete session")
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Auth.CookieName, "", -1, "/", "", h.cfg.Auth.CookieSecure, true)
	redirect(c, "/")
}

// Profile handles GET /profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user := currentUser(c)

	comments, err := h.services.Comment.History(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err, msgPageNotFound)
		return
	}

	entries := make([]historyEntry, 0, len(comments))
	for _, cm := range comments {
		entry := historyEntry{Comment: cm}
		if a, ok := h.services.Content.ArticleByID(cm.Post); ok {
			entry.Article = a
		}
		entries = append(entries, entry)
	}

	h.render(c, http.StatusOK, "profile", h.page(c, "Profile", &profilePage{User: user, Comments: entries}))
}
