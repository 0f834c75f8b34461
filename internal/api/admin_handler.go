package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/service"
	"github.com/wamuzi-news/internal/validation"
)

const (
	msgSettingsSaved = "Settings saved successfully!"
	msgSettingsReset = "Settings have been reset to defaults."
	msgRoleUpdated   = "User role updated."
	msgUserDeleted   = "User deleted."
	msgUserNotFound  = "User not found."
	msgSelfDemotion  = "You cannot demote yourself."
	msgSelfDeletion  = "You cannot delete your own account."
)

// settingsSection is one admin settings form
type settingsSection struct {
	Name  string
	Label string
	parse func(c *gin.Context) models.ThemeSettingsPatch
}

var settingsSections = []settingsSection{
	{Name: "general", Label: "General", parse: parseGeneral},
	{Name: "header", Label: "Header", parse: parseHeader},
	{Name: "footer", Label: "Footer", parse: parseFooter},
	{Name: "homepage", Label: "Homepage", parse: parseHomepage},
	{Name: "styling", Label: "Styling", parse: parseStyling},
}

// AdminHandler handles the admin area
type AdminHandler struct {
	base
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{base{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "admin").Logger(),
	}}
}

// adminPage is the data of the admin settings template
type adminPage struct {
	Section  string
	Sections []settingsSection
	Form     models.ThemeSettings
	Errors   validation.Errors
}

// usersPage is the data of the user management template
type usersPage struct {
	Sections []settingsSection
	Users    []*models.User
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	redirect(c, "/admin/"+settingsSections[0].Name)
}

// ShowSection handles GET /admin/<section>
func (h *AdminHandler) ShowSection(section settingsSection) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := h.services.Settings.Get(c.Request.Context())
		if err != nil {
			h.fail(c, err, msgPageNotFound)
			return
		}
		v := h.page(c, "Admin: "+section.Label, &adminPage{
			Section:  section.Name,
			Sections: settingsSections,
			Form:     settings,
		})
		switch {
		case c.Query("saved") != "":
			v.Flash = msgSettingsSaved
		case c.Query("reset") != "":
			v.Flash = msgSettingsReset
		}
		h.render(c, http.StatusOK, "admin", v)
	}
}

// SaveSection handles POST /admin/<section>
func (h *AdminHandler) SaveSection(section settingsSection) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		patch := section.parse(c)

		if _, err := h.services.Settings.Update(ctx, patch); err != nil {
			errs, ok := validationErrors(err)
			if !ok {
				h.fail(c, err, msgPageNotFound)
				return
			}
			current, gerr := h.services.Settings.Get(ctx)
			if gerr != nil {
				h.fail(c, gerr, msgPageNotFound)
				return
			}
			v := h.page(c, "Admin: "+section.Label, &adminPage{
				Section:  section.Name,
				Sections: settingsSections,
				// show what was submitted so it can be corrected
				Form:   current.Apply(patch),
				Errors: errs,
			})
			v.Error = errs.First()
			h.render(c, http.StatusUnprocessableEntity, "admin", v)
			return
		}

		h.log.Info().Str("section", section.Name).Int64("user_id", currentUser(c).ID).Msg("Settings section saved")
		redirect(c, "/admin/"+section.Name+"?saved=1")
	}
}

// Reset handles POST /admin/reset
func (h *AdminHandler) Reset(c *gin.Context) {
	if _, err := h.services.Settings.Reset(c.Request.Context()); err != nil {
		h.fail(c, err, msgPageNotFound)
		return
	}
	redirect(c, "/admin/general?reset=1")
}

// Users handles GET /admin/users
func (h *AdminHandler) Users(c *gin.Context) {
	h.renderUsers(c, http.StatusOK, "", "")
}

func (h *AdminHandler) renderUsers(c *gin.Context, status int, flash, errMsg string) {
	users, err := h.services.User.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, msgPageNotFound)
		return
	}
	v := h.page(c, "Admin: Users", &usersPage{Sections: settingsSections, Users: users})
	v.Flash = flash
	if flash == "" {
		switch {
		case c.Query("updated") != "":
			v.Flash = msgRoleUpdated
		case c.Query("deleted") != "":
			v.Flash = msgUserDeleted
		}
	}
	v.Error = errMsg
	h.render(c, status, "admin_users", v)
}

// ChangeRole handles POST /admin/users/:id/role
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var form models.RoleForm
	_ = c.ShouldBind(&form)

	err := h.services.User.ChangeRole(c.Request.Context(), currentUser(c), id, form.Role)
	if h.userActionFailed(c, err) {
		return
	}
	redirect(c, "/admin/users?updated=1")
}

// DeleteUser handles POST /admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	err := h.services.User.Delete(c.Request.Context(), currentUser(c), id)
	if h.userActionFailed(c, err) {
		return
	}
	redirect(c, "/admin/users?deleted=1")
}

func (h *AdminHandler) userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, service.ErrNotFound, msgUserNotFound)
		return 0, false
	}
	return id, true
}

// userActionFailed renders the outcome of a failed user action and reports
// whether it did
func (h *AdminHandler) userActionFailed(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	switch errs, ok := validationErrors(err); {
	case ok:
		h.renderUsers(c, http.StatusUnprocessableEntity, "", errs.First())
	case errors.Is(err, service.ErrSelfDemotion):
		h.renderUsers(c, http.StatusUnprocessableEntity, "", msgSelfDemotion)
	case errors.Is(err, service.ErrSelfDeletion):
		h.renderUsers(c, http.StatusUnprocessableEntity, "", msgSelfDeletion)
	default:
		h.fail(c, err, msgUserNotFound)
	}
	return true
}

// Form parsing. Each section form posts every field it shows.

func formString(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

// formInt reads an integer field. Unparseable input becomes 0, which the
// validator rejects as out of range.
func formInt(c *gin.Context, key string) *int {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		n = 0
	}
	return &n
}

func parseGeneral(c *gin.Context) models.ThemeSettingsPatch {
	return models.ThemeSettingsPatch{General: &models.GeneralPatch{
		SiteTitle: formString(c, "siteTitle"),
		Tagline:   formString(c, "tagline"),
		LogoURL:   formString(c, "logoUrl"),
	}}
}

// parseHeader reads the social link rows; rows left entirely blank are dropped
func parseHeader(c *gin.Context) models.ThemeSettingsPatch {
	show := c.PostForm("showTopBar") != ""
	names := c.PostFormArray("socialName")
	urls := c.PostFormArray("socialUrl")

	links := make([]models.SocialLink, 0, len(names))
	for i, name := range names {
		url := ""
		if i < len(urls) {
			url = strings.TrimSpace(urls[i])
		}
		name = strings.TrimSpace(name)
		if name == "" && url == "" {
			continue
		}
		links = append(links, models.SocialLink{
			ID:   int64(len(links) + 1),
			Name: models.SocialNetwork(name),
			URL:  url,
		})
	}

	return models.ThemeSettingsPatch{Header: &models.HeaderPatch{
		ShowTopBar:  &show,
		AwardText:   formString(c, "awardText"),
		SocialLinks: &links,
	}}
}

func parseFooter(c *gin.Context) models.ThemeSettingsPatch {
	return models.ThemeSettingsPatch{Footer: &models.FooterPatch{
		CopyrightText: formString(c, "copyrightText"),
	}}
}

func parseHomepage(c *gin.Context) models.ThemeSettingsPatch {
	return models.ThemeSettingsPatch{Homepage: &models.HomepagePatch{
		SliderArticlesCount:   formInt(c, "sliderArticlesCount"),
		TrendingArticlesCount: formInt(c, "trendingArticlesCount"),
		LatestArticlesCount:   formInt(c, "latestArticlesCount"),
	}}
}

func parseStyling(c *gin.Context) models.ThemeSettingsPatch {
	return models.ThemeSettingsPatch{Styling: &models.StylingPatch{
		PrimaryColor:  formString(c, "primaryColor"),
		BreakingColor: formString(c, "breakingColor"),
	}}
}
