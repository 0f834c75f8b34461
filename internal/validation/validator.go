package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/wamuzi-news/internal/models"
)

const (
	// MinWindowCount and MaxWindowCount bound the homepage article counts
	MinWindowCount = 1
	MaxWindowCount = 10

	maxUsernameLength = 100
	maxAuthorLength   = 100
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a failed form submission. It is returned as an error by services
// and rendered next to the offending fields.
type Errors []ValidationError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the first message for field, or ""
func (e Errors) Field(field string) string {
	for _, v := range e {
		if v.Field == field {
			return v.Message
		}
	}
	return ""
}

// First returns the first message, or ""
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// Err returns e as an error, or nil when there are no errors
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Validator checks submitted forms before any downstream call is made
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateComment validates a comment or reply
func (v *Validator) ValidateComment(form *models.CommentForm) Errors {
	var errs Errors

	name := strings.TrimSpace(form.AuthorName)
	content := strings.TrimSpace(form.Content)

	if name == "" || content == "" {
		errs = append(errs, ValidationError{Field: "content", Message: "Name and comment are required."})
		return errs
	}
	if utf8.RuneCountInString(name) > maxAuthorLength {
		errs = append(errs, ValidationError{
			Field:   "author_name",
			Message: fmt.Sprintf("Name must be at most %d characters.", maxAuthorLength),
		})
	}
	if n := utf8.RuneCountInString(content); n > models.MaxCommentLength {
		errs = append(errs, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("Comment exceeds maximum of %d characters (has %d).", models.MaxCommentLength, n),
		})
	}
	if form.Parent < 0 {
		errs = append(errs, ValidationError{Field: "parent", Message: "Invalid reply target.", Value: form.Parent})
	}
	return errs
}

// ValidateRegister validates a registration
func (v *Validator) ValidateRegister(form *models.RegisterForm) Errors {
	var errs Errors

	username := strings.TrimSpace(form.Username)
	email := strings.TrimSpace(form.Email)

	if username == "" || email == "" || form.Password == "" {
		errs = append(errs, ValidationError{Field: "form", Message: "Please fill in all fields."})
		return errs
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		errs = append(errs, ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("Username must be at most %d characters.", maxUsernameLength),
		})
	}
	if !emailRegex.MatchString(email) {
		errs = append(errs, ValidationError{Field: "email", Message: "Please enter a valid email address.", Value: email})
	}
	if utf8.RuneCountInString(form.Password) < models.MinPasswordLength {
		errs = append(errs, ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters long.", models.MinPasswordLength),
		})
	}
	return errs
}

// ValidateLogin validates a login
func (v *Validator) ValidateLogin(form *models.LoginForm) Errors {
	if strings.TrimSpace(form.Email) == "" || form.Password == "" {
		return Errors{{Field: "form", Message: "Please fill in all fields."}}
	}
	return nil
}

// ValidateRole validates a role change
func (v *Validator) ValidateRole(role models.Role) Errors {
	if !models.ValidRoles[role] {
		return Errors{{Field: "role", Message: "invalid role, must be one of: user, admin", Value: role}}
	}
	return nil
}

// ValidateSettings validates the fields named in a settings patch
func (v *Validator) ValidateSettings(patch *models.ThemeSettingsPatch) Errors {
	var errs Errors

	if g := patch.General; g != nil {
		if g.SiteTitle != nil && strings.TrimSpace(*g.SiteTitle) == "" {
			errs = append(errs, ValidationError{Field: "siteTitle", Message: "Site title is required."})
		}
		if g.LogoURL != nil && *g.LogoURL != "" && !isHTTPURL(*g.LogoURL) {
			errs = append(errs, ValidationError{Field: "logoUrl", Message: "Logo URL must be an http(s) URL.", Value: *g.LogoURL})
		}
	}

	if h := patch.Header; h != nil && h.SocialLinks != nil {
		for i, link := range *h.SocialLinks {
			if !models.ValidSocialNetworks[link.Name] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("socialLinks[%d].name", i),
					Message: "invalid social network, must be one of: Facebook, Twitter, Instagram, YouTube, LinkedIn",
					Value:   link.Name,
				})
			}
			if link.URL != "" && link.URL != "#" && !isHTTPURL(link.URL) {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("socialLinks[%d].url", i),
					Message: "Social link URL must be an http(s) URL.",
					Value:   link.URL,
				})
			}
		}
	}

	if h := patch.Homepage; h != nil {
		errs = append(errs, windowCount("sliderArticlesCount", h.SliderArticlesCount)...)
		errs = append(errs, windowCount("latestArticlesCount", h.LatestArticlesCount)...)
		errs = append(errs, windowCount("trendingArticlesCount", h.TrendingArticlesCount)...)
	}

	if s := patch.Styling; s != nil {
		errs = append(errs, color("primaryColor", s.PrimaryColor)...)
		errs = append(errs, color("breakingColor", s.BreakingColor)...)
	}

	return errs
}

func windowCount(field string, value *int) Errors {
	if value == nil || (*value >= MinWindowCount && *value <= MaxWindowCount) {
		return nil
	}
	return Errors{{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", MinWindowCount, MaxWindowCount),
		Value:   *value,
	}}
}

func color(field string, value *string) Errors {
	if value == nil || colorRegex.MatchString(*value) {
		return nil
	}
	return Errors{{Field: field, Message: "must be a hex colour such as #0052CC", Value: *value}}
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
