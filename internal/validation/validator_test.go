package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/wamuzi-news/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func fields(errs Errors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateComment(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		form       *models.CommentForm
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid top-level comment",
			form:       &models.CommentForm{AuthorName: "Wanjiru", Content: "Great reporting."},
			wantErrors: 0,
		},
		{
			name:       "valid reply",
			form:       &models.CommentForm{AuthorName: "Otieno", Content: "Agreed", Parent: 12},
			wantErrors: 0,
		},
		{
			name:       "missing name",
			form:       &models.CommentForm{Content: "Anonymous thoughts"},
			wantErrors: 1,
			wantFields: []string{"content"},
		},
		{
			name:       "whitespace only content",
			form:       &models.CommentForm{AuthorName: "Wanjiru", Content: "   \n  "},
			wantErrors: 1,
			wantFields: []string{"content"},
		},
		{
			name:       "content too long",
			form:       &models.CommentForm{AuthorName: "Wanjiru", Content: strings.Repeat("a", models.MaxCommentLength+1)},
			wantErrors: 1,
			wantFields: []string{"content"},
		},
		{
			name:       "negative parent",
			form:       &models.CommentForm{AuthorName: "Wanjiru", Content: "hi", Parent: -1},
			wantErrors: 1,
			wantFields: []string{"parent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidateComment(tt.form)
			if len(errs) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.wantErrors, len(errs), errs)
			}
			got := fields(errs)
			for i, f := range tt.wantFields {
				if i >= len(got) || got[i] != f {
					t.Errorf("Expected field %s at %d, got %v", f, i, got)
				}
			}
		})
	}
}

func TestValidateRegister(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		form       *models.RegisterForm
		wantFields []string
	}{
		{"valid", &models.RegisterForm{Username: "achieng", Email: "achieng@example.com", Password: "secret1"}, nil},
		{"missing field", &models.RegisterForm{Username: "achieng", Email: "achieng@example.com"}, []string{"form"}},
		{"bad email", &models.RegisterForm{Username: "achieng", Email: "achieng", Password: "secret1"}, []string{"email"}},
		{"short password", &models.RegisterForm{Username: "achieng", Email: "a@example.com", Password: "12345"}, []string{"password"}},
		{"exactly six", &models.RegisterForm{Username: "achieng", Email: "a@example.com", Password: "123456"}, nil},
		{"multiple", &models.RegisterForm{Username: "achieng", Email: "nope", Password: "1"}, []string{"email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(validator.ValidateRegister(tt.form))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
			}
		})
	}

	errs := validator.ValidateRegister(&models.RegisterForm{Username: "a", Email: "a@example.com", Password: "123"})
	if errs.Field("password") != "Password must be at least 6 characters long." {
		t.Errorf("Unexpected password message %q", errs.Field("password"))
	}
}

func TestValidateLogin(t *testing.T) {
	validator := NewValidator()

	if errs := validator.ValidateLogin(&models.LoginForm{Email: "a@example.com", Password: "x"}); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
	if errs := validator.ValidateLogin(&models.LoginForm{Email: " ", Password: "x"}); errs.First() != "Please fill in all fields." {
		t.Errorf("Unexpected message %q", errs.First())
	}
}

func TestValidateRole(t *testing.T) {
	validator := NewValidator()

	for _, role := range []models.Role{models.RoleUser, models.RoleAdmin} {
		if errs := validator.ValidateRole(role); len(errs) != 0 {
			t.Errorf("Role %s should be valid", role)
		}
	}
	if errs := validator.ValidateRole("superadmin"); len(errs) != 1 {
		t.Error("Expected superadmin to be rejected")
	}
}

func TestValidateSettings(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		patch      models.ThemeSettingsPatch
		wantFields []string
	}{
		{
			name:  "empty patch",
			patch: models.ThemeSettingsPatch{},
		},
		{
			name: "valid homepage counts at bounds",
			patch: models.ThemeSettingsPatch{Homepage: &models.HomepagePatch{
				SliderArticlesCount: intPtr(1), LatestArticlesCount: intPtr(10),
			}},
		},
		{
			name: "counts out of range",
			patch: models.ThemeSettingsPatch{Homepage: &models.HomepagePatch{
				SliderArticlesCount: intPtr(0), TrendingArticlesCount: intPtr(11),
			}},
			wantFields: []string{"sliderArticlesCount", "trendingArticlesCount"},
		},
		{
			name: "colours",
			patch: models.ThemeSettingsPatch{Styling: &models.StylingPatch{
				PrimaryColor: strPtr("#0052CC"), BreakingColor: strPtr("red"),
			}},
			wantFields: []string{"breakingColor"},
		},
		{
			name:       "blank site title",
			patch:      models.ThemeSettingsPatch{General: &models.GeneralPatch{SiteTitle: strPtr("  ")}},
			wantFields: []string{"siteTitle"},
		},
		{
			name:       "bad logo url",
			patch:      models.ThemeSettingsPatch{General: &models.GeneralPatch{LogoURL: strPtr("javascript:alert(1)")}},
			wantFields: []string{"logoUrl"},
		},
		{
			name: "social links",
			patch: models.ThemeSettingsPatch{Header: &models.HeaderPatch{SocialLinks: &[]models.SocialLink{
				{ID: 1, Name: models.SocialFacebook, URL: "https://facebook.com/wamuzi"},
				{ID: 2, Name: "MySpace", URL: "#"},
				{ID: 3, Name: models.SocialYouTube, URL: ""},
				{ID: 4, Name: models.SocialTwitter, URL: "ftp://x"},
			}}},
			wantFields: []string{"socialLinks[1].name", "socialLinks[3].url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(validator.ValidateSettings(&tt.patch))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	var none Errors
	if none.Err() != nil {
		t.Error("Empty Errors should convert to a nil error")
	}

	errs := Errors{{Field: "email", Message: "bad"}, {Field: "password", Message: "short"}}
	err := errs.Err()

	var target Errors
	if !errors.As(err, &target) || len(target) != 2 {
		t.Fatalf("Expected errors.As to recover Errors, got %v", err)
	}
	if !strings.Contains(err.Error(), "email: bad") {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if errs.Field("password") != "short" || errs.Field("missing") != "" {
		t.Error("Field lookup mismatch")
	}
}
