package api

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"

	"github.com/wamuzi-news/internal/models"
	rendertext "github.com/wamuzi-news/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// defaultAuthor is shown when the CMS embeds no author
const defaultAuthor = "Wamuzi News Staff"

// pageNames are the templates under templates/ that each define "content"
var pageNames = []string{
	"home", "article", "category", "search", "page", "error",
	"login", "register", "profile", "admin", "admin_users",
}

// pages implements gin's HTMLRender with one template set per page, each
// made of the shared layout, the partials and the page itself
type pages map[string]*template.Template

func loadPages() (pages, error) {
	out := make(pages, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// Instance implements render.HTMLRender
func (p pages) Instance(name string, data any) render.Render {
	return render.HTML{
		Template: p[name],
		Name:     "layout",
		Data:     data,
	}
}

var templateFuncs = template.FuncMap{
	"safe":      func(s string) template.HTML { return template.HTML(s) },
	"css":       func(s string) template.CSS { return template.CSS(s) },
	"text":      rendertext.Text,
	"excerpt":   excerpt,
	"date":      formatDate,
	"image":     articleImage,
	"author":    authorName,
	"category":  categoryName,
	"copyright": copyright,
	"dict":      dict,
	"add":       func(a, b int) int { return a + b },
}

func excerpt(a models.Article) string {
	return rendertext.Text(rendertext.ReadMoreMarker(a.Excerpt.Rendered))
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("January 2, 2006")
	case models.WPTime:
		return t.Format("January 2, 2006")
	}
	return ""
}

// articleImage falls back to the first inline image when no featured image is set
func articleImage(a models.Article) string {
	if src := a.FeaturedImage(); src != "" {
		return src
	}
	return rendertext.FirstImage(a.Content.Rendered)
}

func authorName(a models.Article) string {
	if name := a.AuthorName(); name != "" {
		return name
	}
	return defaultAuthor
}

func categoryName(index map[int64]models.Category, a models.Article) string {
	if cat, ok := index[a.PrimaryCategory()]; ok {
		return cat.Name
	}
	return ""
}

func copyright(text string, now time.Time) string {
	return strings.ReplaceAll(text, "{year}", fmt.Sprint(now.Year()))
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		out[key] = kv[i+1]
	}
	return out, nil
}
