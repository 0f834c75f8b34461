package models

import (
	"strings"
	"time"
)

// wordpressDateLayout is the site-local timestamp format of the REST API
const wordpressDateLayout = "2006-01-02T15:04:05"

// Rendered wraps a WordPress field that is delivered as rendered markup
type Rendered struct {
	Rendered string `json:"rendered"`
}

// WPTime parses WordPress timestamps, which usually lack a zone offset
type WPTime struct {
	time.Time
}

// UnmarshalJSON accepts RFC3339 and the zone-less WordPress layout
func (t *WPTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(wordpressDateLayout, raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes RFC3339
func (t WPTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Time.Format(time.RFC3339) + `"`), nil
}

// FeaturedMedia is the embedded wp:featuredmedia entry
type FeaturedMedia struct {
	SourceURL string `json:"source_url"`
}

// Author is the embedded author entry
type Author struct {
	Name string `json:"name"`
}

// Embedded holds the _embed expansions we render
type Embedded struct {
	FeaturedMedia []FeaturedMedia `json:"wp:featuredmedia,omitempty"`
	Author        []Author        `json:"author,omitempty"`
}

// Article represents a WordPress post
type Article struct {
	ID         int64    `json:"id"`
	Slug       string   `json:"slug"`
	Date       WPTime   `json:"date"`
	Title      Rendered `json:"title"`
	Content    Rendered `json:"content"`
	Excerpt    Rendered `json:"excerpt"`
	Categories []int64  `json:"categories"`
	Tags       []int64  `json:"tags"`
	Embedded   Embedded `json:"_embedded"`

	// Not part of the REST payload; simulated when the snapshot is loaded
	Views      int       `json:"views,omitempty"`
	LastViewed time.Time `json:"last_viewed,omitempty"`
}

// HasCategory reports whether the article is filed under categoryID
func (a *Article) HasCategory(categoryID int64) bool {
	for _, id := range a.Categories {
		if id == categoryID {
			return true
		}
	}
	return false
}

// PrimaryCategory returns the first category id, or 0
func (a *Article) PrimaryCategory() int64 {
	if len(a.Categories) == 0 {
		return 0
	}
	return a.Categories[0]
}

// FeaturedImage returns the embedded featured image URL, if any
func (a *Article) FeaturedImage() string {
	if len(a.Embedded.FeaturedMedia) == 0 {
		return ""
	}
	return a.Embedded.FeaturedMedia[0].SourceURL
}

// AuthorName returns the embedded author name, if any
func (a *Article) AuthorName() string {
	if len(a.Embedded.Author) == 0 {
		return ""
	}
	return a.Embedded.Author[0].Name
}

// Category represents a WordPress category
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Tag represents a WordPress tag
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Page represents a static WordPress page
type Page struct {
	ID      int64    `json:"id"`
	Slug    string   `json:"slug"`
	Title   Rendered `json:"title"`
	Content Rendered `json:"content"`
}
