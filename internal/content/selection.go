package content

import (
	"sort"
	"strings"
	"time"

	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/render"
)

// FindCategory looks a category up by slug
func FindCategory(categories []models.Category, slug string) (models.Category, bool) {
	for _, c := range categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryIndex maps category ids to categories
func CategoryIndex(categories []models.Category) map[int64]models.Category {
	index := make(map[int64]models.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index
}

// InCategory returns the articles filed under categoryID, preserving order
func InCategory(articles []models.Article, categoryID int64) []models.Article {
	var out []models.Article
	for i := range articles {
		if articles[i].HasCategory(categoryID) {
			out = append(out, articles[i])
		}
	}
	return out
}

// BreakingNews returns the newest article of the breaking-news category
func BreakingNews(articles []models.Article, categories []models.Category, slug string) *models.Article {
	cat, ok := FindCategory(categories, slug)
	if !ok {
		return nil
	}
	var newest *models.Article
	for i := range articles {
		a := &articles[i]
		if !a.HasCategory(cat.ID) {
			continue
		}
		if newest == nil || a.Date.After(newest.Date.Time) {
			newest = a
		}
	}
	return newest
}

// Ticker returns the first n articles
func Ticker(articles []models.Article, n int) []models.Article {
	out, _ := window(articles, 0, n)
	return out
}

// NavigationCategories drops the breaking-news category from menus
func NavigationCategories(categories []models.Category, breakingSlug string) []models.Category {
	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.Slug != breakingSlug {
			out = append(out, c)
		}
	}
	return out
}

// Search matches query case-insensitively against title, excerpt and body text.
// An empty query matches nothing.
func Search(articles []models.Article, query string) []models.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []models.Article
	for i := range articles {
		a := &articles[i]
		if strings.Contains(strings.ToLower(render.Text(a.Title.Rendered)), q) ||
			strings.Contains(strings.ToLower(render.Text(a.Excerpt.Rendered)), q) ||
			strings.Contains(strings.ToLower(render.Text(a.Content.Rendered)), q) {
			out = append(out, *a)
		}
	}
	return out
}

// Page describes one page of a paginated listing
type Page struct {
	Number     int
	TotalPages int
	Total      int
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Prev returns the previous page number
func (p Page) Prev() int { return p.Number - 1 }

// Next returns the next page number
func (p Page) Next() int { return p.Number + 1 }

// Paginate returns the requested page of articles; page is clamped into range
func Paginate(articles []models.Article, page, perPage int) ([]models.Article, Page) {
	if perPage <= 0 {
		perPage = len(articles)
		if perPage == 0 {
			perPage = 1
		}
	}
	total := len(articles)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	items, _ := window(articles, (page-1)*perPage, perPage)
	return items, Page{Number: page, TotalPages: totalPages, Total: total}
}

// Related returns up to n other articles sharing the primary category of current
func Related(articles []models.Article, current *models.Article, n int) []models.Article {
	primary := current.PrimaryCategory()
	var out []models.Article
	for i := range articles {
		if len(out) >= n {
			break
		}
		a := &articles[i]
		if a.ID != current.ID && primary != 0 && a.HasCategory(primary) {
			out = append(out, *a)
		}
	}
	return out
}

// ReadMore returns up to n of the most viewed articles that are neither
// current nor already listed in exclude
func ReadMore(articles []models.Article, current *models.Article, exclude []models.Article, n int) []models.Article {
	skip := map[int64]bool{current.ID: true}
	for _, a := range exclude {
		skip[a.ID] = true
	}
	return topByViews(articles, n, func(a *models.Article) bool { return !skip[a.ID] })
}

// Popular returns up to n articles viewed in the 24h before now, most viewed first
func Popular(articles []models.Article, currentID int64, now time.Time, n int) []models.Article {
	since := now.Add(-24 * time.Hour)
	return topByViews(articles, n, func(a *models.Article) bool {
		return a.ID != currentID && !a.LastViewed.IsZero() && a.LastViewed.After(since)
	})
}

// TrendingToday returns up to n articles published since midnight, most viewed first
func TrendingToday(articles []models.Article, currentID int64, now time.Time, n int) []models.Article {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return topByViews(articles, n, func(a *models.Article) bool {
		return a.ID != currentID && !a.Date.Before(midnight)
	})
}

// ByAuthor returns up to n other articles whose embedded author is author
func ByAuthor(articles []models.Article, author string, currentID int64, n int) []models.Article {
	var out []models.Article
	if author == "" {
		return out
	}
	for i := range articles {
		if len(out) >= n {
			break
		}
		if articles[i].ID != currentID && articles[i].AuthorName() == author {
			out = append(out, articles[i])
		}
	}
	return out
}

// FindArticle looks an article up by slug
func FindArticle(articles []models.Article, slug string) *models.Article {
	for i := range articles {
		if articles[i].Slug == slug {
			return &articles[i]
		}
	}
	return nil
}

// ResolveTags maps tag ids to tags, skipping unknown ids
func ResolveTags(ids []int64, tags []models.Tag) []models.Tag {
	index := make(map[int64]models.Tag, len(tags))
	for _, t := range tags {
		index[t.ID] = t
	}
	var out []models.Tag
	for _, id := range ids {
		if t, ok := index[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

func topByViews(articles []models.Article, n int, keep func(*models.Article) bool) []models.Article {
	var out []models.Article
	for i := range articles {
		if keep(&articles[i]) {
			out = append(out, articles[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	if n < 0 {
		n = 0
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}
