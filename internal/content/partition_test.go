package content_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/wamuzi-news/internal/content"
	"github.com/wamuzi-news/internal/models"
)

var categories = []models.Category{
	{ID: 1, Name: "Politics", Slug: "politics"},
	{ID: 2, Name: "Sports", Slug: "sports"},
	{ID: 3, Name: "Breaking News", Slug: "breaking-news"},
	{ID: 4, Name: "Science", Slug: "science"},
}

// articles builds n newest-first articles; the category of article i is i%3+1
func articles(n int) []models.Article {
	out := make([]models.Article, n)
	for i := range out {
		out[i] = models.Article{
			ID:         int64(i),
			Slug:       fmt.Sprintf("article-%d", i),
			Date:       models.WPTime{Time: base.Add(-time.Duration(i) * time.Hour)},
			Title:      models.Rendered{Rendered: fmt.Sprintf("Article %d", i)},
			Categories: []int64{int64(i%3 + 1)},
		}
	}
	return out
}

func articleIDs(list []models.Article) []int64 {
	out := make([]int64, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func span(from, to int64) []int64 {
	var out []int64
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

var defaultCounts = models.HomepageSettings{
	SliderArticlesCount:   4,
	LatestArticlesCount:   5,
	TrendingArticlesCount: 5,
}

func TestPartitionHomepage_Windows(t *testing.T) {
	list := articles(25)

	layout := content.PartitionHomepage(list, categories, defaultCounts, "breaking-news")

	tests := []struct {
		name string
		got  []models.Article
		want []int64
	}{
		{"slider", layout.Slider, span(0, 3)},
		{"secondary", layout.Secondary, span(4, 5)},
		{"latest", layout.Latest, span(6, 10)},
		{"trending", layout.Trending, span(11, 15)},
	}
	for _, tt := range tests {
		if !equalIDs(articleIDs(tt.got), tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, articleIDs(tt.got))
		}
	}

	// remainder is articles[16..24]
	inBlocks := map[int64]bool{}
	for _, b := range layout.Blocks {
		for _, a := range b.Articles {
			if a.ID < 16 {
				t.Errorf("Block %s holds windowed article %d", b.Category.Slug, a.ID)
			}
			inBlocks[a.ID] = true
		}
	}
	for _, id := range span(16, 24) {
		// ids with category 3 fall under breaking-news, which has no block
		if id%3+1 == 3 {
			continue
		}
		if !inBlocks[id] {
			t.Errorf("Expected article %d in a category block", id)
		}
	}
}

func TestPartitionHomepage_WindowsAreDisjointPrefixes(t *testing.T) {
	list := articles(30)
	counts := models.HomepageSettings{SliderArticlesCount: 3, LatestArticlesCount: 7, TrendingArticlesCount: 2}

	layout := content.PartitionHomepage(list, categories, counts, "breaking-news")

	var concat []models.Article
	for _, w := range [][]models.Article{layout.Slider, layout.Secondary, layout.Latest, layout.Trending} {
		concat = append(concat, w...)
	}
	if !equalIDs(articleIDs(concat), articleIDs(list[:len(concat)])) {
		t.Errorf("Windows should concatenate to a prefix of the input, got %v", articleIDs(concat))
	}

	seen := map[int64]bool{}
	for _, a := range concat {
		if seen[a.ID] {
			t.Errorf("Article %d in more than one window", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestPartitionHomepage_ShortInput(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		slider    int
		secondary int
		latest    int
		trending  int
	}{
		{"empty", 0, 0, 0, 0, 0},
		{"slider only", 3, 3, 0, 0, 0},
		{"into secondary", 5, 4, 1, 0, 0},
		{"into latest", 9, 4, 2, 3, 0},
		{"exact windows", 16, 4, 2, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := content.PartitionHomepage(articles(tt.n), categories, defaultCounts, "breaking-news")

			if len(layout.Slider) != tt.slider || len(layout.Secondary) != tt.secondary ||
				len(layout.Latest) != tt.latest || len(layout.Trending) != tt.trending {
				t.Errorf("Expected %d/%d/%d/%d, got %d/%d/%d/%d",
					tt.slider, tt.secondary, tt.latest, tt.trending,
					len(layout.Slider), len(layout.Secondary), len(layout.Latest), len(layout.Trending))
			}
			if len(layout.Blocks) != 0 {
				t.Errorf("Expected no blocks, got %d", len(layout.Blocks))
			}
			if (tt.n == 0) != layout.Empty() {
				t.Errorf("Empty() = %v for %d articles", layout.Empty(), tt.n)
			}
		})
	}
}

func TestPartitionHomepage_ZeroAndNegativeCounts(t *testing.T) {
	counts := models.HomepageSettings{SliderArticlesCount: 0, LatestArticlesCount: -3, TrendingArticlesCount: 2}

	layout := content.PartitionHomepage(articles(10), categories, counts, "breaking-news")

	if len(layout.Slider) != 0 || len(layout.Latest) != 0 {
		t.Errorf("Expected empty slider and latest, got %d and %d", len(layout.Slider), len(layout.Latest))
	}
	if !equalIDs(articleIDs(layout.Secondary), span(0, 1)) {
		t.Errorf("Expected secondary [0 1], got %v", articleIDs(layout.Secondary))
	}
	if !equalIDs(articleIDs(layout.Trending), span(2, 3)) {
		t.Errorf("Expected trending [2 3], got %v", articleIDs(layout.Trending))
	}
}

func TestGroupByCategory_MultiCategoryAndExclusion(t *testing.T) {
	list := []models.Article{
		{ID: 1, Categories: []int64{1, 2}},
		{ID: 2, Categories: []int64{2}},
		{ID: 3, Categories: []int64{3}},
		{ID: 4, Categories: []int64{1, 3}},
	}

	blocks := content.GroupByCategory(list, categories, "breaking-news")

	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Category.Slug != "politics" || !equalIDs(articleIDs(blocks[0].Articles), []int64{1, 4}) {
		t.Errorf("Unexpected politics block %v", articleIDs(blocks[0].Articles))
	}
	if blocks[1].Category.Slug != "sports" || !equalIDs(articleIDs(blocks[1].Articles), []int64{1, 2}) {
		t.Errorf("Unexpected sports block %v", articleIDs(blocks[1].Articles))
	}
	for _, b := range blocks {
		if b.Category.Slug == "breaking-news" || b.Category.Slug == "science" {
			t.Errorf("Unexpected block %s", b.Category.Slug)
		}
	}
}
