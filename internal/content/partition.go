package content

import (
	"github.com/wamuzi-news/internal/models"
)

// SecondaryFeaturedCount is the fixed size of the window after the slider
const SecondaryFeaturedCount = 2

// CategoryBlock is one grouped section below the featured windows
type CategoryBlock struct {
	Category models.Category
	Articles []models.Article
}

// HomepageLayout is the homepage split into its sections
type HomepageLayout struct {
	Slider    []models.Article
	Secondary []models.Article
	Latest    []models.Article
	Trending  []models.Article
	Blocks    []CategoryBlock
}

// Empty reports whether there is nothing to show
func (l HomepageLayout) Empty() bool {
	return len(l.Slider) == 0 && len(l.Secondary) == 0 && len(l.Latest) == 0 &&
		len(l.Trending) == 0 && len(l.Blocks) == 0
}

// PartitionHomepage slices a newest-first article list into the homepage
// windows: slider, secondary featured, latest, trending, then category blocks
// built from everything after the trending window.
//
// The four windows are consecutive slices of articles and never share an
// article. A short input leaves the later windows empty. Block membership
// follows category membership, so one article can appear in several blocks.
// The category with slug breakingSlug never gets a block.
func PartitionHomepage(articles []models.Article, categories []models.Category, counts models.HomepageSettings, breakingSlug string) HomepageLayout {
	var layout HomepageLayout
	offset := 0

	layout.Slider, offset = window(articles, offset, counts.SliderArticlesCount)
	layout.Secondary, offset = window(articles, offset, SecondaryFeaturedCount)
	layout.Latest, offset = window(articles, offset, counts.LatestArticlesCount)
	layout.Trending, offset = window(articles, offset, counts.TrendingArticlesCount)

	layout.Blocks = GroupByCategory(articles[offset:], categories, breakingSlug)
	return layout
}

// GroupByCategory groups articles under each category in category order,
// dropping empty groups and the excluded slug.
func GroupByCategory(articles []models.Article, categories []models.Category, excludeSlug string) []CategoryBlock {
	blocks := make([]CategoryBlock, 0, len(categories))
	for _, cat := range categories {
		if excludeSlug != "" && cat.Slug == excludeSlug {
			continue
		}
		var members []models.Article
		for i := range articles {
			if articles[i].HasCategory(cat.ID) {
				members = append(members, articles[i])
			}
		}
		if len(members) == 0 {
			continue
		}
		blocks = append(blocks, CategoryBlock{Category: cat, Articles: members})
	}
	return blocks
}

// window returns articles[start:start+n] clipped to the input and the next offset.
// Negative sizes are treated as zero.
func window(articles []models.Article, start, n int) ([]models.Article, int) {
	if n < 0 {
		n = 0
	}
	if start > len(articles) {
		start = len(articles)
	}
	end := start + n
	if end > len(articles) {
		end = len(articles)
	}
	return articles[start:end:end], end
}
