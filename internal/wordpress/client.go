package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/models"
)

const (
	defaultTimeout = 10 * time.Second
	listPageSize   = 100
	userAgent      = "wamuzi-news/1.0"
	maxErrorBody   = 512
)

// ErrUnexpectedStatus is returned when the CMS answers with a non-2xx status
var ErrUnexpectedStatus = errors.New("unexpected status from content API")

// Client reads posts, pages, categories and tags from the WordPress REST API
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a client for the API rooted at baseURL (".../wp-json/wp/v2")
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "wordpress").Logger(),
	}
}

// get fetches path with query and decodes the JSON response into dst
func (c *Client) get(ctx context.Context, path string, query url.Values, dst interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Content API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: HTTP %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// GetArticles fetches the newest posts with embedded media and author
func (c *Client) GetArticles(ctx context.Context) ([]models.Article, error) {
	query := url.Values{}
	query.Set("_embed", "")
	query.Set("per_page", fmt.Sprint(listPageSize))

	var articles []models.Article
	if err := c.get(ctx, "/posts", query, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticleBySlug fetches one post. Returns nil, nil when no post matches.
func (c *Client) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := url.Values{}
	query.Set("slug", slug)
	query.Set("_embed", "")

	var articles []models.Article
	if err := c.get(ctx, "/posts", query, &articles); err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}
	return &articles[0], nil
}

// GetPage fetches one static page. Returns nil, nil when no page matches.
func (c *Client) GetPage(ctx context.Context, slug string) (*models.Page, error) {
	query := url.Values{}
	query.Set("slug", slug)

	var pages []models.Page
	if err := c.get(ctx, "/pages", query, &pages); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, nil
	}
	return &pages[0], nil
}

// GetCategories fetches all categories
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	query := url.Values{}
	query.Set("per_page", fmt.Sprint(listPageSize))

	var categories []models.Category
	if err := c.get(ctx, "/categories", query, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetTags fetches all tags
func (c *Client) GetTags(ctx context.Context) ([]models.Tag, error) {
	query := url.Values{}
	query.Set("per_page", fmt.Sprint(listPageSize))

	var tags []models.Tag
	if err := c.get(ctx, "/tags", query, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
