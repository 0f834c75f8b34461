package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/render"
	"github.com/wamuzi-news/internal/summary"
)

// summaryService is the concrete implementation of SummaryService
type summaryService struct {
	content    ContentService
	summarizer Summarizer
	store      summary.Store
	maxInput   int
	log        zerolog.Logger
}

func newSummaryService(content ContentService, summarizer Summarizer, store summary.Store, cfg config.SummaryConfig, log zerolog.Logger) *summaryService {
	if store == nil {
		store = summary.NewMemoryStore()
	}
	return &summaryService{
		content:    content,
		summarizer: summarizer,
		store:      store,
		maxInput:   cfg.MaxInputLength,
		log:        log.With().Str("service", "summary").Logger(),
	}
}

// Cached returns a previously generated summary
func (s *summaryService) Cached(ctx context.Context, articleID int64) (string, bool) {
	html, ok, err := s.store.Get(ctx, articleID)
	if err != nil {
		s.log.Warn().Err(err).Int64("article_id", articleID).Msg("Summary cache read failed")
		return "", false
	}
	return html, ok
}

// Summarize returns the summary of the article at slug, generating and
// caching it on first request
func (s *summaryService) Summarize(ctx context.Context, slug string) (string, error) {
	article, err := s.content.Lookup(ctx, slug)
	if err != nil {
		return "", err
	}

	if html, ok := s.Cached(ctx, article.ID); ok {
		return html, nil
	}

	if s.summarizer == nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryUnavailable, summary.ErrNotConfigured)
	}

	text := render.Truncate(render.Text(article.Content.Rendered), s.maxInput)
	markdown, err := s.summarizer.Generate(ctx, summary.BuildPrompt(text))
	if err != nil {
		s.log.Error().Err(err).Int64("article_id", article.ID).Msg("Summary generation failed")
		return "", fmt.Errorf("%w: %v", ErrSummaryUnavailable, err)
	}

	html, err := summary.ToHTML(markdown)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryUnavailable, err)
	}

	if err := s.store.Set(ctx, article.ID, html); err != nil {
		// the summary is still good, only the cache write failed
		s.log.Warn().Err(err).Int64("article_id", article.ID).Msg("Summary cache write failed")
	}

	s.log.Info().Int64("article_id", article.ID).Int("input_chars", len(text)).Msg("Summary generated")
	return html, nil
}
