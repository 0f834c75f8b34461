package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/service"
)

func TestSummaryService_GeneratesAndCaches(t *testing.T) {
	f := newFixture(t)
	f.source.Articles[1].Content.Rendered = "<p>The <b>budget</b> was read.</p><script>x()</script>"
	f.refresh(t)
	ctx := context.Background()

	html, err := f.svc.Summary.Summarize(ctx, "story-1")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !strings.Contains(html, "<strong>Key points</strong>") || !strings.Contains(html, "<li>one</li>") {
		t.Errorf("Expected Markdown rendered to HTML, got %q", html)
	}

	prompt := f.summarizer.Prompts[0]
	if !strings.HasSuffix(prompt, "The budget was read.") {
		t.Errorf("Prompt should end with the stripped article text, got %q", prompt)
	}

	if _, err := f.svc.Summary.Summarize(ctx, "story-1"); err != nil {
		t.Fatalf("Second Summarize failed: %v", err)
	}
	if f.summarizer.Calls() != 1 {
		t.Errorf("Expected 1 model call, got %d", f.summarizer.Calls())
	}

	cached, ok := f.svc.Summary.Cached(ctx, 101)
	if !ok || cached != html {
		t.Error("Summary should be cached by article id")
	}
}

func TestSummaryService_TruncatesInput(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Summary.MaxInputLength = 10 })
	f.source.Articles[0].Content.Rendered = "<p>" + strings.Repeat("a", 50) + "</p>"
	f.refresh(t)

	if _, err := f.svc.Summary.Summarize(context.Background(), "story-0"); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	prompt := f.summarizer.Prompts[0]
	if !strings.HasSuffix(prompt, strings.Repeat("a", 10)) || strings.Contains(prompt, strings.Repeat("a", 11)) {
		t.Errorf("Expected input truncated to 10 characters, got %q", prompt)
	}
}

func TestSummaryService_Failures(t *testing.T) {
	f := newFixture(t)
	f.refresh(t)
	ctx := context.Background()

	if _, err := f.svc.Summary.Summarize(ctx, "missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	f.summarizer.Err = errors.New("model overloaded")
	if _, err := f.svc.Summary.Summarize(ctx, "story-2"); !errors.Is(err, service.ErrSummaryUnavailable) {
		t.Errorf("Expected ErrSummaryUnavailable, got %v", err)
	}
	if _, ok := f.svc.Summary.Cached(ctx, 102); ok {
		t.Error("Failures must not be cached")
	}
}

func TestSummaryService_StoreFailureStillReturnsSummary(t *testing.T) {
	f := newFixture(t)
	f.refresh(t)
	f.store.Failing = true

	html, err := f.svc.Summary.Summarize(context.Background(), "story-3")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if html == "" {
		t.Error("Expected a summary despite the cache being down")
	}
}
