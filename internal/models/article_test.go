package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/wamuzi-news/internal/models"
)

func TestArticle_UnmarshalWordPressPayload(t *testing.T) {
	payload := []byte(`{
		"id": 42,
		"slug": "budget-reading",
		"date": "2024-06-13T15:04:05",
		"title": {"rendered": "Budget &amp; You"},
		"content": {"rendered": "<p>Body</p>"},
		"excerpt": {"rendered": "<p>Short</p>"},
		"categories": [3, 7],
		"tags": [11],
		"_embedded": {
			"wp:featuredmedia": [{"source_url": "https://cdn.example.com/a.jpg"}],
			"author": [{"name": "Achieng"}]
		}
	}`)

	var a models.Article
	if err := json.Unmarshal(payload, &a); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := time.Date(2024, 6, 13, 15, 4, 5, 0, time.UTC)
	if !a.Date.Equal(want) {
		t.Errorf("Expected date %v, got %v", want, a.Date.Time)
	}
	if a.FeaturedImage() != "https://cdn.example.com/a.jpg" {
		t.Errorf("Unexpected featured image %q", a.FeaturedImage())
	}
	if a.AuthorName() != "Achieng" {
		t.Errorf("Unexpected author %q", a.AuthorName())
	}
	if !a.HasCategory(7) || a.HasCategory(8) {
		t.Error("HasCategory mismatch")
	}
	if a.PrimaryCategory() != 3 {
		t.Errorf("Expected primary category 3, got %d", a.PrimaryCategory())
	}
}

func TestWPTime_RFC3339AndEmpty(t *testing.T) {
	var withZone models.WPTime
	if err := json.Unmarshal([]byte(`"2024-06-13T15:04:05+03:00"`), &withZone); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if withZone.UTC().Hour() != 12 {
		t.Errorf("Expected 12 UTC, got %d", withZone.UTC().Hour())
	}

	var empty models.WPTime
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !empty.IsZero() {
		t.Error("Expected zero time")
	}

	var bad models.WPTime
	if err := json.Unmarshal([]byte(`"yesterday"`), &bad); err == nil {
		t.Error("Expected error for malformed date")
	}
}

func TestArticle_NoEmbeds(t *testing.T) {
	var a models.Article
	if a.FeaturedImage() != "" || a.AuthorName() != "" || a.PrimaryCategory() != 0 {
		t.Error("Zero article should have empty derived fields")
	}
}
