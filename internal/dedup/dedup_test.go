package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GPT-7 Beats MMLU!", "gpt 7 beats mmlu"},
		{"  Multiple   spaces\tand\nnewlines  ", "multiple spaces and newlines"},
		{"UPPER lower MiXeD", "upper lower mixed"},
		{"punctuation, everywhere; really?!", "punctuation everywhere really"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestDedupHash_Deterministic(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	h1 := DedupHash("New SOTA on SWE-bench", "lab.example.com", at)
	h2 := DedupHash("New SOTA on SWE-bench", "lab.example.com", at)
	assert.Equal(t, h1, h2)
}

func TestDedupHash_TitleRewordingSamePrimaryKey(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	// Punctuation and casing changes must not defeat deduplication.
	h1 := DedupHash("New SOTA on SWE-bench!", "lab.example.com", at)
	h2 := DedupHash("new sota on swe-bench", "LAB.EXAMPLE.COM", at)
	assert.Equal(t, h1, h2)
}

func TestDedupHash_DayTruncation(t *testing.T) {
	morning := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)

	assert.Equal(t,
		DedupHash("title", "a.com", morning),
		DedupHash("title", "a.com", evening))
	assert.NotEqual(t,
		DedupHash("title", "a.com", evening),
		DedupHash("title", "a.com", nextDay))
}

func TestDedupHash_DifferentSourcesDiffer(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	assert.NotEqual(t,
		DedupHash("title", "a.com", at),
		DedupHash("title", "b.com", at))
}

func TestCompute(t *testing.T) {
	raw := &domain.RawEvent{
		Title:        "Frontier Model Announced",
		Body:         "full body text",
		URL:          " https://lab.example.com/post ",
		PublishedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		SourceDomain: "lab.example.com",
	}

	keys := Compute(raw)
	assert.Equal(t, DedupHash(raw.Title, raw.SourceDomain, raw.PublishedAt), keys.DedupHash)
	assert.Equal(t, ContentHash("full body text"), keys.ContentHash)
	assert.Equal(t, "https://lab.example.com/post", keys.URL)
	assert.NotEqual(t, keys.DedupHash, keys.ContentHash)
}

func TestContentHash_EmptyBodyHasNoKey(t *testing.T) {
	// Bodyless events must never share a content key, so two distinct
	// headline-only announcements are not mistaken for each other.
	assert.Empty(t, ContentHash(""))
	assert.Empty(t, ContentHash("   \n\t"))
	assert.NotEmpty(t, ContentHash("actual text"))
}
