// Package dedup computes the deduplication keys used to reject events that
// are the same real-world announcement seen twice. Three keys are checked in
// order at the storage layer, first hit wins: the normalized
// title/source/day hash, the content hash, and the exact URL.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

// Keys holds the three deduplication keys for a candidate event.
type Keys struct {
	DedupHash   string
	ContentHash string
	URL         string
}

// Compute derives the deduplication keys for a raw event.
func Compute(raw *domain.RawEvent) Keys {
	return Keys{
		DedupHash:   DedupHash(raw.Title, raw.SourceDomain, raw.PublishedAt),
		ContentHash: ContentHash(raw.Body),
		URL:         strings.TrimSpace(raw.URL),
	}
}

// DedupHash is the primary deduplication key:
// sha256(normalize(title) | source_domain | publication day in UTC).
//
// Known limitation: two genuinely distinct events from the same publisher on
// the same day with identical normalized titles collide. This false-positive
// rate is accepted rather than engineered around.
func DedupHash(title, sourceDomain string, publishedAt time.Time) string {
	day := publishedAt.UTC().Format("2006-01-02")
	data := Normalize(title) + "|" + strings.ToLower(strings.TrimSpace(sourceDomain)) + "|" + day
	return hash(data)
}

// ContentHash hashes the full body text, catching the same content
// republished under a reworded title. Events without a body have no content
// hash at all; deduplication for those rests on the title/source/day key and
// the URL, so distinct bodyless announcements never collide here.
func ContentHash(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return hash(body)
}

// Normalize lowercases, strips punctuation, and collapses whitespace.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			// punctuation and symbols are dropped
		}
	}

	return strings.TrimRight(b.String(), " ")
}

func hash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
