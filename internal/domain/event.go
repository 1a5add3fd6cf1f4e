package domain

import "time"

// Event represents one real-world announcement or article ingested from the
// raw event queue. Events are never physically deleted; retraction is a soft
// state that excludes the event from future aggregation runs only.
type Event struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Summary     string
	Body        string
	URL         string    `gorm:"uniqueIndex;not null"`
	PublishedAt time.Time `gorm:"index"`
	SourceID    uint      `gorm:"index;not null"`
	Source      *Source

	EvidenceTier Tier `gorm:"type:text;index;not null"`
	Provisional  bool

	Retracted             bool `gorm:"index"`
	RetractedReason       string
	RetractedAt           *time.Time
	RetractionEvidenceURL string

	// DedupHash is the primary deduplication key:
	// sha256(normalized title | source domain | publication day).
	// ContentHash catches the same body republished under a reworded title.
	// It is NULL for events ingested without a body, so bodyless events never
	// collide with each other on this key (SQLite unique indexes admit any
	// number of NULLs).
	DedupHash   string  `gorm:"uniqueIndex;not null"`
	ContentHash *string `gorm:"uniqueIndex"`

	NeedsReview  bool `gorm:"index"`
	ReviewReason string
	MappedAt     *time.Time `gorm:"index"`

	IngestedAt time.Time `gorm:"autoCreateTime"`
}

// Scorable reports whether the event is currently eligible to influence
// index scores: A/B tier and not retracted. Link approval is checked
// separately at aggregation time.
func (e *Event) Scorable() bool {
	return e.EvidenceTier.Scorable() && !e.Retracted
}

// RawEvent is the tuple supplied by the external fetchers through the intake
// queue. The pipeline does not know or care how it was fetched.
type RawEvent struct {
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Body         string    `json:"body"`
	URL          string    `json:"url"`
	PublishedAt  time.Time `json:"published_at"`
	SourceDomain string    `json:"source_domain"`
	SourceName   string    `json:"source_name"`
	SourceType   string    `json:"source_type"`
}
