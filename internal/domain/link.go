package domain

import "time"

// EventSignpostLink records that an event is evidence for a signpost. Links
// are created by the signpost mapper; links below the auto-approve threshold
// wait in the review queue until a human approves or rejects them. Rejection
// deletes the link but never the event.
type EventSignpostLink struct {
	ID         uint `gorm:"primaryKey"`
	EventID    uint `gorm:"uniqueIndex:idx_event_signpost;not null"`
	SignpostID uint `gorm:"uniqueIndex:idx_event_signpost;index;not null"`
	Event      *Event
	Signpost   *Signpost

	Confidence     float64 `gorm:"not null"`
	ImpactEstimate float64 `gorm:"not null"`
	Rationale      string

	// Tier is denormalized from the parent event at link time so the review
	// queue can be listed without a join. Aggregation rechecks the parent
	// event instead of trusting this copy.
	Tier Tier `gorm:"type:text;not null"`

	Approved   bool `gorm:"index"`
	ApprovedAt *time.Time
	ApprovedBy string

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}
