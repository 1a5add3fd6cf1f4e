package domain

import "time"

// Source represents a publisher. Sources are created on first sighting of a
// new domain and never deleted. ReliabilityScore is a Wilson-score lower
// bound over the source's historical retraction rate, recomputed
// periodically.
type Source struct {
	ID               uint   `gorm:"primaryKey"`
	Domain           string `gorm:"uniqueIndex;not null"`
	Name             string
	SourceType       string `gorm:"index;not null"`
	ReliabilityScore float64
	EventCount       int64
	RetractionCount  int64
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}
