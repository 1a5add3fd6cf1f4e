package domain

import "time"

// Category groups signposts into the four index dimensions.
type Category string

const (
	CategoryCapabilities Category = "capabilities"
	CategoryAgents       Category = "agents"
	CategoryInputs       Category = "inputs"
	CategorySecurity     Category = "security"
)

// Categories lists the four index categories in canonical order.
var Categories = []Category{
	CategoryCapabilities,
	CategoryAgents,
	CategoryInputs,
	CategorySecurity,
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCapabilities, CategoryAgents, CategoryInputs, CategorySecurity:
		return true
	}
	return false
}

// Signpost is one measurable AGI-progress milestone. The catalog is seeded
// once; Current is mutated only by confirmed evidence links during
// aggregation.
type Signpost struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"uniqueIndex;not null"`
	Name        string `gorm:"not null"`
	Description string
	Category    Category `gorm:"type:text;index;not null"`
	Baseline    float64
	Target      float64
	Current     float64
	Unit        string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Progress returns the fraction of the baseline-to-target distance covered by
// Current, clamped to [0,1].
func (s *Signpost) Progress() float64 {
	span := s.Target - s.Baseline
	if span == 0 {
		return 0
	}
	p := (s.Current - s.Baseline) / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
