package domain

import "time"

// WeightPreset is a named category weighting used by the aggregator. Weights
// must sum to 1.0 within a small tolerance.
type WeightPreset struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex;not null"`
	Capabilities float64
	Agents       float64
	Inputs       float64
	Security     float64
	IsDefault    bool
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// Weights returns the preset as a category-keyed map.
func (p *WeightPreset) Weights() map[Category]float64 {
	return map[Category]float64{
		CategoryCapabilities: p.Capabilities,
		CategoryAgents:       p.Agents,
		CategoryInputs:       p.Inputs,
		CategorySecurity:     p.Security,
	}
}

// IndexSnapshot is an immutable date-stamped record of the category and
// overall scores for one weighting preset. One snapshot exists per
// (preset, date); re-running aggregation for the same day replaces it.
// Corrections are new snapshots, never edits of old ones.
type IndexSnapshot struct {
	ID           uint   `gorm:"primaryKey"`
	PresetID     uint   `gorm:"uniqueIndex:idx_preset_date;not null"`
	SnapshotDate string `gorm:"uniqueIndex:idx_preset_date;not null"` // YYYY-MM-DD (UTC)
	Preset       *WeightPreset

	Capabilities float64
	Agents       float64
	Inputs       float64
	Security     float64
	Overall      float64

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// CategoryScores returns the snapshot's per-category scores.
func (s *IndexSnapshot) CategoryScores() map[Category]float64 {
	return map[Category]float64{
		CategoryCapabilities: s.Capabilities,
		CategoryAgents:       s.Agents,
		CategoryInputs:       s.Inputs,
		CategorySecurity:     s.Security,
	}
}
