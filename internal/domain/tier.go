package domain

// Tier is the evidence tier assigned to an event based on its source type.
// Only A and B tier events are eligible to influence the proximity index.
type Tier string

const (
	TierA Tier = "A" // peer-reviewed result or official leaderboard
	TierB Tier = "B" // official lab announcement, pending confirmation
	TierC Tier = "C" // reputable press, display-only context
	TierD Tier = "D" // social/blog, display-only and opt-in
)

// Scorable reports whether events of this tier may influence index scores.
func (t Tier) Scorable() bool {
	return t == TierA || t == TierB
}

// Valid reports whether t is one of the four known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierA, TierB, TierC, TierD:
		return true
	}
	return false
}
