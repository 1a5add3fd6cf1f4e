// Package tier assigns evidence tiers to events based on the type of the
// publishing source. The mapping is table-driven so adding a source type is a
// data change, not a code change, and every assignment is deterministic and
// auditable.
package tier

import (
	"strings"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

// Classification is the tier assigned to a source type together with the
// provisional flag. B-tier evidence is provisional until independently
// confirmed by an A-tier source.
type Classification struct {
	Tier        domain.Tier
	Provisional bool
}

// Well-known source types supplied by the fetchers.
const (
	SourcePeerReview  = "peer_review"
	SourceLeaderboard = "leaderboard"
	SourceOfficialLab = "official_lab"
	SourcePress       = "press"
	SourceBlog        = "blog"
	SourceSocial      = "social"
)

var table = map[string]Classification{
	SourcePeerReview:  {Tier: domain.TierA, Provisional: false},
	SourceLeaderboard: {Tier: domain.TierA, Provisional: false},
	SourceOfficialLab: {Tier: domain.TierB, Provisional: true},
	SourcePress:       {Tier: domain.TierC, Provisional: false},
	SourceBlog:        {Tier: domain.TierD, Provisional: false},
	SourceSocial:      {Tier: domain.TierD, Provisional: false},
}

// Classify maps a source type to its evidence tier. Unknown source types fall
// to tier D: display-only and opt-in, so an unrecognized feed can never move
// the index.
func Classify(sourceType string) Classification {
	if c, ok := table[strings.ToLower(strings.TrimSpace(sourceType))]; ok {
		return c
	}
	return Classification{Tier: domain.TierD, Provisional: false}
}
