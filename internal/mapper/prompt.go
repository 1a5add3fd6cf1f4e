package mapper

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

const systemPrompt = `You map AI news events onto a fixed catalog of measurable AGI-progress signposts.

Rules:
- Select ONLY from the catalog below. Never invent a signpost code.
- An event may match zero, one, or several signposts. An empty array is a valid answer.
- confidence is your certainty in [0,1] that the event is evidence for the signpost.
- impact_estimate in [0,1] is how far this event moves the signpost from its baseline toward its target.
- rationale is one line explaining the match.

Respond with ONLY a JSON array:
[{"signpost_code": "...", "confidence": 0.0, "impact_estimate": 0.0, "rationale": "..."}]`

// buildUserPrompt embeds the event text and the enumerated signpost catalog.
// The body is truncated so one oversized article cannot blow the token
// budget.
func buildUserPrompt(event *domain.Event, catalog []*domain.Signpost, maxEventChars int) string {
	var b strings.Builder

	b.WriteString("Signpost catalog:\n")
	for _, s := range catalog {
		fmt.Fprintf(&b, "- %s (%s, %s): %s\n", s.Code, s.Name, s.Category, s.Description)
	}

	body := event.Body
	if body == "" {
		body = event.Summary
	}
	if maxEventChars > 0 && len(body) > maxEventChars {
		// Back off to a rune boundary so the cut never leaves a partial
		// UTF-8 sequence in the prompt.
		cut := maxEventChars
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}

	sourceDomain := ""
	if event.Source != nil {
		sourceDomain = event.Source.Domain
	}

	fmt.Fprintf(&b, "\nEvent:\nTitle: %s\nSource: %s\nPublished: %s\nText:\n%s\n",
		event.Title, sourceDomain, event.PublishedAt.UTC().Format("2006-01-02"), body)

	return b.String()
}
