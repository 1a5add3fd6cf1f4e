package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

// JSONRawEventParser implements MessageParser for JSON-formatted intake
// messages
type JSONRawEventParser struct{}

// NewJSONRawEventParser creates a new JSON raw event parser
func NewJSONRawEventParser() *JSONRawEventParser {
	return &JSONRawEventParser{}
}

// Parse parses a JSON message body into a RawEvent. Messages missing the
// fields needed for deduplication are rejected so they can be dropped from
// the queue rather than retried forever.
func (p *JSONRawEventParser) Parse(body []byte) (*domain.RawEvent, error) {
	var msgBody map[string]interface{}
	if err := json.Unmarshal(body, &msgBody); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	raw := &domain.RawEvent{
		Title:        getStringField(msgBody, "title"),
		Summary:      getStringField(msgBody, "summary"),
		Body:         getStringField(msgBody, "body"),
		URL:          getStringField(msgBody, "url"),
		SourceDomain: getStringField(msgBody, "source_domain"),
		SourceName:   getStringField(msgBody, "source_name"),
		SourceType:   getStringField(msgBody, "source_type"),
	}

	publishedAt, err := time.Parse(time.RFC3339, getStringField(msgBody, "published_at"))
	if err != nil {
		return nil, fmt.Errorf("invalid published_at: %w", err)
	}
	raw.PublishedAt = publishedAt

	if raw.Title == "" {
		return nil, fmt.Errorf("missing title")
	}
	if raw.URL == "" {
		return nil, fmt.Errorf("missing url")
	}
	if raw.SourceDomain == "" {
		return nil, fmt.Errorf("missing source_domain")
	}

	return raw, nil
}

func getStringField(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
