package ingest

import (
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

// MessageParser defines the interface for parsing raw message bytes into
// raw events
type MessageParser interface {
	Parse(body []byte) (*domain.RawEvent, error)
}
