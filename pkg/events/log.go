package events

import (
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid"
)

const (
	KindInsight = "insight"
	KindSOS     = "sos"
)

// Event one realtime dashboard update
type Event struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"ts"`
	Type      string         `json:"type"`
	SessionID string         `json:"sessionId,omitempty"`
	RiskLevel string         `json:"riskLevel,omitempty"`
	Message   string         `json:"message,omitempty"`
	Level     string         `json:"level,omitempty"`
	Summary   map[string]any `json:"summary,omitempty"`
}

// Log append-only bounded event log for the live dashboard. Oldest entries
// are dropped past the cap; nothing is persisted.
type Log struct {
	mu  sync.Mutex
	buf []Event
	cap int
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = 200
	}
	return &Log{cap: capacity}
}

// Push stamps an id and timestamp and appends, evicting the oldest entries
// past the cap. Returns the stamped event.
func (l *Log) Push(e Event) Event {
	if id, err := gonanoid.Nanoid(10); err == nil {
		e.ID = id
	}
	e.Timestamp = time.Now().UTC()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf = append(l.buf, e)
	if len(l.buf) > l.cap {
		l.buf = l.buf[len(l.buf)-l.cap:]
	}
	return e
}

// Recent returns the newest n events, oldest first
func (l *Log) Recent(n int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.buf) {
		n = len(l.buf)
	}
	out := make([]Event, n)
	copy(out, l.buf[len(l.buf)-n:])
	return out
}

// Len current number of buffered events
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buf)
}
