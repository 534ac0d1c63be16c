package workflow

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const historyLimit = 10

// HistoryEntry records one user-initiated action. Entries are never mutated
// after insertion.
type HistoryEntry struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	AssetName string `json:"assetName"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// HistoryLog is an append-only action log bounded to the most recent
// entries, newest first.
type HistoryLog struct {
	mu      sync.Mutex
	entries []HistoryEntry

	now   func() time.Time
	newID func() string
}

// NewHistoryLog creates an empty log.
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Append prepends a new entry, dropping the oldest past the bound.
func (l *HistoryLog) Append(action, assetName, status string) HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := HistoryEntry{
		ID:        l.newID(),
		Action:    action,
		AssetName: assetName,
		Status:    status,
		Timestamp: l.now().UnixMilli(),
	}

	kept := l.entries
	if len(kept) > historyLimit-1 {
		kept = kept[:historyLimit-1]
	}
	l.entries = append([]HistoryEntry{entry}, kept...)

	return entry
}

// Entries returns a copy of the log, newest first.
func (l *HistoryLog) Entries() []HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]HistoryEntry(nil), l.entries...)
}
