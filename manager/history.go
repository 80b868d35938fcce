package manager

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrHistoryNotFound = errors.New("no such history entry")

// MinIDPrefix is the shortest ID prefix Get accepts.
const MinIDPrefix = 4

// History keeps past searches most-recent-first. It never evicts or deduplicates.
type History struct {
	mu      sync.RWMutex
	records []HistoryRecord
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Record(locationName string, at time.Time) HistoryRecord {
	record := HistoryRecord{
		ID:           uuid.NewString(),
		LocationName: locationName,
		SearchedAt:   at,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append([]HistoryRecord{record}, h.records...)

	return record
}

func (h *History) Records() []HistoryRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return append([]HistoryRecord(nil), h.records...)
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.records)
}

func (h *History) Lines() []string {
	records := h.Records()

	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, record.String())
	}

	return lines
}

// Get finds a record by its full ID or by a unique ID prefix of at least
// MinIDPrefix characters.
func (h *History) Get(ref string) (HistoryRecord, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return HistoryRecord{}, ErrHistoryNotFound
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var (
		found   HistoryRecord
		matches int
	)
	for _, record := range h.records {
		if record.ID == ref {
			return record, nil
		}
		if len(ref) >= MinIDPrefix && strings.HasPrefix(record.ID, ref) {
			found = record
			matches++
		}
	}

	switch matches {
	case 0:
		return HistoryRecord{}, ErrHistoryNotFound
	case 1:
		return found, nil
	}

	return HistoryRecord{}, fmt.Errorf("ambiguous history reference %q: %d matches", ref, matches)
}
