package events

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// MemoryFeed keeps the activity in process. Used when Redis is not configured.
type MemoryFeed struct {
	mu     sync.RWMutex
	events []Event
	maxLen int
	seq    int64
}

func NewMemoryFeed(maxLen int) *MemoryFeed {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &MemoryFeed{maxLen: maxLen}
}

func (f *MemoryFeed) Publish(_ context.Context, eventType, summary string, data any) error {
	event, err := newEvent(eventType, summary, data)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	event.ID = strconv.FormatInt(f.seq, 10)
	f.events = append(f.events, event)
	if len(f.events) > f.maxLen {
		f.events = f.events[len(f.events)-f.maxLen:]
	}
	return nil
}

func (f *MemoryFeed) Recent(_ context.Context, n int64) ([]Event, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	count := len(f.events)
	if n >= 0 && int(n) < count {
		count = int(n)
	}
	out := make([]Event, 0, count)
	for i := len(f.events) - 1; i >= 0 && len(out) < count; i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}
