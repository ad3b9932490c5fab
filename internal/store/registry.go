package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultSessionTTL = 30 * time.Minute

// Registry owns every live Session. Sessions idle for longer than the TTL
// are evicted.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewRegistry(ttl time.Duration, logger *zap.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: map[string]*Session{},
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Session returns the session for id, creating it on first use.
func (r *Registry) Session(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = NewSession(id)
		r.sessions[id] = s
		r.logger.Debug("session created", zap.String("session_id", id))
	}
	s.touch(r.now())
	return s
}

func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Reset clears the state of session id, if it exists.
func (r *Registry) Reset(id string) {
	if s, ok := r.Lookup(id); ok {
		s.Reset()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict drops sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Evict() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.ttl {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run evicts idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				r.logger.Info("evicted idle sessions", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}
