// Package notify queues transient toasts per session. Each notification is
// shown once, on the next page render.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/eaglebank/console/shared/models"
	sharedredis "github.com/eaglebank/console/shared/redis"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

type Notifier interface {
	Push(ctx context.Context, sessionID string, n models.Notification)
	Drain(ctx context.Context, sessionID string) []models.Notification
}

func Success(ctx context.Context, n Notifier, sessionID, message string) {
	n.Push(ctx, sessionID, models.Notification{Level: LevelSuccess, Message: message, CreatedAt: time.Now().UTC()})
}

func Error(ctx context.Context, n Notifier, sessionID, message string) {
	n.Push(ctx, sessionID, models.Notification{Level: LevelError, Message: message, CreatedAt: time.Now().UTC()})
}

// RedisNotifier keeps pending toasts in Redis so they survive a console
// restart between a POST and the redirected GET.
type RedisNotifier struct {
	mu    sync.Mutex
	cache *sharedredis.ViewCache[[]models.Notification]
}

func NewRedisNotifier(client *goredis.Client, ttl time.Duration, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{cache: sharedredis.NewViewCache[[]models.Notification](client, ttl, logger)}
}

func key(sessionID string) string {
	return "console:notify:" + sessionID
}

func (r *RedisNotifier) Push(ctx context.Context, sessionID string, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []models.Notification
	if existing, ok := r.cache.Get(ctx, key(sessionID)); ok {
		pending = *existing
	}
	pending = append(pending, n)
	r.cache.Set(ctx, key(sessionID), &pending)
}

func (r *RedisNotifier) Drain(ctx context.Context, sessionID string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending, ok := r.cache.Take(ctx, key(sessionID))
	if !ok {
		return nil
	}
	return *pending
}

type MemoryNotifier struct {
	mu      sync.Mutex
	pending map[string][]models.Notification
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{pending: map[string][]models.Notification{}}
}

func (m *MemoryNotifier) Push(_ context.Context, sessionID string, n models.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[sessionID] = append(m.pending[sessionID], n)
}

func (m *MemoryNotifier) Drain(_ context.Context, sessionID string) []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.pending[sessionID]
	delete(m.pending, sessionID)
	return out
}
