package apiclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// TokenSource yields the bearer token to attach to outgoing requests. An empty
// token means the request goes out without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RedisTokenStore reads the token from a Redis key. The console only reads it;
// whatever signs the operator in is responsible for writing it.
type RedisTokenStore struct {
	client *redis.Client
	key    string
}

func NewRedisTokenStore(client *redis.Client, key string) *RedisTokenStore {
	return &RedisTokenStore{client: client, key: key}
}

func (s *RedisTokenStore) Token(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token %q: %w", s.key, err)
	}
	return token, nil
}

type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// tokenExpired reports whether token is a JWT whose exp claim lies before now.
// The signature is not checked; the backend does that.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
