package session

import (
	"context" // Context for Redis operations
	"errors"  // Sentinel error
	"strconv" // User id encoding
	"time"    // Session TTL

	"github.com/google/uuid"       // Session id generation
	"github.com/redis/go-redis/v9" // Redis client
)

// CookieName is the name of the browser cookie carrying the session id.
// The cookie holds only an opaque id; all session state lives server-side.
const CookieName = "session"

// ErrNoSession is returned when a session id is unknown or has expired
var ErrNoSession = errors.New("session: not found")

// Store maps opaque session ids to logged-in user ids
type Store interface {
	Create(ctx context.Context, userID uint) (string, error) // New session for a user
	Get(ctx context.Context, sid string) (uint, error)       // Resolve a session id
	Destroy(ctx context.Context, sid string) error           // Drop a session; no-op if absent
}

// RedisStore keeps sessions in Redis under "session:<id>" with a TTL
type RedisStore struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Session lifetime
}

// NewRedisStore builds a Store on an existing Redis client
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Create registers a new session and returns its id
func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	sid := uuid.NewString() // Random session id
	// Store the user id under the session key with the configured TTL
	if err := s.rdb.Set(ctx, key(sid), strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

// Get resolves a session id to the user it belongs to
func (s *RedisStore) Get(ctx context.Context, sid string) (uint, error) {
	val, err := s.rdb.Get(ctx, key(sid)).Result() // Fetch session value
	if err == redis.Nil {
		return 0, ErrNoSession // Unknown or expired session
	} else if err != nil {
		return 0, err // Other Redis error
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrNoSession // Corrupt value, treat as logged out
	}
	return uint(id), nil
}

// Destroy removes a session; destroying a missing session is not an error
func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, key(sid)).Err()
}

// key builds the Redis key for a session id
func key(sid string) string {
	return "session:" + sid
}
