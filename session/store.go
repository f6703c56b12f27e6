package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is wrapped around every Redis infrastructure failure so
// callers can tell backend outages from "no session".
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrMarkerCorrupt is returned when a stored marker record cannot be decoded.
var ErrMarkerCorrupt = errors.New("marker record corrupt")

const defaultTTL = 24 * time.Hour

// Drain must be atomic: read-once ownership transfer of all queued messages.
const drainFlashScript = `
local messages = redis.call("LRANGE", KEYS[1], 0, -1)
redis.call("DEL", KEYS[1])
return messages
`

var drainFlashLua = redis.NewScript(drainFlashScript)

// Record is a stored authentication marker.
type Record struct {
	UserID   string
	IssuedAt time.Time
}

// Store persists markers and flash messages in Redis, keyed by session id
// under a configurable prefix. Safe for concurrent use.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore wraps a Redis client. prefix defaults to "gg", ttl to 24h; ttl
// bounds both marker lifetime and how long an undrained flash survives.
func NewStore(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "gg"
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Store{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) markerKey(sessionID string) string {
	return s.prefix + ":m:" + sessionID
}

func (s *Store) flashKey(sessionID, namespace string) string {
	return s.prefix + ":f:" + namespace + ":" + sessionID
}

// SaveMarker persists rec for sessionID, replacing any previous marker.
func (s *Store) SaveMarker(ctx context.Context, sessionID string, rec *Record) error {
	if err := s.redis.Set(ctx, s.markerKey(sessionID), encodeRecord(rec), s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// LoadMarker returns the marker for sessionID, or (nil, nil) when none is
// stored. Backend failures and corrupt records are distinct errors.
func (s *Store) LoadMarker(ctx context.Context, sessionID string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.markerKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return decodeRecord(data)
}

// ClearMarker removes the marker for sessionID. Idempotent.
func (s *Store) ClearMarker(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.markerKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// EnqueueFlash appends message under (sessionID, namespace). The queue
// expires with the session TTL if never drained.
func (s *Store) EnqueueFlash(ctx context.Context, sessionID, namespace, message string) error {
	key := s.flashKey(sessionID, namespace)

	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// DrainFlash atomically takes and clears every message under
// (sessionID, namespace), in enqueue order. A drained message is never
// returned again.
func (s *Store) DrainFlash(ctx context.Context, sessionID, namespace string) ([]string, error) {
	res, err := drainFlashLua.Run(ctx, s.redis, []string{s.flashKey(sessionID, namespace)}).StringSlice()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return res, nil
}

func encodeRecord(rec *Record) string {
	return strconv.FormatInt(rec.IssuedAt.Unix(), 10) + " " + rec.UserID
}

func decodeRecord(data string) (*Record, error) {
	issued, userID, ok := strings.Cut(data, " ")
	if !ok || userID == "" {
		return nil, ErrMarkerCorrupt
	}

	unix, err := strconv.ParseInt(issued, 10, 64)
	if err != nil {
		return nil, ErrMarkerCorrupt
	}

	return &Record{
		UserID:   userID,
		IssuedAt: time.Unix(unix, 0),
	}, nil
}
