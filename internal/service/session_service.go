package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dapodiksmk/siswa-web/internal/model"
)

// ErrSessionNotFound is returned when a session ID has no backing state,
// either because it expired or because it was destroyed by logout.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// Session is the per-request session state. It holds at most one
// authenticated user and a queue of one-shot flash messages. Handlers
// receive it explicitly through the request context rather than reading
// ambient state.
type Session struct {
	ID      string      `json:"-"`
	User    *model.User `json:"user,omitempty"`
	Flashes []string    `json:"flashes,omitempty"`

	dirty bool
	fresh bool
}

// Authenticated reports whether a user is attached to the session.
func (s *Session) Authenticated() bool {
	return s.User != nil
}

// SetUser attaches the full matched user document to the session.
func (s *Session) SetUser(u *model.User) {
	s.User = u
	s.dirty = true
}

// AddFlash queues a one-shot message for the next rendered page.
func (s *Session) AddFlash(msg string) {
	s.Flashes = append(s.Flashes, msg)
	s.dirty = true
}

// PopFlashes returns the queued messages and clears the queue.
func (s *Session) PopFlashes() []string {
	msgs := s.Flashes
	if len(msgs) > 0 {
		s.Flashes = nil
		s.dirty = true
	}
	return msgs
}

// Dirty reports whether the session has unsaved mutations.
func (s *Session) Dirty() bool { return s.dirty }

// Fresh reports whether the session was created for this request and has
// never been persisted.
func (s *Session) Fresh() bool { return s.fresh }

// SessionService stores sessions in Redis as JSON documents with a
// sliding TTL.
type SessionService struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionService creates a new SessionService.
func NewSessionService(rdb *redis.Client, ttl time.Duration) *SessionService {
	return &SessionService{rdb: rdb, ttl: ttl}
}

// New creates an anonymous session. Nothing is written to Redis until the
// session is mutated and saved.
func (s *SessionService) New() *Session {
	return &Session{
		ID:    uuid.New().String(),
		fresh: true,
	}
}

// Get loads a session by ID. Returns ErrSessionNotFound for expired or
// destroyed sessions.
func (s *SessionService) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess := &Session{ID: id}
	if err := json.Unmarshal([]byte(raw), sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Save persists the session and resets the inactivity window.
func (s *SessionService) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	sess.dirty = false
	sess.fresh = false
	return nil
}

// Touch refreshes the inactivity window of a persisted session without
// rewriting its contents.
func (s *SessionService) Touch(ctx context.Context, sess *Session) error {
	if sess.fresh {
		return nil
	}
	return s.rdb.Expire(ctx, sessionKeyPrefix+sess.ID, s.ttl).Err()
}

// Destroy removes the session state. Destroying an already-missing
// session is not an error.
func (s *SessionService) Destroy(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

// TTL returns the configured inactivity window.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
