package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	model "github.com/trainloop/fitcoach/internal/model/session"
)

// ErrSessionNotFound reports an absent or already-ended session id.
var ErrSessionNotFound = errors.New("session not found")

// Store owns all session records. Sessions live only in memory: a session
// present in the store is always active, and ending one removes it.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session

	maxSessions int
	ttl         time.Duration
}

// Option customizes store construction.
type Option func(*Store)

// WithMaxSessions caps the store; creating past the cap evicts the oldest
// session first. Zero means unbounded.
func WithMaxSessions(n int) Option {
	return func(s *Store) { s.maxSessions = n }
}

// WithTTL sets the idle lifetime enforced by the sweeper. Zero disables
// TTL eviction.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// NewStore bootstraps the in-memory session store.
func NewStore(opts ...Option) *Store {
	s := &Store{sessions: make(map[string]*model.Session)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create provisions an active session with an empty transcript.
func (s *Store) Create(_ context.Context, kind model.Kind, sessionContext map[string]string) (model.Session, error) {
	sess := &model.Session{
		ID:         uuid.NewString(),
		Kind:       kind,
		StartTime:  time.Now().UTC(),
		Active:     true,
		Transcript: make([]model.Entry, 0, 16),
		Context:    cloneContext(sessionContext),
	}

	s.mu.Lock()
	if s.maxSessions > 0 {
		for len(s.sessions) >= s.maxSessions {
			s.evictOldestLocked()
		}
	}
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return snapshot(sess), nil
}

// Get retrieves a session by identifier.
func (s *Store) Get(_ context.Context, id string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}
	return snapshot(sess), nil
}

// AppendMessage appends a transcript entry in call order and returns the
// updated record. Targets that were never created or already ended fail
// with ErrSessionNotFound; the append never silently succeeds.
func (s *Store) AppendMessage(_ context.Context, id string, role model.Role, content string) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}

	sess.Transcript = append(sess.Transcript, model.Entry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	return snapshot(sess), nil
}

// End removes the session and hands the last known value out. The removal
// is the terminal transition: a second End on the same id reports absence.
func (s *Store) End(_ context.Context, id string) (model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, false
	}
	delete(s.sessions, id)

	final := snapshot(sess)
	final.Active = false
	return final, true
}

// ListActive returns every stored session, oldest first.
func (s *Store) ListActive(_ context.Context) []model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, snapshot(sess))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

// EndAll removes every session and returns how many were ended.
func (s *Store) EndAll(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.sessions)
	s.sessions = make(map[string]*model.Session)
	return n
}

// Len reports the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.StartTime.Before(oldest) {
			oldestID = id
			oldest = sess.StartTime
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

// snapshot copies the record so callers never retain references into the
// store-owned state.
func snapshot(sess *model.Session) model.Session {
	out := *sess
	out.Transcript = append([]model.Entry(nil), sess.Transcript...)
	out.Context = cloneContext(sess.Context)
	return out
}

func cloneContext(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
