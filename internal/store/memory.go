package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-widget/internal/metrics"
	"github.com/i474232898/weather-widget/internal/widget"
)

var (
	// ErrNotFound is returned when no live session exists for an id.
	ErrNotFound = errors.New("no widget session for id")
)

// WidgetFactory builds the widget for a new session.
type WidgetFactory func(sessionID string) *widget.Widget

// Session is one visitor's widget.
type Session struct {
	ID      string
	Widget  *widget.Widget
	Created time.Time

	lastSeen time.Time // guarded by MemoryStore.mu
}

// MemoryStore is a concurrency-safe in-memory set of widget sessions.
type MemoryStore struct {
	mu sync.Mutex

	// key: session id
	data map[string]*Session

	// retention configuration
	maxSessions int           // max live sessions (0 = unlimited)
	maxAge      time.Duration // idle time after which a session expires (0 = never)

	newWidget WidgetFactory
	now       func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxSessions is <= 0, it is treated as unlimited.
func NewMemoryStore(maxSessions int, maxAge time.Duration, factory WidgetFactory) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*Session),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		newWidget:   factory,
		now:         time.Now,
	}
}

// Get returns the live session for id and marks it as seen.
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		s.remove(id)
		return nil, ErrNotFound
	}
	sess.lastSeen = now
	return sess, nil
}

// Create starts a new session, evicting the least recently seen one when
// the store is full.
func (s *MemoryStore) Create() *Session {
	id := uuid.NewString()
	w := s.newWidget(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &Session{ID: id, Widget: w, Created: now, lastSeen: now}

	// Enforce retention by count.
	for s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		s.remove(s.oldest())
	}

	s.data[id] = sess
	metrics.ActiveSessions.Set(float64(len(s.data)))
	return sess
}

// GetOrCreate returns the session for id, or a new one when id is unknown
// or expired.
func (s *MemoryStore) GetOrCreate(id string) (sess *Session, created bool) {
	if id != "" {
		if sess, err := s.Get(id); err == nil {
			return sess, false
		}
	}
	return s.Create(), true
}

// Sweep removes sessions idle for longer than maxAge and returns how many
// were removed.
func (s *MemoryStore) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.data {
		if s.expired(sess, now) {
			s.remove(id)
			removed++
		}
	}
	return removed
}

// Len returns the number of sessions held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *MemoryStore) expired(sess *Session, now time.Time) bool {
	if s.maxAge <= 0 {
		return false
	}
	return now.Sub(sess.lastSeen) > s.maxAge
}

func (s *MemoryStore) oldest() string {
	var (
		id   string
		seen time.Time
	)
	for k, sess := range s.data {
		if id == "" || sess.lastSeen.Before(seen) {
			id, seen = k, sess.lastSeen
		}
	}
	return id
}

// remove must be called with s.mu held.
func (s *MemoryStore) remove(id string) {
	if _, ok := s.data[id]; !ok {
		return
	}
	delete(s.data, id)
	metrics.SessionsEvicted.Inc()
	metrics.ActiveSessions.Set(float64(len(s.data)))
}
