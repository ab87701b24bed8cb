package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-posture-inspector/internal/analyzer"
)

// SessionStore implements SessionRepository in memory. Sessions idle for
// longer than the TTL are evicted by a janitor goroutine.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time
	logger      *logrus.Logger

	closed bool
	stop   chan struct{}
	done   chan struct{}
}

// StoreOption configures a SessionStore
type StoreOption func(*SessionStore)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) StoreOption {
	return func(s *SessionStore) {
		s.now = now
	}
}

// WithLogger sets the logger used for eviction messages
func WithLogger(logger *logrus.Logger) StoreOption {
	return func(s *SessionStore) {
		s.logger = logger
	}
}

// NewSessionStore creates a store and starts its janitor. maxSessions <= 0
// means unlimited.
func NewSessionStore(idleTTL time.Duration, maxSessions int, opts ...StoreOption) *SessionStore {
	s := &SessionStore{
		sessions:    make(map[string]*Session),
		idleTTL:     idleTTL,
		maxSessions: maxSessions,
		now:         time.Now,
		logger:      logrus.StandardLogger(),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if idleTTL > 0 {
		go s.janitor(janitorInterval(idleTTL))
	} else {
		close(s.done)
	}
	return s
}

func janitorInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	if interval > time.Minute {
		interval = time.Minute
	}
	return interval
}

// Create registers a new session owning engine
func (s *SessionStore) Create(ctx context.Context, engine analyzer.PostureAnalyzer) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrRepositoryClosed
	}
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return nil, ErrSessionLimitReached
	}

	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		Engine:    engine,
		CreatedAt: now,
	}
	session.Touch(now)
	s.sessions[session.ID] = session
	return session, nil
}

// Get returns a live session and refreshes its idle timer
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	session.Touch(s.now())
	return session, nil
}

// Delete drops a session
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Count returns the number of live sessions
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictIdle removes sessions idle for longer than the TTL and returns how
// many were removed
func (s *SessionStore) EvictIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, session := range s.sessions {
		if session.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *SessionStore) janitor(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.EvictIdle(); n > 0 {
				s.logger.WithFields(logrus.Fields{
					"evicted":  n,
					"idle_ttl": s.idleTTL.String(),
				}).Info("Evicted idle sessions")
			}
		}
	}
}

// Close stops the janitor and rejects new sessions. It is safe to call twice.
func (s *SessionStore) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.stop)
	<-s.done
}
