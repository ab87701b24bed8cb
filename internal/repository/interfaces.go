package repository

import (
	"context"
	"sync/atomic"
	"time"

	"go-posture-inspector/internal/analyzer"
)

// SessionRepository defines the interface for client stream sessions
type SessionRepository interface {
	// Create registers a new session owning the given engine
	Create(ctx context.Context, engine analyzer.PostureAnalyzer) (*Session, error)

	// Get returns a live session and marks it as recently used
	Get(ctx context.Context, id string) (*Session, error)

	// Delete drops a session and its smoothing history
	Delete(ctx context.Context, id string) error

	// Count returns the number of live sessions
	Count() int

	// Close stops background eviction
	Close()
}

// Session is one client stream with its own engine
type Session struct {
	ID        string
	Engine    analyzer.PostureAnalyzer
	CreatedAt time.Time

	lastSeen atomic.Int64
	frames   atomic.Int64
}

// LastSeen returns when the session was last used
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Touch marks the session as used at t
func (s *Session) Touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

// RecordFrame counts an analyzed frame and returns the new total
func (s *Session) RecordFrame() int64 {
	return s.frames.Add(1)
}

// Frames returns the number of frames analyzed in this session
func (s *Session) Frames() int64 {
	return s.frames.Load()
}
