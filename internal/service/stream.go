package service

import (
	"context"
	"sync/atomic"

	"go-posture-inspector/internal/analyzer"
	"go-posture-inspector/pkg/models"
)

type contextKey string

// RequestIDKey is the context key under which transport stores the request ID
const RequestIDKey contextKey = "request_id"

// Stream is an engine bound to one connection. It is not registered in the
// session repository and is discarded with the connection.
type Stream struct {
	service *postureAnalysisService
	engine  analyzer.PostureAnalyzer
	id      string
	frames  atomic.Int64
}

// Analyze validates and analyzes the next frame of the stream
func (st *Stream) Analyze(ctx context.Context, req models.FrameRequest) (*models.AnalysisResult, error) {
	analysis, err := st.service.analyze(ctx, st.engine, st.id, req)
	if err != nil {
		return nil, err
	}
	st.frames.Add(1)
	return &analysis.Result, nil
}

// Reset drops the stream's smoothing history
func (st *Stream) Reset() {
	st.engine.Reset()
}

// Options returns the stream's analysis options
func (st *Stream) Options() analyzer.AnalysisOptions {
	return st.engine.Options()
}

// Frames returns the number of frames analyzed on this stream
func (st *Stream) Frames() int64 {
	return st.frames.Load()
}

// ID returns the stream identifier used in events
func (st *Stream) ID() string {
	return st.id
}
