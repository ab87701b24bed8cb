package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-posture-inspector/internal/analyzer"
	apperrors "go-posture-inspector/internal/errors"
	"go-posture-inspector/internal/factory"
	"go-posture-inspector/internal/observer"
	"go-posture-inspector/internal/repository"
	"go-posture-inspector/pkg/models"
	"go-posture-inspector/pkg/services"
	"go-posture-inspector/pkg/validation"
)

// PostureAnalysisService defines session, streaming and batch posture analysis
type PostureAnalysisService interface {
	// Session lifecycle
	CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.SessionResponse, error)
	CloseSession(ctx context.Context, sessionID string) error

	// Per-frame analysis on a session
	AnalyzeFrame(ctx context.Context, sessionID string, req models.FrameRequest) (*models.AnalysisResult, error)
	AnalyzeFrameDetailed(ctx context.Context, sessionID string, req models.FrameRequest) (*models.DetailedAnalysisResponse, error)

	// OpenStream creates an engine owned by a single connection
	OpenStream(ctx context.Context, req models.CreateSessionRequest) (*Stream, error)

	// AnalyzeBatch replays independent recorded streams concurrently
	AnalyzeBatch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error)

	Stats() models.StatsResponse
}

// postureAnalysisService implements PostureAnalysisService
type postureAnalysisService struct {
	sessions  repository.SessionRepository
	factory   factory.AnalyzerFactory
	validator *validation.FrameValidator
	detailed  *services.DetailedAnalysisService
	pool      *analyzer.WorkerPool
	publisher observer.Subject
	metrics   *observer.MetricsObserver
	logger    *logrus.Logger
}

// NewPostureAnalysisService creates a new posture analysis service. The pool
// must be started; it is shared by all batch requests.
func NewPostureAnalysisService(
	sessions repository.SessionRepository,
	analyzerFactory factory.AnalyzerFactory,
	pool *analyzer.WorkerPool,
	publisher observer.Subject,
	metrics *observer.MetricsObserver,
	logger *logrus.Logger,
) PostureAnalysisService {
	return &postureAnalysisService{
		sessions:  sessions,
		factory:   analyzerFactory,
		validator: validation.NewFrameValidator(),
		detailed:  services.NewDetailedAnalysisService(),
		pool:      pool,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreateSession opens a new analysis stream with its own engine
func (s *postureAnalysisService) CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.SessionResponse, error) {
	engine, err := s.factory.CreateAnalyzer(req.Preset, req.WindowSize)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid session options", err)
	}

	session, err := s.sessions.Create(ctx, engine)
	if err != nil {
		if errors.Is(err, repository.ErrSessionLimitReached) {
			return nil, apperrors.NewRateLimitedError("too many open sessions", err)
		}
		s.logger.WithError(err).Error("Failed to create session")
		return nil, apperrors.NewInternalError("failed to create session", err)
	}

	opts := engine.Options()
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.SessionCreated,
		SessionID: session.ID,
		Metadata: map[string]interface{}{
			"preset":      opts.Preset,
			"window_size": opts.WindowSize,
		},
	})

	return &models.SessionResponse{
		SessionID:  session.ID,
		Preset:     opts.Preset,
		WindowSize: opts.WindowSize,
		CreatedAt:  session.CreatedAt.Format(time.RFC3339),
	}, nil
}

// CloseSession drops a session and its history
func (s *postureAnalysisService) CloseSession(ctx context.Context, sessionID string) error {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return s.sessionError(sessionID, err)
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.SessionClosed,
		SessionID: sessionID,
		Metadata:  map[string]interface{}{"frames": session.Frames()},
	})
	return nil
}

// AnalyzeFrame runs one frame through the session's engine
func (s *postureAnalysisService) AnalyzeFrame(ctx context.Context, sessionID string, req models.FrameRequest) (*models.AnalysisResult, error) {
	analysis, _, err := s.analyzeOnSession(ctx, sessionID, req)
	if err != nil {
		return nil, err
	}
	return &analysis.Result, nil
}

// AnalyzeFrameDetailed is AnalyzeFrame plus the per-check breakdown
func (s *postureAnalysisService) AnalyzeFrameDetailed(ctx context.Context, sessionID string, req models.FrameRequest) (*models.DetailedAnalysisResponse, error) {
	analysis, session, err := s.analyzeOnSession(ctx, sessionID, req)
	if err != nil {
		return nil, err
	}
	return s.detailed.BuildResponse(analysis, session.Engine.Options()), nil
}

func (s *postureAnalysisService) analyzeOnSession(ctx context.Context, sessionID string, req models.FrameRequest) (analyzer.FrameAnalysis, *repository.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return analyzer.FrameAnalysis{}, nil, err
	}

	analysis, err := s.analyze(ctx, session.Engine, sessionID, req)
	if err != nil {
		return analyzer.FrameAnalysis{}, nil, err
	}
	session.RecordFrame()
	return analysis, session, nil
}

// analyze validates a frame and runs it through engine
func (s *postureAnalysisService) analyze(ctx context.Context, engine analyzer.PostureAnalyzer, streamID string, req models.FrameRequest) (analyzer.FrameAnalysis, error) {
	if err := s.validator.ValidateFrame(req); err != nil {
		s.publish(ctx, observer.AnalysisEvent{
			EventType:    observer.FrameRejected,
			SessionID:    streamID,
			ErrorMessage: err.Error(),
		})
		return analyzer.FrameAnalysis{}, err
	}

	analysis := engine.AnalyzeDetailed(req.ToFrame())

	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.FrameAnalyzed,
		SessionID:      streamID,
		Status:         analysis.Result.Status,
		Confidence:     analysis.Result.Confidence,
		Issues:         analysis.Result.Issues,
		Critical:       validation.HasCriticalIssues(analysis.Issues),
		ProcessingTime: time.Duration(analysis.Result.ProcessingTimeSec * float64(time.Second)),
	})
	return analysis, nil
}

// OpenStream creates a connection-bound stream
func (s *postureAnalysisService) OpenStream(ctx context.Context, req models.CreateSessionRequest) (*Stream, error) {
	engine, err := s.factory.CreateAnalyzer(req.Preset, req.WindowSize)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid stream options", err)
	}
	return &Stream{service: s, engine: engine, id: uuid.NewString()}, nil
}

// AnalyzeBatch replays every stream on a fresh engine. Streams run
// concurrently on the worker pool; frames within a stream stay in order.
func (s *postureAnalysisService) AnalyzeBatch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error) {
	start := time.Now()

	if len(req.Streams) == 0 {
		return nil, apperrors.NewValidationError("at least one stream is required", nil)
	}
	if _, err := s.factory.ResolveOptions(req.Preset, 0); err != nil {
		return nil, apperrors.NewValidationError("invalid batch options", err)
	}
	seen := make(map[string]struct{}, len(req.Streams))
	for _, stream := range req.Streams {
		if stream.ID == "" {
			continue
		}
		if _, dup := seen[stream.ID]; dup {
			return nil, apperrors.NewConflictError(fmt.Sprintf("duplicate stream id %q", stream.ID), nil)
		}
		seen[stream.ID] = struct{}{}
	}

	results := make([]models.StreamResult, len(req.Streams))
	var wg sync.WaitGroup
	for i, stream := range req.Streams {
		wg.Add(1)
		submitted := s.pool.Submit(func() {
			defer wg.Done()
			results[i] = s.replayStream(ctx, req.Preset, stream)
		})
		if !submitted {
			wg.Done()
			wg.Wait()
			return nil, apperrors.NewInternalError("worker pool is closed", nil)
		}
	}
	// The pool is shared between requests, so wait on this batch only
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError("batch analysis canceled", err)
	}

	response := &models.BatchResponse{
		Streams:           results,
		ProcessingTimeSec: time.Since(start).Seconds(),
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.BatchCompleted,
		ProcessingTime: time.Since(start),
		Metadata:       map[string]interface{}{"streams": len(results)},
	})
	return response, nil
}

func (s *postureAnalysisService) replayStream(ctx context.Context, preset string, in models.StreamInput) models.StreamResult {
	out := models.StreamResult{ID: in.ID}

	if err := s.validator.ValidateStream(in.Frames); err != nil {
		out.Error = err.Error()
		out.Summary = Summarize(nil)
		return out
	}

	engine, err := s.factory.CreateAnalyzer(preset, 0)
	if err != nil {
		out.Error = err.Error()
		out.Summary = Summarize(nil)
		return out
	}

	out.Results = make([]models.AnalysisResult, 0, len(in.Frames))
	for _, frame := range in.Frames {
		if ctx.Err() != nil {
			out.Error = "canceled"
			break
		}
		analysis, err := s.analyze(ctx, engine, in.ID, frame)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"stream_id": in.ID,
				"frame":     len(out.Results),
			}).WithError(err).Warn("Stream replay stopped")
			out.Error = err.Error()
			break
		}
		out.Results = append(out.Results, analysis.Result)
	}
	out.Summary = Summarize(out.Results)
	return out
}

// Stats returns service counters
func (s *postureAnalysisService) Stats() models.StatsResponse {
	stats := models.StatsResponse{
		ActiveSessions: s.sessions.Count(),
	}
	if s.metrics != nil {
		m := s.metrics.GetMetrics()
		stats.SessionsCreated = m.SessionsCreated
		stats.FramesAnalyzed = m.FramesAnalyzed
		stats.FramesRejected = m.FramesRejected
		stats.CriticalFrames = m.CriticalFrames
		stats.Batches = m.Batches
		stats.StatusCounts = m.StatusCounts
		stats.IssueCounts = m.IssueCounts
		stats.AvgProcessingTimeSec = m.AvgProcessingTime.Seconds()
	}
	if s.pool != nil {
		ps := s.pool.GetStats()
		stats.BatchWorkers = ps.Workers
		stats.BatchJobsCompleted = ps.CompletedJobs
	}
	return stats
}

func (s *postureAnalysisService) getSession(ctx context.Context, sessionID string) (*repository.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, s.sessionError(sessionID, err)
	}
	return session, nil
}

func (s *postureAnalysisService) sessionError(sessionID string, err error) error {
	if errors.Is(err, repository.ErrSessionNotFound) {
		return apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID), err)
	}
	return apperrors.NewInternalError("session lookup failed", err)
}

func (s *postureAnalysisService) publish(ctx context.Context, event observer.AnalysisEvent) {
	if s.publisher == nil {
		return
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		event.RequestID = id
	}
	s.publisher.NotifyObservers(ctx, event)
}
