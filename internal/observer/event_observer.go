package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-posture-inspector/pkg/models"
)

// AnalysisEvent represents a posture analysis event
type AnalysisEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	SessionID      string                 `json:"session_id,omitempty"`
	RequestID      string                 `json:"request_id,omitempty"`
	Status         models.Status          `json:"status,omitempty"`
	Confidence     float64                `json:"confidence,omitempty"`
	Issues         []string               `json:"issues,omitempty"`
	Critical       bool                   `json:"critical,omitempty"` // an error-severity check failed
	ProcessingTime time.Duration          `json:"processing_time"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of analysis event
type EventType string

const (
	// SessionCreated when a client stream is opened
	SessionCreated EventType = "session_created"
	// SessionClosed when a client stream is closed
	SessionClosed EventType = "session_closed"
	// FrameAnalyzed when a frame produced a result
	FrameAnalyzed EventType = "frame_analyzed"
	// FrameRejected when a frame failed request validation
	FrameRejected EventType = "frame_rejected"
	// BatchCompleted when a batch request finished
	BatchCompleted EventType = "batch_completed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event AnalysisEvent)
}

// LoggingObserver logs analysis events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"processing_time": event.ProcessingTime,
	}
	if event.SessionID != "" {
		fields["session_id"] = event.SessionID
	}
	if event.RequestID != "" {
		fields["request_id"] = event.RequestID
	}
	if event.Status != "" {
		fields["status"] = event.Status
		fields["confidence"] = event.Confidence
	}
	if len(event.Issues) > 0 {
		fields["issues"] = event.Issues
	}
	if event.Critical {
		fields["critical"] = true
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case SessionCreated:
		entry.Info("Session created")
	case SessionClosed:
		entry.Info("Session closed")
	case FrameAnalyzed:
		if event.Critical {
			entry.Info("Frame analyzed with critical issues")
		} else {
			entry.Debug("Frame analyzed")
		}
	case FrameRejected:
		entry.Warn("Frame rejected")
	case BatchCompleted:
		entry.Info("Batch analysis completed")
	default:
		entry.Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from analysis events
type MetricsObserver struct {
	mu                  sync.RWMutex
	sessionsCreated     int64
	sessionsClosed      int64
	framesAnalyzed      int64
	framesRejected      int64
	criticalFrames      int64
	batches             int64
	statusCounts        map[models.Status]int64
	issueCounts         map[string]int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		statusCounts: make(map[models.Status]int64),
		issueCounts:  make(map[string]int64),
	}
}

// OnEvent handles analysis events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case SessionCreated:
		o.sessionsCreated++
	case SessionClosed:
		o.sessionsClosed++
	case FrameAnalyzed:
		o.framesAnalyzed++
		if event.Critical {
			o.criticalFrames++
		}
		o.statusCounts[event.Status]++
		for _, issue := range event.Issues {
			o.issueCounts[issue]++
		}
		o.totalProcessingTime += event.ProcessingTime
	case FrameRejected:
		o.framesRejected++
	case BatchCompleted:
		o.batches++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// Metrics is a snapshot of MetricsObserver counters
type Metrics struct {
	SessionsCreated   int64                   `json:"sessions_created"`
	SessionsClosed    int64                   `json:"sessions_closed"`
	FramesAnalyzed    int64                   `json:"frames_analyzed"`
	FramesRejected    int64                   `json:"frames_rejected"`
	CriticalFrames    int64                   `json:"critical_frames"`
	Batches           int64                   `json:"batches"`
	StatusCounts      map[models.Status]int64 `json:"status_counts"`
	IssueCounts       map[string]int64        `json:"issue_counts"`
	AvgProcessingTime time.Duration           `json:"avg_processing_time_ns"`
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() Metrics {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.framesAnalyzed > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.framesAnalyzed)
	}

	m := Metrics{
		SessionsCreated:   o.sessionsCreated,
		SessionsClosed:    o.sessionsClosed,
		FramesAnalyzed:    o.framesAnalyzed,
		FramesRejected:    o.framesRejected,
		CriticalFrames:    o.criticalFrames,
		Batches:           o.batches,
		StatusCounts:      make(map[models.Status]int64, len(o.statusCounts)),
		IssueCounts:       make(map[string]int64, len(o.issueCounts)),
		AvgProcessingTime: avgProcessingTime,
	}
	for k, v := range o.statusCounts {
		m.StatusCounts[k] = v
	}
	for k, v := range o.issueCounts {
		m.IssueCounts[k] = v
	}
	return m
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu          sync.RWMutex
	observers   []Observer
	synchronous bool
}

// NewEventPublisher creates a publisher that notifies observers concurrently
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// NewSyncEventPublisher creates a publisher that notifies observers in order
// on the caller's goroutine
func NewSyncEventPublisher() *EventPublisher {
	p := NewEventPublisher()
	p.synchronous = true
	return p
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event AnalysisEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		if p.synchronous {
			notify(ctx, observer, event)
			continue
		}
		go notify(ctx, observer, event)
	}
}

func notify(ctx context.Context, obs Observer, event AnalysisEvent) {
	defer func() {
		if r := recover(); r != nil {
			// Log panic but don't crash the application
			logrus.WithField("observer", obs.GetObserverName()).
				WithField("panic", r).
				Error("Observer panicked while handling event")
		}
	}()
	obs.OnEvent(ctx, event)
}
