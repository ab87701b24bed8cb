package container

import (
	"fmt"
	"net/http"

	"go-posture-inspector/internal/analyzer"
	"go-posture-inspector/internal/config"
	"go-posture-inspector/internal/factory"
	"go-posture-inspector/internal/logger"
	"go-posture-inspector/internal/observer"
	"go-posture-inspector/internal/repository"
	"go-posture-inspector/internal/service"
	"go-posture-inspector/internal/transport"
	thresholds "go-posture-inspector/pkg/config"
)

// Container holds all application dependencies
type Container struct {
	config                 *config.Config
	sessionRepository      *repository.SessionStore
	workerPool             *analyzer.WorkerPool
	metrics                *observer.MetricsObserver
	postureAnalysisService service.PostureAnalysisService
	handler                http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	var overrides *thresholds.ThresholdOverrides
	if cfg.ThresholdsFile != "" {
		o, err := thresholds.LoadThresholdOverrides(cfg.ThresholdsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load thresholds: %w", err)
		}
		overrides = o
	}

	// Build dependency graph
	analyzerFactory := factory.NewAnalyzerFactory(cfg.SmoothingWindow, overrides)
	if _, err := analyzerFactory.ResolveOptions(analyzer.PresetDefault, 0); err != nil {
		return nil, err
	}

	sessionRepository := repository.NewSessionStore(cfg.SessionIdleTTL, cfg.MaxSessions,
		repository.WithLogger(logger.Logger))

	workerPool := analyzer.NewWorkerPool(cfg.BatchWorkers)
	workerPool.Start()
	logger.WithField("workers", workerPool.Workers()).Info("Batch worker pool started")

	metrics := observer.NewMetricsObserver()
	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	postureAnalysisService := service.NewPostureAnalysisService(
		sessionRepository,
		analyzerFactory,
		workerPool,
		publisher,
		metrics,
		logger.Logger,
	)
	handler := transport.NewHandler(postureAnalysisService, cfg)

	return &Container{
		config:                 cfg,
		sessionRepository:      sessionRepository,
		workerPool:             workerPool,
		metrics:                metrics,
		postureAnalysisService: postureAnalysisService,
		handler:                handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the posture analysis service
func (c *Container) Service() service.PostureAnalysisService {
	return c.postureAnalysisService
}

// Close stops background workers
func (c *Container) Close() {
	c.sessionRepository.Close()
	c.workerPool.Close()
}
