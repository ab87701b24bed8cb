package analyzer

import (
	"sync"
	"time"

	"go-posture-inspector/pkg/landmark"
	"go-posture-inspector/pkg/models"
	"go-posture-inspector/pkg/validation"
)

// Engine implements PostureAnalyzer for a single landmark stream.
// Smoothing history is per engine, so independent streams need their own.
type Engine struct {
	mu        sync.Mutex
	options   AnalysisOptions
	smoother  *Smoother
	extractor FeatureExtractor
	validator *validation.PostureValidator
}

// NewEngine creates a new posture engine with the given options
func NewEngine(options AnalysisOptions) *Engine {
	if options.WindowSize < 1 {
		options.WindowSize = DefaultWindowSize
	}
	return &Engine{
		options:   options,
		smoother:  NewSmoother(options.WindowSize),
		extractor: NewFeatureExtractor(),
		validator: validation.NewPostureValidatorWithThresholds(options.Thresholds),
	}
}

// Analyze performs posture analysis of one frame
func (e *Engine) Analyze(frame landmark.Frame) models.AnalysisResult {
	return e.AnalyzeDetailed(frame).Result
}

// AnalyzeDetailed performs posture analysis and keeps the intermediate data
func (e *Engine) AnalyzeDetailed(frame landmark.Frame) FrameAnalysis {
	start := time.Now()

	if !ValidateFrame(frame) {
		result := UnknownResult()
		result.Timestamp = start
		result.ProcessingTimeSec = time.Since(start).Seconds()
		return FrameAnalysis{Result: result}
	}

	body, regime := frame.BodyForAnalysis()

	e.mu.Lock()
	smoothedBody := e.smoother.Smooth(body, SourceBody)
	smoothedFace := e.smoother.Smooth(frame.Face, SourceFace)
	e.mu.Unlock()

	features := e.extractor.Extract(smoothedBody, regime, smoothedFace)
	c := e.validator.Classify(features)

	result := models.AnalysisResult{
		Status:       c.Status,
		Confidence:   c.Confidence,
		Issues:       e.validator.ConvertIssuesToMessages(c.Issues),
		Details:      c.Details,
		Metrics:      buildMetrics(features),
		Regime:       regime,
		ChecksPassed: c.Passed,
		ChecksTotal:  c.Total,
		Timestamp:    start,
	}
	result.ProcessingTimeSec = time.Since(start).Seconds()

	return FrameAnalysis{
		Result:   result,
		Features: features,
		Checks:   c.Checks,
		Issues:   c.Issues,
		Usable:   true,
	}
}

// Reset drops smoothing history, e.g. after the stream was interrupted
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.smoother.Reset()
}

// Options returns the options the engine was built with
func (e *Engine) Options() AnalysisOptions {
	return e.options
}

// BufferedFrames returns how many frames are held for source
func (e *Engine) BufferedFrames(source Source) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.smoother.Len(source)
}

// ValidateFrame reports whether a frame has both pose and face landmarks
func ValidateFrame(frame landmark.Frame) bool {
	return frame.Usable()
}

// UnknownResult is the result for frames without usable landmarks
func UnknownResult() models.AnalysisResult {
	return models.AnalysisResult{
		Status:     models.StatusUnknown,
		Confidence: 0,
		Issues:     []string{validation.MessageUndetected},
	}
}

// buildMetrics collects the diagnostics whose computation succeeded
func buildMetrics(f models.FeatureSet) *models.PostureMetrics {
	m := &models.PostureMetrics{
		NeckAngleDegrees: f.NeckAngleDeg,
	}
	if f.Regime.Metric() && f.WidthAvailable {
		m.ShoulderWidth = models.Float(f.ShoulderWidth)
	}
	if f.ProtractionEvaluated && f.ProtractionDepth != nil {
		m.ShoulderZDiff = models.Float(*f.ProtractionDepth)
	}
	if f.ShoulderHeightRatio != nil {
		m.ShoulderHeightDiff = models.Float(*f.ShoulderHeightRatio * 100)
	}
	if f.HeadForwardRatio != nil {
		m.HeadForwardDistance = models.Float(*f.HeadForwardRatio * 100)
	}
	return m
}
