package analyzer

import (
	"go-posture-inspector/pkg/landmark"
	"go-posture-inspector/pkg/models"
)

// PostureAnalyzer defines the main interface for posture analysis of one stream
type PostureAnalyzer interface {
	// Analyze runs one frame through validation, smoothing, feature
	// extraction and classification.
	Analyze(frame landmark.Frame) models.AnalysisResult

	// AnalyzeDetailed is Analyze plus the intermediate features and checks
	AnalyzeDetailed(frame landmark.Frame) FrameAnalysis

	// Reset drops smoothing history
	Reset()

	Options() AnalysisOptions
}

// FeatureExtractor handles posture feature computation
type FeatureExtractor interface {
	Extract(body landmark.Set, regime landmark.Regime, face landmark.Set) models.FeatureSet
}
