package analyzer

import (
	"go-posture-inspector/pkg/models"
	"go-posture-inspector/pkg/validation"
)

// AnalysisResult is an alias to the shared models.AnalysisResult
type AnalysisResult = models.AnalysisResult

// FrameAnalysis carries a result together with the data it was derived from
type FrameAnalysis struct {
	Result   models.AnalysisResult
	Features models.FeatureSet
	Checks   []validation.CheckOutcome
	Issues   []validation.PostureIssue
	// Usable is false when the frame short-circuited to an unknown result
	Usable bool
}
