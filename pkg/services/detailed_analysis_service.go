package services

import (
	"fmt"

	"go-posture-inspector/internal/analyzer"
	"go-posture-inspector/pkg/models"
	"go-posture-inspector/pkg/validation"
)

// DetailedAnalysisService turns a frame analysis into a per-check breakdown
type DetailedAnalysisService struct{}

// NewDetailedAnalysisService creates a new detailed analysis service
func NewDetailedAnalysisService() *DetailedAnalysisService {
	return &DetailedAnalysisService{}
}

// BuildResponse assembles the detailed response for one analyzed frame
func (s *DetailedAnalysisService) BuildResponse(analysis analyzer.FrameAnalysis, options analyzer.AnalysisOptions) *models.DetailedAnalysisResponse {
	th := options.Thresholds

	response := &models.DetailedAnalysisResponse{
		Result:     analysis.Result,
		Features:   analysis.Features,
		Thresholds: s.appliedThresholds(options),
		Checks:     make([]models.CheckResult, 0, len(analysis.Checks)),
		Warnings:   make([]string, 0),
	}

	if !analysis.Usable {
		response.Warnings = append(response.Warnings, validation.MessageUndetected)
		return response
	}

	for _, check := range analysis.Checks {
		response.Checks = append(response.Checks, s.describeCheck(check, th))
	}
	response.Warnings = append(response.Warnings, s.warnings(analysis.Features)...)

	return response
}

func (s *DetailedAnalysisService) appliedThresholds(options analyzer.AnalysisOptions) models.AppliedThresholds {
	th := options.Thresholds
	return models.AppliedThresholds{
		MaxShoulderHeightRatio: th.MaxShoulderHeightRatio,
		MaxHeadForwardRatio:    th.MaxHeadForwardRatio,
		MinNeckAngle:           th.MinNeckAngle,
		MaxNeckAngle:           th.MaxNeckAngle,
		ChinReferenceAngle:     th.ChinReferenceAngle,
		MaxChinDeviation:       th.MaxChinDeviation,
		MaxProtractionDepth:    th.MaxProtractionDepth,
		MinCVA:                 th.MinCVA,
		SmoothingWindow:        options.WindowSize,
	}
}

// describeCheck renders one check outcome with its threshold
func (s *DetailedAnalysisService) describeCheck(check validation.CheckOutcome, th validation.PostureThresholds) models.CheckResult {
	result := models.CheckResult{
		Name:        check.Type,
		Passed:      check.Passed,
		Evaluated:   check.Evaluated,
		ActualValue: check.Value,
	}

	switch check.Type {
	case validation.IssueShoulderAlignment:
		result.Threshold = fmt.Sprintf("< %.3f", th.MaxShoulderHeightRatio)
		result.Unit = "shoulder_width"
		result.Message = s.message(check, "Shoulders are level", validation.MessageShoulderAlignment)
	case validation.IssueHeadPosition:
		result.Threshold = fmt.Sprintf("|x| < %.3f", th.MaxHeadForwardRatio)
		result.Unit = "shoulder_width"
		result.Message = s.message(check, "Head is centered over the shoulders", validation.MessageHeadPosition)
	case validation.IssueNeckAngle:
		result.Threshold = fmt.Sprintf("%.1f..%.1f", th.MinNeckAngle, th.MaxNeckAngle)
		result.Unit = "degrees"
		result.Message = s.message(check, "Neck angle is within range", validation.MessageNeckAngle)
	case validation.IssueChinPosition:
		result.Threshold = fmt.Sprintf("< %.3f", th.MaxChinDeviation)
		result.Unit = "radians"
		result.Message = s.message(check, "Chin line is vertical", validation.MessageChinPosition)
	case validation.IssueShoulderProtraction:
		result.Threshold = fmt.Sprintf("<= %.3f", th.MaxProtractionDepth)
		result.Unit = "meters"
		switch {
		case !check.Evaluated:
			result.Message = "Not evaluated without world coordinates"
		case check.Value == nil:
			result.Message = "Hip landmarks missing, assumed neutral"
		default:
			result.Message = s.message(check, "Shoulders are not rounded", validation.MessageShoulderProtraction)
		}
	case validation.IssueForwardHeadPosture:
		result.Threshold = fmt.Sprintf(">= %.1f", th.MinCVA)
		result.Unit = "degrees"
		if !check.Evaluated {
			result.Message = "Craniovertebral angle unavailable"
		} else {
			result.Message = s.message(check, "Craniovertebral angle is normal", validation.MessageForwardHeadPosture)
		}
	}

	return result
}

func (s *DetailedAnalysisService) message(check validation.CheckOutcome, ok, failed string) string {
	if check.Value == nil {
		return "Landmarks missing for this check"
	}
	if check.Passed {
		return ok
	}
	return failed
}

// warnings lists feature policies that affected this frame
func (s *DetailedAnalysisService) warnings(f models.FeatureSet) []string {
	var warnings []string
	if !f.WidthAvailable {
		warnings = append(warnings, "Shoulder width unavailable; ratio checks failed")
	}
	if !f.ProtractionEvaluated {
		warnings = append(warnings, "Image-normalized coordinates; shoulder protraction not evaluated")
	}
	if f.CVADeg == nil {
		warnings = append(warnings, "Ear or shoulder landmarks missing; forward head posture not evaluated")
	}
	return warnings
}
