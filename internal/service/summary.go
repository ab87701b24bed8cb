package service

import (
	"gonum.org/v1/gonum/stat"

	"go-posture-inspector/pkg/models"
)

// Summarize aggregates the results of one stream. Mean confidence and issue
// counts cover usable frames only.
func Summarize(results []models.AnalysisResult) models.StreamSummary {
	summary := models.StreamSummary{
		Frames:       len(results),
		StatusCounts: make(map[models.Status]int),
		IssueCounts:  make(map[string]int),
	}

	confidences := make([]float64, 0, len(results))
	for _, r := range results {
		summary.StatusCounts[r.Status]++
		if r.Status == models.StatusUnknown {
			continue
		}
		confidences = append(confidences, r.Confidence)
		for _, issue := range r.Issues {
			summary.IssueCounts[issue]++
		}
	}

	if len(confidences) > 0 {
		summary.MeanConfidence = stat.Mean(confidences, nil)
	}
	return summary
}
