package models

import "go-posture-inspector/pkg/landmark"

// FeatureSet holds the geometric measurements taken from one smoothed frame.
// Distances are meters in the world regime and shoulder-width ratios otherwise.
// A nil field means the feature was unavailable.
type FeatureSet struct {
	Regime landmark.Regime `json:"regime"`

	// ShoulderWidth falls back to 1 when a shoulder is missing;
	// WidthAvailable is false in that case.
	ShoulderWidth  float64 `json:"shoulder_width"`
	WidthAvailable bool    `json:"width_available"`

	ShoulderHeightRatio *float64 `json:"shoulder_height_ratio,omitempty"`
	HeadForwardRatio    *float64 `json:"head_forward_ratio,omitempty"`
	NeckAngleDeg        *float64 `json:"neck_angle_deg,omitempty"`
	ChinAngleRad        *float64 `json:"chin_angle_rad,omitempty"`
	ProtractionDepth    *float64 `json:"protraction_depth,omitempty"`
	CVADeg              *float64 `json:"cva_deg,omitempty"`

	// ProtractionEvaluated is true only in the world regime
	ProtractionEvaluated bool `json:"protraction_evaluated"`
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v
func Bool(v bool) *bool {
	return &v
}
