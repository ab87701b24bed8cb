package models

import (
	"time"

	"go-posture-inspector/pkg/landmark"
)

// Status is the overall posture verdict for one frame
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusBad     Status = "bad"
	// StatusUnknown is reserved for frames without pose or face landmarks
	StatusUnknown Status = "unknown"
)

// AnalysisResult represents the complete posture assessment of one frame.
// A fresh value is built per frame; the engine keeps no reference to it.
type AnalysisResult struct {
	Status     Status          `json:"status"`
	Confidence float64         `json:"confidence"`
	Issues     []string        `json:"issues"`
	Details    PostureDetails  `json:"details"`
	Metrics    *PostureMetrics `json:"metrics,omitempty"`

	// Coordinate regime the body features were measured in
	Regime       landmark.Regime `json:"regime,omitempty"`
	ChecksPassed int             `json:"checks_passed"`
	ChecksTotal  int             `json:"checks_total"`

	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeSec float64   `json:"processing_time_sec"`
}

// PostureDetails holds the per-check verdicts.
// Optional fields are nil when the check could not be evaluated this frame.
type PostureDetails struct {
	ShoulderAlignment   bool     `json:"shoulder_alignment"`
	HeadPosition        bool     `json:"head_position"`
	NeckAngle           bool     `json:"neck_angle"`
	ChinPosition        bool     `json:"chin_position"`
	ShoulderProtraction *bool    `json:"shoulder_protraction,omitempty"`
	ForwardHeadPosture  *bool    `json:"forward_head_posture,omitempty"`
	CVA                 *float64 `json:"cva,omitempty"` // degrees
}

// PostureMetrics are numeric diagnostics; each is present only when its
// underlying computation succeeded.
type PostureMetrics struct {
	ShoulderWidth       *float64 `json:"shoulder_width,omitempty"`
	ShoulderZDiff       *float64 `json:"shoulder_z_diff,omitempty"`
	NeckAngleDegrees    *float64 `json:"neck_angle_degrees,omitempty"`
	ShoulderHeightDiff  *float64 `json:"shoulder_height_diff,omitempty"`  // percent of shoulder width
	HeadForwardDistance *float64 `json:"head_forward_distance,omitempty"` // percent of shoulder width
}
