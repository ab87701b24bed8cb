package models

// DetailedAnalysisResponse is a frame result with the raw features,
// the thresholds applied and a per-check breakdown
type DetailedAnalysisResponse struct {
	Result     AnalysisResult    `json:"result"`
	Features   FeatureSet        `json:"features"`
	Thresholds AppliedThresholds `json:"applied_thresholds"`
	Checks     []CheckResult     `json:"checks"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// CheckResult describes one posture check
type CheckResult struct {
	Name        string   `json:"name"`
	Passed      bool     `json:"passed"`
	Evaluated   bool     `json:"evaluated"`
	ActualValue *float64 `json:"actual_value,omitempty"`
	Threshold   string   `json:"threshold"`
	Unit        string   `json:"unit,omitempty"`
	Message     string   `json:"message,omitempty"`
}

// AppliedThresholds mirrors the thresholds used for the frame
type AppliedThresholds struct {
	MaxShoulderHeightRatio float64 `json:"max_shoulder_height_ratio"`
	MaxHeadForwardRatio    float64 `json:"max_head_forward_ratio"`
	MinNeckAngle           float64 `json:"min_neck_angle"`
	MaxNeckAngle           float64 `json:"max_neck_angle"`
	ChinReferenceAngle     float64 `json:"chin_reference_angle"`
	MaxChinDeviation       float64 `json:"max_chin_deviation"`
	MaxProtractionDepth    float64 `json:"max_protraction_depth"`
	MinCVA                 float64 `json:"min_cva"`
	SmoothingWindow        int     `json:"smoothing_window"`
}
