package validation

import (
	"math"

	"go-posture-inspector/pkg/models"
)

// PostureThresholds defines configurable thresholds for posture classification
type PostureThresholds struct {
	// Shoulder height difference as a fraction of shoulder width (strict <)
	MaxShoulderHeightRatio float64 `json:"max_shoulder_height_ratio"`

	// |nose.x - shoulder midpoint.x| as a fraction of shoulder width (strict <)
	MaxHeadForwardRatio float64 `json:"max_head_forward_ratio"`

	// Neck bend angle range in degrees (inclusive)
	MinNeckAngle float64 `json:"min_neck_angle"`
	MaxNeckAngle float64 `json:"max_neck_angle"`

	// Chin line reference angle and allowed deviation, radians (strict <)
	ChinReferenceAngle float64 `json:"chin_reference_angle"`
	MaxChinDeviation   float64 `json:"max_chin_deviation"`

	// Shoulder z offset from hips in meters (<= passes)
	MaxProtractionDepth float64 `json:"max_protraction_depth"`

	// Craniovertebral angle in degrees (>= passes)
	MinCVA float64 `json:"min_cva"`
}

// DefaultPostureThresholds returns the default posture thresholds
func DefaultPostureThresholds() PostureThresholds {
	return PostureThresholds{
		MaxShoulderHeightRatio: 0.08,
		MaxHeadForwardRatio:    0.20,
		MinNeckAngle:           140,
		MaxNeckAngle:           180,
		ChinReferenceAngle:     math.Pi / 2,
		MaxChinDeviation:       0.3,
		MaxProtractionDepth:    0.05,
		MinCVA:                 45,
	}
}

// StrictPostureThresholds returns the tighter thresholds the defaults were relaxed from
func StrictPostureThresholds() PostureThresholds {
	t := DefaultPostureThresholds()
	t.MaxShoulderHeightRatio = 0.05
	t.MaxHeadForwardRatio = 0.15
	t.MinNeckAngle = 150
	t.MaxNeckAngle = 175
	t.MaxProtractionDepth = 0.04
	t.MinCVA = 48
	return t
}

// RelaxedPostureThresholds returns looser thresholds for noisy cameras
func RelaxedPostureThresholds() PostureThresholds {
	t := DefaultPostureThresholds()
	t.MaxShoulderHeightRatio = 0.12
	t.MaxHeadForwardRatio = 0.30
	t.MinNeckAngle = 130
	t.MaxChinDeviation = 0.4
	t.MaxProtractionDepth = 0.07
	t.MinCVA = 40
	return t
}

// Issue types, in the fixed order issues are reported
const (
	IssueShoulderAlignment   = "shoulder_alignment"
	IssueHeadPosition        = "head_position"
	IssueNeckAngle           = "neck_angle"
	IssueChinPosition        = "chin_position"
	IssueForwardHeadPosture  = "forward_head_posture"
	IssueShoulderProtraction = "shoulder_protraction"
)

// Issue messages shown to users. The text is fixed for every threshold set;
// PostureIssue.Threshold carries the limit actually applied.
const (
	MessageShoulderAlignment   = "Shoulders are uneven"
	MessageHeadPosition        = "Head is tilted forward"
	MessageNeckAngle           = "Neck angle is poor"
	MessageChinPosition        = "Chin is not properly positioned"
	MessageForwardHeadPosture  = "Forward head posture (CVA < 45°)"
	MessageShoulderProtraction = "Rounded shoulders (protraction)"
	MessageUndetected          = "Unable to detect pose or face"
)

// Confidence cut-offs for the status mapping
const (
	GoodConfidence    = 0.8
	WarningConfidence = 0.6
)

// PostureIssue represents a failed posture check
type PostureIssue struct {
	Type        string   `json:"type"`
	Message     string   `json:"message"`
	Severity    string   `json:"severity"` // "error", "warning"
	ActualValue *float64 `json:"actual_value,omitempty"`
	Threshold   float64  `json:"threshold,omitempty"`
}

// CheckOutcome is the verdict of one check
type CheckOutcome struct {
	Type      string
	Passed    bool
	Evaluated bool
	Value     *float64
}

// Classification is the aggregated verdict for one feature set
type Classification struct {
	Details    models.PostureDetails
	Checks     []CheckOutcome
	Issues     []PostureIssue
	Passed     int
	Total      int
	Confidence float64
	Status     models.Status
}

// PostureValidator classifies feature sets against thresholds
type PostureValidator struct {
	thresholds PostureThresholds
}

// NewPostureValidator creates a posture validator with default thresholds
func NewPostureValidator() *PostureValidator {
	return &PostureValidator{
		thresholds: DefaultPostureThresholds(),
	}
}

// NewPostureValidatorWithThresholds creates a posture validator with custom thresholds
func NewPostureValidatorWithThresholds(thresholds PostureThresholds) *PostureValidator {
	return &PostureValidator{
		thresholds: thresholds,
	}
}

// Thresholds returns the thresholds in use
func (pv *PostureValidator) Thresholds() PostureThresholds {
	return pv.thresholds
}

// Classify evaluates every check for the feature set and aggregates the result.
//
// Missing features fail the four base checks. Shoulder protraction is only
// evaluated in the world regime, and passes when the hip landmarks are missing
// there. An undefined CVA does not flag forward head posture.
func (pv *PostureValidator) Classify(f models.FeatureSet) Classification {
	th := pv.thresholds

	shoulderOK := f.ShoulderHeightRatio != nil && *f.ShoulderHeightRatio < th.MaxShoulderHeightRatio
	headOK := f.HeadForwardRatio != nil && math.Abs(*f.HeadForwardRatio) < th.MaxHeadForwardRatio
	neckOK := f.NeckAngleDeg != nil && *f.NeckAngleDeg >= th.MinNeckAngle && *f.NeckAngleDeg <= th.MaxNeckAngle

	var chinDeviation *float64
	if f.ChinAngleRad != nil {
		chinDeviation = models.Float(math.Abs(*f.ChinAngleRad - th.ChinReferenceAngle))
	}
	chinOK := chinDeviation != nil && *chinDeviation < th.MaxChinDeviation

	var protraction *bool
	if f.ProtractionEvaluated {
		protraction = models.Bool(f.ProtractionDepth == nil || *f.ProtractionDepth <= th.MaxProtractionDepth)
	}
	protractionOK := protraction == nil || *protraction

	forwardHead := f.CVADeg != nil && *f.CVADeg < th.MinCVA

	c := Classification{
		Details: models.PostureDetails{
			ShoulderAlignment:   shoulderOK,
			HeadPosition:        headOK,
			NeckAngle:           neckOK,
			ChinPosition:        chinOK,
			ShoulderProtraction: protraction,
			ForwardHeadPosture:  models.Bool(forwardHead),
			CVA:                 f.CVADeg,
		},
		Checks: []CheckOutcome{
			{Type: IssueShoulderAlignment, Passed: shoulderOK, Evaluated: true, Value: f.ShoulderHeightRatio},
			{Type: IssueHeadPosition, Passed: headOK, Evaluated: true, Value: f.HeadForwardRatio},
			{Type: IssueNeckAngle, Passed: neckOK, Evaluated: true, Value: f.NeckAngleDeg},
			{Type: IssueChinPosition, Passed: chinOK, Evaluated: true, Value: chinDeviation},
			{Type: IssueShoulderProtraction, Passed: protractionOK, Evaluated: f.ProtractionEvaluated, Value: f.ProtractionDepth},
			{Type: IssueForwardHeadPosture, Passed: !forwardHead, Evaluated: f.CVADeg != nil, Value: f.CVADeg},
		},
	}

	if !shoulderOK {
		c.Issues = append(c.Issues, PostureIssue{
			Type:        IssueShoulderAlignment,
			Message:     MessageShoulderAlignment,
			Severity:    "warning",
			ActualValue: f.ShoulderHeightRatio,
			Threshold:   th.MaxShoulderHeightRatio,
		})
	}
	if !headOK {
		c.Issues = append(c.Issues, PostureIssue{
			Type:        IssueHeadPosition,
			Message:     MessageHeadPosition,
			Severity:    "warning",
			ActualValue: f.HeadForwardRatio,
			Threshold:   th.MaxHeadForwardRatio,
		})
	}
	if !neckOK {
		c.Issues = append(c.Issues, PostureIssue{
			Type:        IssueNeckAngle,
			Message:     MessageNeckAngle,
			Severity:    "error",
			ActualValue: f.NeckAngleDeg,
			Threshold:   th.MinNeckAngle,
		})
	}
	if !chinOK {
		c.Issues = append(c.Issues, PostureIssue{
			Type:        IssueChinPosition,
			Message:     MessageChinPosition,
			Severity:    "warning",
			ActualValue: chinDeviation,
			Threshold:   th.MaxChinDeviation,
		})
	}
	if forwardHead {
		c.Issues = append(c.Issues, PostureIssue{
			Type:        IssueForwardHeadPosture,
			Message:     MessageForwardHeadPosture,
			Severity:    "error",
			ActualValue: f.CVADeg,
			Threshold:   th.MinCVA,
		})
	}
	if !protractionOK {
		c.Issues = append(c.Issues, PostureIssue{
			Type:        IssueShoulderProtraction,
			Message:     MessageShoulderProtraction,
			Severity:    "error",
			ActualValue: f.ProtractionDepth,
			Threshold:   th.MaxProtractionDepth,
		})
	}

	// Unevaluated protraction and an undefined CVA count as passing, so the
	// denominator is always the full check list.
	c.Total = len(c.Checks)
	for _, check := range c.Checks {
		if check.Passed {
			c.Passed++
		}
	}
	c.Confidence = float64(c.Passed) / float64(c.Total)
	c.Status = StatusForConfidence(c.Confidence)

	return c
}

// StatusForConfidence maps a confidence score to a posture status
func StatusForConfidence(confidence float64) models.Status {
	switch {
	case confidence >= GoodConfidence:
		return models.StatusGood
	case confidence >= WarningConfidence:
		return models.StatusWarning
	default:
		return models.StatusBad
	}
}

// ConvertIssuesToMessages converts posture issues to plain messages, keeping order
func (pv *PostureValidator) ConvertIssuesToMessages(issues []PostureIssue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}

// HasCriticalIssues checks if there are any critical (error severity) issues
func HasCriticalIssues(issues []PostureIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}
