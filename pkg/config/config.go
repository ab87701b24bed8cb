// Package config loads classification threshold overrides from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-posture-inspector/pkg/validation"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// ThresholdOverrides is a partial set of classification thresholds.
// Fields omitted from the JSON keep the base value.
type ThresholdOverrides struct {
	MaxShoulderHeightRatio *float64 `json:"max_shoulder_height_ratio,omitempty"`
	MaxHeadForwardRatio    *float64 `json:"max_head_forward_ratio,omitempty"`
	MinNeckAngle           *float64 `json:"min_neck_angle,omitempty"`
	MaxNeckAngle           *float64 `json:"max_neck_angle,omitempty"`
	ChinReferenceAngle     *float64 `json:"chin_reference_angle,omitempty"`
	MaxChinDeviation       *float64 `json:"max_chin_deviation,omitempty"`
	MaxProtractionDepth    *float64 `json:"max_protraction_depth,omitempty"`
	MinCVA                 *float64 `json:"min_cva,omitempty"`
}

// LoadThresholdOverrides reads overrides from a .json file of at most 1MB
func LoadThresholdOverrides(path string) (*ThresholdOverrides, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("thresholds file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat thresholds file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("thresholds file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read thresholds file: %w", err)
	}

	o := &ThresholdOverrides{}
	if err := json.Unmarshal(data, o); err != nil {
		return nil, fmt.Errorf("failed to parse thresholds JSON: %w", err)
	}
	return o, nil
}

// Apply returns base with every set field replaced, after validating the result
func (o *ThresholdOverrides) Apply(base validation.PostureThresholds) (validation.PostureThresholds, error) {
	if o == nil {
		return base, nil
	}
	t := base
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&t.MaxShoulderHeightRatio, o.MaxShoulderHeightRatio)
	set(&t.MaxHeadForwardRatio, o.MaxHeadForwardRatio)
	set(&t.MinNeckAngle, o.MinNeckAngle)
	set(&t.MaxNeckAngle, o.MaxNeckAngle)
	set(&t.ChinReferenceAngle, o.ChinReferenceAngle)
	set(&t.MaxChinDeviation, o.MaxChinDeviation)
	set(&t.MaxProtractionDepth, o.MaxProtractionDepth)
	set(&t.MinCVA, o.MinCVA)

	if err := Validate(t); err != nil {
		return base, err
	}
	return t, nil
}

// Validate checks that a threshold set is internally consistent
func Validate(t validation.PostureThresholds) error {
	if t.MaxShoulderHeightRatio <= 0 {
		return fmt.Errorf("max_shoulder_height_ratio must be > 0, got %f", t.MaxShoulderHeightRatio)
	}
	if t.MaxHeadForwardRatio <= 0 {
		return fmt.Errorf("max_head_forward_ratio must be > 0, got %f", t.MaxHeadForwardRatio)
	}
	if t.MinNeckAngle < 0 || t.MaxNeckAngle > 180 || t.MinNeckAngle > t.MaxNeckAngle {
		return fmt.Errorf("neck angle range must satisfy 0 <= min <= max <= 180, got [%f, %f]", t.MinNeckAngle, t.MaxNeckAngle)
	}
	if t.MaxChinDeviation <= 0 {
		return fmt.Errorf("max_chin_deviation must be > 0, got %f", t.MaxChinDeviation)
	}
	if t.MinCVA < 0 || t.MinCVA > 90 {
		return fmt.Errorf("min_cva must be between 0 and 90, got %f", t.MinCVA)
	}
	return nil
}

// LoadThresholds applies the overrides in path to base. An empty path returns base.
func LoadThresholds(path string, base validation.PostureThresholds) (validation.PostureThresholds, error) {
	if path == "" {
		return base, nil
	}
	o, err := LoadThresholdOverrides(path)
	if err != nil {
		return base, err
	}
	return o.Apply(base)
}
