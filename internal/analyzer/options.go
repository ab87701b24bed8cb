package analyzer

import (
	"fmt"

	"go-posture-inspector/pkg/validation"
)

// Threshold presets
const (
	PresetDefault = "default"
	PresetStrict  = "strict"
	PresetRelaxed = "relaxed"
)

// AnalysisOptions configures one analysis engine
type AnalysisOptions struct {
	Preset string

	// Frames averaged per source; 1 disables smoothing
	WindowSize int

	Thresholds validation.PostureThresholds
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		Preset:     PresetDefault,
		WindowSize: DefaultWindowSize,
		Thresholds: validation.DefaultPostureThresholds(),
	}
}

// StrictOptions returns options with the tighter threshold set
func StrictOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.Preset = PresetStrict
	opts.Thresholds = validation.StrictPostureThresholds()
	return opts
}

// RelaxedOptions returns options for noisy or low-resolution sources
func RelaxedOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.Preset = PresetRelaxed
	opts.WindowSize = 8
	opts.Thresholds = validation.RelaxedPostureThresholds()
	return opts
}

// OptionsForPreset resolves a preset name; an empty name means default
func OptionsForPreset(name string) (AnalysisOptions, error) {
	switch name {
	case "", PresetDefault:
		return DefaultOptions(), nil
	case PresetStrict:
		return StrictOptions(), nil
	case PresetRelaxed:
		return RelaxedOptions(), nil
	default:
		return AnalysisOptions{}, fmt.Errorf("unknown preset: %q", name)
	}
}

// WithWindowSize sets the smoothing window; values below 1 are ignored
func (opts AnalysisOptions) WithWindowSize(size int) AnalysisOptions {
	if size >= 1 {
		opts.WindowSize = size
	}
	return opts
}

// WithThresholds replaces the classification thresholds
func (opts AnalysisOptions) WithThresholds(thresholds validation.PostureThresholds) AnalysisOptions {
	opts.Thresholds = thresholds
	return opts
}

// WithoutSmoothing disables temporal smoothing
func (opts AnalysisOptions) WithoutSmoothing() AnalysisOptions {
	opts.WindowSize = 1
	return opts
}
