package factory

import (
	"fmt"

	"go-posture-inspector/internal/analyzer"
	"go-posture-inspector/pkg/config"
)

// AnalyzerFactory creates posture engines
type AnalyzerFactory interface {
	// CreateAnalyzer builds a fresh engine for preset. windowSize <= 0 keeps
	// the factory default.
	CreateAnalyzer(preset string, windowSize int) (analyzer.PostureAnalyzer, error)

	// ResolveOptions returns the options CreateAnalyzer would use
	ResolveOptions(preset string, windowSize int) (analyzer.AnalysisOptions, error)
}

// analyzerFactory implements AnalyzerFactory
type analyzerFactory struct {
	defaultWindow int
	overrides     *config.ThresholdOverrides
}

// NewAnalyzerFactory creates a factory. Overrides from a thresholds file,
// when given, are applied on top of every preset.
func NewAnalyzerFactory(defaultWindow int, overrides *config.ThresholdOverrides) AnalyzerFactory {
	if defaultWindow < 1 {
		defaultWindow = analyzer.DefaultWindowSize
	}
	return &analyzerFactory{
		defaultWindow: defaultWindow,
		overrides:     overrides,
	}
}

// ResolveOptions maps a preset and window to analysis options
func (f *analyzerFactory) ResolveOptions(preset string, windowSize int) (analyzer.AnalysisOptions, error) {
	opts, err := analyzer.OptionsForPreset(preset)
	if err != nil {
		return analyzer.AnalysisOptions{}, err
	}

	// Relaxed keeps its own longer window unless the caller asks otherwise
	if opts.Preset != analyzer.PresetRelaxed {
		opts = opts.WithWindowSize(f.defaultWindow)
	}
	opts = opts.WithWindowSize(windowSize)

	thresholds, err := f.overrides.Apply(opts.Thresholds)
	if err != nil {
		return analyzer.AnalysisOptions{}, fmt.Errorf("invalid threshold overrides for preset %q: %w", opts.Preset, err)
	}
	return opts.WithThresholds(thresholds), nil
}

// CreateAnalyzer creates an engine for the given preset
func (f *analyzerFactory) CreateAnalyzer(preset string, windowSize int) (analyzer.PostureAnalyzer, error) {
	opts, err := f.ResolveOptions(preset, windowSize)
	if err != nil {
		return nil, err
	}
	return analyzer.NewEngine(opts), nil
}
