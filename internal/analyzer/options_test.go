package analyzer

import (
	"testing"

	"go-posture-inspector/pkg/validation"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Preset != PresetDefault {
		t.Errorf("Expected preset %q, got %q", PresetDefault, opts.Preset)
	}
	if opts.WindowSize != 5 {
		t.Errorf("Expected WindowSize to be 5, got %d", opts.WindowSize)
	}
	if opts.Thresholds != validation.DefaultPostureThresholds() {
		t.Error("Expected default thresholds")
	}
}

func TestStrictOptions(t *testing.T) {
	opts := StrictOptions()

	if opts.Preset != PresetStrict {
		t.Errorf("Expected preset %q, got %q", PresetStrict, opts.Preset)
	}
	if opts.Thresholds.MaxShoulderHeightRatio >= DefaultOptions().Thresholds.MaxShoulderHeightRatio {
		t.Error("Expected strict shoulder threshold to be tighter than default")
	}
	if opts.Thresholds.MinCVA <= DefaultOptions().Thresholds.MinCVA {
		t.Error("Expected strict CVA threshold to be higher than default")
	}
}

func TestRelaxedOptions(t *testing.T) {
	opts := RelaxedOptions()

	if opts.Preset != PresetRelaxed {
		t.Errorf("Expected preset %q, got %q", PresetRelaxed, opts.Preset)
	}
	if opts.WindowSize <= DefaultWindowSize {
		t.Errorf("Expected a longer smoothing window, got %d", opts.WindowSize)
	}
	if opts.Thresholds.MaxHeadForwardRatio <= DefaultOptions().Thresholds.MaxHeadForwardRatio {
		t.Error("Expected relaxed head threshold to be looser than default")
	}
}

func TestOptionsForPreset(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "", want: PresetDefault},
		{name: "default", want: PresetDefault},
		{name: "strict", want: PresetStrict},
		{name: "relaxed", want: PresetRelaxed},
		{name: "lenient", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := OptionsForPreset(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error for unknown preset")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if opts.Preset != tt.want {
				t.Errorf("Expected preset %q, got %q", tt.want, opts.Preset)
			}
		})
	}
}

func TestOptionsBuilders(t *testing.T) {
	opts := DefaultOptions().WithWindowSize(9)
	if opts.WindowSize != 9 {
		t.Errorf("Expected WindowSize 9, got %d", opts.WindowSize)
	}

	opts = opts.WithWindowSize(0)
	if opts.WindowSize != 9 {
		t.Errorf("Expected invalid size to be ignored, got %d", opts.WindowSize)
	}

	opts = opts.WithoutSmoothing()
	if opts.WindowSize != 1 {
		t.Errorf("Expected WindowSize 1 without smoothing, got %d", opts.WindowSize)
	}

	strict := validation.StrictPostureThresholds()
	opts = DefaultOptions().WithThresholds(strict)
	if opts.Thresholds != strict {
		t.Error("Expected thresholds to be replaced")
	}
	if opts.Preset != PresetDefault {
		t.Error("Expected preset name to be unchanged")
	}
}
