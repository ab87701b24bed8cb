package analyzer

import (
	"math"
	"testing"

	"go-posture-inspector/pkg/landmark"
)

func singlePoint(x, y, z float64) landmark.Set {
	return landmark.Set{landmark.Point(x, y, z)}
}

func TestNewSmoother_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		if got := NewSmoother(size).Size(); got != DefaultWindowSize {
			t.Errorf("NewSmoother(%d).Size() = %d, want %d", size, got, DefaultWindowSize)
		}
	}
}

func TestSmoother_FirstFrameUnchanged(t *testing.T) {
	s := NewSmoother(5)
	in := landmark.Set{landmark.Visible(0.1, 0.2, 0.3, 0.7)}

	out := s.Smooth(in, SourceBody)

	if out[0].X != 0.1 || out[0].Y != 0.2 || out[0].Z != 0.3 {
		t.Errorf("Expected first frame to pass through, got %+v", out[0])
	}
	if out[0].Visibility == nil || *out[0].Visibility != 0.7 {
		t.Error("Expected visibility to pass through on the first frame")
	}
}

func TestSmoother_MeanOverWindow(t *testing.T) {
	s := NewSmoother(5)
	s.Smooth(singlePoint(0, 0, 0), SourceBody)
	out := s.Smooth(singlePoint(1, 2, 3), SourceBody)

	if out[0].X != 0.5 || out[0].Y != 1 || out[0].Z != 1.5 {
		t.Errorf("Expected mean of two frames, got %+v", out[0])
	}
}

func TestSmoother_EvictsOldest(t *testing.T) {
	s := NewSmoother(3)
	for _, x := range []float64{100, 1, 2, 3} {
		s.Smooth(singlePoint(x, 0, 0), SourceBody)
	}

	if got := s.Len(SourceBody); got != 3 {
		t.Fatalf("Expected 3 buffered frames, got %d", got)
	}

	out := s.Smooth(singlePoint(4, 0, 0), SourceBody)
	// window now holds 2, 3, 4
	if out[0].X != 3 {
		t.Errorf("Expected mean 3 after eviction, got %f", out[0].X)
	}
}

func TestSmoother_SourcesAreIndependent(t *testing.T) {
	s := NewSmoother(5)
	s.Smooth(singlePoint(10, 10, 10), SourceBody)

	out := s.Smooth(singlePoint(1, 1, 1), SourceFace)
	if out[0].X != 1 {
		t.Errorf("Expected face history to be independent of body, got %f", out[0].X)
	}
	if s.Len(SourceBody) != 1 || s.Len(SourceFace) != 1 {
		t.Errorf("Expected one frame per source, got body=%d face=%d", s.Len(SourceBody), s.Len(SourceFace))
	}
}

func TestSmoother_Visibility(t *testing.T) {
	s := NewSmoother(5)
	s.Smooth(landmark.Set{landmark.Visible(0, 0, 0, 0.4)}, SourceBody)
	out := s.Smooth(landmark.Set{landmark.Visible(0, 0, 0, 0.8)}, SourceBody)

	if out[0].Visibility == nil || math.Abs(*out[0].Visibility-0.6) > 1e-9 {
		t.Errorf("Expected averaged visibility 0.6, got %v", out[0].Visibility)
	}

	// Current landmark without visibility reports 0
	out = s.Smooth(singlePoint(0, 0, 0), SourceBody)
	if out[0].Visibility == nil || *out[0].Visibility != 0 {
		t.Errorf("Expected visibility 0 when current landmark has none, got %v", out[0].Visibility)
	}
}

func TestSmoother_DoesNotAliasInput(t *testing.T) {
	s := NewSmoother(5)
	in := singlePoint(1, 1, 1)
	s.Smooth(in, SourceBody)
	in[0].X = 99

	out := s.Smooth(singlePoint(3, 1, 1), SourceBody)
	if out[0].X != 2 {
		t.Errorf("Expected buffered frame to be a copy, got mean %f", out[0].X)
	}
}

func TestSmoother_ShorterFrameInWindow(t *testing.T) {
	s := NewSmoother(5)
	s.Smooth(singlePoint(1, 0, 0), SourceBody)

	out := s.Smooth(landmark.Set{landmark.Point(3, 0, 0), landmark.Point(7, 0, 0)}, SourceBody)
	if out[0].X != 2 {
		t.Errorf("Expected index 0 averaged over both frames, got %f", out[0].X)
	}
	if out[1].X != 7 {
		t.Errorf("Expected index 1 averaged over the frame that has it, got %f", out[1].X)
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother(5)
	s.Smooth(singlePoint(10, 0, 0), SourceBody)
	s.Reset()

	out := s.Smooth(singlePoint(2, 0, 0), SourceBody)
	if out[0].X != 2 {
		t.Errorf("Expected no history after reset, got %f", out[0].X)
	}
}

func TestSmoother_WindowOfOne(t *testing.T) {
	s := NewSmoother(1)
	s.Smooth(singlePoint(10, 0, 0), SourceBody)

	out := s.Smooth(singlePoint(2, 0, 0), SourceBody)
	if out[0].X != 2 {
		t.Errorf("Expected smoothing disabled with window 1, got %f", out[0].X)
	}
}
