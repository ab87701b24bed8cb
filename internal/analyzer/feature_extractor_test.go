package analyzer

import (
	"math"
	"testing"

	"go-posture-inspector/pkg/landmark"
)

const epsilon = 1e-9

func TestExtract_UprightNormalized(t *testing.T) {
	fe := NewFeatureExtractor()
	f := fe.Extract(uprightBody(), landmark.RegimeNormalized, uprightFace())

	if !f.WidthAvailable || math.Abs(f.ShoulderWidth-0.2) > epsilon {
		t.Errorf("Expected shoulder width 0.2, got %f (available=%v)", f.ShoulderWidth, f.WidthAvailable)
	}
	if f.ShoulderHeightRatio == nil || *f.ShoulderHeightRatio != 0 {
		t.Errorf("Expected level shoulders, got %v", f.ShoulderHeightRatio)
	}
	if f.HeadForwardRatio == nil || math.Abs(*f.HeadForwardRatio) > epsilon {
		t.Errorf("Expected centered head, got %v", f.HeadForwardRatio)
	}
	wantNeck := 180 - math.Atan(0.02/0.08)*180/math.Pi
	if f.NeckAngleDeg == nil || math.Abs(*f.NeckAngleDeg-wantNeck) > 1e-6 {
		t.Errorf("Expected neck angle %f, got %v", wantNeck, f.NeckAngleDeg)
	}
	wantChin := math.Atan2(0.08, -0.02)
	if f.ChinAngleRad == nil || math.Abs(*f.ChinAngleRad-wantChin) > epsilon {
		t.Errorf("Expected chin angle %f, got %v", wantChin, f.ChinAngleRad)
	}
	if f.ProtractionEvaluated || f.ProtractionDepth != nil {
		t.Error("Expected protraction to be skipped for normalized coordinates")
	}
	if f.CVADeg == nil || *f.CVADeg < 45 {
		t.Errorf("Expected upright CVA, got %v", f.CVADeg)
	}
}

func TestExtract_World(t *testing.T) {
	fe := NewFeatureExtractor()
	f := fe.Extract(uprightWorldBody(), landmark.RegimeWorld, uprightFace())

	if !f.ProtractionEvaluated {
		t.Fatal("Expected protraction to be evaluated for world coordinates")
	}
	if f.ProtractionDepth == nil || math.Abs(*f.ProtractionDepth-(-0.02)) > epsilon {
		t.Errorf("Expected protraction depth -0.02, got %v", f.ProtractionDepth)
	}
	if math.Abs(f.ShoulderWidth-0.3) > epsilon {
		t.Errorf("Expected shoulder width 0.3m, got %f", f.ShoulderWidth)
	}
}

func TestExtract_WorldMissingHips(t *testing.T) {
	body := uprightWorldBody()[:landmark.LeftHip]

	f := NewFeatureExtractor().Extract(body, landmark.RegimeWorld, uprightFace())
	if !f.ProtractionEvaluated {
		t.Error("Expected protraction to be evaluated")
	}
	if f.ProtractionDepth != nil {
		t.Error("Expected undefined depth without hips")
	}
}

func TestExtract_CoincidentShoulders(t *testing.T) {
	body := uprightBody()
	body[landmark.RightShoulder] = body[landmark.LeftShoulder]

	f := NewFeatureExtractor().Extract(body, landmark.RegimeNormalized, uprightFace())
	if f.WidthAvailable {
		t.Error("Expected width to be unavailable for coincident shoulders")
	}
	if f.ShoulderWidth != 1 {
		t.Errorf("Expected fallback width 1, got %f", f.ShoulderWidth)
	}
	if f.ShoulderHeightRatio != nil || f.HeadForwardRatio != nil {
		t.Error("Expected ratio features to be undefined")
	}
}

func TestExtract_ShortBody(t *testing.T) {
	body := uprightBody()[:landmark.LeftShoulder]

	f := NewFeatureExtractor().Extract(body, landmark.RegimeNormalized, uprightFace())
	if f.ShoulderHeightRatio != nil || f.HeadForwardRatio != nil || f.NeckAngleDeg != nil || f.CVADeg != nil {
		t.Errorf("Expected shoulder-dependent features to be undefined, got %+v", f)
	}
	if f.ChinAngleRad == nil {
		t.Error("Expected chin angle from the face alone")
	}
}

func TestExtract_ShortFace(t *testing.T) {
	face := uprightFace()[:landmark.FaceChin]

	f := NewFeatureExtractor().Extract(uprightBody(), landmark.RegimeNormalized, face)
	if f.NeckAngleDeg != nil || f.ChinAngleRad != nil {
		t.Error("Expected face features to be undefined without the chin landmark")
	}
	if f.ShoulderHeightRatio == nil {
		t.Error("Expected body features to be unaffected")
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		v1   [3]float64
		v2   [3]float64
		want float64
	}{
		{"perpendicular", [3]float64{1, 0, 0}, [3]float64{0, 1, 0}, 90},
		{"same", [3]float64{1, 1, 0}, [3]float64{2, 2, 0}, 0},
		{"opposite", [3]float64{1, 0, 0}, [3]float64{-3, 0, 0}, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := angleBetween(
				landmark.Point(tt.v1[0], tt.v1[1], tt.v1[2]).Vec(),
				landmark.Point(tt.v2[0], tt.v2[1], tt.v2[2]).Vec(),
			)
			if got == nil || math.Abs(*got-tt.want) > 1e-6 {
				t.Errorf("angleBetween = %v, want %f", got, tt.want)
			}
		})
	}

	zero := landmark.Point(0, 0, 0).Vec()
	if angleBetween(zero, landmark.Point(1, 0, 0).Vec()) != nil {
		t.Error("Expected nil for a zero-length vector")
	}
}

func TestCraniovertebralAngle(t *testing.T) {
	mid := landmark.Point(0.5, 0.5, 0).Vec()

	// ear directly above C7
	up := craniovertebralAngle(landmark.Point(0.5, 0.2, 0).Vec(), mid)
	if up == nil || math.Abs(*up-90) > 1e-6 {
		t.Errorf("Expected 90 degrees, got %v", up)
	}

	// ear level with C7
	level := craniovertebralAngle(landmark.Point(0.7, 0.45, 0).Vec(), mid)
	if level == nil || math.Abs(*level) > 1e-6 {
		t.Errorf("Expected 0 degrees, got %v", level)
	}

	// mirrored ear positions give the same angle
	left := craniovertebralAngle(landmark.Point(0.4, 0.3, 0).Vec(), mid)
	right := craniovertebralAngle(landmark.Point(0.6, 0.3, 0).Vec(), mid)
	if left == nil || right == nil || math.Abs(*left-*right) > 1e-9 {
		t.Errorf("Expected symmetric angles, got %v and %v", left, right)
	}

	if craniovertebralAngle(landmark.Point(0.5, 0.45, 0).Vec(), mid) != nil {
		t.Error("Expected nil when the ear coincides with C7")
	}
}

func TestCraniovertebralAngle_Monotonic(t *testing.T) {
	mid := landmark.Point(0.5, 0.5, 0).Vec()
	prev := math.Inf(1)
	// moving the ear forward at constant height lowers the angle
	for _, x := range []float64{0.52, 0.6, 0.7, 0.9, 1.2} {
		cva := craniovertebralAngle(landmark.Point(x, 0.3, 0).Vec(), mid)
		if cva == nil {
			t.Fatalf("Expected CVA for ear x=%f", x)
		}
		if *cva >= prev {
			t.Errorf("Expected CVA to decrease, got %f after %f", *cva, prev)
		}
		prev = *cva
	}
}
