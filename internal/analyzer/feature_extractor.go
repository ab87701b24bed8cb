package analyzer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"go-posture-inspector/pkg/landmark"
	"go-posture-inspector/pkg/models"
)

// c7VerticalOffset shifts the shoulder midpoint toward the head to
// approximate the C7 vertebra. Image y grows downward.
const c7VerticalOffset = 0.05

// minMagnitude is the length below which a vector is treated as zero
const minMagnitude = 1e-12

// featureExtractor implements FeatureExtractor
type featureExtractor struct{}

// NewFeatureExtractor creates a new feature extractor
func NewFeatureExtractor() FeatureExtractor {
	return &featureExtractor{}
}

// Extract computes every posture feature from smoothed landmarks.
// body must be in the given regime; face is used as delivered.
func (fe *featureExtractor) Extract(body landmark.Set, regime landmark.Regime, face landmark.Set) models.FeatureSet {
	f := models.FeatureSet{
		Regime:               regime,
		ShoulderWidth:        1,
		ProtractionEvaluated: regime.Metric(),
	}

	ls, lok := body.Body(landmark.LeftShoulder)
	rs, rok := body.Body(landmark.RightShoulder)
	shouldersOK := lok && rok

	var mid r3.Vec
	if shouldersOK {
		mid = midpoint(ls.Vec(), rs.Vec())
		if width := r3.Norm(r3.Sub(rs.Vec(), ls.Vec())); width > minMagnitude {
			f.ShoulderWidth = width
			f.WidthAvailable = true
		}
	}

	// Ratio features need a real normalization unit.
	if f.WidthAvailable {
		f.ShoulderHeightRatio = models.Float(math.Abs(ls.Y-rs.Y) / f.ShoulderWidth)

		if nose, ok := body.Body(landmark.Nose); ok {
			f.HeadForwardRatio = models.Float((nose.X - mid.X) / f.ShoulderWidth)
		}
	}

	faceNose, noseOK := face.Face(landmark.FaceNoseTip)
	chin, chinOK := face.Face(landmark.FaceChin)

	if shouldersOK && noseOK && chinOK {
		f.NeckAngleDeg = angleBetween(r3.Sub(faceNose.Vec(), chin.Vec()), r3.Sub(mid, chin.Vec()))
	}

	if _, foreheadOK := face.Face(landmark.FaceForehead); noseOK && chinOK && foreheadOK {
		f.ChinAngleRad = models.Float(math.Atan2(chin.Y-faceNose.Y, chin.X-faceNose.X))
	}

	if f.ProtractionEvaluated {
		f.ProtractionDepth = protractionDepth(body)
	}

	if ear, ok := body.Body(landmark.LeftEar); ok && shouldersOK {
		f.CVADeg = craniovertebralAngle(ear.Vec(), mid)
	}

	return f
}

// angleBetween returns the angle between v1 and v2 in degrees, or nil when
// either vector has zero length. The cosine is clamped to [-1, 1].
func angleBetween(v1, v2 r3.Vec) *float64 {
	m1, m2 := r3.Norm(v1), r3.Norm(v2)
	if m1 < minMagnitude || m2 < minMagnitude {
		return nil
	}
	cos := math.Max(-1, math.Min(1, r3.Dot(v1, v2)/(m1*m2)))
	return models.Float(math.Acos(cos) * 180 / math.Pi)
}

// protractionDepth is the mean shoulder z minus the mean hip z
func protractionDepth(body landmark.Set) *float64 {
	ls, ok1 := body.Body(landmark.LeftShoulder)
	rs, ok2 := body.Body(landmark.RightShoulder)
	lh, ok3 := body.Body(landmark.LeftHip)
	rh, ok4 := body.Body(landmark.RightHip)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}
	return models.Float((ls.Z+rs.Z)/2 - (lh.Z+rh.Z)/2)
}

// craniovertebralAngle measures the ear-to-C7 line against the horizontal,
// in degrees. The result is never negative.
func craniovertebralAngle(ear, shoulderMid r3.Vec) *float64 {
	c7 := r3.Vec{X: shoulderMid.X, Y: shoulderMid.Y - c7VerticalOffset}
	vx := ear.X - c7.X
	vy := ear.Y - c7.Y
	if math.Hypot(vx, vy) < minMagnitude {
		return nil
	}
	// y is flipped so that an ear above C7 gives a positive angle
	deg := math.Atan2(-vy, math.Abs(vx)) * 180 / math.Pi
	return models.Float(math.Abs(deg))
}

func midpoint(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}
