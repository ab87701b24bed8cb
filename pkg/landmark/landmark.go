// Package landmark holds the labeled 3-D points produced by the upstream
// pose and face detectors, and the named index contract used to address them.
package landmark

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Landmark is a single detector point. Visibility is nil when the detector
// does not publish a confidence channel for this point.
type Landmark struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          float64  `json:"z"`
	Visibility *float64 `json:"visibility,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Vec returns the landmark position as an r3 vector.
func (l Landmark) Vec() r3.Vec {
	return r3.Vec{X: l.X, Y: l.Y, Z: l.Z}
}

// HasVisibility reports whether the landmark carries a confidence value.
func (l Landmark) HasVisibility() bool {
	return l.Visibility != nil
}

// IsFinite reports whether every coordinate is a finite number.
func (l Landmark) IsFinite() bool {
	for _, v := range [3]float64{l.X, l.Y, l.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Visible is a convenience constructor for a landmark with a confidence value.
func Visible(x, y, z, visibility float64) Landmark {
	return Landmark{X: x, Y: y, Z: z, Visibility: &visibility}
}

// Point builds a landmark without a confidence channel.
func Point(x, y, z float64) Landmark {
	return Landmark{X: x, Y: y, Z: z}
}

// Set is an ordered list of landmarks addressed by anatomical index.
// Indices are a fixed contract with the detector and are never reordered.
type Set []Landmark

// At returns the landmark at index i, or false when the set is too short.
func (s Set) At(i int) (Landmark, bool) {
	if i < 0 || i >= len(s) {
		return Landmark{}, false
	}
	return s[i], true
}

// Body looks up a pose landmark by its named index.
func (s Set) Body(idx BodyIndex) (Landmark, bool) {
	return s.At(int(idx))
}

// Face looks up a face-mesh landmark by its named index.
func (s Set) Face(idx FaceIndex) (Landmark, bool) {
	return s.At(int(idx))
}

// Empty reports whether the set has no landmarks.
func (s Set) Empty() bool {
	return len(s) == 0
}

// Clone returns a deep copy, including visibility values.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for i, l := range s {
		out[i] = l
		if l.Visibility != nil {
			v := *l.Visibility
			out[i].Visibility = &v
		}
	}
	return out
}

// Scale returns a copy with every coordinate multiplied by k.
func (s Set) Scale(k float64) Set {
	out := s.Clone()
	for i := range out {
		out[i].X *= k
		out[i].Y *= k
		out[i].Z *= k
	}
	return out
}
