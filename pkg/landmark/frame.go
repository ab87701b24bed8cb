package landmark

// Regime identifies the coordinate system a set of measurements came from.
type Regime string

const (
	// RegimeNormalized is image-relative x,y in [0,1] with unitless z.
	RegimeNormalized Regime = "normalized"
	// RegimeWorld is metric, body-centric coordinates in meters.
	RegimeWorld Regime = "world"
)

// Metric reports whether distances in this regime are in meters.
func (r Regime) Metric() bool {
	return r == RegimeWorld
}

// Frame is one detector output: optional pose landmarks (image-normalized and
// world) and optional face landmarks. Timestamp is carried for callers and
// ignored by the engine.
type Frame struct {
	Body      Set
	BodyWorld Set
	Face      Set
	Timestamp int64
}

// BodyForAnalysis returns the pose set the engine should use. World
// coordinates win when the detector supplied them.
func (f Frame) BodyForAnalysis() (Set, Regime) {
	if !f.BodyWorld.Empty() {
		return f.BodyWorld, RegimeWorld
	}
	return f.Body, RegimeNormalized
}

// Usable reports whether both a pose and a face set are present.
func (f Frame) Usable() bool {
	if f.Body.Empty() && f.BodyWorld.Empty() {
		return false
	}
	return !f.Face.Empty()
}
