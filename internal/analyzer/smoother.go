package analyzer

import (
	"gonum.org/v1/gonum/stat"

	"go-posture-inspector/pkg/landmark"
)

// Source identifies which detector stream a landmark set came from
type Source int

const (
	SourceBody Source = iota
	SourceFace
)

func (s Source) String() string {
	switch s {
	case SourceBody:
		return "body"
	case SourceFace:
		return "face"
	default:
		return "unknown"
	}
}

// DefaultWindowSize is the number of frames averaged per source
const DefaultWindowSize = 5

// Smoother averages each landmark over a short rolling window per source.
// It is not safe for concurrent use; Engine serializes access.
type Smoother struct {
	size    int
	windows [2][]landmark.Set
}

// NewSmoother creates a smoother keeping at most size frames per source.
// Sizes below 1 fall back to DefaultWindowSize.
func NewSmoother(size int) *Smoother {
	if size < 1 {
		size = DefaultWindowSize
	}
	return &Smoother{size: size}
}

// Smooth buffers set for the given source and returns the denoised estimate.
//
// With fewer than two buffered frames the input is returned unchanged.
// Otherwise x, y and z are the mean over the window. Visibility is the mean
// over the window only when the current landmark carries one, and 0 otherwise.
func (s *Smoother) Smooth(set landmark.Set, source Source) landmark.Set {
	w := append(s.windows[source], set.Clone())
	if len(w) > s.size {
		n := copy(w, w[len(w)-s.size:])
		clear(w[n:])
		w = w[:n]
	}
	s.windows[source] = w

	if len(w) < 2 {
		return set
	}

	xs := make([]float64, 0, len(w))
	ys := make([]float64, 0, len(w))
	zs := make([]float64, 0, len(w))
	vs := make([]float64, 0, len(w))

	out := make(landmark.Set, len(set))
	for i, current := range set {
		xs, ys, zs, vs = xs[:0], ys[:0], zs[:0], vs[:0]
		for _, frame := range w {
			// Frames of a different length are a caller error; average over
			// the frames that have this index.
			p, ok := frame.At(i)
			if !ok {
				continue
			}
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			zs = append(zs, p.Z)
			if p.Visibility != nil {
				vs = append(vs, *p.Visibility)
			} else {
				vs = append(vs, 0)
			}
		}

		visibility := 0.0
		if current.HasVisibility() {
			visibility = stat.Mean(vs, nil)
		}
		out[i] = landmark.Landmark{
			X:          stat.Mean(xs, nil),
			Y:          stat.Mean(ys, nil),
			Z:          stat.Mean(zs, nil),
			Visibility: &visibility,
		}
	}
	return out
}

// Len returns the number of frames buffered for source
func (s *Smoother) Len(source Source) int {
	return len(s.windows[source])
}

// Size returns the window capacity
func (s *Smoother) Size() int {
	return s.size
}

// Reset drops all buffered history
func (s *Smoother) Reset() {
	s.windows = [2][]landmark.Set{}
}
