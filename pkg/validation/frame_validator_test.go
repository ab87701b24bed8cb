package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-posture-inspector/internal/errors"
	"go-posture-inspector/pkg/models"
)

func point(x, y, z float64) models.LandmarkJSON {
	return models.LandmarkJSON{X: &x, Y: &y, Z: &z}
}

func points(n int) []models.LandmarkJSON {
	out := make([]models.LandmarkJSON, n)
	for i := range out {
		out[i] = point(0.5, 0.5, 0)
	}
	return out
}

func TestValidateFrame_Valid(t *testing.T) {
	v := NewFrameValidator()

	err := v.ValidateFrame(models.FrameRequest{
		PoseLandmarks: points(33),
		FaceLandmarks: points(478),
	})
	assert.NoError(t, err)
}

func TestValidateFrame_EmptySetsAllowed(t *testing.T) {
	v := NewFrameValidator()
	assert.NoError(t, v.ValidateFrame(models.FrameRequest{}))
}

func TestValidateFrame_Errors(t *testing.T) {
	v := NewFrameValidator()
	vis := 1.5

	tests := []struct {
		name string
		req  models.FrameRequest
	}{
		{
			name: "missing coordinate",
			req:  models.FrameRequest{PoseLandmarks: []models.LandmarkJSON{{X: new(float64), Y: new(float64)}}},
		},
		{
			name: "visibility out of range",
			req: models.FrameRequest{PoseLandmarks: []models.LandmarkJSON{
				{X: new(float64), Y: new(float64), Z: new(float64), Visibility: &vis},
			}},
		},
		{
			name: "too many pose landmarks",
			req:  models.FrameRequest{PoseLandmarks: points(34)},
		},
		{
			name: "world and image lengths differ",
			req:  models.FrameRequest{PoseLandmarks: points(33), PoseWorldLandmarks: points(25)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFrame(tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestValidateStream_LengthChange(t *testing.T) {
	v := NewFrameValidator()

	frames := []models.FrameRequest{
		{PoseLandmarks: points(33), FaceLandmarks: points(478)},
		{PoseLandmarks: points(25), FaceLandmarks: points(478)},
	}
	err := v.ValidateStream(frames)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pose landmark count changed")

	frames[1].PoseLandmarks = points(33)
	assert.NoError(t, v.ValidateStream(frames))
}

func TestValidateStream_MissingFramesSkipped(t *testing.T) {
	v := NewFrameValidator()

	frames := []models.FrameRequest{
		{PoseLandmarks: points(33), FaceLandmarks: points(478)},
		{},
		{PoseLandmarks: points(33), FaceLandmarks: points(478)},
	}
	assert.NoError(t, v.ValidateStream(frames))
}
