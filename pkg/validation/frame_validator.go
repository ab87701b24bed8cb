package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "go-posture-inspector/internal/errors"
	"go-posture-inspector/pkg/models"
)

// FrameValidator checks client-supplied frames before they reach an engine
type FrameValidator struct {
	validate *validator.Validate
}

// NewFrameValidator creates a frame validator
func NewFrameValidator() *FrameValidator {
	return &FrameValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateFrame validates landmark shapes and coordinate ranges.
// Missing landmark sets are not an error here: the engine reports those
// frames with an unknown status.
func (v *FrameValidator) ValidateFrame(req models.FrameRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid frame", err)
	}

	if len(req.PoseLandmarks) > 0 && len(req.PoseWorldLandmarks) > 0 &&
		len(req.PoseLandmarks) != len(req.PoseWorldLandmarks) {
		return apperrors.NewValidationError(
			fmt.Sprintf("pose_landmarks (%d) and pose_world_landmarks (%d) must have the same length",
				len(req.PoseLandmarks), len(req.PoseWorldLandmarks)),
			nil,
		)
	}

	return nil
}

// ValidateStream validates every frame of a recorded stream and checks that
// landmark counts stay constant, since smoothing averages by index.
func (v *FrameValidator) ValidateStream(frames []models.FrameRequest) error {
	var poseLen, faceLen int
	for i, frame := range frames {
		if err := v.ValidateFrame(frame); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("frame %d", i), err)
		}

		body := frame.PoseWorldLandmarks
		if len(body) == 0 {
			body = frame.PoseLandmarks
		}
		if n := len(body); n > 0 {
			if poseLen == 0 {
				poseLen = n
			} else if n != poseLen {
				return apperrors.NewValidationError(
					fmt.Sprintf("frame %d: pose landmark count changed from %d to %d", i, poseLen, n), nil)
			}
		}
		if n := len(frame.FaceLandmarks); n > 0 {
			if faceLen == 0 {
				faceLen = n
			} else if n != faceLen {
				return apperrors.NewValidationError(
					fmt.Sprintf("frame %d: face landmark count changed from %d to %d", i, faceLen, n), nil)
			}
		}
	}
	return nil
}
