package analyzer

import (
	"go-posture-inspector/pkg/landmark"
)

// upright pose in normalized image coordinates, shoulders 0.2 apart
func uprightBody() landmark.Set {
	body := make(landmark.Set, landmark.BodyLandmarkCount)
	body[landmark.LeftShoulder] = landmark.Visible(0.4, 0.5, 0, 0.99)
	body[landmark.RightShoulder] = landmark.Visible(0.6, 0.5, 0, 0.99)
	body[landmark.Nose] = landmark.Visible(0.5, 0.3, 0, 0.99)
	body[landmark.LeftEar] = landmark.Visible(0.52, 0.3, 0, 0.9)
	body[landmark.LeftHip] = landmark.Visible(0.42, 0.9, 0, 0.9)
	body[landmark.RightHip] = landmark.Visible(0.58, 0.9, 0, 0.9)
	return body
}

// upright pose in world coordinates; shoulders 2cm in front of the hips
func uprightWorldBody() landmark.Set {
	body := make(landmark.Set, landmark.BodyLandmarkCount)
	body[landmark.LeftShoulder] = landmark.Visible(-0.15, 0, -0.02, 0.99)
	body[landmark.RightShoulder] = landmark.Visible(0.15, 0, -0.02, 0.99)
	body[landmark.Nose] = landmark.Visible(0, -0.2, -0.05, 0.99)
	body[landmark.LeftEar] = landmark.Visible(0.02, -0.2, 0, 0.9)
	body[landmark.LeftHip] = landmark.Visible(-0.1, 0.5, 0, 0.9)
	body[landmark.RightHip] = landmark.Visible(0.1, 0.5, 0, 0.9)
	return body
}

// face mesh with the chin slightly behind the nose tip
func uprightFace() landmark.Set {
	face := make(landmark.Set, landmark.FaceLandmarkCount)
	face[landmark.FaceNoseTip] = landmark.Point(0.52, 0.3, 0)
	face[landmark.FaceChin] = landmark.Point(0.5, 0.38, 0)
	face[landmark.FaceForehead] = landmark.Point(0.5, 0.2, 0)
	return face
}

func uprightFrame() landmark.Frame {
	return landmark.Frame{Body: uprightBody(), Face: uprightFace()}
}

// forwardHeadFrame moves the ear in front of and level with C7
func forwardHeadFrame() landmark.Frame {
	frame := uprightFrame()
	frame.Body[landmark.LeftEar] = landmark.Visible(0.7, 0.44, 0, 0.9)
	return frame
}
