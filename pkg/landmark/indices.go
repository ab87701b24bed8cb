package landmark

// BodyIndex addresses a point of the 33-point pose topology.
type BodyIndex int

// Pose landmark indices (MediaPipe pose topology).
const (
	Nose          BodyIndex = 0
	LeftEyeInner  BodyIndex = 1
	LeftEye       BodyIndex = 2
	LeftEyeOuter  BodyIndex = 3
	RightEyeInner BodyIndex = 4
	RightEye      BodyIndex = 5
	RightEyeOuter BodyIndex = 6
	LeftEar       BodyIndex = 7
	RightEar      BodyIndex = 8
	MouthLeft     BodyIndex = 9
	MouthRight    BodyIndex = 10
	LeftShoulder  BodyIndex = 11
	RightShoulder BodyIndex = 12
	LeftElbow     BodyIndex = 13
	RightElbow    BodyIndex = 14
	LeftWrist     BodyIndex = 15
	RightWrist    BodyIndex = 16
	LeftHip       BodyIndex = 23
	RightHip      BodyIndex = 24

	BodyLandmarkCount = 33
)

// FaceIndex addresses a point of the face-mesh topology.
type FaceIndex int

// Face-mesh indices used by the posture checks.
const (
	FaceNoseTip  FaceIndex = 1
	FaceForehead FaceIndex = 10
	FaceChin     FaceIndex = 152

	// 468 mesh points plus 10 iris points.
	FaceLandmarkCount = 478
)

var bodyNames = map[BodyIndex]string{
	Nose:          "nose",
	LeftEar:       "left_ear",
	RightEar:      "right_ear",
	LeftShoulder:  "left_shoulder",
	RightShoulder: "right_shoulder",
	LeftHip:       "left_hip",
	RightHip:      "right_hip",
}

// String returns the anatomical name for the indices the engine relies on.
func (b BodyIndex) String() string {
	if name, ok := bodyNames[b]; ok {
		return name
	}
	return "body_landmark"
}

// String returns the anatomical name of the face index.
func (f FaceIndex) String() string {
	switch f {
	case FaceNoseTip:
		return "nose_tip"
	case FaceForehead:
		return "forehead"
	case FaceChin:
		return "chin"
	default:
		return "face_landmark"
	}
}
