package models

import "go-posture-inspector/pkg/landmark"

// FrameRequest is one detector output as posted by a client
type FrameRequest struct {
	Timestamp          int64          `json:"timestamp"`
	PoseLandmarks      []LandmarkJSON `json:"pose_landmarks" validate:"omitempty,max=33,dive"`
	PoseWorldLandmarks []LandmarkJSON `json:"pose_world_landmarks" validate:"omitempty,max=33,dive"`
	FaceLandmarks      []LandmarkJSON `json:"face_landmarks" validate:"omitempty,max=478,dive"`
}

// LandmarkJSON is the wire shape of a landmark; pointers let us reject
// points with missing coordinates.
type LandmarkJSON struct {
	X          *float64 `json:"x" validate:"required"`
	Y          *float64 `json:"y" validate:"required"`
	Z          *float64 `json:"z" validate:"required"`
	Visibility *float64 `json:"visibility,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// ToFrame converts the request into an engine frame
func (r FrameRequest) ToFrame() landmark.Frame {
	return landmark.Frame{
		Body:      toSet(r.PoseLandmarks),
		BodyWorld: toSet(r.PoseWorldLandmarks),
		Face:      toSet(r.FaceLandmarks),
		Timestamp: r.Timestamp,
	}
}

func toSet(in []LandmarkJSON) landmark.Set {
	if len(in) == 0 {
		return nil
	}
	out := make(landmark.Set, len(in))
	for i, l := range in {
		var p landmark.Landmark
		if l.X != nil {
			p.X = *l.X
		}
		if l.Y != nil {
			p.Y = *l.Y
		}
		if l.Z != nil {
			p.Z = *l.Z
		}
		if l.Visibility != nil {
			v := *l.Visibility
			p.Visibility = &v
		}
		out[i] = p
	}
	return out
}

// CreateSessionRequest opens a new analysis stream
type CreateSessionRequest struct {
	Preset     string `json:"preset,omitempty" form:"preset" binding:"omitempty,oneof=default strict relaxed"`
	WindowSize int    `json:"window_size,omitempty" form:"window_size" binding:"omitempty,min=1,max=60"`
}

// SessionResponse describes an open analysis stream
type SessionResponse struct {
	SessionID  string `json:"session_id"`
	Preset     string `json:"preset"`
	WindowSize int    `json:"window_size"`
	CreatedAt  string `json:"created_at"`
}

// BatchRequest carries recorded streams to be replayed independently
type BatchRequest struct {
	Preset  string        `json:"preset,omitempty" binding:"omitempty,oneof=default strict relaxed"`
	Streams []StreamInput `json:"streams" binding:"required,min=1,max=32,dive"`
}

// StreamInput is one recorded stream of frames
type StreamInput struct {
	ID     string         `json:"id" binding:"required"`
	Frames []FrameRequest `json:"frames" binding:"required,min=1"`
}

// BatchResponse holds per-stream results in request order
type BatchResponse struct {
	Streams           []StreamResult `json:"streams"`
	ProcessingTimeSec float64        `json:"processing_time_sec"`
}

// StreamResult is the replay of one stream
type StreamResult struct {
	ID      string           `json:"id"`
	Results []AnalysisResult `json:"results,omitempty"`
	Summary StreamSummary    `json:"summary"`
	Error   string           `json:"error,omitempty"`
}

// StreamSummary aggregates the results of one stream
type StreamSummary struct {
	Frames         int            `json:"frames"`
	StatusCounts   map[Status]int `json:"status_counts"`
	MeanConfidence float64        `json:"mean_confidence"`
	// Issue frequency over usable frames
	IssueCounts map[string]int `json:"issue_counts,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// StatsResponse reports service counters
type StatsResponse struct {
	ActiveSessions       int              `json:"active_sessions"`
	SessionsCreated      int64            `json:"sessions_created"`
	FramesAnalyzed       int64            `json:"frames_analyzed"`
	FramesRejected       int64            `json:"frames_rejected"`
	CriticalFrames       int64            `json:"critical_frames"`
	Batches              int64            `json:"batches"`
	StatusCounts         map[Status]int64 `json:"status_counts,omitempty"`
	IssueCounts          map[string]int64 `json:"issue_counts,omitempty"`
	AvgProcessingTimeSec float64          `json:"avg_processing_time_sec"`
	BatchWorkers         int              `json:"batch_workers"`
	BatchJobsCompleted   int64            `json:"batch_jobs_completed"`
}
