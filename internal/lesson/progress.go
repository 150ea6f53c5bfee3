package lesson

import "math"

// FrameProgress is the per-frame slice of a progress summary. Prompts are
// deliberately not re-exposed here.
type FrameProgress struct {
	Title    string      `json:"title"`
	Status   FrameStatus `json:"status"`
	ImageURL string      `json:"imageUrl,omitempty"`
}

// Progress summarizes how far image generation has gotten for one lesson.
type Progress struct {
	LessonID        string          `json:"lessonId"`
	TotalFrames     int             `json:"totalFrames"`
	CompletedFrames int             `json:"completedFrames"`
	FailedFrames    int             `json:"failedFrames"`
	ProgressPercent int             `json:"progress"`
	Status          Status          `json:"status"`
	Frames          []FrameProgress `json:"frames"`
}

// BuildProgress derives a progress summary from the lesson's current frame
// states. A lesson with no frames reports 0%, never a division by zero.
func BuildProgress(l Lesson) Progress {
	p := Progress{
		LessonID: l.ID,
		Status:   l.Status,
		Frames:   make([]FrameProgress, len(l.Frames)),
	}

	for i, f := range l.Frames {
		p.TotalFrames++
		switch f.Status {
		case FrameCompleted:
			p.CompletedFrames++
		case FrameFailed:
			p.FailedFrames++
		}
		p.Frames[i] = FrameProgress{Title: f.Title, Status: f.Status, ImageURL: f.ImageURL}
	}

	if p.TotalFrames > 0 {
		p.ProgressPercent = int(math.Round(100 * float64(p.CompletedFrames) / float64(p.TotalFrames)))
	}

	return p
}
