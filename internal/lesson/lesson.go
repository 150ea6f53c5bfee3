// Package lesson defines the lesson data model and the assembler that builds
// a fully structured lesson from a creation request.
package lesson

import (
	"time"

	"github.com/lessonforge/lessonforge/internal/catalog"
)

// FrameStatus tracks one frame through image generation.
type FrameStatus string

const (
	FramePending    FrameStatus = "pending"
	FrameGenerating FrameStatus = "generating"
	FrameCompleted  FrameStatus = "completed"
	FrameFailed     FrameStatus = "failed"
)

// Status is the lesson-level generation state.
type Status string

const (
	StatusGenerating         Status = "generating"
	StatusGeneratingImages   Status = "generating_images"
	StatusCompleted          Status = "completed"
	StatusPartiallyCompleted Status = "partially_completed"
	StatusFailed             Status = "failed"
)

// ClassSettings echoes the originating request parameters.
type ClassSettings struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	GradeLevel int    `json:"gradeLevel"`
}

// Frame is one timed slot of the lesson. Title, Timestamp, and Prompt are
// fixed at assembly; Status, ImageURL, and Error are mutated by the worker.
// Frame order encodes the lesson timeline and is never reordered.
type Frame struct {
	Title     string      `json:"title"`
	Timestamp string      `json:"timestamp"`
	Prompt    string      `json:"prompt"`
	Status    FrameStatus `json:"status"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Quiz is the optional question block appended to a lesson.
type Quiz struct {
	Questions []catalog.QuizQuestion `json:"questions"`
}

// Lesson is the complete lesson record. It is created once by the assembler;
// afterwards only Status, Error, and per-frame fields change, and only the
// generation worker changes them.
type Lesson struct {
	ID            string        `json:"id"`
	ClassSettings ClassSettings `json:"classSettings"`
	LessonLength  string        `json:"lessonLength"`
	StoryStyle    string        `json:"storyStyle"`
	Narrator      string        `json:"narrator"`
	Frames        []Frame       `json:"frames"`
	Quiz          *Quiz         `json:"quiz,omitempty"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	Error         string        `json:"error,omitempty"`
}

// FrameView is the prompt-stripped frame shape returned to API clients.
type FrameView struct {
	Title     string      `json:"title"`
	Timestamp string      `json:"timestamp"`
	Status    FrameStatus `json:"status"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// View is the lesson shape returned synchronously to the creating client.
// Prompts are internal generation detail and are not exposed here.
type View struct {
	ID            string        `json:"id"`
	ClassSettings ClassSettings `json:"classSettings"`
	LessonLength  string        `json:"lessonLength"`
	StoryStyle    string        `json:"storyStyle"`
	Narrator      string        `json:"narrator"`
	Frames        []FrameView   `json:"frames"`
	Quiz          *Quiz         `json:"quiz,omitempty"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	Error         string        `json:"error,omitempty"`
}

// AsView strips prompts from the lesson.
func (l Lesson) AsView() View {
	frames := make([]FrameView, len(l.Frames))
	for i, f := range l.Frames {
		frames[i] = FrameView{
			Title:     f.Title,
			Timestamp: f.Timestamp,
			Status:    f.Status,
			ImageURL:  f.ImageURL,
			Error:     f.Error,
		}
	}
	return View{
		ID:            l.ID,
		ClassSettings: l.ClassSettings,
		LessonLength:  l.LessonLength,
		StoryStyle:    l.StoryStyle,
		Narrator:      l.Narrator,
		Frames:        frames,
		Quiz:          l.Quiz,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt,
		Error:         l.Error,
	}
}

// OverallStatus derives the lesson's terminal status from its frames:
// all completed → completed; some completed → partially_completed;
// none completed → failed. The derivation is idempotent.
func OverallStatus(frames []Frame) Status {
	completed := 0
	for _, f := range frames {
		if f.Status == FrameCompleted {
			completed++
		}
	}
	switch {
	case len(frames) > 0 && completed == len(frames):
		return StatusCompleted
	case completed > 0:
		return StatusPartiallyCompleted
	default:
		return StatusFailed
	}
}
