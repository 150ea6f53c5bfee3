package imagegen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

// LessonStore is the slice of the store the worker needs.
type LessonStore interface {
	GetLesson(id string) (lesson.Lesson, error)
	SetLessonStatus(id string, status lesson.Status, errDetail string) error
	SetFrame(id string, index int, f lesson.Frame) error
}

// Worker generates images for one lesson at a time. Frames are processed
// strictly in their fixed timeline order, never in parallel: per-lesson
// sequencing bounds exposure to the provider's rate limits and keeps
// progress reads simple.
type Worker struct {
	store  LessonStore
	gen    Generator
	delay  time.Duration
	logger *slog.Logger
}

// NewWorker creates a Worker. delay is the pause after every frame request,
// success or failure, as a self-imposed rate limit against the provider.
// Pass 0 to disable (tests).
func NewWorker(store LessonStore, gen Generator, delay time.Duration) *Worker {
	return &Worker{
		store:  store,
		gen:    gen,
		delay:  delay,
		logger: slog.Default(),
	}
}

// Run performs one full generation pass over the lesson's frames and derives
// the lesson's terminal status. A single frame failure is recorded on that
// frame and never stops the pass; only a failure of the worker's own control
// flow (store errors, panics) is fatal and marks the whole lesson failed.
func (w *Worker) Run(ctx context.Context, lessonID string) {
	defer func() {
		if r := recover(); r != nil {
			w.fatal(lessonID, fmt.Sprintf("generation worker panic: %v", r))
		}
	}()

	if err := w.store.SetLessonStatus(lessonID, lesson.StatusGeneratingImages, ""); err != nil {
		w.logger.Error("could not start generation pass", "lesson_id", lessonID, "error", err)
		return
	}

	l, err := w.store.GetLesson(lessonID)
	if err != nil {
		w.fatal(lessonID, fmt.Sprintf("loading lesson: %v", err))
		return
	}

	for i := range l.Frames {
		// Frame boundaries are the only safe preemption point; an in-flight
		// provider call is never abandoned mid-frame.
		if ctx.Err() != nil {
			w.logger.Warn("generation pass interrupted", "lesson_id", lessonID, "frames_done", i)
			break
		}

		frame := l.Frames[i]
		frame.Status = lesson.FrameGenerating
		if err := w.store.SetFrame(lessonID, i, frame); err != nil {
			w.fatal(lessonID, fmt.Sprintf("updating frame %d: %v", i, err))
			return
		}

		url, genErr := w.gen.Generate(ctx, frame.Prompt)
		if genErr != nil {
			frame.Status = lesson.FrameFailed
			frame.Error = genErr.Error()
			w.logger.Warn("frame generation failed",
				"lesson_id", lessonID, "frame", i, "title", frame.Title, "error", genErr)
		} else {
			frame.Status = lesson.FrameCompleted
			frame.ImageURL = url
		}
		if err := w.store.SetFrame(lessonID, i, frame); err != nil {
			w.fatal(lessonID, fmt.Sprintf("recording frame %d outcome: %v", i, err))
			return
		}
		l.Frames[i] = frame

		if w.delay > 0 && i < len(l.Frames)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(w.delay):
			}
		}
	}

	final := lesson.OverallStatus(l.Frames)
	if err := w.store.SetLessonStatus(lessonID, final, ""); err != nil {
		w.logger.Error("could not record final lesson status",
			"lesson_id", lessonID, "status", final, "error", err)
		return
	}
	w.logger.Info("generation pass finished", "lesson_id", lessonID, "status", final)
}

// fatal records a worker-level failure on the lesson itself.
func (w *Worker) fatal(lessonID, detail string) {
	w.logger.Error("generation worker failed", "lesson_id", lessonID, "error", detail)
	if err := w.store.SetLessonStatus(lessonID, lesson.StatusFailed, detail); err != nil {
		w.logger.Error("could not record worker failure", "lesson_id", lessonID, "error", err)
	}
}
