// Package store provides keyed storage of lesson records. Two drivers exist:
// an in-memory map (the default) and SQLite for operators who want lessons to
// survive restarts. Both are safe for concurrent access across lessons; a
// single lesson is only ever mutated by its one generation worker.
package store

import (
	"errors"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

// ErrNotFound is returned when a requested lesson does not exist.
var ErrNotFound = errors.New("lesson not found")

// Store is the lesson storage contract injected into the assembler handler,
// the generation worker, and the progress reporter.
type Store interface {
	// PutLesson stores a newly assembled lesson.
	PutLesson(l lesson.Lesson) error

	// GetLesson returns the lesson for id, or ErrNotFound.
	GetLesson(id string) (lesson.Lesson, error)

	// SetLessonStatus updates the lesson-level status and optional top-level
	// error detail.
	SetLessonStatus(id string, status lesson.Status, errDetail string) error

	// SetFrame replaces the frame at index. Frame order is fixed at assembly;
	// this only ever changes status, image URL, and error detail in place.
	SetFrame(id string, index int, f lesson.Frame) error

	// CountLessons reports how many lessons are stored.
	CountLessons() (int, error)

	Close() error
}
