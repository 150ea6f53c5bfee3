package store

import (
	"fmt"
	"sync"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

// MemoryStore keeps lessons in a mutex-guarded map. It is the default driver
// and mirrors the memory-resident reference design, but as an owned object
// rather than process globals.
type MemoryStore struct {
	mu      sync.RWMutex
	lessons map[string]lesson.Lesson
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{lessons: make(map[string]lesson.Lesson)}
}

// clone deep-copies the mutable parts so callers never share slices with the
// stored record.
func clone(l lesson.Lesson) lesson.Lesson {
	out := l
	out.Frames = append([]lesson.Frame(nil), l.Frames...)
	if l.Quiz != nil {
		q := *l.Quiz
		out.Quiz = &q
	}
	return out
}

func (s *MemoryStore) PutLesson(l lesson.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessons[l.ID] = clone(l)
	return nil
}

func (s *MemoryStore) GetLesson(id string) (lesson.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lessons[id]
	if !ok {
		return lesson.Lesson{}, ErrNotFound
	}
	return clone(l), nil
}

func (s *MemoryStore) SetLessonStatus(id string, status lesson.Status, errDetail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lessons[id]
	if !ok {
		return ErrNotFound
	}
	l.Status = status
	l.Error = errDetail
	s.lessons[id] = l
	return nil
}

func (s *MemoryStore) SetFrame(id string, index int, f lesson.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lessons[id]
	if !ok {
		return ErrNotFound
	}
	if index < 0 || index >= len(l.Frames) {
		return fmt.Errorf("frame index %d out of range for lesson %s", index, id)
	}
	frames := append([]lesson.Frame(nil), l.Frames...)
	frames[index] = f
	l.Frames = frames
	s.lessons[id] = l
	return nil
}

func (s *MemoryStore) CountLessons() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lessons), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
