package imagegen

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lessonforge/lessonforge/internal/lesson"
	"github.com/lessonforge/lessonforge/internal/store"
)

// scriptedGenerator fails prompts that contain any of the fail markers and
// records the order prompts arrive in.
type scriptedGenerator struct {
	fail    []string
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	for _, marker := range g.fail {
		if strings.Contains(prompt, marker) {
			return "", fmt.Errorf("provider rejected prompt")
		}
	}
	return fmt.Sprintf("https://img.example/%d.png", len(g.prompts)), nil
}

func seedLesson(t *testing.T, s store.Store, id string, frameCount int) lesson.Lesson {
	t.Helper()
	l := lesson.Lesson{
		ID: id,
		ClassSettings: lesson.ClassSettings{
			Name:       "Worker Test",
			Subject:    "History of Rome",
			GradeLevel: 8,
		},
		Status:    lesson.StatusGenerating,
		CreatedAt: time.Now().UTC(),
	}
	for i := 0; i < frameCount; i++ {
		l.Frames = append(l.Frames, lesson.Frame{
			Title:  fmt.Sprintf("Scene %d", i+1),
			Prompt: fmt.Sprintf("prompt-%d", i+1),
			Status: lesson.FramePending,
		})
	}
	if err := s.PutLesson(l); err != nil {
		t.Fatalf("PutLesson: %v", err)
	}
	return l
}

func TestWorker_AllFramesSucceed(t *testing.T) {
	s := store.NewMemory()
	seedLesson(t, s, "l-ok", 3)
	gen := &scriptedGenerator{}

	NewWorker(s, gen, 0).Run(context.Background(), "l-ok")

	got, err := s.GetLesson("l-ok")
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}
	if got.Status != lesson.StatusCompleted {
		t.Errorf("lesson status = %q, want %q", got.Status, lesson.StatusCompleted)
	}
	for i, f := range got.Frames {
		if f.Status != lesson.FrameCompleted {
			t.Errorf("frame %d status = %q, want completed", i, f.Status)
		}
		if f.ImageURL == "" {
			t.Errorf("frame %d has no image URL", i)
		}
		if f.Error != "" {
			t.Errorf("frame %d has unexpected error %q", i, f.Error)
		}
	}
}

func TestWorker_ProcessesFramesInOrder(t *testing.T) {
	s := store.NewMemory()
	seedLesson(t, s, "l-ord", 5)
	gen := &scriptedGenerator{}

	NewWorker(s, gen, 0).Run(context.Background(), "l-ord")

	want := []string{"prompt-1", "prompt-2", "prompt-3", "prompt-4", "prompt-5"}
	if len(gen.prompts) != len(want) {
		t.Fatalf("generated %d frames, want %d", len(gen.prompts), len(want))
	}
	for i := range want {
		if gen.prompts[i] != want[i] {
			t.Errorf("call %d used prompt %q, want %q", i, gen.prompts[i], want[i])
		}
	}
}

func TestWorker_SingleFailureYieldsPartialCompletion(t *testing.T) {
	s := store.NewMemory()
	seedLesson(t, s, "l-part", 5)
	gen := &scriptedGenerator{fail: []string{"prompt-2"}}

	NewWorker(s, gen, 0).Run(context.Background(), "l-part")

	got, err := s.GetLesson("l-part")
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}
	if got.Status != lesson.StatusPartiallyCompleted {
		t.Errorf("lesson status = %q, want %q", got.Status, lesson.StatusPartiallyCompleted)
	}
	if got.Error != "" {
		t.Errorf("frame failure leaked to lesson error: %q", got.Error)
	}
	if got.Frames[1].Status != lesson.FrameFailed {
		t.Errorf("frame 1 status = %q, want failed", got.Frames[1].Status)
	}
	if got.Frames[1].Error == "" {
		t.Error("failed frame has no recorded error")
	}
	// The pass keeps going after a frame failure.
	for _, i := range []int{0, 2, 3, 4} {
		if got.Frames[i].Status != lesson.FrameCompleted {
			t.Errorf("frame %d status = %q, want completed", i, got.Frames[i].Status)
		}
	}
}

func TestWorker_AllFramesFail(t *testing.T) {
	s := store.NewMemory()
	seedLesson(t, s, "l-bad", 3)
	gen := &scriptedGenerator{fail: []string{"prompt"}}

	NewWorker(s, gen, 0).Run(context.Background(), "l-bad")

	got, err := s.GetLesson("l-bad")
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}
	if got.Status != lesson.StatusFailed {
		t.Errorf("lesson status = %q, want %q", got.Status, lesson.StatusFailed)
	}
	for i, f := range got.Frames {
		if f.Status != lesson.FrameFailed {
			t.Errorf("frame %d status = %q, want failed", i, f.Status)
		}
	}
}

func TestWorker_UnknownLessonMarkedFailed(t *testing.T) {
	s := store.NewMemory()
	gen := &scriptedGenerator{}

	// SetLessonStatus on a missing lesson errors, so the pass never starts
	// and nothing is generated.
	NewWorker(s, gen, 0).Run(context.Background(), "missing")

	if len(gen.prompts) != 0 {
		t.Errorf("generated %d frames for a missing lesson", len(gen.prompts))
	}
}

func TestWorker_CancelledContextStopsAtFrameBoundary(t *testing.T) {
	s := store.NewMemory()
	seedLesson(t, s, "l-cancel", 4)
	gen := &scriptedGenerator{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewWorker(s, gen, 0).Run(ctx, "l-cancel")

	if len(gen.prompts) != 0 {
		t.Errorf("generated %d frames under a cancelled context", len(gen.prompts))
	}
	got, err := s.GetLesson("l-cancel")
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}
	// No frame completed, so the derived status is failed.
	if got.Status != lesson.StatusFailed {
		t.Errorf("lesson status = %q, want %q", got.Status, lesson.StatusFailed)
	}
}

func TestRunner_RunsSubmittedLessons(t *testing.T) {
	s := store.NewMemory()
	seedLesson(t, s, "l-r1", 2)
	seedLesson(t, s, "l-r2", 2)
	gen := &scriptedGenerator{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := NewRunner(ctx, NewWorker(s, gen, 0), 1)
	r.Submit("l-r1")
	r.Submit("l-r2")
	r.Wait()

	for _, id := range []string{"l-r1", "l-r2"} {
		got, err := s.GetLesson(id)
		if err != nil {
			t.Fatalf("GetLesson(%s): %v", id, err)
		}
		if got.Status != lesson.StatusCompleted {
			t.Errorf("lesson %s status = %q, want completed", id, got.Status)
		}
	}
}
