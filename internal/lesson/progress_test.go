package lesson

import "testing"

func framesWith(statuses ...FrameStatus) []Frame {
	frames := make([]Frame, len(statuses))
	for i, s := range statuses {
		frames[i] = Frame{Title: "Scene", Status: s}
		if s == FrameCompleted {
			frames[i].ImageURL = "https://img.example/frame.png"
		}
	}
	return frames
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []FrameStatus
		want     Status
	}{
		{"all completed", []FrameStatus{FrameCompleted, FrameCompleted}, StatusCompleted},
		{"mixed", []FrameStatus{FrameCompleted, FrameFailed}, StatusPartiallyCompleted},
		{"completed and pending", []FrameStatus{FrameCompleted, FramePending}, StatusPartiallyCompleted},
		{"none completed", []FrameStatus{FrameFailed, FrameFailed}, StatusFailed},
		{"no frames", nil, StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := framesWith(tt.statuses...)
			got := OverallStatus(frames)
			if got != tt.want {
				t.Errorf("OverallStatus = %q, want %q", got, tt.want)
			}
			// Deriving twice yields the same result.
			if again := OverallStatus(frames); again != got {
				t.Errorf("OverallStatus not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestBuildProgress(t *testing.T) {
	l := Lesson{
		ID:     "l-1",
		Status: StatusGeneratingImages,
		Frames: framesWith(FrameCompleted, FrameFailed, FrameGenerating, FramePending),
	}

	p := BuildProgress(l)
	if p.LessonID != "l-1" {
		t.Errorf("LessonID = %q", p.LessonID)
	}
	if p.TotalFrames != 4 || p.CompletedFrames != 1 || p.FailedFrames != 1 {
		t.Errorf("counts = %d/%d/%d, want 4/1/1", p.TotalFrames, p.CompletedFrames, p.FailedFrames)
	}
	if p.ProgressPercent != 25 {
		t.Errorf("ProgressPercent = %d, want 25", p.ProgressPercent)
	}
	if p.Status != StatusGeneratingImages {
		t.Errorf("Status = %q", p.Status)
	}
	if len(p.Frames) != 4 {
		t.Fatalf("per-frame summary has %d entries, want 4", len(p.Frames))
	}
	if p.Frames[0].ImageURL == "" {
		t.Error("completed frame summary missing image URL")
	}
	// A mid-generation frame state is representable, not an error.
	if p.Frames[2].Status != FrameGenerating {
		t.Errorf("frame 2 status = %q, want generating", p.Frames[2].Status)
	}
}

func TestBuildProgress_NoFrames(t *testing.T) {
	p := BuildProgress(Lesson{ID: "empty", Status: StatusGenerating})
	if p.ProgressPercent != 0 {
		t.Errorf("ProgressPercent = %d, want 0", p.ProgressPercent)
	}
	if p.TotalFrames != 0 {
		t.Errorf("TotalFrames = %d, want 0", p.TotalFrames)
	}
}

func TestBuildProgress_Rounding(t *testing.T) {
	l := Lesson{Frames: framesWith(FrameCompleted, FrameCompleted, FramePending)}
	p := BuildProgress(l)
	if p.ProgressPercent != 67 {
		t.Errorf("ProgressPercent = %d, want 67 (2/3 rounded)", p.ProgressPercent)
	}
}
