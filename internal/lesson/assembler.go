package lesson

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lessonforge/lessonforge/internal/catalog"
	"github.com/lessonforge/lessonforge/internal/composer"
	"github.com/lessonforge/lessonforge/internal/timing"
)

// Narration modes accepted in a creation request.
const (
	NarrationTeacher             = "teacher"
	NarrationHistoricalCharacter = "historical_character"
)

const maxQuizQuestions = 3

// Request is the client input for creating a lesson. It is validated, used,
// and discarded, never persisted.
type Request struct {
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	Grade        int    `json:"grade"`
	Length       int    `json:"length"`
	Narration    string `json:"narration"`
	NarratorName string `json:"narrator_name"`
	IncludeQuiz  bool   `json:"includeQuiz"`
}

// ValidationError reports a malformed or incomplete creation request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Assembler builds complete lesson records. Identity and clock are injectable
// for tests.
type Assembler struct {
	newID  func() string
	now    func() time.Time
	logger *slog.Logger
}

// NewAssembler creates an Assembler with UUID identity and the wall clock.
func NewAssembler() *Assembler {
	return &Assembler{
		newID:  func() string { return uuid.New().String() },
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
}

// Assemble validates the request and builds a fully structured lesson with
// every frame pending. It does not persist and does not start generation;
// the caller owns both.
func (a *Assembler) Assemble(req Request) (Lesson, error) {
	if err := validate(req); err != nil {
		return Lesson{}, err
	}

	subject, ok := catalog.Subject(req.Subject)
	if !ok {
		return Lesson{}, validationErrorf("subject %q is not supported", req.Subject)
	}

	narratorName := req.NarratorName
	if narratorName == "" {
		narratorName = catalog.DefaultNarrator
	}

	storyStyle := "Teacher Narration"
	if req.Narration == NarrationHistoricalCharacter {
		storyStyle = fmt.Sprintf("Historical Narration (%s)", req.NarratorName)
	}

	alloc := timing.Allocate(req.Length, req.IncludeQuiz)

	scenes := subject.Scenes
	if len(scenes) > alloc.NumScenes {
		scenes = scenes[:alloc.NumScenes]
	} else if len(scenes) < alloc.NumScenes {
		// The subject has fewer scenes than the allocator asked for. Scenes
		// are never repeated, since that would change the narrative, so the
		// lesson simply runs shorter than requested.
		a.logger.Warn("subject has fewer scenes than allocated",
			"subject", req.Subject,
			"available", len(scenes),
			"allocated", alloc.NumScenes,
		)
	}

	l := Lesson{
		ID: a.newID(),
		ClassSettings: ClassSettings{
			Name:       req.Name,
			Subject:    req.Subject,
			GradeLevel: req.Grade,
		},
		LessonLength: fmt.Sprintf("%d minutes", req.Length),
		StoryStyle:   storyStyle,
		Narrator:     narratorName,
		Status:       StatusGenerating,
		CreatedAt:    a.now(),
	}

	offset := 0
	for i, scene := range scenes {
		start, end := offset, offset+alloc.SecondsPerScene
		l.Frames = append(l.Frames, Frame{
			Title:     scene.Title,
			Timestamp: timeWindow(start, end),
			Prompt:    composer.ScenePrompt(scene, narratorName, req.Grade, i, len(scenes)),
			Status:    FramePending,
		})
		offset = end
	}

	if req.IncludeQuiz {
		questions := subject.QuizQuestions
		if len(questions) > maxQuizQuestions {
			questions = questions[:maxQuizQuestions]
		}
		l.Quiz = &Quiz{Questions: questions}
		l.Frames = append(l.Frames, Frame{
			Title:     "Interactive Quiz",
			Timestamp: timeWindow(offset, offset+alloc.QuizSeconds),
			Prompt:    composer.QuizPrompt(questions, narratorName),
			Status:    FramePending,
		})
	}

	return l, nil
}

func validate(req Request) error {
	switch {
	case req.Name == "":
		return validationErrorf("name is required")
	case req.Subject == "":
		return validationErrorf("subject is required")
	case req.Grade <= 0:
		return validationErrorf("grade must be a positive integer")
	case req.Length <= 0:
		return validationErrorf("length must be a positive number of minutes")
	}

	switch req.Narration {
	case NarrationTeacher:
		// Narrator name is ignored in teacher mode.
	case NarrationHistoricalCharacter:
		if req.NarratorName == "" {
			return validationErrorf("narrator_name is required for historical_character narration")
		}
	default:
		return validationErrorf("narration must be %q or %q", NarrationTeacher, NarrationHistoricalCharacter)
	}

	return nil
}

// timeWindow renders a half-open [start, end) second range as MM:SS–MM:SS.
func timeWindow(start, end int) string {
	return fmt.Sprintf("%02d:%02d–%02d:%02d", start/60, start%60, end/60, end%60)
}
