package composer

import (
	"strings"
	"testing"

	"github.com/lessonforge/lessonforge/internal/catalog"
)

func romeScene(t *testing.T, title string) catalog.Scene {
	t.Helper()
	tmpl, ok := catalog.Subject("History of Rome")
	if !ok {
		t.Fatal("History of Rome missing from catalog")
	}
	for _, s := range tmpl.Scenes {
		if s.Title == title {
			return s
		}
	}
	t.Fatalf("scene %q not found", title)
	return catalog.Scene{}
}

func TestScenePrompt_CinematicPrefix(t *testing.T) {
	scene := romeScene(t, "Rise of the Republic")

	tests := []struct {
		name   string
		index  int
		total  int
		prefix string
	}{
		{"first scene", 0, 5, "Establishing shot: "},
		{"last scene", 4, 5, "Dramatic finale: "},
		{"middle scene", 2, 5, "Medium shot: "},
		{"single scene is treated as first", 0, 1, "Establishing shot: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ScenePrompt(scene, "Teacher", 8, tt.index, tt.total)
			if !strings.HasPrefix(p, tt.prefix) {
				t.Errorf("prompt starts with %q, want prefix %q", p[:30], tt.prefix)
			}
		})
	}
}

func TestScenePrompt_KnownTitleUsesDescription(t *testing.T) {
	scene := romeScene(t, "The Legend Begins")
	p := ScenePrompt(scene, "Teacher", 8, 0, 5)
	if !strings.Contains(p, "Romulus") || !strings.Contains(p, "she-wolf") {
		t.Errorf("expected authored description for The Legend Begins, got: %s", p)
	}
}

func TestScenePrompt_UnknownTitleFallsBackToSynopsis(t *testing.T) {
	scene := catalog.Scene{Title: "A Brand New Scene", Synopsis: "something entirely novel"}
	p := ScenePrompt(scene, "Teacher", 8, 1, 5)
	if !strings.Contains(p, "something entirely novel") {
		t.Errorf("expected synopsis fallback, got: %s", p)
	}
}

func TestScenePrompt_NarratorObserverSentence(t *testing.T) {
	scene := romeScene(t, "Founding of the Republic")

	p := ScenePrompt(scene, "Julius Caesar", 12, 1, 5)
	if !strings.Contains(p, "Julius Caesar observes the scene with") {
		t.Errorf("first-person narrator missing observer sentence: %s", p)
	}

	p = ScenePrompt(scene, "Teacher", 12, 1, 5)
	if strings.Contains(p, "observes the scene with") {
		t.Errorf("Teacher narrator should not get observer sentence: %s", p)
	}

	// Unknown narrators resolve to Teacher and compose identically.
	unknown := ScenePrompt(scene, "Socrates", 12, 1, 5)
	if unknown != p {
		t.Errorf("unknown narrator prompt differs from Teacher prompt:\n%s\n%s", unknown, p)
	}
}

func TestScenePrompt_GradeSwitchesStyle(t *testing.T) {
	scene := romeScene(t, "Legacy of Rome")

	advanced := ScenePrompt(scene, "Teacher", 10, 2, 5)
	if !strings.Contains(advanced, "detailed historical accuracy") || !strings.Contains(advanced, "dramatic lighting") {
		t.Errorf("grade 10 should use advanced style tags: %s", advanced)
	}

	simple := ScenePrompt(scene, "Teacher", 9, 2, 5)
	if !strings.Contains(simple, "simplified educational") || !strings.Contains(simple, "gentle lighting") {
		t.Errorf("grade 9 should use simplified style tags: %s", simple)
	}
}

func TestScenePrompt_CaesarGhostInPowerOfRome(t *testing.T) {
	scene := romeScene(t, "The Power of Rome")
	p := ScenePrompt(scene, "Julius Caesar", 12, 2, 5)
	if !strings.Contains(p, "ghostly figure") {
		t.Errorf("Caesar narration of The Power of Rome should include the ghost aside: %s", p)
	}
}

func TestQuizPrompt(t *testing.T) {
	tmpl, _ := catalog.Subject("History of Rome")

	caesar := QuizPrompt(tmpl.QuizQuestions, "Julius Caesar")
	if !strings.Contains(caesar, "playfully gesturing") {
		t.Errorf("Caesar quiz prompt missing playful framing: %s", caesar)
	}

	teacher := QuizPrompt(tmpl.QuizQuestions, "Teacher")
	if !strings.Contains(teacher, "friendly teacher figure") {
		t.Errorf("default quiz prompt missing teacher figure: %s", teacher)
	}

	for _, p := range []string{caesar, teacher} {
		if !strings.Contains(p, "clear text focus") {
			t.Errorf("quiz prompt missing text-clarity style suffix: %s", p)
		}
	}
}
