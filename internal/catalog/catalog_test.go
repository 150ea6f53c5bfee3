package catalog

import "testing"

func TestSubject_Known(t *testing.T) {
	tmpl, ok := Subject("History of Rome")
	if !ok {
		t.Fatal("History of Rome should be in the catalog")
	}
	if len(tmpl.Scenes) != 6 {
		t.Errorf("scene count = %d, want 6", len(tmpl.Scenes))
	}
	if tmpl.Scenes[0].Title != "The Legend Begins" {
		t.Errorf("first scene = %q, want The Legend Begins", tmpl.Scenes[0].Title)
	}
}

func TestSubject_Unknown(t *testing.T) {
	if _, ok := Subject("Atlantis"); ok {
		t.Error("Atlantis should not be in the catalog")
	}
}

func TestSubjectNames_MatchRegistry(t *testing.T) {
	names := SubjectNames()
	if len(names) != len(subjects) {
		t.Fatalf("SubjectNames returned %d names, registry has %d", len(names), len(subjects))
	}
	for _, name := range names {
		if _, ok := subjects[name]; !ok {
			t.Errorf("ordered name %q missing from registry", name)
		}
	}
}

func TestNarratorByName_Fallback(t *testing.T) {
	n := NarratorByName("Genghis Khan")
	if n.Name != DefaultNarrator {
		t.Errorf("unknown narrator resolved to %q, want %q", n.Name, DefaultNarrator)
	}
	if n.Perspective != ThirdPerson {
		t.Errorf("default narrator perspective = %q, want third_person", n.Perspective)
	}
}

func TestNarratorByName_Known(t *testing.T) {
	n := NarratorByName("Julius Caesar")
	if n.Perspective != FirstPerson {
		t.Errorf("Caesar perspective = %q, want first_person", n.Perspective)
	}
	if n.Voice == "" || n.Context == "" {
		t.Error("narrator voice and context must be populated")
	}
}

func TestQuizAnswersAreOptions(t *testing.T) {
	for name, tmpl := range subjects {
		for _, q := range tmpl.QuizQuestions {
			found := false
			for _, opt := range q.Options {
				if opt == q.Answer {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s: answer %q not among options for %q", name, q.Answer, q.Question)
			}
		}
	}
}
