// Package catalog holds the static registries of teachable subjects and
// narrator personas. All data is compiled in and read-only; the rest of the
// system treats the catalog as a lookup service.
package catalog

// Scene is one narrative beat of a subject, in timeline order.
type Scene struct {
	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
}

// QuizQuestion is a multiple-choice question; Answer is always one of Options.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// SubjectTemplate is the ordered scene list and quiz pool for one subject.
type SubjectTemplate struct {
	Scenes        []Scene
	QuizQuestions []QuizQuestion
}

// Perspective is the narrative voice of a narrator.
type Perspective string

const (
	FirstPerson Perspective = "first_person"
	ThirdPerson Perspective = "third_person"
)

// Narrator is a persona that frames lesson prompts.
type Narrator struct {
	Name        string
	Perspective Perspective
	Voice       string
	Context     string
}

// DefaultNarrator is the fallback persona used whenever a requested narrator
// is unknown. Falling back silently is intentional: the catalog may grow
// subjects faster than narrators, and prompts must still compose.
const DefaultNarrator = "Teacher"

// Subject returns the template for a subject name.
func Subject(name string) (SubjectTemplate, bool) {
	t, ok := subjects[name]
	return t, ok
}

// SubjectNames returns all subject names in a stable order.
func SubjectNames() []string {
	return append([]string(nil), subjectOrder...)
}

// NarratorByName resolves a narrator, substituting the default Teacher persona
// for unknown names. It never fails.
func NarratorByName(name string) Narrator {
	if n, ok := narrators[name]; ok {
		return n
	}
	return narrators[DefaultNarrator]
}

// NarratorNames returns all narrator names in a stable order.
func NarratorNames() []string {
	return append([]string(nil), narratorOrder...)
}
