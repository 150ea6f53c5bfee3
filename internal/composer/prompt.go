// Package composer builds the natural-language prompts sent to the image
// generation service. All composition is pure string assembly with no error
// paths; unknown narrators and unknown scene titles both fall back rather
// than fail.
package composer

import (
	"fmt"
	"strings"

	"github.com/lessonforge/lessonforge/internal/catalog"
)

// Cinematic prefixes, chosen by scene position. A single-scene lesson is both
// first and last; first wins.
const (
	prefixEstablishing = "Establishing shot: "
	prefixFinale       = "Dramatic finale: "
	prefixMedium       = "Medium shot: "
)

const advancedGradeThreshold = 10

// ScenePrompt composes the image prompt for one content scene.
// sceneIndex is zero-based; totalScenes is the content scene count.
func ScenePrompt(scene catalog.Scene, narratorName string, gradeLevel, sceneIndex, totalScenes int) string {
	advanced := gradeLevel >= advancedGradeThreshold
	narrator := catalog.NarratorByName(narratorName)

	var b strings.Builder

	switch {
	case sceneIndex == 0:
		b.WriteString(prefixEstablishing)
	case sceneIndex == totalScenes-1:
		b.WriteString(prefixFinale)
	default:
		b.WriteString(prefixMedium)
	}

	if body, ok := sceneDescription(scene.Title, narratorName); ok {
		b.WriteString(body)
	} else {
		// Titles added to the catalog without a hand-authored description
		// fall back to the stored synopsis.
		b.WriteString(scene.Synopsis)
	}

	if narrator.Perspective == catalog.FirstPerson && narrator.Name != catalog.DefaultNarrator {
		fmt.Fprintf(&b, " %s observes the scene with %s demeanor.", narrator.Name, narrator.Voice)
	}

	accuracy := "simplified educational"
	lighting := "gentle lighting"
	if advanced {
		accuracy = "detailed historical accuracy"
		lighting = "dramatic lighting"
	}
	fmt.Fprintf(&b,
		" -- Style: pencil sketch, soft watercolor, 2D illustration, %s, muted colors, %s, historically accurate clothing and architecture.",
		accuracy, lighting)

	return b.String()
}

// QuizPrompt composes the image prompt for the quiz-recap frame. The style
// suffix trades illustration for text clarity.
func QuizPrompt(questions []catalog.QuizQuestion, narratorName string) string {
	var b strings.Builder

	b.WriteString("A parchment scroll unfurls with quiz questions written in elegant script. ")
	if narratorName == "Julius Caesar" {
		b.WriteString("Julius Caesar's cartoon figure appears at the side, playfully gesturing as he quizzes the viewer.")
	} else {
		b.WriteString("A friendly teacher figure points to the questions with a wooden pointer.")
	}
	b.WriteString(" The background shows subtle Roman motifs - columns, laurel leaves, and marble textures.")
	b.WriteString(" -- Style: pencil sketch, minimal watercolor, 2D, clear text focus, educational illustration.")

	return b.String()
}
