// Package timing allocates a lesson's runtime across scenes.
package timing

const (
	// nominalSceneSeconds targets 30-60 second pacing per scene.
	nominalSceneSeconds = 45

	minScenes = 3
	maxScenes = 8

	quizSeconds = 60
)

// Allocation is the result of splitting a requested lesson length.
type Allocation struct {
	NumScenes       int
	SecondsPerScene int
	QuizSeconds     int
}

// Allocate splits totalMinutes of lesson time into scene slots. The quiz, when
// requested, always takes a fixed 60 seconds off the top. Scene count is
// clamped to [3, 8]: enough for a narrative arc, bounded to cap image
// generation cost. Content seconds are clamped to >= 0 so tiny lesson lengths
// degrade instead of going negative.
func Allocate(totalMinutes int, includeQuiz bool) Allocation {
	quiz := 0
	if includeQuiz {
		quiz = quizSeconds
	}

	content := totalMinutes*60 - quiz
	if content < 0 {
		content = 0
	}

	numScenes := content / nominalSceneSeconds
	if numScenes < minScenes {
		numScenes = minScenes
	}
	if numScenes > maxScenes {
		numScenes = maxScenes
	}

	return Allocation{
		NumScenes:       numScenes,
		SecondsPerScene: content / numScenes,
		QuizSeconds:     quiz,
	}
}
