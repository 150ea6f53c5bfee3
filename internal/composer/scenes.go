package composer

import "fmt"

// sceneDescription returns the hand-authored visual paragraph for a known
// scene title. A few descriptions weave the narrator into the composition.
func sceneDescription(title, narratorName string) (string, bool) {
	switch title {
	case "The Legend Begins":
		return "On a rocky hill at dawn, young Romulus stands over his twin Remus, sword raised in a fateful moment. " +
			"Remus lies on the ground as the first light of 753 BC breaks over the Tiber River valley. " +
			"Ancient Roman villagers in simple tunics watch in shock from afar. " +
			"The half-built wooden walls of primordial Rome rise in the background, and a she-wolf silhouette recalls their mythical childhood.", true

	case "Founding of the Republic":
		return "In the Roman Forum, citizens rejoice as the tyrant king's crown is cast down the temple steps. " +
			"Lucius Junius Brutus holds aloft the Republic's banner amid a crowd of toga-clad Romans. " +
			"Marble columns and bronze statues glint in morning sunlight. The scene marks 509 BC, the birth of the Roman Republic.", true

	case "Rise of the Republic":
		return "A sweeping view of Roman legions marching under the SPQR eagle standard. " +
			"In the foreground, senators in white togas debate on the Senate steps. " +
			"The Mediterranean expands in the background showing Rome's growing influence. " +
			"War elephants and ships hint at the Punic Wars victory.", true

	case "The Power of Rome":
		desc := "A grand view of the Colosseum in its glory, with detailed arches and columns. " +
			"Gladiators salute the crowd while Roman citizens fill the stands. " +
			"The architecture showcases Roman engineering prowess."
		if narratorName == "Julius Caesar" {
			desc += fmt.Sprintf(" %s's ghostly figure observes from the foreground, noting this marvel built after his time.", narratorName)
		}
		return desc, true

	case "Julius Caesar's Era":
		return "Scene montage: Julius Caesar in battle armor crosses the Rubicon River at dusk with his legion. " +
			"Transition to Caesar in crimson toga addressing the Senate. " +
			"Finally, the Ides of March - senators with daggers surround Caesar at the Theatre of Pompey as he falls in shock.", true
	}

	return "", false
}
