package catalog

var narratorOrder = []string{
	"Julius Caesar",
	"Cleopatra",
	"Napoleon Bonaparte",
	"Teacher",
}

var narrators = map[string]Narrator{
	"Julius Caesar": {
		Name:        "Julius Caesar",
		Perspective: FirstPerson,
		Voice:       "authoritative, reflective, sometimes dramatic",
		Context:     "Roman general, politician, and dictator",
	},
	"Cleopatra": {
		Name:        "Cleopatra",
		Perspective: FirstPerson,
		Voice:       "regal, intelligent, strategic",
		Context:     "Last pharaoh of Egypt",
	},
	"Napoleon Bonaparte": {
		Name:        "Napoleon Bonaparte",
		Perspective: FirstPerson,
		Voice:       "ambitious, tactical, grandiose",
		Context:     "French military leader and emperor",
	},
	"Teacher": {
		Name:        "Teacher",
		Perspective: ThirdPerson,
		Voice:       "educational, neutral, engaging",
		Context:     "Modern educator explaining historical events",
	},
}
