package catalog

var subjectOrder = []string{
	"History of Rome",
	"French Revolution",
	"Ancient Egypt",
}

var subjects = map[string]SubjectTemplate{
	"History of Rome": {
		Scenes: []Scene{
			{Title: "The Legend Begins", Synopsis: "Romulus and Remus founding myth"},
			{Title: "Founding of the Republic", Synopsis: "Overthrow of kings, establishment of Senate"},
			{Title: "Rise of the Republic", Synopsis: "Expansion, Punic Wars, Republican system"},
			{Title: "The Power of Rome", Synopsis: "Cultural achievements, Colosseum, engineering"},
			{Title: "Julius Caesar's Era", Synopsis: "Civil war, dictatorship, reforms, assassination"},
			{Title: "Legacy of Rome", Synopsis: "Impact on Western civilization"},
		},
		QuizQuestions: []QuizQuestion{
			{
				Question: "What year was Rome founded?",
				Options:  []string{"1500 BC", "753 BC", "4500 BC", "6000 BC"},
				Answer:   "753 BC",
			},
			{
				Question: "What replaced the kings in Rome?",
				Options:  []string{"Republic (Senate rule)", "Julius Caesar", "Empire", "Consuls"},
				Answer:   "Republic (Senate rule)",
			},
			{
				Question: "What river did Julius Caesar cross to start civil war?",
				Options:  []string{"Rubicon", "Tiber", "Nile", "Thames"},
				Answer:   "Rubicon",
			},
		},
	},
	"French Revolution": {
		Scenes: []Scene{
			{Title: "The Old Regime", Synopsis: "Social inequality, financial crisis"},
			{Title: "The Estates-General", Synopsis: "Calling of representatives, Tennis Court Oath"},
			{Title: "Storming the Bastille", Synopsis: "July 14, 1789 - symbol of revolution"},
			{Title: "Reign of Terror", Synopsis: "Robespierre, guillotine, executions"},
			{Title: "Rise of Napoleon", Synopsis: "Military genius takes power"},
		},
		QuizQuestions: []QuizQuestion{
			{
				Question: "When did the French Revolution begin?",
				Options:  []string{"1789", "1792", "1799", "1804"},
				Answer:   "1789",
			},
			{
				Question: "What was stormed on July 14, 1789?",
				Options:  []string{"Bastille", "Versailles", "Louvre", "Notre Dame"},
				Answer:   "Bastille",
			},
		},
	},
	"Ancient Egypt": {
		Scenes: []Scene{
			{Title: "Gift of the Nile", Synopsis: "Annual floods, fertile banks, birth of a civilization"},
			{Title: "The Pyramid Builders", Synopsis: "Old Kingdom, Giza plateau, monumental engineering"},
			{Title: "Gods and the Afterlife", Synopsis: "Temples, mummification, the Book of the Dead"},
			{Title: "The Reign of Cleopatra", Synopsis: "Last pharaoh, alliance with Rome, end of the Ptolemies"},
			{Title: "Echoes of Egypt", Synopsis: "Hieroglyphs deciphered, legacy in art and science"},
		},
		QuizQuestions: []QuizQuestion{
			{
				Question: "Which river made Egyptian agriculture possible?",
				Options:  []string{"Nile", "Tigris", "Euphrates", "Jordan"},
				Answer:   "Nile",
			},
			{
				Question: "Who was the last pharaoh of Egypt?",
				Options:  []string{"Cleopatra", "Tutankhamun", "Ramses II", "Nefertiti"},
				Answer:   "Cleopatra",
			},
			{
				Question: "What stone unlocked the reading of hieroglyphs?",
				Options:  []string{"Rosetta Stone", "Palermo Stone", "Narmer Palette", "Obelisk of Luxor"},
				Answer:   "Rosetta Stone",
			},
		},
	},
}
