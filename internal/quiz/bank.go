package quiz

// sampleBank returns the built-in general-science question set used
// whenever generation is impossible. Returned fresh each call so a quiz
// session can't mutate the bank.
func sampleBank() []Question {
	return []Question{
		{
			Question:    "What is the primary function of mitochondria?",
			Options:     []string{"Protein synthesis", "Energy production (ATP)", "DNA replication", "Waste removal"},
			Correct:     1,
			Explanation: "Mitochondria are known as the powerhouses of the cell, producing ATP through cellular respiration.",
		},
		{
			Question:    "Which process converts light energy into chemical energy in plants?",
			Options:     []string{"Respiration", "Photosynthesis", "Transpiration", "Fermentation"},
			Correct:     1,
			Explanation: "Photosynthesis is the process by which plants convert light energy into chemical energy stored in glucose.",
		},
		{
			Question:    "What is the smallest unit of matter?",
			Options:     []string{"Molecule", "Atom", "Cell", "Electron"},
			Correct:     1,
			Explanation: "An atom is the smallest unit of matter that retains the properties of an element.",
		},
		{
			Question:    "In which phase of mitosis do chromosomes align at the center?",
			Options:     []string{"Prophase", "Metaphase", "Anaphase", "Telophase"},
			Correct:     1,
			Explanation: "During metaphase, chromosomes align at the metaphase plate in the center of the cell.",
		},
		{
			Question:    "What is the chemical formula for water?",
			Options:     []string{"H2O2", "H2O", "HO", "H3O"},
			Correct:     1,
			Explanation: "Water consists of two hydrogen atoms and one oxygen atom, giving it the formula H2O.",
		},
		{
			Question:    "Which organelle is responsible for protein synthesis?",
			Options:     []string{"Mitochondria", "Ribosome", "Nucleus", "Golgi apparatus"},
			Correct:     1,
			Explanation: "Ribosomes are the cellular structures responsible for protein synthesis.",
		},
		{
			Question:    "What is the pH of a neutral solution?",
			Options:     []string{"0", "7", "14", "10"},
			Correct:     1,
			Explanation: "A pH of 7 indicates a neutral solution, neither acidic nor basic.",
		},
		{
			Question:    "Which gas makes up approximately 78% of Earth's atmosphere?",
			Options:     []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Argon"},
			Correct:     1,
			Explanation: "Nitrogen makes up about 78% of Earth's atmosphere, with oxygen at about 21%.",
		},
		{
			Question:    "What is the speed of light in a vacuum?",
			Options:     []string{"3 × 10^8 m/s", "3 × 10^6 m/s", "3 × 10^10 m/s", "3 × 10^4 m/s"},
			Correct:     0,
			Explanation: "The speed of light in a vacuum is approximately 3 × 10^8 meters per second.",
		},
		{
			Question:    "Which process involves the movement of water through a semipermeable membrane?",
			Options:     []string{"Diffusion", "Osmosis", "Active transport", "Facilitated diffusion"},
			Correct:     1,
			Explanation: "Osmosis is the movement of water molecules through a semipermeable membrane from an area of lower solute concentration to higher.",
		},
	}
}
