package boggle

// letterScores assigns a base point value per letter, mirroring Scrabble-
// style scarcity weighting.
var letterScores = map[byte]int{
	'A': 1, 'E': 1, 'I': 1, 'O': 1, 'U': 1, 'L': 1, 'N': 1, 'S': 1, 'T': 1, 'R': 1,
	'D': 2, 'G': 2,
	'B': 3, 'C': 3, 'M': 3, 'P': 3,
	'F': 4, 'H': 4, 'V': 4, 'W': 4, 'Y': 4,
	'K': 5,
	'J': 8, 'X': 8,
	'Q': 10, 'Z': 10,
}

// lengthMultiplier maps word length to its scoring multiplier. Words longer
// than the table's last entry use the final tier.
func lengthMultiplier(length int) float64 {
	switch {
	case length < MinWordLength:
		return 0
	case length == 3:
		return 1.0
	case length == 4:
		return 1.2
	case length == 5:
		return 1.5
	case length == 6:
		return 2.0
	default:
		return 3.0
	}
}

// uniqueBonus is applied once, after the length multiplier, to words only
// one player on the board found.
const uniqueBonus = 1.5

// Score computes a submitted word's point value. isUnique should reflect
// whether exactly one player across the lobby has found the word.
func Score(word string, isUnique bool) int {
	base := 0
	for i := 0; i < len(word); i++ {
		base += letterScores[word[i]]
	}
	total := int(float64(base) * lengthMultiplier(len(word)))
	if isUnique && total > 0 {
		total = int(float64(total) * uniqueBonus)
	}
	return total
}
