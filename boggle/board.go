package boggle

import (
	"math/rand"
	"strings"
)

// vowels is the set of letters counted toward the vowel-ratio invariant.
var vowels = map[byte]bool{'A': true, 'E': true, 'I': true, 'O': true, 'U': true}

func isVowelTile(tile string) bool {
	if tile == "" {
		return false
	}
	return vowels[tile[0]]
}

// dice4, dice5 and dice6 mirror the official Boggle dice distributions for
// each supported board size, one die per cell, six faces per die. dice6
// carries one die with a "QU" face so Q tiles can appear pre-paired with U.
var dice4 = splitFaces([]string{
	"AAEEGN", "ABBJOO", "ACHOPS", "AFFKPS",
	"AOOTTW", "CIMOTU", "DEILRX", "DELRVY",
	"DISTTY", "EEGHNW", "EEINSU", "EHRTVW",
	"EIOSST", "ELRTTY", "HIMNQU", "HLNNRZ",
})

var dice5 = splitFaces([]string{
	"AAAFRS", "AAEEEE", "AAFIRS", "ADENNN", "AEEEEM",
	"AEEGMU", "AEGMNN", "AFIRSY", "BJKQXZ", "CCNSTW",
	"CEIILT", "CEILPT", "CEIPST", "DDLNOR", "DHHLOR",
	"DHHNOT", "DHLNOR", "EIIITT", "EMOTTT", "ENSSSU",
	"FIPRSY", "GORRVW", "HIPRRY", "NOOTUW", "OOOTTU",
})

var dice6 = append(splitFaces([]string{
	"AAAFRS", "AAEEEE", "AAEEOO", "AAFIRS", "ABDEIO", "ADENNN",
	"AEEEEM", "AEEGMU", "AEGMNN", "AEILMN", "AEINOU", "AFIRSY",
	"BBJKXZ", "CCENST", "CDDLNN", "CEIILT", "CEIPST", "CFGNUY",
	"DDHNOT", "DHHLOR", "DHHNOW", "DHLNOR", "EHILRS", "EIILST",
	"EILPST", "EIORST", "EMTTTO", "ENSSSU", "GORRVW", "HIRSTV",
	"HOPRST", "IPRSYY", "NOOTUW", "OOOTTU", "OOOTUU",
}), []string{"J", "K", "QU", "W", "X", "Z"})

func splitFaces(dice []string) [][]string {
	out := make([][]string, len(dice))
	for i, d := range dice {
		faces := make([]string, len(d))
		for j := 0; j < len(d); j++ {
			faces[j] = string(d[j])
		}
		out[i] = faces
	}
	return out
}

func diceSetFor(size int) [][]string {
	switch size {
	case BoardSizeSmall:
		return dice4
	case BoardSizeMedium:
		return dice5
	default:
		return dice6
	}
}

// Board is a size×size grid of tiles.
type Board struct {
	Size  int
	Cells [][]string
}

// Clone returns a deep copy, used when taking a snapshot for LOCK/overrides.
func (b *Board) Clone() *Board {
	cells := make([][]string, b.Size)
	for r := range cells {
		cells[r] = append([]string(nil), b.Cells[r]...)
	}
	return &Board{Size: b.Size, Cells: cells}
}

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.Size && c >= 0 && c < b.Size
}

func (b *Board) neighbors(r, c int) [][2]int {
	var out [][2]int
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if b.inBounds(nr, nc) {
				out = append(out, [2]int{nr, nc})
			}
		}
	}
	return out
}

// GenerateBoard rolls a new board for size, retrying until playable or
// falling back to the deterministic repair pass (§4.1).
func GenerateBoard(size int, rng *rand.Rand) (*Board, error) {
	if err := validateBoardSize(size); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	var b *Board
	for attempt := 0; attempt < boardGenerationAttemptBudget; attempt++ {
		b = rollBoard(size, rng)
		if isPlayable(b) {
			return b, nil
		}
	}
	repairBoard(b, rng)
	return b, nil
}

func rollBoard(size int, rng *rand.Rand) *Board {
	dice := diceSetFor(size)
	shuffled := make([][]string, len(dice))
	copy(shuffled, dice)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	cells := make([][]string, size)
	idx := 0
	for r := 0; r < size; r++ {
		cells[r] = make([]string, size)
		for c := 0; c < size; c++ {
			faces := shuffled[idx]
			idx++
			face := faces[rng.Intn(len(faces))]
			cells[r][c] = strings.ToUpper(face)
		}
	}
	return &Board{Size: size, Cells: cells}
}

// isPlayable evaluates step 4-5 of §4.1: no landlocked consonants, the
// vowel floor is met, and no Q lacks an adjacent U.
func isPlayable(b *Board) bool {
	vowelCount := 0
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if isVowelTile(b.Cells[r][c]) {
				vowelCount++
			}
		}
	}
	if vowelCount < minVowelFloor(b.Size) {
		return false
	}
	return countLandlockedConsonants(b) == 0 && len(findQWithoutU(b)) == 0
}

func isConsonantTile(tile string) bool {
	return tile != "" && !isVowelTile(tile) && tile != "QU"
}

func hasVowelNeighbor(b *Board, r, c int) bool {
	for _, n := range b.neighbors(r, c) {
		if isVowelTile(b.Cells[n[0]][n[1]]) {
			return true
		}
	}
	return false
}

func countLandlockedConsonants(b *Board) int {
	return len(findLandlockedConsonants(b))
}

func findLandlockedConsonants(b *Board) [][2]int {
	var out [][2]int
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			tile := b.Cells[r][c]
			if !isConsonantTile(tile) && tile != "QU" {
				continue
			}
			// QU already guarantees its own U; only plain consonants need a
			// vowel neighbor.
			if isConsonantTile(tile) && !hasVowelNeighbor(b, r, c) {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}

func findQWithoutU(b *Board) [][2]int {
	var out [][2]int
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if b.Cells[r][c] != "Q" {
				continue
			}
			hasU := false
			for _, n := range b.neighbors(r, c) {
				if b.Cells[n[0]][n[1]] == "U" || b.Cells[n[0]][n[1]] == "QU" {
					hasU = true
					break
				}
			}
			if !hasU {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}

// rareLetters are given priority when the landlocked fix picks which cell
// to repair first, per §4.1.
var rareLetters = map[string]bool{"J": true, "X": true, "Q": true, "Z": true}

// repairBoard deterministically fixes landlocked consonants and Q-without-U
// cells (§4.1's repair pass). It always terminates: each fix loop stops once
// its invariant holds or its attempt budget is spent, whichever comes first.
func repairBoard(b *Board, rng *rand.Rand) {
	fixLandlockedConsonants(b, rng)
	fixQWithoutU(b, rng)
}

func fixLandlockedConsonants(b *Board, rng *rand.Rand) {
	for attempt := 0; attempt < landlockedFixAttemptBudget; attempt++ {
		landlocked := findLandlockedConsonants(b)
		if len(landlocked) == 0 {
			return
		}
		target := pickPreferredCell(b, landlocked)

		if swapWithAdjacentVowelThatGainsNeighbor(b, target) {
			continue
		}
		swapWithNearestVowel(b, target, rng)
	}
}

// pickPreferredCell prefers repairing a rare-letter cell first, since
// swapping a common consonant into place is cheaper than losing a rare one.
func pickPreferredCell(b *Board, cells [][2]int) [2]int {
	for _, cell := range cells {
		if rareLetters[b.Cells[cell[0]][cell[1]]] {
			return cell
		}
	}
	return cells[0]
}

// swapWithAdjacentVowelThatGainsNeighbor looks for a vowel cell adjacent to
// target such that, after swapping target and that vowel, target gains a
// vowel neighbor. Returns true if such a swap was found and applied.
func swapWithAdjacentVowelThatGainsNeighbor(b *Board, target [2]int) bool {
	r, c := target[0], target[1]
	for _, n := range b.neighbors(r, c) {
		if !isVowelTile(b.Cells[n[0]][n[1]]) {
			continue
		}
		swapCells(b, target, n)
		if hasVowelNeighbor(b, r, c) {
			return true
		}
		swapCells(b, target, n) // undo, didn't help
	}
	return false
}

// swapWithNearestVowel swaps target with the Manhattan-nearest vowel cell
// on the board, guaranteeing target now sits where a vowel used to be or
// picks up a vowel neighbor depending on proximity.
func swapWithNearestVowel(b *Board, target [2]int, rng *rand.Rand) {
	best := [2]int{-1, -1}
	bestDist := -1
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if !isVowelTile(b.Cells[r][c]) {
				continue
			}
			d := manhattan(target, [2]int{r, c})
			if bestDist == -1 || d < bestDist {
				bestDist = d
				best = [2]int{r, c}
			}
		}
	}
	if best[0] == -1 {
		return
	}
	swapCells(b, target, best)
}

func fixQWithoutU(b *Board, rng *rand.Rand) {
	for attempt := 0; attempt < qWithoutUFixAttemptBudget; attempt++ {
		qCells := findQWithoutU(b)
		if len(qCells) == 0 {
			return
		}
		q := qCells[0]
		if swapInNearestSpareU(b, q) {
			continue
		}
		upgradeAdjacentVowelToU(b, q)
	}
}

// swapInNearestSpareU finds a U elsewhere on the board that is not already
// adjacent to this Q and swaps it into one of the Q's neighbor cells.
func swapInNearestSpareU(b *Board, q [2]int) bool {
	var bestU [2]int
	bestDist := -1
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if b.Cells[r][c] != "U" {
				continue
			}
			if r == q[0] && c == q[1] {
				continue
			}
			d := manhattan(q, [2]int{r, c})
			if bestDist == -1 || d < bestDist {
				bestDist = d
				bestU = [2]int{r, c}
			}
		}
	}
	if bestDist == -1 {
		return false
	}

	// Swap the spare U into whichever neighbor cell of Q is closest to it;
	// neighbors are scanned in a fixed order, so ties resolve the same way.
	var dest [2]int
	destDist := -1
	for _, n := range b.neighbors(q[0], q[1]) {
		d := manhattan(n, bestU)
		if destDist == -1 || d < destDist {
			destDist = d
			dest = n
		}
	}
	swapCells(b, dest, bestU)
	return true
}

// upgradeAdjacentVowelToU turns one of Q's vowel neighbors directly into a
// U when no spare U exists elsewhere to swap in.
func upgradeAdjacentVowelToU(b *Board, q [2]int) {
	for _, n := range b.neighbors(q[0], q[1]) {
		if isVowelTile(b.Cells[n[0]][n[1]]) {
			b.Cells[n[0]][n[1]] = "U"
			return
		}
	}
	// No vowel neighbor at all: convert the first neighbor cell to U
	// outright.
	if neighbors := b.neighbors(q[0], q[1]); len(neighbors) > 0 {
		n := neighbors[0]
		b.Cells[n[0]][n[1]] = "U"
	}
}

func swapCells(b *Board, a, c [2]int) {
	b.Cells[a[0]][a[1]], b.Cells[c[0]][c[1]] = b.Cells[c[0]][c[1]], b.Cells[a[0]][a[1]]
}

func manhattan(a, b [2]int) int {
	return absInt(a[0]-b[0]) + absInt(a[1]-b[1])
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
