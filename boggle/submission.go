package boggle

import (
	"math/rand"
	"strings"
)

// PathCell is one step of a submitted word's claimed path across the board.
type PathCell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SubmissionResult carries everything the caller needs to build the
// word_result/score_update wire payloads.
type SubmissionResult struct {
	Word       string
	Score      int
	IsUnique   bool
	EarnedKind PowerupKind
	Earned     bool
}

// SubmitWord runs the full rejection pipeline from §4.6, in the specified
// order: lobby phase, player existence, duplicate, path validity, dictionary
// membership. word and path are exactly as the client submitted them; word
// is expected upper-cased already (the gateway normalizes this).
func (l *Lobby) SubmitWord(playerID, word string, path []PathCell, dict Dictionary, rng *rand.Rand) (*SubmissionResult, error) {
	l.mu.Lock()
	if l.Status != StatusPlaying {
		l.mu.Unlock()
		return nil, ErrWrongPhase
	}
	player := l.findPlayerLocked(playerID)
	if player == nil {
		l.mu.Unlock()
		return nil, ErrPlayerNotFound
	}
	if player.hasFoundWord(word) {
		l.mu.Unlock()
		return nil, ErrAlreadyFound
	}

	board := EffectiveBoard(l.Powerups, l.Board, playerID)
	if !pathSpellsWord(board, path, word) {
		l.mu.Unlock()
		return nil, ErrNotOnBoard
	}
	l.mu.Unlock()

	if len(word) < MinWordLength || !dict.Contains(word) {
		return nil, ErrNotAWord
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check phase/duplicate under the write lock in case of a race with
	// a concurrent submission for the same player (the engine's actor loop
	// already serializes this in practice, but SubmitWord stays safe to
	// call directly too).
	if l.Status != StatusPlaying {
		return nil, ErrWrongPhase
	}
	player = l.findPlayerLocked(playerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	if player.hasFoundWord(word) {
		return nil, ErrAlreadyFound
	}

	player.FoundWords = append(player.FoundWords, word)
	// During play every word scores as unique; Finalize recomputes the
	// final scores from occurrence counts once all word lists are known.
	isUnique := true
	points := Score(word, isUnique)
	player.Score += points

	if cs, ok := l.Challenges[playerID]; ok {
		cs.RecordWord(word, points)
	}

	result := &SubmissionResult{Word: word, Score: points, IsUnique: isUnique}
	if len(word) >= PowerupEarnMinLength {
		kind := RandomEarnablePowerup(rng)
		player.Powerups = append(player.Powerups, kind)
		result.Earned = true
		result.EarnedKind = kind
	}
	return result, nil
}

// SubmissionReason maps a SubmitWord rejection to the exact wire reason
// string §4.6 specifies for word_result.
func SubmissionReason(err error) string {
	switch err {
	case ErrWrongPhase:
		return "not in progress"
	case ErrPlayerNotFound:
		return "player not found"
	case ErrAlreadyFound:
		return "already found"
	case ErrNotOnBoard:
		return "not on board"
	case ErrNotAWord:
		return "not a word"
	default:
		return "rejected"
	}
}

// isUniqueLocked reports whether playerID is the only player in the lobby
// who has found word so far. Callers must hold l.mu.
func (l *Lobby) isUniqueLocked(word, playerID string) bool {
	for _, p := range l.Players {
		if p.ID == playerID {
			continue
		}
		if p.hasFoundWord(word) {
			return false
		}
	}
	return true
}

// pathSpellsWord validates that path is a legal adjacency chain on board
// with no repeated cell and that concatenating each cell's tile spells
// word exactly (QU tiles contribute both letters from a single cell).
func pathSpellsWord(board *Board, path []PathCell, word string) bool {
	if len(path) == 0 {
		return false
	}
	visited := map[PathCell]bool{}
	var built strings.Builder

	for i, cell := range path {
		if !board.inBounds(cell.Row, cell.Col) {
			return false
		}
		if visited[cell] {
			return false
		}
		visited[cell] = true

		if i > 0 {
			prev := path[i-1]
			if !adjacent(prev, cell) {
				return false
			}
		}
		built.WriteString(board.Cells[cell.Row][cell.Col])
	}
	return built.String() == word
}

func adjacent(a, b PathCell) bool {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr <= 1 && dc <= 1 && (dr != 0 || dc != 0)
}

