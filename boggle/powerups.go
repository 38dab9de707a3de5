package boggle

import (
	"math/rand"
	"time"
)

// BlockedCell is one cell BLOWUP has marked unusable until ExpiresAt.
type BlockedCell struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PowerupState holds every in-flight powerup effect for a lobby's current
// game. BlockedCells is shared across the lobby; ArmedLocks and
// BoardOverrides are per-player (§4.4). FREEZE itself needs no shared
// state: it credits the using player's own bonus_time_seconds directly.
type PowerupState struct {
	BlockedCells []BlockedCell

	// ArmedLocks holds, per player who has used LOCK, the board snapshot
	// taken at that moment, until a subsequent SHUFFLE promotes it into a
	// BoardOverride and clears the entry.
	ArmedLocks map[string]*Board
	// BoardOverrides holds the frozen board a locked player keeps seeing
	// after a shuffle, until a later shuffle promotes a newer armed lock of
	// theirs or the game ends.
	BoardOverrides map[string]*Board
}

// NewPowerupState returns an empty state ready for a new game.
func NewPowerupState() *PowerupState {
	return &PowerupState{
		BlockedCells:   nil,
		ArmedLocks:     make(map[string]*Board),
		BoardOverrides: make(map[string]*Board),
	}
}

// PowerupEffect describes what happened so the caller can build the
// broadcast payload; fields not relevant to the kind are left zero.
type PowerupEffect struct {
	Kind        PowerupKind
	By          string
	BonusTime   int
	Blocked     []BlockedCell
	NewBoard    *Board
}

// ApplyPowerup consumes kind on behalf of player, mutates state (and the
// player's own bonus time, for FREEZE) accordingly, and returns the effect
// to broadcast. now is passed in rather than read from time.Now so callers
// (and tests) control the clock.
func ApplyPowerup(state *PowerupState, board *Board, player *Player, kind PowerupKind, now time.Time, rng *rand.Rand) PowerupEffect {
	effect := PowerupEffect{Kind: kind, By: player.ID}

	switch kind {
	case PowerupFreeze:
		// FREEZE credits only the user with extra bonus_time_seconds; it
		// never touches the global clock or any opponent's state.
		player.BonusTimeSecs += FreezeBonusSeconds
		effect.BonusTime = player.BonusTimeSecs

	case PowerupBlowup:
		cells := pickBlockoutCells(board, rng)
		expiresAt := now.Add(BlockoutDurationSeconds * time.Second)
		blocked := make([]BlockedCell, len(cells))
		for i, c := range cells {
			blocked[i] = BlockedCell{Row: c[0], Col: c[1], ExpiresAt: expiresAt}
		}
		state.BlockedCells = append(state.BlockedCells, blocked...)
		effect.Blocked = blocked

	case PowerupShuffle:
		promoteArmedLocks(state)
		newBoard, err := GenerateBoard(board.Size, rng)
		if err != nil {
			newBoard = board.Clone()
		}
		*board = *newBoard
		effect.NewBoard = board

	case PowerupLock:
		// Armed only: the snapshot takes effect at the next SHUFFLE.
		state.ArmedLocks[player.ID] = board.Clone()
	}

	return effect
}

// promoteArmedLocks turns every armed LOCK into a board override before
// this SHUFFLE fires, so each locking player keeps the board they had when
// they armed it, and clears their armed entry.
func promoteArmedLocks(state *PowerupState) {
	for playerID, snapshot := range state.ArmedLocks {
		state.BoardOverrides[playerID] = snapshot
		delete(state.ArmedLocks, playerID)
	}
}

// EffectiveBoard returns the board a player should see: their override if
// LOCK is active, otherwise the shared lobby board.
func EffectiveBoard(state *PowerupState, shared *Board, playerID string) *Board {
	if override, ok := state.BoardOverrides[playerID]; ok {
		return override
	}
	return shared
}

// ClearLock drops a player's board override and armed lock, called when
// they leave the lobby.
func ClearLock(state *PowerupState, playerID string) {
	delete(state.ArmedLocks, playerID)
	delete(state.BoardOverrides, playerID)
}

// ActiveBlockedCells filters BlockedCells down to ones still in effect.
func ActiveBlockedCells(state *PowerupState, now time.Time) []BlockedCell {
	var active []BlockedCell
	for _, c := range state.BlockedCells {
		if now.Before(c.ExpiresAt) {
			active = append(active, c)
		}
	}
	return active
}

func pickBlockoutCells(board *Board, rng *rand.Rand) [][2]int {
	seen := map[[2]int]bool{}
	var cells [][2]int
	for len(cells) < BlockoutCells && len(seen) < board.Size*board.Size {
		cell := [2]int{rng.Intn(board.Size), rng.Intn(board.Size)}
		if seen[cell] {
			continue
		}
		seen[cell] = true
		cells = append(cells, cell)
	}
	return cells
}

// RandomEarnablePowerup picks the powerup a long word awards, per §4.4.
func RandomEarnablePowerup(rng *rand.Rand) PowerupKind {
	return earnablePowerups[rng.Intn(len(earnablePowerups))]
}
