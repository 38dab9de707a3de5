package boggle

import (
	"math/rand"
	"testing"
	"time"
)

func fixed4x4Board() *Board {
	return &Board{Size: 4, Cells: [][]string{
		{"C", "A", "T", "S"},
		{"O", "R", "S", "E"},
		{"D", "E", "N", "T"},
		{"L", "I", "O", "N"},
	}}
}

func TestLockSurvivesShuffle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	board := fixed4x4Board()
	state := NewPowerupState()
	before := board.Clone()
	p1 := &Player{ID: "p1"}
	p2 := &Player{ID: "p2"}

	ApplyPowerup(state, board, p1, PowerupLock, time.Now(), rng)
	if override, ok := state.ArmedLocks["p1"]; !ok || !boardsEqual(override, before) {
		t.Fatal("LOCK should snapshot the current board for p1")
	}

	ApplyPowerup(state, board, p2, PowerupShuffle, time.Now(), rng)

	eff := EffectiveBoard(state, board, "p1")
	if !boardsEqual(eff, before) {
		t.Fatal("p1's effective board should remain the pre-shuffle board after SHUFFLE")
	}
	other := EffectiveBoard(state, board, "p2")
	if boardsEqual(other, before) {
		t.Fatal("p2 (no lock) should see the new shuffled board, not the old one")
	}
}

func TestFreezeCreditsOnlyTheUser(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	board := fixedBoard()
	state := NewPowerupState()
	now := time.Now()
	a := &Player{ID: "a", BonusTimeSecs: 0}
	b := &Player{ID: "b", BonusTimeSecs: 0}

	ApplyPowerup(state, board, a, PowerupFreeze, now, rng)
	if a.BonusTimeSecs != FreezeBonusSeconds {
		t.Fatalf("got bonus_time_seconds=%d, want %d", a.BonusTimeSecs, FreezeBonusSeconds)
	}
	if b.BonusTimeSecs != 0 {
		t.Fatal("FREEZE must not grant bonus time to any other player")
	}

	ApplyPowerup(state, board, a, PowerupFreeze, now, rng)
	if a.BonusTimeSecs != FreezeBonusSeconds*2 {
		t.Fatalf("bonus time should accumulate across uses, got %d", a.BonusTimeSecs)
	}
}

func TestBlowupMarksCells(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	board := fixedBoard()
	state := NewPowerupState()
	now := time.Now()
	p1 := &Player{ID: "p1"}
	eff := ApplyPowerup(state, board, p1, PowerupBlowup, now, rng)

	if len(eff.Blocked) != BlockoutCells {
		t.Fatalf("got %d blocked cells, want %d", len(eff.Blocked), BlockoutCells)
	}
	active := ActiveBlockedCells(state, now.Add(1*time.Second))
	if len(active) != BlockoutCells {
		t.Fatalf("expected all cells active just after blowup, got %d", len(active))
	}
	expired := ActiveBlockedCells(state, now.Add(time.Duration(BlockoutDurationSeconds+1)*time.Second))
	if len(expired) != 0 {
		t.Fatalf("expected no active cells after expiry, got %d", len(expired))
	}
}

func boardsEqual(a, b *Board) bool {
	if a.Size != b.Size {
		return false
	}
	for r := 0; r < a.Size; r++ {
		for c := 0; c < a.Size; c++ {
			if a.Cells[r][c] != b.Cells[r][c] {
				return false
			}
		}
	}
	return true
}
