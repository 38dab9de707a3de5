package boggle

import (
	"math/rand"
	"testing"
)

func TestFinalizeRecomputesUniqueness(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	l := NewLobby("ABCDEFGH", BoardSizeSmall, rng)
	l.Join("p1", "Alice", "cat", "127.0.0.1")
	l.Join("p2", "Bob", "dog", "127.0.0.2")
	if err := l.StartGame("p1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	l.BeginPlaying()
	l.Board = fixedBoard()
	l.BoardSize = 3

	dict := NewWordList([]string{"CAT", "CAR"})
	path := []PathCell{{0, 0}, {0, 1}, {0, 2}}

	if _, err := l.SubmitWord("p1", "CAT", path, dict, rng); err != nil {
		t.Fatalf("p1 submit: %v", err)
	}
	if _, err := l.SubmitWord("p2", "CAT", path, dict, rng); err != nil {
		t.Fatalf("p2 submit: %v", err)
	}

	summary := l.Finalize(dict)
	if len(summary.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(summary.Results))
	}
	for _, award := range summary.WordAwards {
		if award.Word == "CAT" && award.IsUnique {
			t.Fatal("CAT found by both players should not be unique")
		}
	}
}

func TestFinalizeWinnerIsHighestScore(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	l := NewLobby("ABCDEFGH", BoardSizeSmall, rng)
	l.Join("p1", "Alice", "cat", "127.0.0.1")
	l.Join("p2", "Bob", "dog", "127.0.0.2")
	if err := l.StartGame("p1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	l.BeginPlaying()
	l.Board = fixedBoard()
	l.BoardSize = 3

	dict := NewWordList([]string{"CAT", "CAR"})
	if _, err := l.SubmitWord("p1", "CAT", []PathCell{{0, 0}, {0, 1}, {0, 2}}, dict, rng); err != nil {
		t.Fatalf("p1 submit CAT: %v", err)
	}
	if _, err := l.SubmitWord("p1", "CAR", []PathCell{{0, 0}, {0, 1}, {1, 1}}, dict, rng); err != nil {
		t.Fatalf("p1 submit CAR: %v", err)
	}

	summary := l.Finalize(dict)
	if summary.WinnerID != "p1" {
		t.Fatalf("got winner %q, want p1", summary.WinnerID)
	}
}
