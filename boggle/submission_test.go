package boggle

import (
	"math/rand"
	"testing"
)

func newTestLobby(t *testing.T) *Lobby {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	l := NewLobby("ABCDEFGH", BoardSizeSmall, rng)
	if _, err := l.Join("p1", "Alice", "cat", "127.0.0.1"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := l.StartGame("p1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	l.BeginPlaying()
	l.Board = fixedBoard()
	l.BoardSize = 3
	return l
}

func TestSubmitWordRejectsWrongPhase(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := NewLobby("ABCDEFGH", BoardSizeSmall, rng)
	l.Join("p1", "Alice", "cat", "127.0.0.1")
	dict := NewFallbackWordList()
	_, err := l.SubmitWord("p1", "CAT", []PathCell{{0, 0}, {0, 1}, {0, 2}}, dict, rng)
	if err != ErrWrongPhase {
		t.Fatalf("got %v, want ErrWrongPhase", err)
	}
}

func TestSubmitWordHappyPath(t *testing.T) {
	l := newTestLobby(t)
	dict := NewWordList([]string{"CAT"})
	path := []PathCell{{0, 0}, {0, 1}, {0, 2}}
	result, err := l.SubmitWord("p1", "CAT", path, dict, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("SubmitWord: %v", err)
	}
	if result.Score <= 0 {
		t.Fatalf("expected positive score, got %d", result.Score)
	}
	if !result.IsUnique {
		t.Fatal("single player's word should be unique")
	}
}

func TestSubmitWordRejectsDuplicate(t *testing.T) {
	l := newTestLobby(t)
	dict := NewWordList([]string{"CAT"})
	path := []PathCell{{0, 0}, {0, 1}, {0, 2}}
	rng := rand.New(rand.NewSource(2))
	if _, err := l.SubmitWord("p1", "CAT", path, dict, rng); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := l.SubmitWord("p1", "CAT", path, dict, rng); err != ErrAlreadyFound {
		t.Fatalf("got %v, want ErrAlreadyFound", err)
	}
}

func TestSubmitWordRejectsBadPath(t *testing.T) {
	l := newTestLobby(t)
	dict := NewWordList([]string{"CSN"})
	path := []PathCell{{0, 0}, {1, 2}, {2, 2}}
	if _, err := l.SubmitWord("p1", "CSN", path, dict, rand.New(rand.NewSource(2))); err != ErrNotOnBoard {
		t.Fatalf("got %v, want ErrNotOnBoard", err)
	}
}

func TestSubmitWordRejectsUnknownWord(t *testing.T) {
	l := newTestLobby(t)
	dict := NewWordList([]string{"OTHER"})
	path := []PathCell{{0, 0}, {0, 1}, {0, 2}}
	if _, err := l.SubmitWord("p1", "CAT", path, dict, rand.New(rand.NewSource(2))); err != ErrNotAWord {
		t.Fatalf("got %v, want ErrNotAWord", err)
	}
}
