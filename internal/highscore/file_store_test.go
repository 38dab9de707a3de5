package highscore

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileStoreUpdateAndStats(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "scores.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()
	ipHash := HashAddress("203.0.113.5")

	if _, ok, err := store.Stats(ctx, ipHash); err != nil || ok {
		t.Fatalf("expected no record for a new player, got ok=%v err=%v", ok, err)
	}

	if err := store.UpdateScore(ctx, ipHash, "Alice", 100, 10, 2, true, 1000); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}
	if err := store.UpdateScore(ctx, ipHash, "Alice", 50, 4, 1, false, 2000); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}

	rec, ok, err := store.Stats(ctx, ipHash)
	if err != nil || !ok {
		t.Fatalf("expected a record, got ok=%v err=%v", ok, err)
	}
	if rec.BestScore != 100 {
		t.Fatalf("got best score %d, want 100 (lower second game shouldn't overwrite)", rec.BestScore)
	}
	if rec.TotalGamesPlayed != 2 {
		t.Fatalf("got %d games played, want 2", rec.TotalGamesPlayed)
	}
	if rec.TotalWins != 1 {
		t.Fatalf("got %d wins, want 1", rec.TotalWins)
	}
}

func TestHashAddressDeterministic(t *testing.T) {
	a := HashAddress("198.51.100.1")
	b := HashAddress("198.51.100.1")
	if a != b {
		t.Fatal("HashAddress should be deterministic for the same input")
	}
	if a == HashAddress("198.51.100.2") {
		t.Fatal("HashAddress should differ for different inputs")
	}
}
