package boggle

import (
	"math/rand"
	"testing"
)

func TestGenerateBoardSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, size := range []int{BoardSizeSmall, BoardSizeMedium, BoardSizeLarge} {
		b, err := GenerateBoard(size, rng)
		if err != nil {
			t.Fatalf("GenerateBoard(%d): %v", size, err)
		}
		if b.Size != size {
			t.Fatalf("got size %d, want %d", b.Size, size)
		}
		if len(b.Cells) != size {
			t.Fatalf("got %d rows, want %d", len(b.Cells), size)
		}
		for _, row := range b.Cells {
			if len(row) != size {
				t.Fatalf("got row length %d, want %d", len(row), size)
			}
		}
	}
}

func TestGenerateBoardInvalidSize(t *testing.T) {
	if _, err := GenerateBoard(3, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected error for unsupported board size")
	}
}

func TestGeneratedBoardHasNoLandlockedConsonants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		b, err := GenerateBoard(BoardSizeMedium, rng)
		if err != nil {
			t.Fatalf("GenerateBoard: %v", err)
		}
		if n := countLandlockedConsonants(b); n != 0 {
			t.Fatalf("board has %d landlocked consonants:\n%v", n, b.Cells)
		}
	}
}

func TestGeneratedBoardHasNoQWithoutU(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 20; i++ {
		b, err := GenerateBoard(BoardSizeLarge, rng)
		if err != nil {
			t.Fatalf("GenerateBoard: %v", err)
		}
		if bad := findQWithoutU(b); len(bad) != 0 {
			t.Fatalf("board has Q without adjacent U at %v:\n%v", bad, b.Cells)
		}
	}
}

func TestDice6HasQUFace(t *testing.T) {
	found := false
	for _, die := range dice6 {
		for _, face := range die {
			if face == "QU" {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected dice6 to contain a QU face")
	}
}
