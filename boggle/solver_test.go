package boggle

import "testing"

func fixedBoard() *Board {
	// C A T
	// O R S
	// D E N
	return &Board{Size: 3, Cells: [][]string{
		{"C", "A", "T"},
		{"O", "R", "S"},
		{"D", "E", "N"},
	}}
}

func TestFindAllWordsFindsKnownWord(t *testing.T) {
	dict := NewWordList([]string{"CAT", "CAR", "ARTS", "TON"})
	found := FindAllWords(fixedBoard(), dict)
	if !containsStr(found, "CAT") {
		t.Fatalf("expected CAT among found words, got %v", found)
	}
	if !containsStr(found, "CAR") {
		t.Fatalf("expected CAR among found words, got %v", found)
	}
}

func TestFindAllWordsRejectsNonAdjacentPath(t *testing.T) {
	dict := NewWordList([]string{"CSN"})
	found := FindAllWords(fixedBoard(), dict)
	if containsStr(found, "CSN") {
		t.Fatal("CSN cells are not adjacent, should not be found")
	}
}

func TestLongestWordTieBreaksAlphabetically(t *testing.T) {
	got := LongestWord([]string{"ZEBRA", "APPLE", "DOG"})
	if got != "APPLE" {
		t.Fatalf("LongestWord = %q, want APPLE", got)
	}
}

func containsStr(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
