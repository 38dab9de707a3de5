package boggle

import "testing"

func TestChallengeSetTracksWordCount(t *testing.T) {
	cs := NewChallengeSet()
	for i := 0; i < 8; i++ {
		cs.RecordWord("WORD", 5)
	}
	all := cs.All()
	var found *ChallengeProgress
	for i := range all {
		if all[i].Challenge.ID == "words_8" {
			found = &all[i]
		}
	}
	if found == nil {
		t.Fatal("expected words_8 challenge in catalog")
	}
	if !found.Completed {
		t.Fatalf("expected words_8 completed after 8 words, got progress=%d", found.Progress)
	}
}

func TestChallengeSetPalindrome(t *testing.T) {
	cs := NewChallengeSet()
	cs.RecordWord("RACECAR", 10)
	all := cs.All()
	for _, p := range all {
		if p.Challenge.ID == "palindrome_1" && !p.Completed {
			t.Fatal("expected palindrome_1 completed after RACECAR")
		}
	}
}

func TestChallengeCatalogHasThirtyEntries(t *testing.T) {
	if len(AllChallenges) != 30 {
		t.Fatalf("got %d challenges, want 30", len(AllChallenges))
	}
}

func TestChallengeSetTotalPoints(t *testing.T) {
	cs := NewChallengeSet()
	if cs.TotalPoints() != 0 {
		t.Fatal("fresh challenge set should have zero points")
	}
}
