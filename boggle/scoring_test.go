package boggle

import "testing"

func TestScoreLengthMultiplier(t *testing.T) {
	// CAT: C=3, A=1, T=1 -> base 5, *1.0 = 5
	if got := Score("CAT", false); got != 5 {
		t.Fatalf("Score(CAT) = %d, want 5", got)
	}
	// short words score zero
	if got := Score("AT", false); got != 0 {
		t.Fatalf("Score(AT) = %d, want 0", got)
	}
}

func TestScoreUniqueBonus(t *testing.T) {
	base := Score("CATS", false)
	unique := Score("CATS", true)
	if unique <= base {
		t.Fatalf("unique score %d should exceed non-unique %d", unique, base)
	}
}

func TestScoreMonotonicWithLength(t *testing.T) {
	if Score("WORD", false) <= Score("TEN", false) {
		t.Fatalf("longer word should generally score at least as much")
	}
}
