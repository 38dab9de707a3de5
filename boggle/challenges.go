package boggle

import "strings"

// ChallengeCategory groups challenges for display purposes.
type ChallengeCategory string

const (
	CategoryWords  ChallengeCategory = "words"
	CategoryLength ChallengeCategory = "length"
	CategoryScore  ChallengeCategory = "score"
	CategorySpecial ChallengeCategory = "special"
)

// Challenge is one entry of the fixed catalog. Predicate reports whether a
// single found word contributes one unit of progress; Target is the number
// of units required to complete it. Score-category challenges have no
// Predicate: their progress is the player's running point total and Target
// is the point threshold.
type Challenge struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	Description string                        `json:"description"`
	Target      int                           `json:"target"`
	Category    ChallengeCategory             `json:"category"`
	Difficulty  string                        `json:"difficulty"`
	Points      int                           `json:"points"`
	Predicate   func(word string, score int) bool `json:"-"`
}

// ProgressRatio is min(progress/target, 1.0), or 0 for a zero-target
// challenge (none exist in the catalog, but the zero case is guarded).
func (c Challenge) ProgressRatio(progress int) float64 {
	if c.Target <= 0 {
		return 0
	}
	ratio := float64(progress) / float64(c.Target)
	if ratio > 1.0 {
		ratio = 1.0
	}
	return ratio
}

// PointsEarned returns Points if progress has reached Target, else 0.
func (c Challenge) PointsEarned(progress int) int {
	if c.ProgressRatio(progress) >= 1.0 {
		return c.Points
	}
	return 0
}

func wordCount(_ int) func(string, int) bool {
	return func(word string, score int) bool { return true }
}

func minLength(n int) func(string, int) bool {
	return func(word string, score int) bool { return len(word) >= n }
}

func startsWith(prefix string) func(string, int) bool {
	return func(word string, score int) bool { return strings.HasPrefix(word, prefix) }
}

func endsWith(suffix string) func(string, int) bool {
	return func(word string, score int) bool { return strings.HasSuffix(word, suffix) }
}

func containsSub(sub string) func(string, int) bool {
	return func(word string, score int) bool { return strings.Contains(word, sub) }
}

func scoreAtLeast(n int) func(string, int) bool {
	return func(word string, score int) bool { return score >= n }
}

func hasDoubleLetter() func(string, int) bool {
	return func(word string, score int) bool {
		for i := 1; i < len(word); i++ {
			if word[i] == word[i-1] {
				return true
			}
		}
		return false
	}
}

func isPalindrome() func(string, int) bool {
	return func(word string, score int) bool {
		if len(word) < 3 {
			return false
		}
		for i, j := 0, len(word)-1; i < j; i, j = i+1, j-1 {
			if word[i] != word[j] {
				return false
			}
		}
		return true
	}
}

func vowelHeavy(minVowels int) func(string, int) bool {
	return func(word string, score int) bool {
		count := 0
		for i := 0; i < len(word); i++ {
			if vowels[word[i]] {
				count++
			}
		}
		return count >= minVowels
	}
}

func consonantHeavy(run int) func(string, int) bool {
	return func(word string, score int) bool {
		streak := 0
		for i := 0; i < len(word); i++ {
			if !vowels[word[i]] {
				streak++
				if streak >= run {
					return true
				}
			} else {
				streak = 0
			}
		}
		return false
	}
}

func containsAnyLetter(letters string) func(string, int) bool {
	return func(word string, score int) bool {
		for i := 0; i < len(word); i++ {
			if strings.IndexByte(letters, word[i]) >= 0 {
				return true
			}
		}
		return false
	}
}

// AllChallenges is the fixed challenge catalog offered to every lobby.
var AllChallenges = []Challenge{
	{ID: "words_8", Name: "Word Hunter", Description: "Find 8 words", Target: 8, Category: CategoryWords, Difficulty: "easy", Points: 15, Predicate: wordCount(8)},
	{ID: "words_12", Name: "Word Seeker", Description: "Find 12 words", Target: 12, Category: CategoryWords, Difficulty: "easy", Points: 20, Predicate: wordCount(12)},
	{ID: "words_20", Name: "Word Collector", Description: "Find 20 words", Target: 20, Category: CategoryWords, Difficulty: "medium", Points: 30, Predicate: wordCount(20)},
	{ID: "words_30", Name: "Word Machine", Description: "Find 30 words", Target: 30, Category: CategoryWords, Difficulty: "hard", Points: 45, Predicate: wordCount(30)},
	{ID: "words_40", Name: "Word Legend", Description: "Find 40 words", Target: 40, Category: CategoryWords, Difficulty: "very_hard", Points: 70, Predicate: wordCount(40)},

	{ID: "length_5_3", Name: "Five Letter Club", Description: "Find 3 words with 5+ letters", Target: 3, Category: CategoryLength, Difficulty: "easy", Points: 15, Predicate: minLength(5)},
	{ID: "length_6_3", Name: "Six Letter Club", Description: "Find 3 words with 6+ letters", Target: 3, Category: CategoryLength, Difficulty: "medium", Points: 25, Predicate: minLength(6)},
	{ID: "length_7_2", Name: "Seven Letter Club", Description: "Find 2 words with 7+ letters", Target: 2, Category: CategoryLength, Difficulty: "hard", Points: 40, Predicate: minLength(7)},
	{ID: "length_8_1", Name: "Giant Word", Description: "Find 1 word with 8+ letters", Target: 1, Category: CategoryLength, Difficulty: "very_hard", Points: 50, Predicate: minLength(8)},

	{ID: "starts_s_5", Name: "S Starter", Description: "Find 5 words starting with S", Target: 5, Category: CategorySpecial, Difficulty: "easy", Points: 15, Predicate: startsWith("S")},
	{ID: "starts_t_5", Name: "T Starter", Description: "Find 5 words starting with T", Target: 5, Category: CategorySpecial, Difficulty: "easy", Points: 15, Predicate: startsWith("T")},
	{ID: "starts_c_5", Name: "C Starter", Description: "Find 5 words starting with C", Target: 5, Category: CategorySpecial, Difficulty: "medium", Points: 20, Predicate: startsWith("C")},

	{ID: "ends_ing_5", Name: "ING King", Description: "Find 5 words ending in ING", Target: 5, Category: CategorySpecial, Difficulty: "very_hard", Points: 90, Predicate: endsWith("ING")},
	{ID: "ends_ed_5", Name: "Past Tense", Description: "Find 5 words ending in ED", Target: 5, Category: CategorySpecial, Difficulty: "hard", Points: 45, Predicate: endsWith("ED")},
	{ID: "ends_er_5", Name: "ER Ender", Description: "Find 5 words ending in ER", Target: 5, Category: CategorySpecial, Difficulty: "medium", Points: 25, Predicate: endsWith("ER")},

	{ID: "contains_th_3", Name: "TH Sayer", Description: "Find 3 words containing TH", Target: 3, Category: CategorySpecial, Difficulty: "medium", Points: 20, Predicate: containsSub("TH")},
	{ID: "contains_ea_3", Name: "EA Spotter", Description: "Find 3 words containing EA", Target: 3, Category: CategorySpecial, Difficulty: "easy", Points: 15, Predicate: containsSub("EA")},
	{ID: "contains_qu_1", Name: "Quick Thinker", Description: "Find 1 word containing QU", Target: 1, Category: CategorySpecial, Difficulty: "hard", Points: 35, Predicate: containsSub("QU")},

	{ID: "score_10", Name: "Point Starter", Description: "Score 10+ points", Target: 10, Category: CategoryScore, Difficulty: "easy", Points: 15, Predicate: nil},
	{ID: "score_20", Name: "Point Hunter", Description: "Score 20+ points", Target: 20, Category: CategoryScore, Difficulty: "medium", Points: 25, Predicate: nil},
	{ID: "score_40", Name: "Point Master", Description: "Score 40+ points", Target: 40, Category: CategoryScore, Difficulty: "hard", Points: 40, Predicate: nil},

	{ID: "double_letter_3", Name: "Double Trouble", Description: "Find 3 words with a double letter", Target: 3, Category: CategorySpecial, Difficulty: "medium", Points: 25, Predicate: hasDoubleLetter()},
	{ID: "palindrome_1", Name: "Mirror Word", Description: "Find a palindrome word", Target: 1, Category: CategorySpecial, Difficulty: "very_hard", Points: 80, Predicate: isPalindrome()},
	{ID: "vowel_heavy_3", Name: "Vowel Lover", Description: "Find 3 words with 3+ vowels", Target: 3, Category: CategorySpecial, Difficulty: "medium", Points: 25, Predicate: vowelHeavy(3)},
	{ID: "consonant_heavy_2", Name: "Consonant Cluster", Description: "Find 2 words with 4+ consecutive consonants", Target: 2, Category: CategorySpecial, Difficulty: "hard", Points: 40, Predicate: consonantHeavy(4)},
	{ID: "rare_letter_3", Name: "Rare Finds", Description: "Find 3 words with a rare letter (J, Q, X, Z)", Target: 3, Category: CategorySpecial, Difficulty: "hard", Points: 45, Predicate: containsAnyLetter("JQXZ")},

	{ID: "words_50", Name: "Word Wizard", Description: "Find 50 words", Target: 50, Category: CategoryWords, Difficulty: "very_hard", Points: 100, Predicate: wordCount(50)},
	{ID: "starts_b_5", Name: "B Starter", Description: "Find 5 words starting with B", Target: 5, Category: CategorySpecial, Difficulty: "easy", Points: 15, Predicate: startsWith("B")},
	{ID: "ends_y_5", Name: "Y Ender", Description: "Find 5 words ending in Y", Target: 5, Category: CategorySpecial, Difficulty: "easy", Points: 15, Predicate: endsWith("Y")},
	{ID: "contains_oo_3", Name: "Double O", Description: "Find 3 words containing OO", Target: 3, Category: CategorySpecial, Difficulty: "medium", Points: 20, Predicate: containsSub("OO")},
	{ID: "score_60", Name: "Point Legend", Description: "Score 60+ points", Target: 60, Category: CategoryScore, Difficulty: "very_hard", Points: 60, Predicate: nil},
}

// ChallengeProgress is one player's running state against one challenge.
type ChallengeProgress struct {
	Challenge Challenge `json:"challenge"`
	Progress  int       `json:"progress"`
	Completed bool      `json:"completed"`
}

// scoreChallengeThreshold pulls the target back out of a score-category
// challenge since its Target field doubles as the point threshold, not a
// repeat count.
func scoreChallengeThreshold(c Challenge) int { return c.Target }

// evalChallenge reports whether a single found word meets c's condition:
// its Predicate, or for a score challenge, the word alone reaching the
// point threshold.
func evalChallenge(c Challenge, word string, wordScore int) bool {
	if c.Category == CategoryScore {
		return wordScore >= scoreChallengeThreshold(c)
	}
	if c.Predicate == nil {
		return false
	}
	return c.Predicate(word, wordScore)
}

// ChallengeSet tracks every catalog challenge's progress for one player
// within a single game.
type ChallengeSet struct {
	entries map[string]*ChallengeProgress
}

// NewChallengeSet seeds a zeroed ChallengeProgress for every catalog entry.
func NewChallengeSet() *ChallengeSet {
	cs := &ChallengeSet{entries: make(map[string]*ChallengeProgress, len(AllChallenges))}
	for _, c := range AllChallenges {
		cs.entries[c.ID] = &ChallengeProgress{Challenge: c}
	}
	return cs
}

// RecordWord advances every challenge this word satisfies. Score challenges
// add the word's points to a running total instead of counting words.
func (cs *ChallengeSet) RecordWord(word string, wordScore int) {
	for _, p := range cs.entries {
		if p.Completed {
			continue
		}
		switch {
		case p.Challenge.Category == CategoryScore:
			p.Progress += wordScore
		case evalChallenge(p.Challenge, word, wordScore):
			p.Progress++
		default:
			continue
		}
		if p.Challenge.ProgressRatio(p.Progress) >= 1.0 {
			p.Completed = true
		}
	}
}

// All returns every tracked challenge's progress, ordered by (-ratio, not
// completed) so the player's closest-to-finishing challenges lead.
func (cs *ChallengeSet) All() []ChallengeProgress {
	out := make([]ChallengeProgress, 0, len(cs.entries))
	for _, p := range cs.entries {
		out = append(out, *p)
	}
	sortChallengeProgress(out)
	return out
}

func sortChallengeProgress(out []ChallengeProgress) {
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && lessChallengeProgress(out[j], out[j-1]) {
			out[j], out[j-1] = out[j-1], out[j]
			j--
		}
	}
}

func lessChallengeProgress(a, b ChallengeProgress) bool {
	ra, rb := a.Challenge.ProgressRatio(a.Progress), b.Challenge.ProgressRatio(b.Progress)
	if ra != rb {
		return ra > rb
	}
	if a.Completed != b.Completed {
		return a.Completed
	}
	return a.Challenge.ID < b.Challenge.ID
}

// TotalPoints sums PointsEarned across every completed challenge.
func (cs *ChallengeSet) TotalPoints() int {
	total := 0
	for _, p := range cs.entries {
		total += p.Challenge.PointsEarned(p.Progress)
	}
	return total
}

// CompletedCount reports how many challenges have reached their target.
func (cs *ChallengeSet) CompletedCount() int {
	n := 0
	for _, p := range cs.entries {
		if p.Completed {
			n++
		}
	}
	return n
}

// Best returns the single challenge progress with the highest ratio.
func (cs *ChallengeSet) Best() (ChallengeProgress, bool) {
	all := cs.All()
	if len(all) == 0 {
		return ChallengeProgress{}, false
	}
	return all[0], true
}
