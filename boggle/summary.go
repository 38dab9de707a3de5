package boggle

import "sort"

// WordAward is one entry of the final word_awards list: who found a word,
// what it scored once uniqueness is settled.
type WordAward struct {
	Word      string   `json:"word"`
	FinderIDs []string `json:"finder_ids"`
	IsUnique  bool     `json:"is_unique"`
	Points    int      `json:"points"`
}

// PlayerResult is one player's final standing. RemoteAddress is carried
// only so the caller can persist a high-score record; it must never be
// serialized to the wire.
type PlayerResult struct {
	PlayerID            string             `json:"player_id"`
	Username            string             `json:"username"`
	RemoteAddress       string             `json:"-"`
	Score               int                `json:"score"`
	WordsFound          int                `json:"words_found"`
	ChallengesCompleted int                `json:"challenges_completed"`
	ChallengePoints     int                `json:"challenge_points"`
	BestChallenge       *ChallengeProgress `json:"best_challenge,omitempty"`
}

// Summary is the full finalize_scores payload (§4.8).
type Summary struct {
	Results             []PlayerResult `json:"results"`
	WinnerID            string         `json:"winner_id"`
	WordAwards          []WordAward    `json:"word_awards"`
	LongestFoundWord    string         `json:"longest_found_word"`
	LongestPossibleWord string         `json:"longest_possible_word"`
	TotalFindableWords  int            `json:"total_findable_words"`
	AllFindableWords    []string       `json:"all_findable_words"`
}

// Finalize recomputes every player's score from scratch using final
// occurrence-based uniqueness, writes it back onto each player's Score,
// then builds the full summary payload.
func (l *Lobby) Finalize(dict Dictionary) Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	finders := map[string][]string{}
	for _, p := range l.Players {
		for _, w := range p.FoundWords {
			finders[w] = append(finders[w], p.ID)
		}
	}

	type wordInfo struct {
		isUnique bool
		points   int
	}
	wordData := make(map[string]wordInfo, len(finders))
	for word, ids := range finders {
		unique := len(ids) == 1
		wordData[word] = wordInfo{isUnique: unique, points: Score(word, unique)}
	}

	results := make([]PlayerResult, 0, len(l.Players))
	for _, p := range l.Players {
		score := 0
		for _, w := range p.FoundWords {
			score += wordData[w].points
		}
		p.Score = score

		result := PlayerResult{
			PlayerID:      p.ID,
			Username:      p.Username,
			RemoteAddress: p.RemoteAddress,
			Score:         score,
			WordsFound:    len(p.FoundWords),
		}
		if cs, ok := l.Challenges[p.ID]; ok {
			result.ChallengesCompleted = cs.CompletedCount()
			result.ChallengePoints = cs.TotalPoints()
			if best, ok := cs.Best(); ok {
				result.BestChallenge = &best
			}
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	winnerID := ""
	if len(results) > 0 {
		winnerID = results[0].PlayerID
	}

	awards := make([]WordAward, 0, len(wordData))
	for word, info := range wordData {
		awards = append(awards, WordAward{
			Word:      word,
			FinderIDs: finders[word],
			IsUnique:  info.isUnique,
			Points:    info.points,
		})
	}
	sort.SliceStable(awards, func(i, j int) bool {
		if len(awards[i].Word) != len(awards[j].Word) {
			return len(awards[i].Word) < len(awards[j].Word)
		}
		return awards[i].Word < awards[j].Word
	})

	longestFound := ""
	for word := range wordData {
		if len(word) > len(longestFound) || (len(word) == len(longestFound) && word < longestFound) {
			longestFound = word
		}
	}

	var longestPossible string
	var totalFindable int
	var allFindable []string
	if l.Board != nil && dict != nil {
		all := FindAllWords(l.Board, dict)
		longestPossible = LongestWord(all)
		totalFindable = len(all)
		allFindable = all
	}

	return Summary{
		Results:             results,
		WinnerID:             winnerID,
		WordAwards:           awards,
		LongestFoundWord:     longestFound,
		LongestPossibleWord:  longestPossible,
		TotalFindableWords:   totalFindable,
		AllFindableWords:     allFindable,
	}
}
