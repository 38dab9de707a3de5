// Package highscore persists per-player best-score records across games,
// keyed by a hash of their remote address rather than a login identity.
package highscore

import "context"

// Record is one player's accumulated leaderboard standing. IPHash, not
// the raw remote address, is what every backend stores at rest.
type Record struct {
	IPHash              string `json:"-"`
	Username             string `json:"username"`
	BestScore            int    `json:"best_score"`
	BestWordsCount        int    `json:"best_words_count"`
	TotalGamesPlayed      int    `json:"total_games_played"`
	TotalWins             int    `json:"total_wins"`
	ChallengesCompleted   int    `json:"challenges_completed"`
	LastPlayedUnix        int64  `json:"last_played_unix"`
	BestGameDateUnix      int64  `json:"best_game_date_unix"`
}

// Store is the persistence boundary every backend (file, sqlite,
// postgres) implements identically.
type Store interface {
	// UpdateScore folds in the result of one completed game for ipHash,
	// always incrementing games-played, incrementing wins when won, and
	// only replacing the best-score fields when score beats the existing
	// record.
	UpdateScore(ctx context.Context, ipHash, username string, score, wordsCount, challengesCompleted int, won bool, playedAtUnix int64) error

	// Stats returns the record for ipHash. ok is false when no record
	// exists yet, distinguishing a brand new player from a zero-score one.
	Stats(ctx context.Context, ipHash string) (*Record, bool, error)

	// Leaderboard returns up to limit records ordered by BestScore
	// descending.
	Leaderboard(ctx context.Context, limit int) ([]Record, error)

	Close() error
}

// ClampLeaderboardLimit enforces the N <= 50 ceiling from the external
// interface contract, defaulting to 20 for a missing/invalid value.
func ClampLeaderboardLimit(n int) int {
	if n <= 0 {
		return 20
	}
	if n > 50 {
		return 50
	}
	return n
}
