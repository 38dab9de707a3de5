package highscore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is an optional Store backend selected via HIGHSCORE_MODE=sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) dbPath and ensures the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		if parent := filepath.Dir(dbPath); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS high_scores (
			ip_hash TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			best_score INTEGER NOT NULL DEFAULT 0,
			best_words_count INTEGER NOT NULL DEFAULT 0,
			total_games_played INTEGER NOT NULL DEFAULT 0,
			total_wins INTEGER NOT NULL DEFAULT 0,
			challenges_completed INTEGER NOT NULL DEFAULT 0,
			last_played_unix INTEGER NOT NULL DEFAULT 0,
			best_game_date_unix INTEGER NOT NULL DEFAULT 0
		);
	`)
	return err
}

func (s *SQLiteStore) UpdateScore(ctx context.Context, ipHash, username string, score, wordsCount, challengesCompleted int, won bool, playedAtUnix int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var rec Record
	err = tx.QueryRowContext(ctx, `SELECT best_score, best_words_count FROM high_scores WHERE ip_hash = ?`, ipHash).
		Scan(&rec.BestScore, &rec.BestWordsCount)
	exists := err == nil
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	bestScore, bestWords, bestDate := rec.BestScore, rec.BestWordsCount, int64(0)
	if score > bestScore {
		bestScore, bestWords, bestDate = score, wordsCount, playedAtUnix
	}
	winInc := 0
	if won {
		winInc = 1
	}

	if !exists {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO high_scores (ip_hash, username, best_score, best_words_count, total_games_played, total_wins, challenges_completed, last_played_unix, best_game_date_unix)
			VALUES (?, ?, ?, ?, 1, ?, ?, ?, ?)
		`, ipHash, username, bestScore, bestWords, winInc, challengesCompleted, playedAtUnix, bestDate)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE high_scores SET
				username = ?,
				best_score = ?,
				best_words_count = CASE WHEN ? > 0 THEN ? ELSE best_words_count END,
				total_games_played = total_games_played + 1,
				total_wins = total_wins + ?,
				challenges_completed = challenges_completed + ?,
				last_played_unix = ?,
				best_game_date_unix = CASE WHEN ? > best_game_date_unix THEN ? ELSE best_game_date_unix END
			WHERE ip_hash = ?
		`, username, bestScore, bestDate, bestWords, winInc, challengesCompleted, playedAtUnix, bestDate, bestDate, ipHash)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Stats(ctx context.Context, ipHash string) (*Record, bool, error) {
	var rec Record
	err := s.db.QueryRowContext(ctx, `
		SELECT username, best_score, best_words_count, total_games_played, total_wins, challenges_completed, last_played_unix, best_game_date_unix
		FROM high_scores WHERE ip_hash = ?
	`, ipHash).Scan(&rec.Username, &rec.BestScore, &rec.BestWordsCount, &rec.TotalGamesPlayed, &rec.TotalWins, &rec.ChallengesCompleted, &rec.LastPlayedUnix, &rec.BestGameDateUnix)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rec.IPHash = ipHash
	return &rec, true, nil
}

func (s *SQLiteStore) Leaderboard(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ip_hash, username, best_score, best_words_count, total_games_played, total_wins, challenges_completed, last_played_unix, best_game_date_unix
		FROM high_scores ORDER BY best_score DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.IPHash, &rec.Username, &rec.BestScore, &rec.BestWordsCount, &rec.TotalGamesPlayed, &rec.TotalWins, &rec.ChallengesCompleted, &rec.LastPlayedUnix, &rec.BestGameDateUnix); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
