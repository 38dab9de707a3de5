package highscore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore is the default Store: the whole leaderboard lives in one JSON
// file, rewritten atomically (write-temp-then-rename) on every update.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]Record
}

// NewFileStore loads path if it exists, or starts empty if it doesn't.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, data: make(map[string]Record)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) UpdateScore(_ context.Context, ipHash, username string, score, wordsCount, challengesCompleted int, won bool, playedAtUnix int64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	rec := fs.data[ipHash]
	rec.IPHash = ipHash
	rec.Username = username
	rec.TotalGamesPlayed++
	if won {
		rec.TotalWins++
	}
	rec.ChallengesCompleted += challengesCompleted
	rec.LastPlayedUnix = playedAtUnix

	if score > rec.BestScore {
		rec.BestScore = score
		rec.BestWordsCount = wordsCount
		rec.BestGameDateUnix = playedAtUnix
	}
	fs.data[ipHash] = rec
	return fs.saveLocked()
}

func (fs *FileStore) Stats(_ context.Context, ipHash string) (*Record, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	rec, ok := fs.data[ipHash]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

func (fs *FileStore) Leaderboard(_ context.Context, limit int) ([]Record, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records := make([]Record, 0, len(fs.data))
	for _, rec := range fs.data {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].BestScore > records[j].BestScore })
	if limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func (fs *FileStore) Close() error { return nil }

// saveLocked writes fs.data to a temp file in the same directory and
// renames it over fs.path, so a crash mid-write never corrupts the
// previous, still-valid leaderboard file. Callers must hold fs.mu.
func (fs *FileStore) saveLocked() error {
	raw, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(fs.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(dir, ".highscores-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, fs.path)
}
