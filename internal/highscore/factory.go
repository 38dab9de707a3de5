package highscore

import (
	"fmt"
	"os"
	"strings"
)

const (
	ModeFile     = "file"
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

func modeFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("HIGHSCORE_MODE")))
	switch raw {
	case "", ModeFile:
		return ModeFile
	case ModeSQLite, "local":
		return ModeSQLite
	case ModePostgres, "db":
		return ModePostgres
	default:
		return raw
	}
}

// NewStoreFromEnv picks a Store backend from HIGHSCORE_MODE (default
// "file"), mirroring how the auth/ledger services select their backend.
func NewStoreFromEnv() (Store, string, error) {
	mode := modeFromEnv()

	switch mode {
	case ModeFile:
		path := strings.TrimSpace(os.Getenv("HIGHSCORE_FILE_PATH"))
		if path == "" {
			path = "data/high_scores.json"
		}
		store, err := NewFileStore(path)
		return store, mode, err

	case ModeSQLite:
		path := strings.TrimSpace(os.Getenv("HIGHSCORE_SQLITE_PATH"))
		if path == "" {
			path = "data/high_scores.db"
		}
		store, err := NewSQLiteStore(path)
		return store, mode, err

	case ModePostgres:
		dsn := strings.TrimSpace(os.Getenv("HIGHSCORE_POSTGRES_DSN"))
		store, err := NewPostgresStore(dsn)
		return store, mode, err

	default:
		return nil, mode, fmt.Errorf("invalid HIGHSCORE_MODE %q (supported: %s, %s, %s)", mode, ModeFile, ModeSQLite, ModePostgres)
	}
}
