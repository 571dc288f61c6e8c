package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// InitDB opens (or creates) the sqlite database and applies the schema.
func InitDB(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}

	var err error
	DB, err = sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := DB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		zap.S().Warnw("couldn't enable WAL mode", "error", err)
	}

	// Set busy timeout
	if _, err := DB.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		zap.S().Warnw("couldn't set busy timeout", "error", err)
	}

	createTables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS leaderboard (
			user_id INTEGER PRIMARY KEY,
			wins INTEGER DEFAULT 0,
			best_score INTEGER DEFAULT 0,
			games_played INTEGER DEFAULT 0,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			username TEXT NOT NULL,
			secret TEXT NOT NULL,
			guesses_used INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			finished_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_username ON rounds(username);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id);`,
	}

	for _, table := range createTables {
		if _, err := DB.Exec(table); err != nil {
			return fmt.Errorf("create table: %w\nquery: %s", err, table)
		}
	}

	zap.S().Infow("database initialized", "path", dbPath)
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
