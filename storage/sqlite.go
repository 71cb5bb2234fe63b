package storage

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var sqliteQueries = queries{
	createTable: `
		CREATE TABLE IF NOT EXISTS receipt_preferences (
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			default_value TEXT,
			type TEXT NOT NULL,
			category TEXT,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, key)
		);

		CREATE INDEX IF NOT EXISTS idx_receipt_preferences_category
		ON receipt_preferences(user_id, category);
	`,
	upsert: `
		INSERT INTO receipt_preferences (user_id, key, value, default_value, type, category, updated_at)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7)
		ON CONFLICT(user_id, key)
		DO UPDATE SET value = ?3, default_value = ?4, type = ?5, category = ?6, updated_at = ?7
	`,
	selectOne: `
		SELECT user_id, key, value, default_value, type, category, updated_at
		FROM receipt_preferences
		WHERE user_id = ? AND key = ?
	`,
	selectByCategory: `
		SELECT user_id, key, value, default_value, type, category, updated_at
		FROM receipt_preferences
		WHERE user_id = ? AND category = ?
	`,
	selectAll: `
		SELECT user_id, key, value, default_value, type, category, updated_at
		FROM receipt_preferences
		WHERE user_id = ?
	`,
	delete: `
		DELETE FROM receipt_preferences
		WHERE user_id = ? AND key = ?
	`,
}

// SQLiteStorage implements receiptprefs.Storage using SQLite.
type SQLiteStorage struct {
	*sqlStore
}

// NewSQLiteStorage opens (creating if needed) the SQLite database at dbPath
// and runs migrations.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	s, err := openSQLStore(sql.Open, "sqlite3", dbPath, "sqlite", sqliteQueries)
	if err != nil {
		return nil, err
	}
	return &SQLiteStorage{sqlStore: s}, nil
}
