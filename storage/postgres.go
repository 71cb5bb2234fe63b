package storage

import (
	"database/sql"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// sqlOpenFunc can be overridden in tests.
var sqlOpenFunc = sql.Open

var postgresQueries = queries{
	createTable: `
		CREATE TABLE IF NOT EXISTS receipt_preferences (
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value JSONB NOT NULL,
			default_value JSONB,
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
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = $3, default_value = $4, type = $5, category = $6, updated_at = $7
	`,
	selectOne: `
		SELECT user_id, key, value, default_value, type, category, updated_at
		FROM receipt_preferences
		WHERE user_id = $1 AND key = $2
	`,
	selectByCategory: `
		SELECT user_id, key, value, default_value, type, category, updated_at
		FROM receipt_preferences
		WHERE user_id = $1 AND category = $2
	`,
	selectAll: `
		SELECT user_id, key, value, default_value, type, category, updated_at
		FROM receipt_preferences
		WHERE user_id = $1
	`,
	delete: `
		DELETE FROM receipt_preferences
		WHERE user_id = $1 AND key = $2
	`,
}

// PostgresStorage implements receiptprefs.Storage using PostgreSQL.
type PostgresStorage struct {
	*sqlStore
}

// NewPostgresStorage connects using connString and runs migrations.
func NewPostgresStorage(connString string) (*PostgresStorage, error) {
	s, err := openSQLStore(sqlOpenFunc, "postgres", connString, "postgres", postgresQueries)
	if err != nil {
		return nil, err
	}
	return &PostgresStorage{sqlStore: s}, nil
}
