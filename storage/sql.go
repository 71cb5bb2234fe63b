package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CreativeUnicorns/receiptprefs"
)

// queries is the statement set of one SQL dialect. Every select returns
// user_id, key, value, default_value, type, category, updated_at.
type queries struct {
	createTable      string
	upsert           string
	selectOne        string
	selectByCategory string
	selectAll        string
	delete           string
}

// sqlStore implements receiptprefs.Storage over database/sql. Values and
// defaults are stored as JSON text.
type sqlStore struct {
	db   *sql.DB
	q    queries
	name string
}

func openSQLStore(open func(string, string) (*sql.DB, error), driver, dsn, name string, q queries) (*sqlStore, error) {
	db, err := open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", name, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", name, err)
	}

	s := &sqlStore{db: db, q: q, name: name}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to run migrations: %w", name, err)
	}
	return s, nil
}

func (s *sqlStore) migrate() error {
	_, err := s.db.Exec(s.q.createTable)
	return err
}

func (s *sqlStore) Get(ctx context.Context, userID, key string) (*receiptprefs.Preference, error) {
	row := s.db.QueryRowContext(ctx, s.q.selectOne, userID, key)
	pref, err := scanPreference(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, receiptprefs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get preference %q for user %q: %w", s.name, key, userID, err)
	}
	return pref, nil
}

func (s *sqlStore) Set(ctx context.Context, pref *receiptprefs.Preference) error {
	valueJSON, err := json.Marshal(pref.Value)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to marshal value of %q: %v", receiptprefs.ErrSerialization, s.name, pref.Key, err)
	}
	defaultJSON, err := json.Marshal(pref.DefaultValue)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to marshal default_value of %q: %v", receiptprefs.ErrSerialization, s.name, pref.Key, err)
	}

	_, err = s.db.ExecContext(ctx, s.q.upsert,
		pref.UserID,
		pref.Key,
		string(valueJSON),
		string(defaultJSON),
		pref.Type,
		pref.Category,
		pref.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to set preference %q for user %q: %w", s.name, pref.Key, pref.UserID, err)
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, userID, key string) error {
	result, err := s.db.ExecContext(ctx, s.q.delete, userID, key)
	if err != nil {
		return fmt.Errorf("%s: failed to delete preference %q for user %q: %w", s.name, key, userID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", s.name, err)
	}
	if n == 0 {
		return receiptprefs.ErrNotFound
	}
	return nil
}

func (s *sqlStore) GetAll(ctx context.Context, userID string) (map[string]*receiptprefs.Preference, error) {
	rows, err := s.db.QueryContext(ctx, s.q.selectAll, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query preferences for user %q: %w", s.name, userID, err)
	}
	return s.scanAll(rows)
}

func (s *sqlStore) GetByCategory(ctx context.Context, userID, category string) (map[string]*receiptprefs.Preference, error) {
	rows, err := s.db.QueryContext(ctx, s.q.selectByCategory, userID, category)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query category %q for user %q: %w", s.name, category, userID, err)
	}
	return s.scanAll(rows)
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) scanAll(rows *sql.Rows) (map[string]*receiptprefs.Preference, error) {
	defer rows.Close()

	prefs := make(map[string]*receiptprefs.Preference)
	for rows.Next() {
		pref, err := scanPreference(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan preference: %w", s.name, err)
		}
		prefs[pref.Key] = pref
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating rows: %w", s.name, err)
	}
	return prefs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreference(row scanner) (*receiptprefs.Preference, error) {
	var (
		pref        receiptprefs.Preference
		valueJSON   []byte
		defaultJSON []byte
		category    sql.NullString
	)
	if err := row.Scan(&pref.UserID, &pref.Key, &valueJSON, &defaultJSON, &pref.Type, &category, &pref.UpdatedAt); err != nil {
		return nil, err
	}
	pref.Category = category.String

	if err := receiptprefs.DecodeJSON(valueJSON, &pref.Value); err != nil {
		return nil, fmt.Errorf("%w: value of %q: %v", receiptprefs.ErrSerialization, pref.Key, err)
	}
	if len(defaultJSON) > 0 && string(defaultJSON) != "null" {
		if err := receiptprefs.DecodeJSON(defaultJSON, &pref.DefaultValue); err != nil {
			return nil, fmt.Errorf("%w: default_value of %q: %v", receiptprefs.ErrSerialization, pref.Key, err)
		}
	}
	return &pref, nil
}
