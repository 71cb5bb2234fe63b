// Package storage provides Storage implementations for receiptprefs.
package storage

import (
	"fmt"

	"github.com/CreativeUnicorns/receiptprefs"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	_ receiptprefs.Storage = (*MemoryStorage)(nil)
	_ receiptprefs.Storage = (*SQLiteStorage)(nil)
	_ receiptprefs.Storage = (*PostgresStorage)(nil)
)

// Open returns the Storage for driver. dsn is a file path for sqlite and a
// connection string for postgres; it is ignored for memory.
func Open(driver, dsn string) (receiptprefs.Storage, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemoryStorage(), nil
	case DriverSQLite:
		return NewSQLiteStorage(dsn)
	case DriverPostgres:
		return NewPostgresStorage(dsn)
	}
	return nil, fmt.Errorf("%w: unknown storage driver %q", receiptprefs.ErrInvalidInput, driver)
}
