package sqlitedb

import (
	"database/sql"
	"fmt"
	"math/big"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func OpenDb(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // prevent concurrent writes

	return db, nil
}

// Amounts are persisted as base-10 strings: they routinely exceed the int64
// range.
func parseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	return amount, nil
}
