package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/timeutil"
)

const slotLockSQL = "SELECT pg_advisory_xact_lock(?, ?)"

// LockSlot takes a transaction-scoped advisory lock on one resource at one
// slot instant. Postgres releases it automatically on commit or rollback.
// On other dialects (the in-memory test database) it is a no-op.
func LockSlot(tx *gorm.DB, resourceID uint, date, hour string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	key1, key2 := timeutil.SlotLockKey(resourceID, date, hour)
	return tx.Exec(slotLockSQL, key1, key2).Error
}

// SupportsRowLocks reports whether the dialect honors FOR UPDATE clauses.
func SupportsRowLocks(tx *gorm.DB) bool {
	return tx.Dialector.Name() == "postgres"
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
