package repositories

import (
	"strings"

	"gorm.io/gorm"
)

// writeConflictMarkers are substrings of driver errors that indicate two
// transactions raced on the same rows. Covers postgres, sqlite and mysql
// wording.
var writeConflictMarkers = []string{
	"duplicate key value",
	"UNIQUE constraint failed",
	"Duplicate entry",
	"could not serialize access",
	"deadlock detected",
	"database is locked",
}

// IsWriteConflict reports whether err looks like a lost race on a unique
// index or a row lock rather than a plain failure.
func IsWriteConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range writeConflictMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// RunInTransaction executes fn inside a transaction and retries it exactly
// once when the first attempt fails on a write conflict. On the retry the
// loser of the race re-reads current state, so it either succeeds or fails
// with a proper domain error. All other errors pass through untouched.
func RunInTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.Transaction(fn)
	if err == nil || !IsWriteConflict(err) {
		return err
	}
	return db.Transaction(fn)
}
