package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKeyErr reports whether err is a unique-constraint violation.
// The persistent constraint is the authoritative uniqueness mechanism, so
// services translate this into a conflict error for the caller.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	switch {
	// PostgreSQL, SQLSTATE 23505
	case strings.Contains(msg, "duplicate key value violates unique constraint"):
		return true
	// MySQL, error 1062
	case strings.Contains(msg, "Error 1062"):
		return true
	// SQLite, error 2067
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return true
	}

	return false
}

// IsCheckConstraintErr reports whether err is a check-constraint violation,
// e.g. an order whose expected delivery precedes its order date.
func IsCheckConstraintErr(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	switch {
	// PostgreSQL, SQLSTATE 23514
	case strings.Contains(msg, "violates check constraint"):
		return true
	// MySQL, error 3819
	case strings.Contains(msg, "Error 3819"):
		return true
	// SQLite
	case strings.Contains(msg, "CHECK constraint failed"):
		return true
	}

	return false
}
