package store

import "strings"

// IsUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The driver does not export a typed error for this, so the
// constraint name in the message is the contract.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
