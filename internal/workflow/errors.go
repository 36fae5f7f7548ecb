// Package workflow implements the claim lifecycle and the user-aggregate
// updates (ratings, thanks), coordinating post status, counters, and
// notifications. Each operation is all-or-nothing: state changes happen in
// one transaction and notifications are emitted only after commit.
package workflow

import "errors"

// Sentinel errors returned by workflow operations. Handlers map these to
// HTTP statuses with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnauthorized      = errors.New("unauthorized")
)
