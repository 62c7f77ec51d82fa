package store

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("already exists")

	// ErrStaleRecord is returned when the optimistic stage predicate matched
	// zero rows: another transition committed between read and write.
	ErrStaleRecord = errors.New("record was modified concurrently")

	// ErrInvalidHistoryEntry is returned when an appended ledger entry does
	// not line up with the application's current stage.
	ErrInvalidHistoryEntry = errors.New("history entry is inconsistent with the application state")
)
