package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record id does not exist in the ledger.
	ErrNotFound = errors.New("ledger: record not found")
	// ErrBadNumber is returned when user text does not parse as an amount.
	ErrBadNumber = errors.New("ledger: not a number")
	// ErrBadID is returned when user text does not parse as a record id.
	ErrBadID = errors.New("ledger: not a record id")
	// ErrFieldMismatch is returned when an update value does not match the
	// field type, e.g. a number supplied for the name.
	ErrFieldMismatch = errors.New("ledger: value does not match field type")
)

// StorageError wraps a failed durable read or write. The in-memory ledger is
// left untouched when a mutation returns it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Code is picked up by the router's error classification for logs.
func (e *StorageError) Code() string { return "STORAGE_FAILURE" }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
