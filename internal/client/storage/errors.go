package storage

import "errors"

// Common client storage errors
var (
	// ErrStorageFailure indicates that a local persistence operation failed.
	// A record whose Save returned this error is NOT queued.
	ErrStorageFailure = errors.New("local storage failure")

	// ErrRecordNotFound indicates that the queued record was not found
	ErrRecordNotFound = errors.New("offline record not found")

	// ErrConflictNotFound indicates that no conflict is registered for the record
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrConfigNotFound indicates that the config key is not cached
	ErrConfigNotFound = errors.New("cached config not found")

	// ErrInvalidRecordType indicates an unknown queue partition
	ErrInvalidRecordType = errors.New("invalid record type")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
