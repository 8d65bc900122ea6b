package storage

import "errors"

// Common storage errors
var (
	// ErrComplaintNotFound indicates that no complaint has the requested business key
	ErrComplaintNotFound = errors.New("complaint not found")

	// ErrUnknownField indicates an update for a field outside the tracked set
	ErrUnknownField = errors.New("unknown complaint field")
)
