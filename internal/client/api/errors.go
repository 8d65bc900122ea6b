package api

import "errors"

// Ошибки взаимодействия с удаленным backend
var (
	// ErrNetworkUnavailable indicates that the request never reached the server.
	// The record stays pending and no retry is consumed.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrRemoteRejected indicates a validation-level failure (4xx)
	ErrRemoteRejected = errors.New("remote rejected request")

	// ErrRemoteUnavailable indicates a transient server failure (5xx, 429, timeout)
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrNotFound indicates that the remote entity does not exist
	ErrNotFound = errors.New("remote entity not found")
)

// IsRetriable reports whether the failure is transient
func IsRetriable(err error) bool {
	return errors.Is(err, ErrNetworkUnavailable) || errors.Is(err, ErrRemoteUnavailable)
}
