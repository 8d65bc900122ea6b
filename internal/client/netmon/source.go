// Package netmon отслеживает состояние сети и публикует его изменения.
package netmon

import (
	"context"
	"errors"

	"github.com/iudanet/fieldsync/internal/models"
)

// ErrSourceUnavailable indicates that a signal source cannot run on this host
var ErrSourceUnavailable = errors.New("connectivity source unavailable")

// SignalSource is a platform connectivity signal: a current-state query
// plus asynchronous change notifications.
type SignalSource interface {
	// Name returns a short source name for logs
	Name() string

	// Current queries the state once
	Current(ctx context.Context) (models.ConnectivityState, error)

	// Watch calls fn on every signal until ctx is done.
	// Returns ErrSourceUnavailable if the source cannot start.
	Watch(ctx context.Context, fn func(models.ConnectivityState)) error

	// Close releases the source resources
	Close() error
}
