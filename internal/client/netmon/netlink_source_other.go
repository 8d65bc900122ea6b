//go:build !linux

package netmon

import (
	"context"
	"log/slog"

	"github.com/iudanet/fieldsync/internal/models"
)

// NetlinkSource is unavailable outside linux; the monitor falls back to the generic source
type NetlinkSource struct {
	logger *slog.Logger
}

// NewNetlinkSource создает заглушку нативного источника
func NewNetlinkSource(logger *slog.Logger) *NetlinkSource {
	return &NetlinkSource{logger: logger}
}

// Name returns "netlink"
func (s *NetlinkSource) Name() string {
	return "netlink"
}

// Current always fails with ErrSourceUnavailable
func (s *NetlinkSource) Current(ctx context.Context) (models.ConnectivityState, error) {
	return models.ConnectivityState{}, ErrSourceUnavailable
}

// Watch always fails with ErrSourceUnavailable
func (s *NetlinkSource) Watch(ctx context.Context, fn func(models.ConnectivityState)) error {
	return ErrSourceUnavailable
}

// Close is a no-op
func (s *NetlinkSource) Close() error {
	return nil
}
