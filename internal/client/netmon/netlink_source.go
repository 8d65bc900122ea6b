//go:build linux

package netmon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"github.com/iudanet/fieldsync/internal/models"
)

// NetlinkSource is the native signal. Link, address and route changes come
// from rtnetlink (carrier up/down, DHCP lease, default route). Interface
// add/remove/move come from kernel uevents of the net subsystem. Every
// signal re-evaluates the interfaces.
type NetlinkSource struct {
	logger     *slog.Logger
	interfaces func() ([]ifaceInfo, error)
	conn       *netlink.UEventConn
	mu         sync.Mutex
}

// NewNetlinkSource создает нативный источник на netlink
func NewNetlinkSource(logger *slog.Logger) *NetlinkSource {
	return &NetlinkSource{
		logger:     logger,
		interfaces: systemInterfaces,
	}
}

// Name returns "netlink"
func (s *NetlinkSource) Name() string {
	return "netlink"
}

// Current evaluates the host interfaces
func (s *NetlinkSource) Current(ctx context.Context) (models.ConnectivityState, error) {
	ifaces, err := s.interfaces()
	if err != nil {
		return models.ConnectivityState{}, err
	}
	return evaluate(ifaces), nil
}

// Watch listens for rtnetlink and net uevents until ctx is done
func (s *NetlinkSource) Watch(ctx context.Context, fn func(models.ConnectivityState)) error {
	routes, err := openRouteWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.KernelEvent); err != nil {
		routes.close()
		return fmt.Errorf("%w: failed to connect to netlink socket: %w", ErrSourceUnavailable, err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes := make(chan string, 1)
	routeErrs := make(chan error, 1)
	go func() { routeErrs <- routes.run(watchCtx, changes) }()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	quit := conn.Monitor(queue, errs, s.buildMatcher())

	s.logger.Debug("Netlink connectivity source started")

	for {
		select {
		case <-ctx.Done():
			close(quit)
			return nil
		case kind := <-changes:
			s.logger.Debug("Rtnetlink change received", "kind", kind)
			s.notify(ctx, fn)
		case uevent := <-queue:
			s.logger.Debug("Net uevent received",
				"action", string(uevent.Action),
				"interface", uevent.Env["INTERFACE"])
			s.notify(ctx, fn)
		case err := <-routeErrs:
			// uevents продолжают работать без rtnetlink
			if err != nil {
				s.logger.Warn("Rtnetlink watcher stopped", "error", err)
			}
			routeErrs = nil
		case err := <-errs:
			s.logger.Warn("Netlink monitor error", "error", err)
		}
	}
}

func (s *NetlinkSource) notify(ctx context.Context, fn func(models.ConnectivityState)) {
	state, err := s.Current(ctx)
	if err != nil {
		s.logger.Warn("Failed to evaluate interfaces", "error", err)
		return
	}
	fn(state)
}

// buildMatcher matches SUBSYSTEM=net interface lifecycle uevents
func (s *NetlinkSource) buildMatcher() netlink.Matcher {
	action := "add|remove|move"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "net",
		},
	})
	return rules
}

// Close closes the netlink socket
func (s *NetlinkSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
