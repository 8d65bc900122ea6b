//go:build linux

package netmon

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// routeGroups: состояние линков, адреса и маршруты обоих семейств
const routeGroups = unix.RTMGRP_LINK |
	unix.RTMGRP_IPV4_IFADDR | unix.RTMGRP_IPV6_IFADDR |
	unix.RTMGRP_IPV4_ROUTE | unix.RTMGRP_IPV6_ROUTE

// routeReadTimeout bounds a blocking receive so cancellation is noticed
const routeReadTimeout = time.Second

// routeWatcher listens on an rtnetlink socket. It reports carrier changes,
// DHCP addresses and default route updates that uevents never carry.
type routeWatcher struct {
	fd int
}

func openRouteWatcher() (*routeWatcher, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_ROUTE)
	if err != nil {
		return nil, fmt.Errorf("failed to open rtnetlink socket: %w", err)
	}

	if err := unix.Bind(fd, &unix.SockaddrNetlink{Family: unix.AF_NETLINK, Groups: routeGroups}); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("failed to bind rtnetlink socket: %w", err)
	}

	tv := unix.NsecToTimeval(routeReadTimeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("failed to set rtnetlink timeout: %w", err)
	}

	return &routeWatcher{fd: fd}, nil
}

// run sends the kind of every received batch to changes until ctx is done.
// changes must be buffered: a full buffer means a re-evaluation is already queued.
func (w *routeWatcher) run(ctx context.Context, changes chan<- string) error {
	defer w.close()

	buf := make([]byte, 1<<16)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, _, err := unix.Recvfrom(w.fd, buf, 0)
		kind := ""
		switch {
		case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.ENOBUFS):
			// очередь ядра переполнена, часть сообщений потеряна
			kind = "overrun"
		case err != nil:
			return fmt.Errorf("rtnetlink receive: %w", err)
		default:
			kind = routeMessageKind(buf[:n])
			if kind == "" {
				continue
			}
		}

		select {
		case changes <- kind:
		default:
		}
	}
}

func (w *routeWatcher) close() {
	_ = unix.Close(w.fd)
}

// routeMessageKind classifies the first message of an rtnetlink batch
func routeMessageKind(msg []byte) string {
	if len(msg) < unix.SizeofNlMsghdr {
		return ""
	}

	switch binary.NativeEndian.Uint16(msg[4:6]) {
	case unix.RTM_NEWLINK, unix.RTM_DELLINK:
		return "link"
	case unix.RTM_NEWADDR, unix.RTM_DELADDR:
		return "address"
	case unix.RTM_NEWROUTE, unix.RTM_DELROUTE:
		return "route"
	}
	return ""
}
