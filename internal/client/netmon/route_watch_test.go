//go:build linux

package netmon

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func rtnetlinkHeader(msgType uint16) []byte {
	msg := make([]byte, unix.SizeofNlMsghdr)
	binary.NativeEndian.PutUint32(msg[0:4], unix.SizeofNlMsghdr)
	binary.NativeEndian.PutUint16(msg[4:6], msgType)
	return msg
}

func TestRouteMessageKind(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
		want string
	}{
		{name: "carrier change", msg: rtnetlinkHeader(unix.RTM_NEWLINK), want: "link"},
		{name: "link removed", msg: rtnetlinkHeader(unix.RTM_DELLINK), want: "link"},
		{name: "dhcp address", msg: rtnetlinkHeader(unix.RTM_NEWADDR), want: "address"},
		{name: "address lost", msg: rtnetlinkHeader(unix.RTM_DELADDR), want: "address"},
		{name: "default route added", msg: rtnetlinkHeader(unix.RTM_NEWROUTE), want: "route"},
		{name: "route removed", msg: rtnetlinkHeader(unix.RTM_DELROUTE), want: "route"},
		{name: "neighbour table", msg: rtnetlinkHeader(unix.RTM_NEWNEIGH), want: ""},
		{name: "truncated", msg: []byte{1, 2, 3}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, routeMessageKind(tt.msg))
		})
	}
}
