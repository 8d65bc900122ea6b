package netmon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/fieldsync/internal/models"
)

func TestEvaluate(t *testing.T) {
	lo := ifaceInfo{Name: "lo", Up: true, Loopback: true, Routable: true, DefaultRoute: true}

	tests := []struct {
		name   string
		ifaces []ifaceInfo
		want   models.ConnectivityState
	}{
		{
			name:   "only loopback",
			ifaces: []ifaceInfo{lo},
			want:   models.Offline(),
		},
		{
			name:   "wifi without address",
			ifaces: []ifaceInfo{lo, {Name: "wlan0", Up: true, DefaultRoute: true}},
			want:   models.Offline(),
		},
		{
			name:   "wifi up",
			ifaces: []ifaceInfo{lo, {Name: "wlp2s0", Up: true, Routable: true, DefaultRoute: true}},
			want:   models.Online(models.ConnectionWiFi),
		},
		{
			name: "ethernet preferred over cellular",
			ifaces: []ifaceInfo{
				{Name: "wwan0", Up: true, Routable: true, DefaultRoute: true},
				{Name: "enp3s0", Up: true, Routable: true, DefaultRoute: true},
			},
			want: models.Online(models.ConnectionEthernet),
		},
		{
			name:   "wireless flag from sysfs",
			ifaces: []ifaceInfo{{Name: "radio0", Up: true, Routable: true, Wireless: true, DefaultRoute: true}},
			want:   models.Online(models.ConnectionWiFi),
		},
		{
			name:   "unknown interface kind",
			ifaces: []ifaceInfo{{Name: "ib0", Up: true, Routable: true, DefaultRoute: true}},
			want:   models.Online(models.ConnectionUnknown),
		},
		{
			name:   "interface down",
			ifaces: []ifaceInfo{{Name: "eth0", Up: false, Routable: true, DefaultRoute: true}},
			want:   models.Offline(),
		},
		{
			name: "local bridge is not connectivity",
			ifaces: []ifaceInfo{
				lo,
				{Name: "wlan0", Up: false, Routable: true, DefaultRoute: true},
				{Name: "docker0", Up: true, Routable: true, Virtual: true},
				{Name: "veth12ab", Up: true, Routable: true, Virtual: true},
			},
			want: models.Offline(),
		},
		{
			name: "address without default route",
			ifaces: []ifaceInfo{
				{Name: "eth0", Up: true, Routable: true},
			},
			want: models.Offline(),
		},
		{
			name: "default route on the physical link",
			ifaces: []ifaceInfo{
				{Name: "br-5f1c", Up: true, Routable: true, Virtual: true},
				{Name: "wlan0", Up: true, Routable: true, DefaultRoute: true},
			},
			want: models.Online(models.ConnectionWiFi),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(tt.ifaces))
		})
	}
}

func TestIsVirtual(t *testing.T) {
	tests := []struct {
		name      string
		iface     string
		hasDevice bool
		want      bool
	}{
		{name: "docker bridge", iface: "docker0", hasDevice: false, want: true},
		{name: "compose bridge", iface: "br-5f1c0a", hasDevice: false, want: true},
		{name: "veth pair", iface: "veth3a9c1f2", hasDevice: false, want: true},
		{name: "libvirt bridge", iface: "virbr0", hasDevice: false, want: true},
		{name: "tunnel without device", iface: "tun0", hasDevice: false, want: true},
		{name: "prefix wins over device", iface: "docker0", hasDevice: true, want: true},
		{name: "ethernet card", iface: "enp3s0", hasDevice: true, want: false},
		{name: "wifi card", iface: "wlan0", hasDevice: true, want: false},
		{name: "ppp link", iface: "ppp0", hasDevice: false, want: false},
		{name: "wwan modem", iface: "wwan0", hasDevice: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isVirtual(tt.iface, tt.hasDevice))
		})
	}
}

func TestParseIPv4DefaultRoutes(t *testing.T) {
	table := strings.Join([]string{
		"Iface\tDestination\tGateway \tFlags\tRefCnt\tUse\tMetric\tMask\t\tMTU\tWindow\tIRTT",
		"wlan0\t00000000\t0101A8C0\t0003\t0\t0\t600\t00000000\t0\t0\t0",
		"wlan0\t0001A8C0\t00000000\t0001\t0\t0\t600\t00FFFFFF\t0\t0\t0",
		"docker0\t000011AC\t00000000\t0001\t0\t0\t0\t0000FFFF\t0\t0\t0",
		"broken",
	}, "\n")

	defaults := make(map[string]bool)
	parseIPv4DefaultRoutes(strings.NewReader(table), defaults)

	assert.Equal(t, map[string]bool{"wlan0": true}, defaults)
}

func TestParseIPv6DefaultRoutes(t *testing.T) {
	table := strings.Join([]string{
		"00000000000000000000000000000000 00 00000000000000000000000000000000 00 fe800000000000000000000000000001 00000400 00000001 00000000 00450003     eth0",
		"fe800000000000000000000000000000 40 00000000000000000000000000000000 00 00000000000000000000000000000000 00000100 00000001 00000000 00000001  docker0",
		"00000000000000000000000000000000 00 00000000000000000000000000000000 00 00000000000000000000000000000000 ffffffff 00000001 00000000 00200200       lo",
	}, "\n")

	defaults := make(map[string]bool)
	parseIPv6DefaultRoutes(strings.NewReader(table), defaults)

	assert.Equal(t, map[string]bool{"eth0": true}, defaults)
}
