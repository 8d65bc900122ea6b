package netmon

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/iudanet/fieldsync/internal/models"
)

const (
	sysClassNet  = "/sys/class/net"
	procRoute    = "/proc/net/route"
	procRoute6   = "/proc/net/ipv6_route"
	zeroIPv4Hex  = "00000000"
	zeroIPv6Hex  = "00000000000000000000000000000000"
	zeroIPv6Plen = "00"
)

// ifaceInfo краткое описание сетевого интерфейса
type ifaceInfo struct {
	Name         string
	Wireless     bool
	Up           bool
	Loopback     bool
	Virtual      bool // мост, veth, туннель: не дает выхода в сеть сам по себе
	Routable     bool // есть глобальный unicast адрес
	DefaultRoute bool // через интерфейс идет маршрут по умолчанию
}

// connectionPriority порядок выбора типа соединения при нескольких активных интерфейсах
var connectionPriority = map[string]int{
	models.ConnectionEthernet: 3,
	models.ConnectionWiFi:     2,
	models.ConnectionCellular: 1,
	models.ConnectionUnknown:  0,
}

// virtualPrefixes имена программных интерфейсов контейнеров и виртуализации
var virtualPrefixes = []string{
	"docker", "br-", "veth", "virbr", "vnet", "cni", "flannel", "cali", "lxc", "lxd", "podman", "vmnet", "vboxnet", "kube",
}

// systemInterfaces reads interfaces of the host
func systemInterfaces() ([]ifaceInfo, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	// без таблицы маршрутов (не linux) маршрут по умолчанию не проверяется
	defaults, routesKnown := readDefaultRoutes()

	result := make([]ifaceInfo, 0, len(ifaces))
	for _, iface := range ifaces {
		info := ifaceInfo{
			Name:         iface.Name,
			Up:           iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagRunning != 0,
			Loopback:     iface.Flags&net.FlagLoopback != 0,
			Virtual:      isVirtual(iface.Name, hasSysfsDevice(iface.Name)),
			DefaultRoute: !routesKnown || defaults[iface.Name],
		}

		// sysfs признак беспроводного интерфейса (только linux, иначе false)
		if _, err := os.Stat(filepath.Join(sysClassNet, iface.Name, "wireless")); err == nil {
			info.Wireless = true
		}

		addrs, err := iface.Addrs()
		if err == nil {
			for _, addr := range addrs {
				ipNet, ok := addr.(*net.IPNet)
				if ok && ipNet.IP.IsGlobalUnicast() {
					info.Routable = true
					break
				}
			}
		}
		result = append(result, info)
	}

	return result, nil
}

// hasSysfsDevice reports whether the interface is backed by a device.
// Without sysfs the answer is true, so the name check alone decides.
func hasSysfsDevice(name string) bool {
	if _, err := os.Stat(sysClassNet); err != nil {
		return true
	}
	_, err := os.Stat(filepath.Join(sysClassNet, name, "device"))
	return err == nil
}

// isVirtual detects software interfaces. Cellular modems behind usb/wwan
// drivers always expose a device, ppp links are kept by name.
func isVirtual(name string, hasDevice bool) bool {
	lower := strings.ToLower(name)
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	if strings.HasPrefix(lower, "ppp") || strings.HasPrefix(lower, "wwan") {
		return false
	}
	return !hasDevice
}

// readDefaultRoutes returns interfaces carrying a default route.
// ok is false when neither route table could be read.
func readDefaultRoutes() (map[string]bool, bool) {
	defaults := make(map[string]bool)
	known := false

	if f, err := os.Open(procRoute); err == nil {
		parseIPv4DefaultRoutes(f, defaults)
		_ = f.Close()
		known = true
	}
	if f, err := os.Open(procRoute6); err == nil {
		parseIPv6DefaultRoutes(f, defaults)
		_ = f.Close()
		known = true
	}

	return defaults, known
}

// parseIPv4DefaultRoutes reads /proc/net/route:
// Iface Destination Gateway Flags RefCnt Use Metric Mask ...
func parseIPv4DefaultRoutes(r io.Reader, defaults map[string]bool) {
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 8 {
			continue
		}
		if fields[1] == zeroIPv4Hex && fields[7] == zeroIPv4Hex {
			defaults[fields[0]] = true
		}
	}
}

// parseIPv6DefaultRoutes reads /proc/net/ipv6_route:
// dest dest_plen src src_plen next_hop metric refcnt use flags iface
func parseIPv6DefaultRoutes(r io.Reader, defaults map[string]bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 {
			continue
		}
		iface := fields[9]
		if iface == "lo" {
			continue
		}
		if fields[0] == zeroIPv6Hex && fields[1] == zeroIPv6Plen {
			defaults[iface] = true
		}
	}
}

// classify определяет тип соединения по интерфейсу
func classify(iface ifaceInfo) string {
	name := strings.ToLower(iface.Name)
	switch {
	case iface.Wireless, strings.HasPrefix(name, "wl"), strings.HasPrefix(name, "wifi"):
		return models.ConnectionWiFi
	case strings.HasPrefix(name, "wwan"), strings.HasPrefix(name, "ppp"),
		strings.HasPrefix(name, "rmnet"), strings.HasPrefix(name, "usb"):
		return models.ConnectionCellular
	case strings.HasPrefix(name, "en"), strings.HasPrefix(name, "eth"):
		return models.ConnectionEthernet
	}
	return models.ConnectionUnknown
}

// evaluate derives the connectivity state from interfaces.
// Online means at least one running physical interface with a routable
// address that carries a default route.
func evaluate(ifaces []ifaceInfo) models.ConnectivityState {
	best := ""
	for _, iface := range ifaces {
		if iface.Loopback || iface.Virtual || !iface.Up || !iface.Routable || !iface.DefaultRoute {
			continue
		}
		kind := classify(iface)
		if best == "" || connectionPriority[kind] > connectionPriority[best] {
			best = kind
		}
	}

	if best == "" {
		return models.Offline()
	}
	return models.Online(best)
}
