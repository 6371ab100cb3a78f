package httpx

import (
	"net"
	"strconv"
)

type Address string

// SplitHostPort splits the address into the host and port parts.
// Addresses without a meaningful port return zero.
func (a Address) SplitHostPort() (string, int) {
	host, port, err := net.SplitHostPort(string(a))
	if err != nil {
		return string(a), 0
	}
	p, _ := strconv.Atoi(port)
	return host, p
}

// buildAddress joins network host from the first param
// with the port value of a listener from the third param.
//
// As example, address host.com:8080 and listener 123.123.123.123:8888 will be
// transformed to host.com:8888, or with the zone us set to us.host.com:8888.
// Default ports (80, 443) are dropped from the result.
func buildAddress(address string, zone string, l Listener) string {
	addr, _, err := net.SplitHostPort(address)
	if err != nil {
		addr = address
	}
	if addr == "" {
		addr = "localhost"
	}
	addr = withZonePrefix(addr, zone)

	port := l.GetPort()
	if port > 0 && port != 80 && port != 443 {
		addr += ":" + strconv.Itoa(port)
	}
	return addr
}

// withZonePrefix adds a zone subdomain to the address.
func withZonePrefix(address string, zone string) string {
	if zone == "" {
		return address
	}
	return zone + "." + address
}

func extractHost(address string) string {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return address
	}
	return host
}
