package utils

import (
	"context"
	"fmt"
	"net"
	"net/url"
)

// defaultPorts fills in the port of a URL that leaves it implicit
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"redis": "6379",
}

// DialURL opens and closes a TCP connection to the host of rawURL. The
// dial is bounded by ctx.
func DialURL(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	port := u.Port()
	if port == "" {
		if port = defaultPorts[u.Scheme]; port == "" {
			port = "80"
		}
	}

	address := net.JoinHostPort(u.Hostname(), port)
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// LocalServerURL is the loopback URL of a server listening on port
func LocalServerURL(port string) string {
	return "http://" + net.JoinHostPort("127.0.0.1", port)
}
