package types

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Target represents the hostname to score.
type Target struct {
	Host string `json:"host"`
}

// ParseTarget accepts a bare hostname, host:port, or full URL and
// normalizes it down to the hostname the scan endpoints expect.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("target cannot be empty")
	}

	// If it looks like a URL (has a scheme), parse as URL.
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Target{}, fmt.Errorf("invalid URL %q: %w", raw, err)
		}
		if u.Hostname() == "" {
			return Target{}, fmt.Errorf("URL %q has no hostname", raw)
		}
		return Target{Host: strings.ToLower(u.Hostname())}, nil
	}

	// Try host:port format.
	if host, _, err := net.SplitHostPort(raw); err == nil {
		return Target{Host: strings.ToLower(host)}, nil
	}

	// Plain hostname.
	if strings.ContainsAny(raw, "/ ") {
		return Target{}, fmt.Errorf("invalid hostname %q", raw)
	}
	return Target{Host: strings.ToLower(raw)}, nil
}
