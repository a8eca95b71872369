package netutil

import (
	"net/netip"
	"strings"
	"unicode/utf8"
)

const MaxUserAgentLength = 512

// NormalizeIP accepts a bare IP or an addr:port form ("192.0.2.4:1234",
// "[2001:db8::1]:443") and returns the canonical IP without zone identifiers.
// The second return value reports whether parsing succeeded.
func NormalizeIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if addrPort, err := netip.ParseAddrPort(raw); err == nil {
		if addr := addrPort.Addr().WithZone(""); addr.IsValid() {
			return addr.String(), true
		}
	}
	if addr, err := netip.ParseAddr(raw); err == nil {
		if addr = addr.WithZone(""); addr.IsValid() {
			return addr.String(), true
		}
	}
	// Bracketed IPv6 or host:port forms that ParseAddrPort rejected.
	host := raw
	if strings.HasPrefix(raw, "[") {
		if end := strings.LastIndex(raw, "]"); end > 0 {
			host = raw[1:end]
		}
	} else if idx := strings.LastIndex(raw, ":"); idx > 0 && strings.Count(raw, ":") == 1 {
		host = raw[:idx]
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		if addr = addr.WithZone(""); addr.IsValid() {
			return addr.String(), true
		}
	}
	return raw, false
}

// TruncateUserAgent trims overly long user agents to MaxUserAgentLength runes
// without splitting multi-byte characters.
func TruncateUserAgent(ua string) string {
	if utf8.RuneCountInString(ua) <= MaxUserAgentLength {
		return ua
	}
	runes := 0
	for i := range ua {
		if runes == MaxUserAgentLength {
			return ua[:i]
		}
		runes++
	}
	return ua
}
