package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"
)

// IPExtractor resolves the client address used as the rate limit key.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor trusts only the TCP peer address.
type RemoteAddrExtractor struct{}

func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return hostFromAddr(r.RemoteAddr)
}

// TrustedProxies lists the peers allowed to set X-Forwarded-For and X-Real-IP.
type TrustedProxies []netip.Prefix

// Contains reports whether remoteAddr belongs to a trusted proxy.
func (t TrustedProxies) Contains(remoteAddr string) bool {
	host, err := hostFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	for _, p := range t {
		if p.Contains(addr.Unmap()) {
			return true
		}
	}
	return false
}

// ParseTrustedProxies parses a comma separated list of IPs or CIDRs.
func ParseTrustedProxies(raw string) (TrustedProxies, error) {
	var out TrustedProxies
	for _, s := range splitList(raw) {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			addr, addrErr := netip.ParseAddr(s)
			if addrErr != nil {
				return nil, fmt.Errorf("invalid proxy %q: want an IP or CIDR", s)
			}
			prefix = netip.PrefixFrom(addr, addr.BitLen())
		}
		out = append(out, prefix.Masked())
	}
	return out, nil
}

// NewIPExtractorFromEnv returns a ProxyAwareExtractor when TRUSTED_PROXIES is
// set and a RemoteAddrExtractor otherwise.
func NewIPExtractorFromEnv() (IPExtractor, error) {
	raw := strings.TrimSpace(os.Getenv("TRUSTED_PROXIES"))
	if raw == "" {
		return RemoteAddrExtractor{}, nil
	}
	proxies, err := ParseTrustedProxies(raw)
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	return ProxyAwareExtractor{Trusted: proxies}, nil
}

// ProxyAwareExtractor reads forwarding headers only when the peer is trusted.
type ProxyAwareExtractor struct {
	Trusted TrustedProxies
}

func (e ProxyAwareExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.Trusted.Contains(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("ignoring X-Forwarded-For from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return hostFromAddr(r.RemoteAddr)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String(), nil
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String(), nil
	}
	return hostFromAddr(r.RemoteAddr)
}

func hostFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}
