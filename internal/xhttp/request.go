package xhttp

import (
	"net"
	"net/http"
	"strings"
)

// GetRequestIP prefers the first (client) hop of X-Forwarded-For, then
// RemoteAddr. Ports are stripped.
func GetRequestIP(r *http.Request) string {
	if xff := r.Header.Get(XForwardedFor); xff != "" {
		client, _, _ := strings.Cut(xff, ",")
		return stripPort(strings.TrimSpace(client))
	}
	return stripPort(r.RemoteAddr)
}

func stripPort(addr string) string {
	if ip, _, err := net.SplitHostPort(addr); err == nil {
		return ip
	}
	return addr
}
