package xhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetRequestIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "remote addr without port", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
		{name: "remote ipv6", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "forwarded wins", forwarded: "203.0.113.195", remoteAddr: "10.0.0.1:80", want: "203.0.113.195"},
		{name: "forwarded with port", forwarded: "203.0.113.195:8080", remoteAddr: "10.0.0.1:80", want: "203.0.113.195"},
		{name: "forwarded ipv6 with port", forwarded: "[2001:db8::7]:8080", remoteAddr: "10.0.0.1:80", want: "2001:db8::7"},
		{name: "forwarded chain uses client hop", forwarded: "203.0.113.195, 70.41.3.18, 150.172.238.178", remoteAddr: "10.0.0.1:80", want: "203.0.113.195"},
		{name: "forwarded chain with padding", forwarded: " 203.0.113.195:4711 , 70.41.3.18", remoteAddr: "10.0.0.1:80", want: "203.0.113.195"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set(XForwardedFor, tt.forwarded)
			}
			if got := GetRequestIP(r); got != tt.want {
				t.Errorf("GetRequestIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
