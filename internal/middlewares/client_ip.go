package middlewares

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientIPHeaders are checked in order. Only the first X-Forwarded-For hop is
// used.
var clientIPHeaders = []string{"True-Client-IP", "X-Real-IP", "X-Forwarded-For"}

// ClientIPMiddleware rewrites RemoteAddr to "ip:port" using the proxy headers
// when they carry a valid address. The original port is kept, or 0 if none.
func ClientIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := ClientIP(r); ip != "" {
			port := "0"
			if _, p, err := net.SplitHostPort(r.RemoteAddr); err == nil && p != "" {
				port = p
			}
			r.RemoteAddr = net.JoinHostPort(ip, port)
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the caller's address or "" when none can be parsed.
func ClientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		if header == "X-Forwarded-For" {
			value, _, _ = strings.Cut(value, ",")
		}
		if addr, err := netip.ParseAddr(strings.TrimSpace(value)); err == nil {
			return addr.String()
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.String()
	}

	return ""
}
