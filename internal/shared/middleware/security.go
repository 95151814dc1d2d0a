package middleware

import (
	"net"
	"net/http"
	"strings"
)

// hstsPolicy pins HTTPS for a year on the API host and its subdomains.
const hstsPolicy = "max-age=31536000; includeSubDomains"

// requiredCookieAttrs are appended, in order, to any Set-Cookie value
// missing them. Names are matched case-insensitively.
var requiredCookieAttrs = []struct {
	name  string
	value string
}{
	{"secure", "Secure"},
	{"httponly", "HttpOnly"},
	{"samesite", "SameSite=Strict"},
}

func HSTS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", hstsPolicy)
		next.ServeHTTP(w, r)
	})
}

// SecureCookies hardens every cookie the handler sets, so the access token
// cookie always goes out Secure, HttpOnly and same-site.
func SecureCookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&cookieHardener{ResponseWriter: w}, r)
	})
}

// cookieHardener rewrites Set-Cookie headers just before they are flushed.
type cookieHardener struct {
	http.ResponseWriter
	hardened bool
}

func (c *cookieHardener) WriteHeader(status int) {
	c.harden()
	c.ResponseWriter.WriteHeader(status)
}

func (c *cookieHardener) Write(b []byte) (int, error) {
	c.harden()
	return c.ResponseWriter.Write(b)
}

func (c *cookieHardener) Unwrap() http.ResponseWriter {
	return c.ResponseWriter
}

func (c *cookieHardener) harden() {
	if c.hardened {
		return
	}
	c.hardened = true

	cookies := c.ResponseWriter.Header()["Set-Cookie"]
	for i, cookie := range cookies {
		cookies[i] = ensureSecureCookie(cookie)
	}
}

// ensureSecureCookie normalizes the attribute separators of a Set-Cookie
// value and appends any missing required attribute. Attributes already
// present, such as SameSite=Lax, are left as they are.
func ensureSecureCookie(cookie string) string {
	parts := strings.Split(cookie, ";")
	attrs := make([]string, 0, len(parts)+len(requiredCookieAttrs))
	present := make(map[string]bool, len(parts))

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// The first part is name=value, not an attribute.
		if i > 0 {
			name, _, _ := strings.Cut(part, "=")
			present[strings.ToLower(strings.TrimSpace(name))] = true
		}
		attrs = append(attrs, part)
	}

	for _, attr := range requiredCookieAttrs {
		if !present[attr.name] {
			attrs = append(attrs, attr.value)
		}
	}

	return strings.Join(attrs, "; ")
}

// isSecureRequest reports whether r arrived over TLS, either terminated here
// or by a proxy that says so in X-Forwarded-Proto.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil || r.URL.Scheme == "https" {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// RequireHTTPS sends plain HTTP requests to the same URL over HTTPS with a
// permanent redirect. It is only installed when the API terminates TLS
// itself.
func RequireHTTPS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSecureRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, "https://"+r.Host+r.URL.RequestURI(), http.StatusMovedPermanently)
	})
}

// IsHostAllowed validates a host against the allowed hosts list.
// Used for preventing redirect poisoning attacks when redirecting HTTP to HTTPS
// and for matching CORS origins. Ports are ignored. Returns true if no
// allowed hosts are configured.
func IsHostAllowed(host string, allowedHosts []string) bool {
	if len(allowedHosts) == 0 {
		return true
	}

	name := hostname(host)
	for _, allowedHost := range allowedHosts {
		if name == hostname(allowedHost) {
			return true
		}
	}

	return false
}

// hostname lower-cases host and strips any port and IPv6 brackets.
func hostname(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}
