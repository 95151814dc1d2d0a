package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fintrackOrigins mirrors a typical CORS_ALLOWED_ORIGINS value: the deployed
// web app as a full origin and the local dev server as a bare host.
var fintrackOrigins = []string{"https://app.fintrack.example", "localhost:5173"}

func TestCORS(t *testing.T) {
	tests := []struct {
		name            string
		method          string
		path            string
		origin          string
		wantStatus      int
		wantAllowOrigin string
		wantNextCalled  bool
	}{
		{
			name:            "web app lists transactions",
			method:          http.MethodGet,
			path:            "/api/transactions",
			origin:          "https://app.fintrack.example",
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "https://app.fintrack.example",
			wantNextCalled:  true,
		},
		{
			name:            "dev server on its configured port",
			method:          http.MethodPost,
			path:            "/api/auth/login",
			origin:          "http://localhost:5173",
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "http://localhost:5173",
			wantNextCalled:  true,
		},
		{
			name:            "dev server on another port",
			method:          http.MethodGet,
			path:            "/api/reports/summary",
			origin:          "http://localhost:4173",
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "http://localhost:4173",
			wantNextCalled:  true,
		},
		{
			name:            "origin host matched case-insensitively",
			method:          http.MethodGet,
			path:            "/api/categories",
			origin:          "https://APP.fintrack.example",
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "https://APP.fintrack.example",
			wantNextCalled:  true,
		},
		{
			name:            "refresh preflight is answered here",
			method:          http.MethodOptions,
			path:            "/api/auth/refresh",
			origin:          "https://app.fintrack.example",
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "https://app.fintrack.example",
		},
		{
			name:       "lookalike domain is refused",
			method:     http.MethodGet,
			path:       "/api/transactions",
			origin:     "https://app.fintrack.example.evil.test",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "sibling subdomain is refused",
			method:     http.MethodDelete,
			path:       "/api/investments/inv-1",
			origin:     "https://admin.fintrack.example",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "preflight from unknown origin is refused",
			method:     http.MethodOptions,
			path:       "/api/auth/refresh",
			origin:     "https://phish.example",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "sandboxed null origin is refused",
			method:     http.MethodGet,
			path:       "/api/users/me",
			origin:     "null",
			wantStatus: http.StatusForbidden,
		},
		{
			name:           "server-side caller without Origin",
			method:         http.MethodGet,
			path:           "/health",
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := CORS(fintrackOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if called != tt.wantNextCalled {
				t.Errorf("next called = %v, want %v", called, tt.wantNextCalled)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllowOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllowOrigin)
			}

			echoed := tt.wantAllowOrigin != ""
			if got := rr.Header().Get("Access-Control-Allow-Credentials") == "true"; got != echoed {
				t.Errorf("Allow-Credentials set = %v, want %v", got, echoed)
			}
			if echoed && rr.Header().Get("Vary") != "Origin" {
				t.Errorf("Vary = %q, want Origin", rr.Header().Get("Vary"))
			}
		})
	}
}

func TestCORS_PreflightAdvertisesAPISurface(t *testing.T) {
	handler := CORS(fintrackOrigins)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/transactions/txn-1", nil)
	req.Header.Set("Origin", "https://app.fintrack.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	methods := rr.Header().Get("Access-Control-Allow-Methods")
	for _, m := range []string{"GET", "POST", "PUT", "DELETE"} {
		if !strings.Contains(methods, m) {
			t.Errorf("Allow-Methods %q missing %s", methods, m)
		}
	}
	if headers := rr.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(headers, "Authorization") {
		t.Errorf("Allow-Headers %q missing Authorization", headers)
	}
	if got := rr.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("Max-Age = %q, want 3600", got)
	}
}

func TestCORS_OpenWhenUnconfigured(t *testing.T) {
	handler := CORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	// Browsers reject credentials with a wildcard origin.
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("Allow-Credentials = %q, want unset", got)
	}
}
