package pprofserver

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestAuthOrLocalOnly(t *testing.T) {
	cases := []struct {
		name       string
		cfg        Config
		remoteAddr string
		authHeader string
		wantCode   int
		wantNext   bool
	}{
		{
			name:       "loopback without auth",
			cfg:        Config{},
			remoteAddr: "127.0.0.1:12345",
			wantCode:   http.StatusTeapot,
			wantNext:   true,
		},
		{
			name:       "non-loopback with empty creds configured",
			cfg:        Config{},
			remoteAddr: "8.8.8.8:54444",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "non-loopback wrong creds",
			cfg:        Config{User: "u", Pass: "p"},
			remoteAddr: "8.8.8.8:54444",
			authHeader: basicAuth("u", "WRONG"),
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "non-loopback correct creds",
			cfg:        Config{User: "u", Pass: "p"},
			remoteAddr: "8.8.8.8:54444",
			authHeader: basicAuth("u", "p"),
			wantCode:   http.StatusTeapot,
			wantNext:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusTeapot)
			})

			h := authOrLocalOnly(next, tc.cfg)
			req := httptest.NewRequest(http.MethodGet, "http://example/debug/pprof/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rr.Code)
			}
			if nextCalled != tc.wantNext {
				t.Fatalf("next called=%v, want %v", nextCalled, tc.wantNext)
			}
			if !tc.wantNext && rr.Header().Get("WWW-Authenticate") == "" {
				t.Fatalf("expected WWW-Authenticate header to be set")
			}
		})
	}
}

func TestIsLoopback(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"127.0.0.1:123", true},
		{"127.0.0.1", true},
		{" 127.0.0.1 ", true},
		{"[::1]:123", true},
		{"8.8.8.8:1", false},
		{"not-an-ip:1", false},
	}
	for _, tc := range cases {
		if got := isLoopback(tc.in); got != tc.want {
			t.Fatalf("isLoopback(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSecureEq(t *testing.T) {
	if secureEq("a", "ab") {
		t.Fatal("expected false for different lengths")
	}
	if !secureEq("abc", "abc") {
		t.Fatal("expected true for equal strings")
	}
	if secureEq("abc", "abd") {
		t.Fatal("expected false for different strings")
	}
}
