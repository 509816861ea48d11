// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/config"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(r))
		})
	}
}

func TestAuthenticator_MissingToken(t *testing.T) {
	called := false
	h := Authenticator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/announcements", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuthenticator_AttachesCaller(t *testing.T) {
	var got access.Caller
	h := Authenticator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = access.CallerFrom(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/announcements", nil)
	r.Header.Set("Authorization", "Bearer tok")
	r.Header.Set(access.SelectionHeader, "ws-eng")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, access.SelectWorkspace("ws-eng"), got.Selection)

	r = httptest.NewRequest(http.MethodGet, "/announcements", nil)
	r.Header.Set("Authorization", "Bearer tok")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, got.Selection.All)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "req-1", seen)
}

func TestCORS(t *testing.T) {
	h := CORS(config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})(http.HandlerFunc(okHandler))

	t.Run("preflight", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodOptions, "/announcements", nil)
		r.Header.Set("Origin", "http://localhost:3000")
		r.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), access.SelectionHeader)
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/announcements", nil)
		r.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(true)(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	m := core.NewMetrics()
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Use(Logger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Get("/deployments/{deploymentID}", okHandler)

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/deployments/"+id, nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(
		m.HTTPRequests.WithLabelValues("GET", "/deployments/{deploymentID}", "200")))
}

func TestLocalLimiter(t *testing.T) {
	l := &localLimiter{}
	limit := PerMinute(60, 2)
	now := time.Now()

	first := l.allow("k", limit, now)
	second := l.allow("k", limit, now)
	third := l.allow("k", limit, now)

	assert.Equal(t, 1, first.Allowed)
	assert.Equal(t, 1, second.Allowed)
	assert.Equal(t, 0, third.Allowed)
	assert.Equal(t, time.Second, third.RetryAfter)

	assert.Equal(t, 1, l.allow("other", limit, now).Allowed)
	assert.Equal(t, 1, l.allow("k", limit, now.Add(time.Second)).Allowed)
}

func TestLocalLimiter_PrunesIdleKeys(t *testing.T) {
	l := &localLimiter{}
	limit := PerMinute(60, 1)
	now := time.Now()

	l.allow("idle", limit, now)
	l.allow("fresh", limit, now.Add(2*localEntryTTL))

	assert.NotContains(t, l.entries, "idle")
	assert.Contains(t, l.entries, "fresh")
}

func TestLimitFromConfig(t *testing.T) {
	limit := LimitFromConfig(config.RateLimitConfig{Requests: 300, Burst: 50, Window: 30 * time.Second})
	assert.Equal(t, 300, limit.Rate)
	assert.Equal(t, 50, limit.Burst)
	assert.Equal(t, 30*time.Second, limit.Period)

	assert.Equal(t, time.Minute, LimitFromConfig(config.RateLimitConfig{Requests: 1}).Period)
}

func TestKeyByCaller(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "teamcomm:ratelimit:ip:10.0.0.1", KeyByCaller(r))

	r.Header.Set("Authorization", "Bearer secret")
	key := KeyByCaller(r)
	assert.Equal(t, "teamcomm:ratelimit:session:"+core.HashToken("secret"), key)
	assert.NotContains(t, key, "secret")
}

func resolvedIP(t *testing.T, trusted []netip.Prefix, remote string, headers map[string]string) string {
	t.Helper()
	var got string
	h := RealIP(trusted)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = ClientIP(r)
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = remote
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	h.ServeHTTP(httptest.NewRecorder(), r)
	return got
}

func TestRealIP(t *testing.T) {
	proxies := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}
	spoofed := map[string]string{
		"X-Forwarded-For": "203.0.113.9",
		"X-Real-IP":       "198.51.100.2",
	}

	tests := []struct {
		name    string
		trusted []netip.Prefix
		remote  string
		headers map[string]string
		want    string
	}{
		{"no proxies ignores forwarding headers", nil, "192.0.2.7:5151", spoofed, "192.0.2.7"},
		{"untrusted peer ignores headers", proxies, "192.0.2.7:5151", spoofed, "192.0.2.7"},
		{"trusted peer uses forwarded client", proxies, "10.0.0.5:443", spoofed, "203.0.113.9"},
		{
			"skips trusted hops right to left", proxies, "10.0.0.5:443",
			map[string]string{"X-Forwarded-For": "1.1.1.1, 203.0.113.9, 10.2.2.2"},
			"203.0.113.9",
		},
		{
			"falls back to X-Real-IP", proxies, "10.0.0.5:443",
			map[string]string{"X-Real-IP": "198.51.100.2"},
			"198.51.100.2",
		},
		{
			"malformed hop stops the walk", proxies, "10.0.0.5:443",
			map[string]string{"X-Forwarded-For": "garbage, 10.2.2.2"},
			"10.0.0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolvedIP(t, tt.trusted, tt.remote, tt.headers))
		})
	}
}

func TestClientIP_WithoutRealIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:5151"
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "192.0.2.7", ClientIP(r))
}

func TestKeyByIP_IgnoresSpoofedHeaderWithoutProxy(t *testing.T) {
	var keys []string
	h := RealIP(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		keys = append(keys, KeyByIP(r))
	}))
	for _, xff := range []string{"203.0.113.1", "203.0.113.2"} {
		r := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		r.RemoteAddr = "192.0.2.7:5151"
		r.Header.Set("X-Forwarded-For", xff)
		h.ServeHTTP(httptest.NewRecorder(), r)
	}
	require.Len(t, keys, 2)
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, "teamcomm:ratelimit:ip:192.0.2.7", keys[0])
}
