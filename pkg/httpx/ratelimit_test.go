package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/cove/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(t *testing.T, h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("allows requests within the limit", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}
		h := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler())

		for range 5 {
			rec := doRequest(t, h, "10.0.0.1:1234")
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
		h := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler())

		doRequest(t, h, "10.0.0.2:1234")
		doRequest(t, h, "10.0.0.2:1234")

		rec := doRequest(t, h, "10.0.0.2:1234")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("limits are per key", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler())

		require.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.3:1").Code)
		require.Equal(t, http.StatusTooManyRequests, doRequest(t, h, "10.0.0.3:2").Code)

		// Different IP, fresh bucket.
		require.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.4:1").Code)
	})

	t.Run("allows requests when key extraction fails", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		empty := func(*http.Request) string { return "" }
		h := httpx.RateLimitMiddleware(config, empty)(okHandler())

		for range 3 {
			require.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.5:1").Code)
		}
	})
}

func TestIPKeyExtractor(t *testing.T) {
	t.Parallel()

	t.Run("prefers x-forwarded-for", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		require.Equal(t, "203.0.113.7", httpx.IPKeyExtractor(req))
	})

	t.Run("falls back to remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:4567"

		require.Equal(t, "10.0.0.9", httpx.IPKeyExtractor(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	t.Parallel()

	userID := func(r *http.Request) string {
		id, _ := httpx.UserIDFromContext(r.Context())
		return id
	}

	extractor := httpx.CompositeKeyExtractor(":", userID, httpx.IPKeyExtractor)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req = req.WithContext(context.WithValue(req.Context(), httpx.CtxKeyUserID, "user-1"))

	require.Equal(t, "user-1:10.0.0.1", extractor(req))
}
