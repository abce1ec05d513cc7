package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{
			name:       "records status of the handler",
			method:     http.MethodGet,
			path:       "/status",
			statusCode: http.StatusTeapot,
		},
		{
			name:       "defaults to 200",
			method:     http.MethodGet,
			path:       "/health",
			statusCode: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMetricsMiddleware(prometheus.NewRegistry())

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				if tc.statusCode != 0 {
					w.WriteHeader(tc.statusCode)
				}
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()

			m.Wrap(next).ServeHTTP(rr, req)

			if !handlerCalled {
				t.Fatalf("next handler was not invoked")
			}

			want := tc.statusCode
			if want == 0 {
				want = http.StatusOK
			}

			counter := m.requests.WithLabelValues(tc.method, tc.path, strconv.Itoa(want))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected request counter 1, got %v", got)
			}
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	Recovery(logger)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("expected panic to be logged, got %q", buf.String())
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rr := httptest.NewRecorder()
	NewLoggingMiddleware(logger).Wrap(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	out := buf.String()
	if !strings.Contains(out, `"status":202`) || !strings.Contains(out, `"path":"/metrics"`) {
		t.Fatalf("unexpected log line: %q", out)
	}
}
