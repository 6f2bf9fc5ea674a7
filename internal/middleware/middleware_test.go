package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergeyBogomolovv/marketplace-core/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRouter(logs *bytes.Buffer) chi.Router {
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"` + chi.URLParam(r, "id") + `"}`))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func lastRecord(t *testing.T, logs *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &record))
	return record
}

func TestLogger_LevelByStatus(t *testing.T) {
	testCases := []struct {
		target     string
		wantStatus int
		wantLevel  string
	}{
		{target: "/orders/order-1", wantStatus: http.StatusOK, wantLevel: "INFO"},
		{target: "/missing", wantStatus: http.StatusNotFound, wantLevel: "WARN"},
		{target: "/boom", wantStatus: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.target, func(t *testing.T) {
			var logs bytes.Buffer
			r := newRouter(&logs)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.target, nil))
			require.Equal(t, tc.wantStatus, w.Code)

			record := lastRecord(t, &logs)
			assert.Equal(t, tc.wantLevel, record["level"])
			assert.Equal(t, float64(tc.wantStatus), record["status"])
			assert.Equal(t, "http", record["component"])
			assert.NotEmpty(t, record["request_id"])
			assert.Equal(t, float64(w.Body.Len()), record["bytes"])
		})
	}
}

func TestTracing_SpanPerRequest(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var logs bytes.Buffer
	r := newRouter(&logs)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/order-1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "GET /orders/{id}", spans[0].Name())
	assert.Equal(t, "GET /boom", spans[1].Name())
	assert.Equal(t, "Error", spans[1].Status().Code.String())
}
