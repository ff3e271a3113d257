package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestMiddleware_InjectsTraceID(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "shop-test", "info")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Ctx(r.Context()).Info().Msg("handled")
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shop-test", entry["service"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "/products", entry["path"])
	assert.Equal(t, "handled", entry["message"])
}

func TestCtx_FallsBackToGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "shop-test", "info")

	Ctx(context.Background()).Info().Msg("no request logger")

	assert.Contains(t, buf.String(), "no request logger")
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "shop-test", "debug")
	l := NewGormLogger(gormlogger.Warn)
	sql := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("record not found is not logged as error", func(t *testing.T) {
		buf.Reset()
		l.Trace(context.Background(), time.Now(), sql, gormlogger.ErrRecordNotFound)
		assert.Empty(t, buf.String())
	})

	t.Run("other errors are logged", func(t *testing.T) {
		buf.Reset()
		l.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
		assert.Contains(t, buf.String(), "SQL error")
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("slow queries are logged as warnings", func(t *testing.T) {
		buf.Reset()
		l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
		assert.Contains(t, buf.String(), "SLOW SQL")
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		buf.Reset()
		l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sql, errors.New("boom"))
		assert.Empty(t, buf.String())
	})
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, GormLevel("unknown"))
}
