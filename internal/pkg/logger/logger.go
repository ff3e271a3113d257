// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Init 配置全局 zerolog：Unix 时间戳、服务名字段和日志级别。
func Init(serviceName, level string) {
	InitWithWriter(os.Stdout, serviceName, level)
}

// InitWithWriter 与 Init 相同，但允许指定输出，测试时用来捕获日志。
func InitWithWriter(w io.Writer, serviceName, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(ParseLevel(level))
	zlog.Logger = zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()
	// 没有挂 logger 的 context 调用 zerolog.Ctx 时回落到全局 logger
	zerolog.DefaultContextLogger = &zlog.Logger
}

// ParseLevel 解析日志级别，无法识别时使用 info。
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Ctx 从 context 中取出请求级 logger。
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// Middleware 先提取 W3C trace 上下文，再把带 trace_id 的 logger 注入到请求 context 中，
// 后续的 handler 和 service 通过 logger.Ctx(ctx) 拿到它。
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		l := zlog.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			l = l.With().Str("trace_id", sc.TraceID().String()).Logger()
		}
		ctx = l.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
