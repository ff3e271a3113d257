// internal/pkg/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shop"

// Metrics 聚合了服务暴露给 Prometheus 的业务与 HTTP 指标。
type Metrics struct {
	PromotionSelected *prometheus.CounterVec
	DiscountAmount    prometheus.Histogram
	HTTPRequests      *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New 创建指标并注册到给定的 Registry。
// 测试中传入 prometheus.NewRegistry()，避免与全局默认 Registry 冲突。
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		PromotionSelected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "promotion_selected_total",
			Help:      "Number of price calculations grouped by the promotion that won.",
		}, []string{"promotion"}),
		DiscountAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "discount_amount",
			Help:      "Discount granted per price calculation.",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests grouped by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		gatherer: reg,
	}
	reg.MustRegister(m.PromotionSelected, m.DiscountAmount, m.HTTPRequests)
	return m
}

// Handler 返回 /metrics 端点。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware 记录每个请求的方法、匹配到的路由模式和状态码。
// 路由模式在 ServeMux 分发之后才写入 r.Pattern，所以必须在调用 next 之后读取。
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
