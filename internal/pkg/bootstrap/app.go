// internal/pkg/bootstrap/app.go
package bootstrap

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"shopcart/internal/pkg/config"
	"shopcart/internal/pkg/logger"
	"shopcart/internal/pkg/metrics"
	"shopcart/internal/pkg/nacos"
	"shopcart/internal/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

var currentConfig atomic.Pointer[config.Config]

// Init 加载配置并初始化全局日志，必须在 StartService 之前调用
func Init() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	logger.Init(cfg.App.Name, cfg.App.LogLevel)
	currentConfig.Store(cfg)
	return cfg, nil
}

// GetCurrentConfig 返回 Init 加载的配置，未初始化时返回默认配置
func GetCurrentConfig() *config.Config {
	if cfg := currentConfig.Load(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// AppCtx 是传给各服务注册函数的运行时上下文
type AppCtx struct {
	Mux     *http.ServeMux
	Config  *config.Config
	Tracer  trace.Tracer
	Metrics *metrics.Metrics

	hooks *shutdownHooks
}

// OnShutdown 注册一个关停时执行的清理函数，按注册的逆序执行
func (a AppCtx) OnShutdown(name string, fn func(ctx context.Context) error) {
	a.hooks.add(name, fn)
}

// Handler 注册运维端点并返回带日志和指标中间件的根 handler。
// 指标中间件直接包住 mux，这样分发后能读到 r.Pattern。
func (a AppCtx) Handler() http.Handler {
	a.Mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	a.Mux.Handle("GET /metrics", a.Metrics.Handler())
	return logger.Middleware(a.Metrics.Middleware(a.Mux))
}

// AppInfo 包含了启动一个服务所需的特定信息
type AppInfo struct {
	ServiceName      string
	Port             int                       // 为 0 时使用配置中的端口
	RegisterHandlers func(appCtx AppCtx) error // 每个服务在这里组装依赖并注册路由
}

// NewAppCtx 创建运行时上下文，指标注册到独立的 Registry
func NewAppCtx(cfg *config.Config, tracer trace.Tracer) AppCtx {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return AppCtx{
		Mux:     http.NewServeMux(),
		Config:  cfg,
		Tracer:  tracer,
		Metrics: metrics.New(reg),
		hooks:   &shutdownHooks{},
	}
}

// StartService 封装了服务的通用启动和优雅关停逻辑
func StartService(info AppInfo) {
	cfg := GetCurrentConfig()
	port := info.Port
	if port == 0 {
		port = cfg.App.Port
	}

	// 1. Tracer
	tp, err := tracing.InitTracerProvider(info.ServiceName, cfg.Infra.Jaeger.Endpoint)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize tracer provider")
	}

	appCtx := NewAppCtx(cfg, otel.Tracer(info.ServiceName))
	appCtx.OnShutdown("tracer provider", tp.Shutdown)

	// 2. 服务组装依赖、注册路由
	if info.RegisterHandlers != nil {
		if err := info.RegisterHandlers(appCtx); err != nil {
			zlog.Fatal().Err(err).Msg("failed to register handlers")
		}
	}

	// 3. 启动 HTTP Server
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           appCtx.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zlog.Info().Str("service", info.ServiceName).Int("port", port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Str("addr", server.Addr).Msg("could not listen")
		}
	}()
	appCtx.OnShutdown("http server", server.Shutdown)

	// 4. 配置了 Nacos 时注册服务实例
	if addrs := config.SplitList(cfg.Infra.Nacos.ServerAddrs); len(addrs) > 0 {
		registerWithNacos(appCtx, info.ServiceName, port, addrs)
	}

	// 5. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Str("service", info.ServiceName).Msg("Shutting down service")

	// 6. 按注册的逆序执行清理
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	appCtx.hooks.run(ctx)

	zlog.Info().Str("service", info.ServiceName).Msg("Service gracefully shut down")
}

func registerWithNacos(appCtx AppCtx, serviceName string, port int, addrs []string) {
	nacosCfg := appCtx.Config.Infra.Nacos
	client, err := nacos.NewNacosClient(addrs, nacosCfg.Namespace, nacosCfg.Group)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize nacos client")
	}
	ip, err := getOutboundIP()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to get outbound IP address")
	}
	if err := client.RegisterServiceInstance(serviceName, ip, port); err != nil {
		zlog.Fatal().Err(err).Msg("failed to register service with nacos")
	}
	appCtx.OnShutdown("nacos", func(context.Context) error {
		defer client.Close()
		return client.DeregisterServiceInstance(serviceName, ip, port)
	})
}

// getOutboundIP 通过一次 UDP "连接" 找出本机对外使用的地址，不会真正发包
func getOutboundIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", errors.Wrap(err, "dial udp")
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

type shutdownHook struct {
	name string
	fn   func(ctx context.Context) error
}

type shutdownHooks struct {
	mu    sync.Mutex
	hooks []shutdownHook
}

func (s *shutdownHooks) add(name string, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, shutdownHook{name: name, fn: fn})
}

// run 后进先出地执行清理，单个失败不影响后续
func (s *shutdownHooks) run(ctx context.Context) {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.fn(ctx); err != nil {
			zlog.Error().Err(err).Str("component", h.name).Msg("shutdown step failed")
			continue
		}
		zlog.Info().Str("component", h.name).Msg("shut down")
	}
}
