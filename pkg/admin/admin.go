// Package admin 提供独立于问候端口的管理监听：/healthz 与 /metrics
//
// 管理端点不挂在问候端口上，问候端口除 GET / 之外的路径始终返回 404
package admin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeisme/greeter/pkg/server"
	"github.com/yeisme/greeter/pkg/utils/log"
)

const (
	// HealthPath 健康检查路径
	HealthPath = "/healthz"
	// MetricsPath Prometheus 指标路径
	MetricsPath = "/metrics"

	checkTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// ErrGreeterDown 表示问候服务未处于监听状态
var ErrGreeterDown = errors.New("greeter is not listening")

// Probe 报告被检查的服务是否可用
type Probe func() bool

// NewRegistry 创建包含 Go 运行时与进程指标的 registry
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewChecker 构建健康检查器，probe 返回 false 时状态为 down
func NewChecker(probe Probe) health.Checker {
	return health.NewChecker(
		health.WithDisabledCache(),
		health.WithTimeout(checkTimeout),
		health.WithCheck(health.Check{
			Name: "greeter",
			Check: func(_ context.Context) error {
				if !probe() {
					return ErrGreeterDown
				}
				return nil
			},
		}),
	)
}

// Server 管理监听
type Server struct {
	addr    string
	logger  log.Logger
	handler http.Handler

	mu sync.Mutex
	ln net.Listener
}

// New 创建管理服务，logger 为空时使用全局日志记录器
func New(addr string, probe Probe, gatherer prometheus.Gatherer, logger log.Logger) *Server {
	if logger == nil {
		logger = log.GetLogger()
	}

	mux := http.NewServeMux()
	mux.Handle("GET "+HealthPath, health.NewHandler(NewChecker(probe)))
	mux.Handle("GET "+MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		addr:    addr,
		logger:  logger,
		handler: mux,
	}
}

// Handler 返回管理路由
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Listen 绑定管理端口
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("bind admin %s: %w", s.addr, err)
	}
	s.ln = ln
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Admin endpoints enabled")
	return nil
}

// Addr 返回实际绑定的地址，未监听时为空
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Serve 运行管理服务直到 ctx 取消
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return server.RunHTTP(ctx, srv, ln, shutdownTimeout)
}
