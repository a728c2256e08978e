// Package server 实现问候 HTTP 服务：绑定端口并在 GET / 上返回固定文本
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yeisme/greeter/pkg/configs"
	"github.com/yeisme/greeter/pkg/utils/log"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// ErrNotListening 表示在 Listen 成功之前访问了监听相关的状态
var ErrNotListening = errors.New("server is not listening")

// Options 问候服务参数，Port 为 0 时由系统分配端口
type Options struct {
	Host              string
	Port              int
	Greeting          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// Registerer 非空时注册请求计数指标
	Registerer prometheus.Registerer
	// Logger 为空时使用全局日志记录器
	Logger log.Logger
}

// Greeter 是一个问候服务实例，生命周期为 Stopped -> Listening -> 关闭
type Greeter struct {
	opts    Options
	logger  log.Logger
	handler http.Handler
	srv     *http.Server

	mu        sync.Mutex
	ln        net.Listener
	listening atomic.Bool
}

// New 创建问候服务，此时尚未绑定端口
func New(opts Options) (*Greeter, error) {
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = defaultReadHeaderTimeout
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}

	served := newServedCounter()
	if opts.Registerer != nil {
		if err := opts.Registerer.Register(served); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	handler := NewHandler(opts.Greeting, served)
	return &Greeter{
		opts:    opts,
		logger:  logger,
		handler: handler,
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
		},
	}, nil
}

// Handler 返回底层 HTTP 处理器
func (g *Greeter) Handler() http.Handler {
	return g.handler
}

// Listen 同步绑定端口；端口被占用或不合法时返回错误，不做重试
func (g *Greeter) Listen() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ln != nil {
		return nil
	}
	if g.opts.Port < 0 || g.opts.Port > 65535 {
		return fmt.Errorf("bind: %w: %d", configs.ErrInvalidPort, g.opts.Port)
	}

	addr := net.JoinHostPort(g.opts.Host, strconv.Itoa(g.opts.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}
	g.ln = ln
	g.listening.Store(true)

	g.logger.Info().Int("port", portOf(ln.Addr())).Msgf("Server running on port %d", portOf(ln.Addr()))
	return nil
}

// Addr 返回实际绑定的地址
func (g *Greeter) Addr() (net.Addr, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ln == nil {
		return nil, ErrNotListening
	}
	return g.ln.Addr(), nil
}

// Port 返回实际绑定的端口，未监听时返回 0
func (g *Greeter) Port() int {
	addr, err := g.Addr()
	if err != nil {
		return 0
	}
	return portOf(addr)
}

// Close 释放尚未开始服务的监听端口
func (g *Greeter) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listening.Store(false)
	if g.ln == nil {
		return nil
	}
	err := g.ln.Close()
	g.ln = nil
	return err
}

// Listening 报告服务当前是否处于监听状态
func (g *Greeter) Listening() bool {
	return g.listening.Load()
}

// Serve 处理请求直到 ctx 取消，然后在 ShutdownTimeout 内优雅关闭
//
// 未调用 Listen 时会先绑定端口；优雅关闭返回 nil
func (g *Greeter) Serve(ctx context.Context) error {
	if err := g.Listen(); err != nil {
		return err
	}

	g.mu.Lock()
	ln := g.ln
	g.mu.Unlock()

	g.logger.Debug().Str("addr", ln.Addr().String()).Msg("accepting connections")
	err := RunHTTP(ctx, g.srv, ln, g.opts.ShutdownTimeout)
	g.listening.Store(false)
	if err != nil {
		return err
	}
	g.logger.Info().Msg("Server stopped")
	return nil
}

// RunHTTP 在 ln 上运行 srv 直到 ctx 取消，随后在 timeout 内优雅关闭；正常关闭返回 nil
func RunHTTP(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func portOf(addr net.Addr) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}
