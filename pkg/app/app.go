// Package app 组装问候服务、管理端口与配置热加载，并管理它们的生命周期
package app

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yeisme/greeter/pkg/admin"
	"github.com/yeisme/greeter/pkg/configs"
	gcontext "github.com/yeisme/greeter/pkg/context"
	"github.com/yeisme/greeter/pkg/server"
	"github.com/yeisme/greeter/pkg/utils/hotload"
	"github.com/yeisme/greeter/pkg/utils/log"
	"golang.org/x/sync/errgroup"
)

// Options 控制 Run 的外部依赖
type Options struct {
	// LookupEnv 读取 PORT，为空时使用 os.LookupEnv
	LookupEnv func(string) (string, bool)
	// Variant 非空时覆盖 server.variant（serve --variant）
	Variant string
	// OnListening 在问候端口绑定成功后调用
	OnListening func(g *server.Greeter, a *admin.Server)
}

// Run 绑定端口并提供服务直到 ctx 取消
//
// 绑定失败立即返回错误，不重试；ctx 取消后优雅关闭并返回 nil
func Run(ctx context.Context, gctx *gcontext.GreeterContext, opts Options) error {
	cfg := gctx.Config
	logger := gctx.Logger

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	port, fromEnv := configs.ResolvePort(lookup, cfg.Server.Port)
	if raw, set := lookup(configs.PortEnv); set && !fromEnv {
		logger.Warn().Str("PORT", raw).Int("port", port).Msg("ignoring invalid PORT value")
	}

	serverCfg := cfg.Server
	if opts.Variant != "" {
		serverCfg.Variant = opts.Variant
	}
	body, err := serverCfg.ResolveGreeting()
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	var registerer prometheus.Registerer
	if cfg.Admin.Enabled {
		reg = admin.NewRegistry()
		registerer = reg
	}

	greeter, err := server.New(server.Options{
		Host:              serverCfg.Host,
		Port:              port,
		Greeting:          body,
		ReadHeaderTimeout: serverCfg.ReadHeaderTimeout,
		ShutdownTimeout:   serverCfg.ShutdownTimeout,
		Registerer:        registerer,
		Logger:            logger,
	})
	if err != nil {
		return err
	}
	if err := greeter.Listen(); err != nil {
		return err
	}

	var adminSrv *admin.Server
	if cfg.Admin.Enabled {
		adminSrv = admin.New(cfg.Admin.Addr, greeter.Listening, reg, logger)
		if err := adminSrv.Listen(); err != nil {
			_ = greeter.Close()
			return err
		}
	}

	if opts.OnListening != nil {
		opts.OnListening(greeter, adminSrv)
	}

	g, gctxRun := errgroup.WithContext(ctx)
	g.Go(func() error {
		return greeter.Serve(gctxRun)
	})
	if adminSrv != nil {
		g.Go(func() error {
			return adminSrv.Serve(gctxRun)
		})
	}
	if file := gctx.ConfigFileUsed(); cfg.App.Hotload.Enabled && file != "" {
		debounce := time.Duration(cfg.App.Hotload.Debounce) * time.Millisecond
		g.Go(func() error {
			return hotload.WatchFile(gctxRun, file, debounce, func() {
				reloadLogLevel(gctx)
			})
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// reloadLogLevel 重新读取配置文件并只应用日志级别，问候语与端口不会变化
func reloadLogLevel(gctx *gcontext.GreeterContext) {
	logger := gctx.Logger
	if err := gctx.Viper.ReadInConfig(); err != nil {
		logger.Error().Err(err).Msg("reload config failed")
		return
	}
	next, err := configs.Unmarshal(gctx.Viper)
	if err != nil {
		logger.Error().Err(err).Msg("reload config failed")
		return
	}

	// "level" 是 zerolog 自身的字段名
	level := log.ApplyLevel(&next.Log, &gctx.Config.App)
	logger.Info().Str("log_level", level.String()).Msg("config reloaded")

	if next.Server != gctx.Config.Server {
		logger.Warn().Msg("server settings changed, restart to apply")
	}
}
