// Package context 持有一次命令执行所需的配置、viper 实例与日志记录器
package context

import (
	"context"

	"github.com/spf13/viper"
	"github.com/yeisme/greeter/pkg/configs"
	"github.com/yeisme/greeter/pkg/utils/log"
)

// GlobalFlags 根命令的全局标志
type GlobalFlags struct {
	ConfigPath    string
	Debug         bool
	Verbose       bool
	Quiet         bool
	VersionEnable bool
}

// GreeterContext 命令执行上下文
type GreeterContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Viper  *viper.Viper    // 原始配置数据，供 config 子命令使用
	Logger log.Logger      // 日志记录器
}

// InitGreeterContext 加载配置并初始化日志，命令行标志优先于配置文件
func InitGreeterContext(ctx context.Context, flags GlobalFlags) (*GreeterContext, error) {
	config, v, err := configs.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)

	return &GreeterContext{
		Context: ctx,
		Config:  config,
		Viper:   v,
		Logger:  logger,
	}, nil
}

// ConfigFileUsed 返回实际加载的配置文件路径，未加载时为空
func (c *GreeterContext) ConfigFileUsed() string {
	return c.Viper.ConfigFileUsed()
}
