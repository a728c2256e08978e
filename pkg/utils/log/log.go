// Package log 提供全局日志记录器的初始化和获取功能
// 使用 zerolog 作为日志库，支持多种输出模式（控制台、文件、两者）
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yeisme/greeter/pkg/configs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 定义全局日志记录器类型
type Logger = *zerolog.Logger

var (
	globalLogger Logger
	globalMu     sync.RWMutex
)

// InitLogger 初始化日志记录器并设置为全局实例
func InitLogger(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig) Logger {
	return initLogger(ctx, config, appConfig, os.Stdout)
}

func initLogger(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig, console io.Writer) Logger {
	// 优先级：quiet > debug > verbose > config.Level
	if appConfig.Quiet {
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
		logger := zerolog.New(io.Discard)
		setGlobal(&logger)
		return &logger
	}
	ApplyLevel(config, appConfig)

	var writers []io.Writer
	switch strings.ToLower(config.Mode) {
	case "file":
		writers = append(writers, createFileWriter(config, console))
	case "both":
		writers = append(writers, createConsoleWriter(config.JSON, console))
		writers = append(writers, createFileWriter(config, console))
	default:
		// 默认输出到控制台
		writers = append(writers, createConsoleWriter(config.JSON, console))
	}

	var output io.Writer
	if len(writers) == 1 {
		output = writers[0]
	} else {
		output = io.MultiWriter(writers...)
	}

	var logger zerolog.Logger
	switch {
	case appConfig.Debug:
		logger = zerolog.New(output).With().Caller().
			Str("app", appConfig.Name).
			Ctx(ctx).Timestamp().Logger()
	case appConfig.Verbose:
		logger = zerolog.New(output).With().
			Str("app", appConfig.Name).
			Ctx(ctx).Timestamp().Logger()
	default:
		logger = zerolog.New(output).With().Timestamp().Logger()
	}

	setGlobal(&logger)
	return &logger
}

// ApplyLevel 根据配置设置全局日志级别，配置热加载时也会调用
func ApplyLevel(config *configs.LogConfig, appConfig *configs.AppConfig) zerolog.Level {
	var level zerolog.Level
	switch {
	case appConfig.Quiet:
		level = zerolog.PanicLevel
	case appConfig.Debug:
		level = zerolog.DebugLevel
	case appConfig.Verbose:
		level = zerolog.InfoLevel
	default:
		level = parseLogLevel(config.Level)
	}
	zerolog.SetGlobalLevel(level)
	return level
}

func setGlobal(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
	log.Logger = *logger
}

// createConsoleWriter 创建控制台输出写入器
func createConsoleWriter(useJSON bool, out io.Writer) io.Writer {
	if useJSON {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// createFileWriter 创建文件输出写入器，目录创建失败时回退到控制台
func createFileWriter(config *configs.LogConfig, fallback io.Writer) io.Writer {
	logDir := filepath.Dir(config.FilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fallback
	}

	// 使用 lumberjack 进行日志轮转
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,    // megabytes
		MaxBackups: config.MaxBackups, // 保留备份数量
		MaxAge:     config.MaxAge,     // days
		Compress:   true,              // 压缩旧日志文件
	}
}

// GetLogger 获取全局日志记录器，未初始化时使用默认配置
func GetLogger() Logger {
	globalMu.RLock()
	logger := globalLogger
	globalMu.RUnlock()
	if logger != nil {
		return logger
	}

	// 回退的记录器不改动全局级别
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		config := configs.DefaultConfig()
		logger := zerolog.New(createConsoleWriter(config.Log.JSON, os.Stdout)).With().Timestamp().Logger()
		globalLogger = &logger
		log.Logger = logger
	}
	return globalLogger
}

// parseLogLevel 解析日志级别
func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug 创建一个 Debug 级别的日志事件
func Debug() *zerolog.Event {
	return GetLogger().Debug()
}

// Info 创建一个 Info 级别的日志事件
func Info() *zerolog.Event {
	return GetLogger().Info()
}

// Warn 创建一个 Warn 级别的日志事件
func Warn() *zerolog.Event {
	return GetLogger().Warn()
}

// Error 创建一个 Error 级别的日志事件
func Error() *zerolog.Event {
	return GetLogger().Error()
}
