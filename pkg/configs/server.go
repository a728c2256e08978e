package configs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/yeisme/greeter/pkg/greeting"
)

const (
	// DefaultPort 未设置 PORT 且配置文件未指定端口时使用
	DefaultPort = 8080
	// PortEnv 是覆盖监听端口的环境变量，不带 GREETER_ 前缀
	PortEnv = "PORT"

	maxPort = 65535
)

// ErrInvalidPort 表示端口不在 1..65535 范围内
var ErrInvalidPort = errors.New("invalid port")

// ServerConfig 问候服务配置
type ServerConfig struct {
	Host              string        `mapstructure:"host" json:"host" yaml:"host" toml:"host"`
	Port              int           `mapstructure:"port" json:"port" yaml:"port" toml:"port"`
	Variant           string        `mapstructure:"variant" json:"variant" yaml:"variant" toml:"variant"`     // 内置问候语: node, hrutika, ratan
	Greeting          string        `mapstructure:"greeting" json:"greeting" yaml:"greeting" toml:"greeting"` // 非空时覆盖 variant
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" json:"read_header_timeout" yaml:"read_header_timeout" toml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

func setServerConfigDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.variant", greeting.DefaultVariant)
	v.SetDefault("server.greeting", "")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// Validate 校验端口范围与变体名称
func (s *ServerConfig) Validate() error {
	if !ValidPort(s.Port) {
		return fmt.Errorf("server.port: %w: %d", ErrInvalidPort, s.Port)
	}
	if _, err := s.ResolveGreeting(); err != nil {
		return fmt.Errorf("server.variant: %w", err)
	}
	return nil
}

// ResolveGreeting 返回最终响应体
func (s *ServerConfig) ResolveGreeting() (string, error) {
	return greeting.Resolve(s.Variant, s.Greeting)
}

// ValidPort 判断端口是否为合法的 TCP 端口
func ValidPort(port int) bool {
	return port > 0 && port <= maxPort
}

// ResolvePort 读取 PORT 环境变量；存在且为合法端口时返回它与 true，否则返回 fallback 与 false
func ResolvePort(lookup func(string) (string, bool), fallback int) (int, bool) {
	raw, ok := lookup(PortEnv)
	if !ok {
		return fallback, false
	}
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !ValidPort(port) {
		return fallback, false
	}
	return port, true
}
