package configs

import (
	"fmt"
	"net"

	"github.com/spf13/viper"
)

// AdminConfig 管理端口配置，提供 /healthz 与 /metrics，默认关闭
type AdminConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled" toml:"enabled"`
	Addr    string `mapstructure:"addr" json:"addr" yaml:"addr" toml:"addr"`
}

func setAdminConfigDefaults(v *viper.Viper) {
	v.SetDefault("admin.enabled", false)
	v.SetDefault("admin.addr", "127.0.0.1:9090")
}

// Validate 仅在启用时检查地址格式
func (a *AdminConfig) Validate() error {
	if !a.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(a.Addr); err != nil {
		return fmt.Errorf("admin.addr: %w", err)
	}
	return nil
}
