package configs

import (
	"github.com/spf13/viper"
)

// AppConfig 应用配置
type AppConfig struct {
	Name    string        `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	Debug   bool          `mapstructure:"debug" json:"debug" yaml:"debug" toml:"debug"`
	Verbose bool          `mapstructure:"verbose" json:"verbose" yaml:"verbose" toml:"verbose"`
	Quiet   bool          `mapstructure:"quiet" json:"quiet" yaml:"quiet" toml:"quiet"` // 是否安静模式，禁止所有日志输出
	Hotload HotloadConfig `mapstructure:"hotload" json:"hotload" yaml:"hotload" toml:"hotload"`
}

// HotloadConfig 配置文件热加载配置
//
// 只有日志级别会被重新应用；监听端口与问候语在进程生命周期内保持不变
type HotloadConfig struct {
	Enabled  bool `mapstructure:"enabled" json:"enabled" yaml:"enabled" toml:"enabled"`
	Debounce int  `mapstructure:"debounce" json:"debounce" yaml:"debounce" toml:"debounce"` // 防抖时间，毫秒
}

func setAppConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "greeter")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.verbose", false)
	v.SetDefault("app.quiet", false)

	v.SetDefault("app.hotload.enabled", false)
	v.SetDefault("app.hotload.debounce", 300) // 毫秒
}
