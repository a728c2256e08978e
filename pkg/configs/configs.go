// Package configs 提供应用程序配置管理功能
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Version string       `mapstructure:"version" json:"version" yaml:"version" toml:"version"`
	App     AppConfig    `mapstructure:"app" json:"app" yaml:"app" toml:"app"`
	Log     LogConfig    `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	Server  ServerConfig `mapstructure:"server" json:"server" yaml:"server" toml:"server"`
	Admin   AdminConfig  `mapstructure:"admin" json:"admin" yaml:"admin" toml:"admin"`
}

// EnvPrefix 是 viper AutomaticEnv 使用的环境变量前缀，例如 GREETER_LOG_LEVEL
const EnvPrefix = "GREETER"

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setAppConfigDefaults(v)
	setLogConfigDefaults(v)
	setServerConfigDefaults(v)
	setAdminConfigDefaults(v)
}

// tryLoadConfigFiles 尝试加载不同格式的配置文件
func tryLoadConfigFiles(v *viper.Viper) bool {
	// 配置文件搜索路径
	searchPaths := []string{
		".",
		"./configs",
		"$HOME/.config/greeter",
	}

	if runtime.GOOS == "windows" {
		searchPaths = append(searchPaths, "$APPDATA/greeter")
	} else {
		searchPaths = append(searchPaths, "/etc/greeter")
	}

	configNames := []string{".greeter", "greeter"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range searchPaths {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := filepath.Join(path, name+"."+ext)

				// 展开环境变量
				if strings.Contains(configFile, "$") {
					configFile = os.ExpandEnv(configFile)
				}

				if _, err := os.Stat(configFile); err == nil {
					v.SetConfigFile(configFile)
					return true
				}
			}
		}
	}

	return false
}

// NewViper 创建一个带默认值与环境变量绑定的 viper 实例，configPath 为空时自动搜索配置文件
func NewViper(configPath string) (*viper.Viper, error) {
	v := viper.New()

	var found bool
	if configPath != "" {
		v.SetConfigFile(configPath)
		found = true
	} else {
		found = tryLoadConfigFiles(v)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if found {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	return v, nil
}

// Unmarshal 将 viper 中的数据解析为 Config 并校验
func Unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// 确保日志目录存在
	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		logDir := filepath.Dir(config.Log.FilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("创建日志目录失败: %w", err)
		}
	}

	return &config, nil
}

// LoadConfig 加载配置文件并返回解析后的配置与底层 viper 实例
func LoadConfig(configPath string) (*Config, *viper.Viper, error) {
	v, err := NewViper(configPath)
	if err != nil {
		return nil, nil, err
	}

	config, err := Unmarshal(v)
	if err != nil {
		return nil, nil, err
	}

	return config, v, nil
}

// Validate 校验配置中会导致启动失败的字段
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Admin.Validate()
}
