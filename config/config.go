// Package config 提供了统一的配置加载与热更新能力.
// 基于 viper 读取 TOML 文件并叠加 APP_ 前缀的环境变量，
// 加载后经 validator 做结构校验，文件变更时自动重载并回调注册的钩子.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/wyfcoding/genkit/logging"
)

// Config 全局顶级配置结构.
type Config struct {
	Version   string          `mapstructure:"version"   toml:"version"`
	Log       LogConfig       `mapstructure:"log"       toml:"log"`
	Redis     RedisConfig     `mapstructure:"redis"     toml:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"  toml:"database"`
	Generator GeneratorConfig `mapstructure:"generator" toml:"generator"`
	Sequence  SequenceConfig  `mapstructure:"sequence"  toml:"sequence"`
}

// LogConfig 日志配置.
type LogConfig struct {
	Service    string `mapstructure:"service"     toml:"service"`
	Module     string `mapstructure:"module"      toml:"module"`
	Level      string `mapstructure:"level"       toml:"level"       validate:"omitempty,oneof=debug info warn error"`
	File       string `mapstructure:"file"        toml:"file"`
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"`
	Compress   bool   `mapstructure:"compress"    toml:"compress"`
}

// ToLogging 转换为 logging 包的配置结构.
func (c LogConfig) ToLogging() logging.Config {
	return logging.Config{
		Service:    c.Service,
		Module:     c.Module,
		Level:      c.Level,
		File:       c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
}

// RedisConfig Redis 连接配置.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"           toml:"addr"`
	Password     string        `mapstructure:"password"       toml:"password"`
	DB           int           `mapstructure:"db"             toml:"db"`
	PoolSize     int           `mapstructure:"pool_size"      toml:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns" toml:"min_idle_conns"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"   toml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"  toml:"write_timeout"`
}

// DatabaseConfig 关系库连接配置.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"            toml:"driver"            validate:"omitempty,oneof=mysql postgres"`
	DSN             string        `mapstructure:"dsn"               toml:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    toml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" toml:"conn_max_lifetime"`
}

// GeneratorConfig 生成器配置.
type GeneratorConfig struct {
	TokenSecret     string `mapstructure:"token_secret"      toml:"token_secret"`      // 进程级密钥，参与绑定令牌派生
	MagicTokenBytes int    `mapstructure:"magic_token_bytes" toml:"magic_token_bytes"` // magic token 随机字节数
	CodeLength      int    `mapstructure:"code_length"       toml:"code_length"`
	CodeSegments    int    `mapstructure:"code_segments"     toml:"code_segments"`
	CodeSeparator   string `mapstructure:"code_separator"    toml:"code_separator"`
	CodeExclude     string `mapstructure:"code_exclude"      toml:"code_exclude"`
}

// SequenceConfig 序列计数器配置.
type SequenceConfig struct {
	Start     int64  `mapstructure:"start"      toml:"start"      validate:"omitempty,min=0"`
	KeyPrefix string `mapstructure:"key_prefix" toml:"key_prefix"`
}

var (
	vInstance = viper.New()
	onReload  []func(*Config)
)

// RegisterReloadHook 注册配置热更新后的回调.
func RegisterReloadHook(hook func(*Config)) {
	onReload = append(onReload, hook)
}

// Load 加载并校验配置文件，同时开启变更监听.
func Load(path string, conf *Config) error {
	vInstance.SetConfigFile(path)
	vInstance.SetConfigType("toml")

	vInstance.SetEnvPrefix("APP")
	vInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vInstance.AutomaticEnv()

	if err := vInstance.ReadInConfig(); err != nil {
		return fmt.Errorf("read config error: %w", err)
	}

	if err := vInstance.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	vInstance.WatchConfig()
	vInstance.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name)
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)

		if unmarshalErr := vInstance.Unmarshal(conf); unmarshalErr != nil {
			slog.Error("reload config unmarshal failed", "error", unmarshalErr)

			return
		}

		// 日志级别随配置热更新.
		logging.SetLevel(conf.Log.Level)

		if validateErr := validate.Struct(conf); validateErr != nil {
			slog.Error("reload config validation failed", "error", validateErr)
		} else {
			slog.Info("config hot-reloaded and validated successfully")
		}

		for _, hook := range onReload {
			hook(conf)
		}
	})

	return nil
}

// GetViper 返回底层 viper 实例，供需要原始读取能力的调用方使用.
func GetViper() *viper.Viper {
	return vInstance
}
