// Package config 提供 treeops 的配置加载、校验与热更新能力.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/wyfcoding/treeops/logging"
)

// 路径查询模式。
const (
	PathModeInclusionExclusion = "inclusion_exclusion"
	PathModeSum                = "sum"
)

// Config 全局顶级配置结构.
type Config struct {
	Version string        `mapstructure:"version" toml:"version"`
	Log     LogConfig     `mapstructure:"log"     toml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" toml:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing" toml:"tracing"`
	Engine  EngineConfig  `mapstructure:"engine"  toml:"engine"`
}

// LogConfig 定义日志输出、级别与切割策略.
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"       validate:"omitempty,oneof=debug info warn error"`
	File       string `mapstructure:"file"        toml:"file"`        // 日志文件路径。
	Stdout     bool   `mapstructure:"stdout"      toml:"stdout"`      // 写文件时是否同时输出到控制台。
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"`    // 单个文件最大大小 (MB)。
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"` // 最大备份数。
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"`     // 最大保留天数。
	Compress   bool   `mapstructure:"compress"    toml:"compress"`
}

// MetricsConfig 普罗米修斯监控指标暴露配置.
type MetricsConfig struct {
	Port    string `mapstructure:"port"    toml:"port"`
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
}

// TracingConfig 链路追踪（OpenTelemetry）配置.
type TracingConfig struct {
	ServiceName  string  `mapstructure:"service_name"  toml:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" toml:"otlp_endpoint" validate:"required_if=Enabled true"`
	SamplerRatio float64 `mapstructure:"sampler_ratio" toml:"sampler_ratio" validate:"gte=0,lte=1"`
	Enabled      bool    `mapstructure:"enabled"       toml:"enabled"`
}

// EngineConfig 树引擎与批处理参数.
type EngineConfig struct {
	MaxNodes int    `mapstructure:"max_nodes" toml:"max_nodes" validate:"min=1"`
	PathMode string `mapstructure:"path_mode" toml:"path_mode" validate:"oneof=inclusion_exclusion sum"`
	// Validate 为 false 时跳过建树前的结构校验，只适用于可信输入。
	Validate bool `mapstructure:"validate" toml:"validate"`
}

// Default 返回内置默认配置。
func Default() *Config {
	return &Config{
		Version: "dev",
		Log:     LogConfig{Level: "info", MaxSize: 100, MaxBackups: 3, MaxAge: 7},
		Metrics: MetricsConfig{Port: "9100"},
		Tracing: TracingConfig{ServiceName: "treeops", SamplerRatio: 1.0},
		Engine: EngineConfig{
			MaxNodes: 1 << 20,
			PathMode: PathModeInclusionExclusion,
			Validate: true,
		},
	}
}

var (
	mu        sync.Mutex
	vInstance = viper.New()
	onReload  []func(*Config)
)

// RegisterReloadHook 注册配置热更新回调。
func RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	mu.Lock()
	onReload = append(onReload, hook)
	mu.Unlock()
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("metrics.port", d.Metrics.Port)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("tracing.sampler_ratio", d.Tracing.SamplerRatio)
	v.SetDefault("engine.max_nodes", d.Engine.MaxNodes)
	v.SetDefault("engine.path_mode", d.Engine.PathMode)
	v.SetDefault("engine.validate", d.Engine.Validate)
}

// Load 读取 TOML 配置文件并校验。
// 文件不存在时使用默认值与环境变量（TREEOPS_ 前缀），不视为错误。
func Load(path string, conf *Config) error {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("TREEOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileLoaded := false
	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config error: %w", err)
			}
			fileLoaded = true
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return fmt.Errorf("stat config error: %w", statErr)
		}
	}

	if err := v.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	vInstance = v
	mu.Unlock()

	if !fileLoaded {
		return nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name)
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)

		next := *conf
		if unmarshalErr := v.Unmarshal(&next); unmarshalErr != nil {
			slog.Error("reload config unmarshal failed", "error", unmarshalErr)
			return
		}
		if validateErr := validate.Struct(&next); validateErr != nil {
			slog.Error("reload config validation failed", "error", validateErr)
			return
		}

		// 引擎参数只在下一次运行时生效，这里只热更新日志级别。
		logging.SetLevel(next.Log.Level)
		slog.Info("config hot-reloaded and validated successfully", "log_level", next.Log.Level)

		mu.Lock()
		hooks := append([]func(*Config){}, onReload...)
		mu.Unlock()
		for _, hook := range hooks {
			hook(&next)
		}
	})

	return nil
}

// PrintWithMask 脱敏打印当前配置.
func PrintWithMask(conf any) {
	data, err := json.Marshal(conf)
	if err != nil {
		slog.Error("failed to marshal config for printing", "error", err)
		return
	}

	var configMap map[string]any
	if unmarshalErr := json.Unmarshal(data, &configMap); unmarshalErr != nil {
		slog.Error("failed to unmarshal config for masking", "error", unmarshalErr)
		return
	}

	mask(configMap)

	maskedJSON, marshalErr := json.Marshal(configMap)
	if marshalErr != nil {
		slog.Error("failed to marshal masked config", "error", marshalErr)
		return
	}

	slog.Debug("current effective configuration", "config", string(maskedJSON))
}

func mask(configMap map[string]any) {
	sensitiveKeys := []string{"password", "secret", "token", "endpoint"}

	for key, val := range configMap {
		if subMap, ok := val.(map[string]any); ok {
			mask(subMap)
			continue
		}
		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(strings.ToLower(key), sensitiveKey) {
				configMap[key] = "******"
				break
			}
		}
	}
}

// GetViper 返回底层的 Viper 实例.
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return vInstance
}
