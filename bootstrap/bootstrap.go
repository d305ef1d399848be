// Package bootstrap 负责命令启动时的公共基础设施初始化：配置、日志、追踪与指标。
package bootstrap

import (
	"context"
	"sync"

	"github.com/wyfcoding/treeops/config"
	"github.com/wyfcoding/treeops/logging"
	"github.com/wyfcoding/treeops/metrics"
	"github.com/wyfcoding/treeops/tracing"
)

// Bootstrapper 处理通用基础设施的初始化
type Bootstrapper struct {
	ServiceName string
	Version     string
	Logger      *logging.Logger
	Config      *config.Config

	mu     sync.Mutex
	output config.LogConfig // 当前默认 Logger 的输出设置，不含级别
}

// New 创建一个新的引导器实例
func New(serviceName, version string) *Bootstrapper {
	return &Bootstrapper{
		ServiceName: serviceName,
		Version:     version,
	}
}

// Initialize 加载配置文件，并按配置初始化全局日志。
func (b *Bootstrapper) Initialize(configPath string) error {
	// 1. 临时 Logger，用于记录配置加载过程中的错误。
	b.Logger = logging.NewLogger(b.ServiceName, "bootstrap")

	// 2. 加载配置：文件缺失时使用默认值。
	cfg := &config.Config{}
	if err := config.Load(configPath, cfg); err != nil {
		b.Logger.Error("failed to load config", "error", err, "path", configPath)
		return err
	}
	if cfg.Version == "" || cfg.Version == "dev" {
		cfg.Version = b.Version
	}
	b.Config = cfg

	// 3. 使用配置重新初始化 Logger。
	b.Logger = b.newLogger(cfg.Log)
	b.output = outputOf(cfg.Log)
	logging.SetDefault(b.Logger)
	b.Logger.Debug("configuration loaded",
		"path", configPath,
		"file_used", config.GetViper().ConfigFileUsed(),
		"path_mode", cfg.Engine.PathMode,
	)
	config.PrintWithMask(cfg)

	// 4. 级别由 config 包热更新，输出目标变化时在这里重建默认 Logger。
	config.RegisterReloadHook(b.reloadLogger)

	return nil
}

func (b *Bootstrapper) newLogger(cfg config.LogConfig) *logging.Logger {
	return logging.NewFromConfig(logging.Config{
		Service:    b.ServiceName,
		Module:     "cli",
		Level:      cfg.Level,
		File:       cfg.File,
		Stdout:     cfg.Stdout,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
}

func outputOf(cfg config.LogConfig) config.LogConfig {
	cfg.Level = ""
	return cfg
}

// reloadLogger 在日志文件、控制台输出或切割策略变化时替换默认 Logger。
// 已经派生出去的子 Logger 保持原输出，直到下一次运行。
func (b *Bootstrapper) reloadLogger(next *config.Config) {
	out := outputOf(next.Log)

	b.mu.Lock()
	defer b.mu.Unlock()
	if out == b.output {
		return
	}
	b.output = out
	logging.SetDefault(b.newLogger(next.Log))
	logging.Info(context.Background(), "log output reconfigured",
		"file", next.Log.File,
		"stdout", next.Log.Stdout,
	)
}

// SetupTracing 初始化 OpenTelemetry 追踪器，返回关闭函数。
func (b *Bootstrapper) SetupTracing() func() {
	ctx := context.Background()
	shutdown, err := tracing.InitTracer(b.Config.Tracing)
	if err != nil {
		logging.Error(ctx, "failed to init tracer", "error", err)
		return func() {}
	}
	return func() {
		if err := shutdown(ctx); err != nil {
			logging.Error(ctx, "failed to shutdown tracer", "error", err)
		}
	}
}

// SetupMetrics 创建引擎指标；配置了端口时启动暴露服务。
// port 非空时覆盖配置文件中的端口并强制启用。
func (b *Bootstrapper) SetupMetrics(port string) (*metrics.EngineMetrics, func()) {
	cfg := b.Config.Metrics
	if port != "" {
		cfg.Port = port
		cfg.Enabled = true
	}

	m := metrics.NewMetrics(b.ServiceName)
	m.RegisterBuildInfo(b.ServiceName, b.Version)
	em := metrics.NewEngineMetrics(m)

	if !cfg.Enabled {
		return em, func() {}
	}
	b.Logger.Info("exposing metrics", "port", cfg.Port)
	return em, m.ExposeHttp(cfg.Port)
}
