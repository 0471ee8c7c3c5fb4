package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Kanban    KanbanConfig    `mapstructure:"kanban"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type LoggerConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// KanbanConfig points at the external kanban board tasks are reconciled with.
type KanbanConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	ProjectID     string        `mapstructure:"project_id"`
	Timeout       time.Duration `mapstructure:"timeout"`
	FallbackAgent string        `mapstructure:"fallback_agent"`
}

type SchedulerConfig struct {
	EnableSync     bool          `mapstructure:"enable_sync"`
	SyncInterval   time.Duration `mapstructure:"sync_interval"`
	EnableAlerts   bool          `mapstructure:"enable_alerts"`
	AlertInterval  time.Duration `mapstructure:"alert_interval"`
	StaleThreshold time.Duration `mapstructure:"stale_threshold"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetEnvPrefix("AUGUST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Path == "" {
		cfg.Database.Path = "tasks.db"
	}
	if cfg.Kanban.Timeout == 0 {
		cfg.Kanban.Timeout = 5 * time.Second
	}
	if cfg.Kanban.FallbackAgent == "" {
		cfg.Kanban.FallbackAgent = "engineer"
	}
	if cfg.Scheduler.SyncInterval == 0 {
		cfg.Scheduler.SyncInterval = 5 * time.Minute
	}
	if cfg.Scheduler.AlertInterval == 0 {
		cfg.Scheduler.AlertInterval = time.Minute
	}
	if cfg.Scheduler.StaleThreshold == 0 {
		cfg.Scheduler.StaleThreshold = 24 * time.Hour
	}
}
