package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	MySQL  MySQLConfig  `mapstructure:"mysql"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Lmstfy LmstfyConfig `mapstructure:"lmstfy"`
	Tally  TallyConfig  `mapstructure:"tally"`
	PRM    PRMConfig    `mapstructure:"prm"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Agent  AgentConfig  `mapstructure:"agent"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Lmstfy 配置（余额同步队列）
type LmstfyConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Token     string `mapstructure:"token"`
	SyncQueue string `mapstructure:"sync_queue"`
}

// TallyConfig Tally 账务系统配置
type TallyConfig struct {
	Host            string        `mapstructure:"host"`
	Timeout         time.Duration `mapstructure:"timeout"`
	CacheTTLMinutes int           `mapstructure:"cache_ttl_minutes"`
}

// PRMConfig PRM IMEI 导入配置
type PRMConfig struct {
	FilePath string `mapstructure:"file_path"`
}

// SyncConfig 批量同步接口配置
type SyncConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// AgentConfig Tally 同步 Agent 配置
type AgentConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Load 从配置文件加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	// 兼容性处理：缺省值
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Tally.Timeout == 0 {
		cfg.Tally.Timeout = 10 * time.Second
	}
	if cfg.Tally.CacheTTLMinutes == 0 {
		cfg.Tally.CacheTTLMinutes = 120
	}
	if cfg.Lmstfy.SyncQueue == "" {
		cfg.Lmstfy.SyncQueue = "tally_balance_sync"
	}
	if cfg.Agent.Interval == 0 {
		cfg.Agent.Interval = 30 * time.Minute
	}

	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql dsn is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy host is required")
	}
	if c.Tally.Host == "" {
		return fmt.Errorf("tally host is required")
	}
	return nil
}
