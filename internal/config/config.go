package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 对局配置
type GameConfig struct {
	WarmupTime int `yaml:"warmup_time"` // 热身阶段时长（秒）
	FreezeTime int `yaml:"freeze_time"` // 准备阶段时长（秒）
	RoundTime  int `yaml:"round_time"`  // 回合时长（秒）
	EndTime    int `yaml:"end_time"`    // 结算阶段时长（秒）
	MaxPlayers int `yaml:"max_players"` // 房间最大人数

	ShutdownTimeout       int `yaml:"shutdown_timeout"`        // 优雅关闭最长等待（秒）
	ShutdownCheckInterval int `yaml:"shutdown_check_interval"` // 关闭时检查间隔（秒）
	RoomCleanupDelay      int `yaml:"room_cleanup_delay"`      // 关闭前的缓冲时间（秒）
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	MessageLimit   MessageLimitConfig `yaml:"message_limit"`
}

// RateLimitConfig 连接速率限制配置
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanDuration  int `yaml:"ban_duration"` // 封禁时长（秒）
}

// MessageLimitConfig 消息速率限制配置
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// ShutdownTimeoutDuration 返回优雅关闭等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// ShutdownCheckIntervalDuration 返回关闭检查间隔
func (c *GameConfig) ShutdownCheckIntervalDuration() time.Duration {
	return time.Duration(c.ShutdownCheckInterval) * time.Second
}

// RoomCleanupDelayDuration 返回关闭缓冲时长
func (c *GameConfig) RoomCleanupDelayDuration() time.Duration {
	return time.Duration(c.RoomCleanupDelay) * time.Second
}

// BanDurationTime 返回封禁时长
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.fillDefaults()

	return &cfg, nil
}

// fillDefaults 填充默认值
func (cfg *Config) fillDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = 10000
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.WarmupTime == 0 {
		cfg.Game.WarmupTime = 20
	}
	if cfg.Game.FreezeTime == 0 {
		cfg.Game.FreezeTime = 15
	}
	if cfg.Game.RoundTime == 0 {
		cfg.Game.RoundTime = 600
	}
	if cfg.Game.EndTime == 0 {
		cfg.Game.EndTime = 5
	}
	if cfg.Game.MaxPlayers == 0 {
		cfg.Game.MaxPlayers = 10
	}
	if cfg.Game.ShutdownTimeout == 0 {
		cfg.Game.ShutdownTimeout = 300
	}
	if cfg.Game.ShutdownCheckInterval == 0 {
		cfg.Game.ShutdownCheckInterval = 10
	}
	if cfg.Game.RoomCleanupDelay == 0 {
		cfg.Game.RoomCleanupDelay = 5
	}
	if len(cfg.Security.AllowedOrigins) == 0 {
		cfg.Security.AllowedOrigins = []string{"*"}
	}
	if cfg.Security.RateLimit.MaxPerSecond == 0 {
		cfg.Security.RateLimit.MaxPerSecond = 10
	}
	if cfg.Security.RateLimit.MaxPerMinute == 0 {
		cfg.Security.RateLimit.MaxPerMinute = 60
	}
	if cfg.Security.RateLimit.BanDuration == 0 {
		cfg.Security.RateLimit.BanDuration = 300
	}
	if cfg.Security.MessageLimit.MaxPerSecond == 0 {
		// update 消息按帧率发送，上限要足够宽
		cfg.Security.MessageLimit.MaxPerSecond = 60
	}
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}
