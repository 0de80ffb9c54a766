package config

import (
	"strings"

	"github.com/piyushmali/solana-launchpad/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Task      TaskConfig      `mapstructure:"task"`
	Log       LogConfig       `mapstructure:"log"`
	Launchpad LaunchpadConfig `mapstructure:"launchpad"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // postgres, sqlite
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"` // sqlite 文件路径，为空时使用内存库
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
	Workers  int `mapstructure:"workers"`  // 报表任务并发数
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// LaunchpadConfig 发售与归属规则配置
type LaunchpadConfig struct {
	ProgramId          string `mapstructure:"program_id"`           // 用于派生金库地址的程序ID
	TokenDecimals      uint8  `mapstructure:"token_decimals"`       // 代币定点精度
	QuoteDecimals      uint8  `mapstructure:"quote_decimals"`       // 计价货币精度，统计展示用
	VestingDuration    uint64 `mapstructure:"vesting_duration"`     // 归属周期（秒）
	ReleaseMode        string `mapstructure:"release_mode"`         // cumulative, legacy
	EnforceCapOrder    bool   `mapstructure:"enforce_cap_order"`    // 是否校验 hard_cap >= soft_cap
	EnforceRoundWindow bool   `mapstructure:"enforce_round_window"` // 购买时是否校验轮次时间窗口
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

// SetDefaults 设置默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "launchpad")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "")
	v.SetDefault("task.interval", 60)
	v.SetDefault("task.workers", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("launchpad.program_id", "AjUxmZYjhXbJq5yDDvxe8Hh2amWnAjLN2Wmf5oET8mZ1")
	v.SetDefault("launchpad.token_decimals", 9)
	v.SetDefault("launchpad.quote_decimals", 9)
	v.SetDefault("launchpad.vesting_duration", 30*86400)
	v.SetDefault("launchpad.release_mode", "cumulative")
	v.SetDefault("launchpad.enforce_cap_order", true)
	v.SetDefault("launchpad.enforce_round_window", false)
}

func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/launchpad")

	// 设置默认值
	SetDefaults(v)

	// 自动读取环境变量，例如 DATABASE_HOST 覆盖 database.host
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
