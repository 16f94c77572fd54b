package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Tracing    TracingConfig `mapstructure:"tracing"`
	Redis      RedisConfig
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Log        LogConfig        `mapstructure:"log"`
	Assessment AssessmentConfig `mapstructure:"assessment"`

	// Runtime flags set from the command line, never from the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool `mapstructure:"parse_time"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int `mapstructure:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns"`
}

type LogConfig struct {
	// Level overrides the mode-derived level when set (debug, info, warn, error).
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// AssessmentConfig tunes the answer scoring and navigation engine.
type AssessmentConfig struct {
	FutureToleranceMinutes   int    `mapstructure:"future_tolerance_minutes"`
	DefaultNavigationMode    string `mapstructure:"default_navigation_mode"`
	OpenAnswerMaxLength      int    `mapstructure:"open_answer_max_length"`
	SubmissionLockTTLSeconds int    `mapstructure:"submission_lock_ttl_seconds"`
}

var navigationModes = map[string]bool{"RANDOM": true, "SEQUENTIAL": true, "FREE_FORM": true}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.charset", "utf8mb4")
	viper.SetDefault("database.parse_time", true)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.pool_size", 50)
	viper.SetDefault("redis.min_idle_conns", 5)
	viper.SetDefault("rate_limit.max_requests", 600)
	viper.SetDefault("rate_limit.window_minutes", 1)
	viper.SetDefault("log.console", true)
	viper.SetDefault("log.filename", "logs/app.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 5)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("assessment.future_tolerance_minutes", 60)
	viper.SetDefault("assessment.default_navigation_mode", "RANDOM")
	viper.SetDefault("assessment.open_answer_max_length", 500)
	viper.SetDefault("assessment.submission_lock_ttl_seconds", 10)
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("ASSESSMENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	// Release builds must not run with a guessable signing key.
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	a := &cfg.Assessment
	a.DefaultNavigationMode = strings.ToUpper(a.DefaultNavigationMode)
	if !navigationModes[a.DefaultNavigationMode] {
		return fmt.Errorf("unknown default navigation mode %q", a.DefaultNavigationMode)
	}
	if a.FutureToleranceMinutes < 0 {
		return fmt.Errorf("future tolerance must not be negative, got %d", a.FutureToleranceMinutes)
	}
	if a.OpenAnswerMaxLength <= 0 {
		return fmt.Errorf("open answer max length must be positive, got %d", a.OpenAnswerMaxLength)
	}
	if a.SubmissionLockTTLSeconds <= 0 {
		return fmt.Errorf("submission lock ttl must be positive, got %d", a.SubmissionLockTTLSeconds)
	}
	return nil
}
