package config

import (
    "errors"
    "fmt"
    "time"

    "github.com/spf13/viper"
)

// Config holds the process settings. Environment variables win over the
// optional config file.
type Config struct {
    Environment string `mapstructure:"ENVIRONMENT"`
    LogLevel    string `mapstructure:"LOG_LEVEL"`

    // Server
    Port              int           `mapstructure:"PORT"`
    ShutdownTimeout   time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
    HeartbeatInterval time.Duration `mapstructure:"HEARTBEAT_INTERVAL"`

    // Best scores; empty keeps them in memory
    DatabasePath string `mapstructure:"DATABASE_PATH"`
}

// Addr is the listen address for Port.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Development reports whether console logging should be used.
func (c *Config) Development() bool { return c.Environment == "development" }

var keys = []string{
    "ENVIRONMENT", "LOG_LEVEL", "PORT", "SHUTDOWN_TIMEOUT", "HEARTBEAT_INTERVAL", "DATABASE_PATH",
}

// Load reads config.yaml from . or ./config when present, then the
// environment.
func Load() (*Config, error) {
    v := viper.New()
    v.SetConfigName("config")
    v.SetConfigType("yaml")
    v.AddConfigPath(".")
    v.AddConfigPath("./config")

    v.AutomaticEnv()
    // Unmarshal only sees env values for keys viper already knows about.
    for _, k := range keys {
        _ = v.BindEnv(k)
    }

    v.SetDefault("ENVIRONMENT", "development")
    v.SetDefault("LOG_LEVEL", "info")
    v.SetDefault("PORT", 8080)
    v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
    v.SetDefault("HEARTBEAT_INTERVAL", 15*time.Second)
    v.SetDefault("DATABASE_PATH", "")

    if err := v.ReadInConfig(); err != nil {
        var notFound viper.ConfigFileNotFoundError
        if !errors.As(err, &notFound) {
            return nil, fmt.Errorf("error reading config file: %w", err)
        }
    }

    cfg := &Config{}
    if err := v.Unmarshal(cfg); err != nil {
        return nil, fmt.Errorf("error unmarshaling config: %w", err)
    }

    if cfg.Port <= 0 || cfg.Port > 65535 {
        return nil, fmt.Errorf("PORT out of range: %d", cfg.Port)
    }
    if cfg.ShutdownTimeout <= 0 {
        return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
    }
    if cfg.HeartbeatInterval <= 0 {
        return nil, fmt.Errorf("HEARTBEAT_INTERVAL must be positive")
    }
    return cfg, nil
}
