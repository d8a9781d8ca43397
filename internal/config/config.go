package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from config.toml
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	NotifyService NotifyServiceConfig `toml:"notifyservice"`
	Staff         StaffConfig         `toml:"staff"`
	Sweep         SweepConfig         `toml:"sweep"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Logs          LogsConfig          `toml:"logs"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig holds postgres connection settings
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// NotifyServiceConfig holds the notification service client settings
type NotifyServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// StaffConfig lists the user IDs allowed to confirm and manage reservations
type StaffConfig struct {
	ManagerIDs []int64 `toml:"manager_ids"`
}

// SweepConfig controls the periodic expiry sweep
type SweepConfig struct {
	// Schedule is a standard 5-field cron expression
	Schedule string `toml:"schedule"`
}

// MetricsConfig controls prometheus instrumentation
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// LogsConfig controls the file logger
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Load reads and decodes the configuration file
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	if cfg.Sweep.Schedule == "" {
		cfg.Sweep.Schedule = "*/5 * * * *"
	}
	return &cfg, nil
}
