// Package config holds the reusable configuration sections. Each section
// validates itself; services compose them into one aggregate.
package config

import (
	"fmt"
	"strings"
	"time"
)

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	URL            string        `koanf:"url"`
	ConnectTimeout time.Duration `koanf:"connecttimeout"`
	MigrationsDir  string        `koanf:"migrationsdir"`
}

func (c *DatabaseConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	if !strings.HasPrefix(c.URL, "postgres://") && !strings.HasPrefix(c.URL, "postgresql://") {
		return fmt.Errorf("database URL must start with 'postgres://': %s", c.URL)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("database connect timeout is not configured")
	}
	return nil
}

// NATSConfig configures the connection to the broker.
type NATSConfig struct {
	URL         string        `koanf:"url"`
	DialTimeout time.Duration `koanf:"dialtimeout"`
}

func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("NATS URL is not configured")
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("NATS dial timeout is not configured")
	}
	return nil
}

// MessagingConfig configures the request/reply surface: the subject prefix the
// six intent subjects live under, the queue group sharing the load between
// replicas, and the per-request handling timeout.
type MessagingConfig struct {
	SubjectPrefix  string        `koanf:"subjectprefix"`
	Queue          string        `koanf:"queue"`
	RequestTimeout time.Duration `koanf:"requesttimeout"`
}

func (c *MessagingConfig) Validate() error {
	if c.SubjectPrefix == "" {
		return fmt.Errorf("messaging subject prefix is not configured")
	}
	if c.Queue == "" {
		return fmt.Errorf("messaging queue group is not configured")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("messaging request timeout is not configured")
	}
	return nil
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) Validate() error {
	return nil
}

// OpsConfig configures the operational HTTP server (health, metrics).
type OpsConfig struct {
	Port    int `koanf:"port"`
	Timeout struct {
		Read       time.Duration `koanf:"read"`
		Write      time.Duration `koanf:"write"`
		Idle       time.Duration `koanf:"idle"`
		ReadHeader time.Duration `koanf:"readheader"`
	} `koanf:"timeout"`
}

func (c *OpsConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid ops server port: %d", c.Port)
	}
	if c.Timeout.Read <= 0 || c.Timeout.Write <= 0 || c.Timeout.Idle <= 0 || c.Timeout.ReadHeader <= 0 {
		return fmt.Errorf("ops server timeouts must all be positive")
	}
	return nil
}

// PProfConfig configures the optional pprof server.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func (c *PProfConfig) Validate() error {
	if c.Enabled && c.Addr == "" {
		return fmt.Errorf("pprof is enabled but address is not configured")
	}
	return nil
}

// ShutdownConfig bounds graceful shutdown.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown timeout is not configured")
	}
	return nil
}

// MaskURL hides credentials embedded in a connection URL for logging.
func MaskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}
