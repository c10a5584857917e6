// Package config defines the catalog service configuration aggregate.
package config

import (
	"errors"
	"fmt"

	"github.com/mkostin/catalog_service/pkg/config"
)

// Config aggregates the configuration sections of the catalog service.
type Config struct {
	NATS      config.NATSConfig      `koanf:"nats"`
	Messaging config.MessagingConfig `koanf:"messaging"`
	Database  config.DatabaseConfig  `koanf:"database"`
	Log       config.LogConfig       `koanf:"log"`
	Ops       config.OpsConfig       `koanf:"ops"`
	PProf     config.PProfConfig     `koanf:"pprof"`
	Shutdown  config.ShutdownConfig  `koanf:"shutdown"`
}

// Validate checks every section and reports all failures at once.
func (c *Config) Validate() error {
	return errors.Join(
		c.NATS.Validate(),
		c.Messaging.Validate(),
		c.Database.Validate(),
		c.Log.Validate(),
		c.Ops.Validate(),
		c.PProf.Validate(),
		c.Shutdown.Validate(),
	)
}

// String renders the effective configuration with credentials masked, suitable
// for startup logging.
func (c *Config) String() string {
	return fmt.Sprintf("nats.url=%s, nats.dialtimeout=%v, messaging.subjectprefix=%s, messaging.queue=%s, messaging.requesttimeout=%v, database.url=%s, database.connecttimeout=%v, database.migrationsdir=%s, log.level=%s, ops.port=%d, pprof.enabled=%t, pprof.addr=%s, shutdown.timeout=%v",
		c.NATS.URL,
		c.NATS.DialTimeout,
		c.Messaging.SubjectPrefix,
		c.Messaging.Queue,
		c.Messaging.RequestTimeout,
		config.MaskURL(c.Database.URL),
		c.Database.ConnectTimeout,
		c.Database.MigrationsDir,
		c.Log.Level,
		c.Ops.Port,
		c.PProf.Enabled,
		c.PProf.Addr,
		c.Shutdown.Timeout,
	)
}
