package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	platformstrings "paymediator/pkg/platform/strings"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Audit sinks.
const (
	AuditMemory = "memory"
	AuditKafka  = "kafka"
)

// Config is the complete server configuration.
type Config struct {
	Server   Server         `yaml:"server"`
	Storage  Storage        `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Audit    Audit          `yaml:"audit"`
	Mediator Mediator       `yaml:"mediator"`
	Log      Log            `yaml:"log"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

type Storage struct {
	Backend string `yaml:"backend"`
}

// RedisConfig configures the go-redis client.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"poolSize"`
	MinIdleConns int           `yaml:"minIdleConns"`
	DialTimeout  time.Duration `yaml:"dialTimeout"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

type PostgresConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

type Audit struct {
	Sink       string   `yaml:"sink"`
	Brokers    []string `yaml:"brokers"`
	Topic      string   `yaml:"topic"`
	BufferSize int      `yaml:"bufferSize"`
}

type Mediator struct {
	AbortTimeout time.Duration `yaml:"abortTimeout"`
	LoadTimeout  time.Duration `yaml:"loadTimeout"`
	// PermissionAllowlist lists origins granted the paymenthandler
	// permission when they request it; every other origin is denied.
	PermissionAllowlist []string `yaml:"permissionAllowlist"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Storage: Storage{Backend: StorageMemory},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{Table: "mediator_kv"},
		Audit: Audit{
			Sink:       AuditMemory,
			Topic:      "paymediator.audit",
			BufferSize: 256,
		},
		Mediator: Mediator{
			AbortTimeout: 40 * time.Second,
			LoadTimeout:  30 * time.Second,
		},
		Log: Log{Level: "info", Format: "json"},
	}
}

// Load builds the configuration from the environment, then overlays the
// YAML file named by MEDIATOR_CONFIG when set.
func Load() (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	if path := os.Getenv("MEDIATOR_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := cfg.Overlay(raw); err != nil {
			return Config{}, err
		}
	}
	return cfg, cfg.Validate()
}

// Overlay applies the fields present in a YAML document.
func (c *Config) Overlay(raw []byte) error {
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Default()
	var err error
	setString(&cfg.Server.Addr, "MEDIATOR_ADDR")
	setString(&cfg.Storage.Backend, "MEDIATOR_STORAGE")
	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Postgres.DSN, "POSTGRES_DSN")
	setString(&cfg.Postgres.Table, "POSTGRES_TABLE")
	setString(&cfg.Audit.Sink, "MEDIATOR_AUDIT_SINK")
	setString(&cfg.Audit.Topic, "KAFKA_TOPIC")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Audit.Brokers = platformstrings.SplitList(v)
	}
	if v := os.Getenv("MEDIATOR_PERMISSION_ALLOWLIST"); v != "" {
		cfg.Mediator.PermissionAllowlist = platformstrings.SplitList(v)
	}
	if err = setInt(&cfg.Redis.PoolSize, "REDIS_POOL_SIZE"); err != nil {
		return Config{}, err
	}
	for name, target := range map[string]*time.Duration{
		"MEDIATOR_SHUTDOWN_TIMEOUT": &cfg.Server.ShutdownTimeout,
		"MEDIATOR_ABORT_TIMEOUT":    &cfg.Mediator.AbortTimeout,
		"MEDIATOR_LOAD_TIMEOUT":     &cfg.Mediator.LoadTimeout,
	} {
		if err = setDuration(target, name); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// Validate rejects inconsistent settings.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageMemory:
	case StorageRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("redis storage requires REDIS_URL")
		}
	case StoragePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres storage requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Audit.Sink {
	case AuditMemory:
	case AuditKafka:
		if len(c.Audit.Brokers) == 0 {
			return fmt.Errorf("kafka audit sink requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unknown audit sink %q", c.Audit.Sink)
	}
	if c.Mediator.AbortTimeout <= 0 {
		return fmt.Errorf("abort timeout must be positive")
	}
	return nil
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func setInt(dst *int, name string) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, name string) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}
