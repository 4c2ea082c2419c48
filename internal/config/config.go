// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config holding every default.
// - Load layers .env, an optional YAML file and COACHES_* env vars on top.
// - Validation failures wrap ErrInvalidConfig; loading failures wrap ErrLoadConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Store backends accepted by store_backend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend selects persistence: memory, file or postgres.
	StoreBackend string `koanf:"store_backend"`

	// StateFile is the YAML state file used by the file backend.
	StateFile string `koanf:"state_file"`

	// PostgresDSN is the connection string used by the postgres backend.
	PostgresDSN string `koanf:"postgres_dsn"`

	// DefaultMaxCapacity applies to coaches without an availability record.
	DefaultMaxCapacity int `koanf:"default_max_capacity"`

	// PersistRetries and PersistBackoffMS tune retries of failed writes.
	PersistRetries   int `koanf:"persist_retries"`
	PersistBackoffMS int `koanf:"persist_backoff_ms"`

	// RequestQueueSize bounds the in-memory request decision queue.
	RequestQueueSize int `koanf:"request_queue_size"`

	// RequestWorkers sets how many workers apply request decisions.
	RequestWorkers int `koanf:"request_workers"`

	// DedupeSize sets how many decision IDs are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// RosterFile, when set, is a CSV roster synced at startup.
	RosterFile string `koanf:"roster_file"`

	// EnablePprof mounts /debug/pprof.
	EnablePprof bool `koanf:"enable_pprof"`

	// CORSOrigins is a comma separated allow list; "*" allows any origin.
	CORSOrigins string `koanf:"cors_origins"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		StoreBackend:       BackendMemory,
		StateFile:          "coaches-state.yaml",
		DefaultMaxCapacity: 10,
		PersistRetries:     3,
		PersistBackoffMS:   50,
		RequestQueueSize:   1024,
		RequestWorkers:     4,
		DedupeSize:         50_000,
		CORSOrigins:        "*",
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StoreBackend {
	case BackendMemory:
	case BackendFile:
		if c.StateFile == "" {
			return fmt.Errorf("%w: state_file is required for the file backend", ErrInvalidConfig)
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: postgres_dsn is required for the postgres backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	}
	if c.DefaultMaxCapacity <= 0 {
		return fmt.Errorf("%w: default_max_capacity must be positive", ErrInvalidConfig)
	}
	if c.PersistRetries < 0 {
		return fmt.Errorf("%w: persist_retries must not be negative", ErrInvalidConfig)
	}
	if c.PersistBackoffMS < 0 {
		return fmt.Errorf("%w: persist_backoff_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}

// PersistBackoff returns PersistBackoffMS as a duration.
func (c *Config) PersistBackoff() time.Duration {
	return time.Duration(c.PersistBackoffMS) * time.Millisecond
}

// Origins splits CORSOrigins into a trimmed list without empty entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
