// Package config provides configuration for the animation daemon.
// Values come from built-in defaults, an optional YAML file, and
// ANIMD_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Built-in defaults for the animation daemon.
const (
	DefaultListenAddr = ":8090"
	DefaultTickRate   = 60.0
	DefaultLogLevel   = "info"
	DefaultClip       = "idle"
)

// Daemon holds the animation daemon's configuration.
type Daemon struct {
	// ListenAddr is the host:port the HTTP and websocket server binds.
	ListenAddr string `yaml:"listen_addr"`

	// TickRate is the animation update frequency in updates per second.
	TickRate float64 `yaml:"tick_rate"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ClipDir optionally points at a directory of clip JSON files to
	// load at startup and watch for changes.
	ClipDir string `yaml:"clip_dir"`

	// InitialClip is played as soon as the daemon starts. Empty means
	// start stopped.
	InitialClip string `yaml:"initial_clip"`
}

// DefaultDaemon returns the built-in defaults.
func DefaultDaemon() Daemon {
	return Daemon{
		ListenAddr:  DefaultListenAddr,
		TickRate:    DefaultTickRate,
		LogLevel:    DefaultLogLevel,
		InitialClip: DefaultClip,
	}
}

// LoadDaemon reads the YAML file at path, if given, then applies
// environment overrides. An empty path loads defaults plus environment.
func LoadDaemon(path string) (Daemon, error) {
	cfg := DefaultDaemon()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides values from ANIMD_* environment variables.
func (c *Daemon) applyEnv() error {
	if addr := os.Getenv("ANIMD_LISTEN_ADDR"); addr != "" {
		c.ListenAddr = addr
	}
	if rate := os.Getenv("ANIMD_TICK_RATE"); rate != "" {
		v, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return fmt.Errorf("invalid ANIMD_TICK_RATE %q: %w", rate, err)
		}
		c.TickRate = v
	}
	if level := os.Getenv("ANIMD_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if dir := os.Getenv("ANIMD_CLIP_DIR"); dir != "" {
		c.ClipDir = dir
	}
	if name := os.Getenv("ANIMD_INITIAL_CLIP"); name != "" {
		c.InitialClip = name
	}
	return nil
}

func (c *Daemon) validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %v", c.TickRate)
	}
	return nil
}

// TickInterval converts the tick rate into an update period.
func (c *Daemon) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}
