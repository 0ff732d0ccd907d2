package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs/kem"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/logging"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/sig"
)

// Config is the TOML configuration file. Every field is optional.
type Config struct {
	KEM     KEMConfig     `toml:"kem"`
	Sig     SigConfig     `toml:"sig"`
	Logging LoggingConfig `toml:"logging"`
}

type KEMConfig struct {
	Algorithm string `toml:"algorithm"`
}

type SigConfig struct {
	Algorithm string `toml:"algorithm"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

const (
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"

	levelOff = "off"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.KEM.Algorithm == "" {
		c.KEM.Algorithm = kem.DefaultAlgorithm.Identifier()
	}
	if c.Sig.Algorithm == "" {
		c.Sig.Algorithm = sig.DefaultAlgorithm.Identifier()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

// Validate checks that the algorithms are known and the logging settings
// parse. It does not check that the algorithms are enabled.
func (c *Config) Validate() error {
	if _, err := kem.ParseAlgorithm(c.KEM.Algorithm); err != nil {
		return fmt.Errorf("config: [kem] algorithm: %w", err)
	}
	if _, err := sig.ParseAlgorithm(c.Sig.Algorithm); err != nil {
		return fmt.Errorf("config: [sig] algorithm: %w", err)
	}
	if !strings.EqualFold(c.Logging.Level, levelOff) {
		if _, err := parseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("config: [logging] level: %w", err)
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: [logging] format: unknown format %q", c.Logging.Format)
	}
	return nil
}

// Load parses a configuration, rejecting unknown keys.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: undecoded keys in config file: %v", undecoded)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads the configuration at path.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg, err := Load(b)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.New("unknown level " + s)
	}
	return l, nil
}

// newLogger builds the logger described by the logging section. Level "off"
// drops everything.
func (c LoggingConfig) newLogger(w io.Writer) (logging.Logger, error) {
	if strings.EqualFold(c.Level, levelOff) {
		return logging.Discard(), nil
	}
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return logging.New(slog.New(slog.NewJSONHandler(w, opts))), nil
	}
	return logging.New(slog.New(slog.NewTextHandler(w, opts))), nil
}
