package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "ML-KEM-768", cfg.KEM.Algorithm)
	require.Equal(t, "ML-DSA-65", cfg.Sig.Algorithm)
	require.Equal(t, defaultLogLevel, cfg.Logging.Level)
	require.Equal(t, defaultLogFormat, cfg.Logging.Format)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoad(t *testing.T) {
	cfg, err := Load([]byte(`
[kem]
algorithm = "Kyber512"

[sig]
algorithm = "ml-dsa-44"

[logging]
level = "debug"
format = "json"
`))
	require.NoError(t, err)
	require.Equal(t, "Kyber512", cfg.KEM.Algorithm)
	require.Equal(t, "ml-dsa-44", cfg.Sig.Algorithm)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"unknown key", "[kem]\nalgo = \"ML-KEM-512\"\n", "undecoded keys"},
		{"unknown kem", "[kem]\nalgorithm = \"RSA\"\n", "[kem] algorithm"},
		{"unknown sig", "[sig]\nalgorithm = \"Ed25519\"\n", "[sig] algorithm"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "[logging] level"},
		{"bad format", "[logging]\nformat = \"xml\"\n", "[logging] format"},
		{"syntax", "[kem\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.toml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
	_, err := Load([]byte("[sig]\nalgorithm = \"Ed25519\"\n"))
	require.ErrorIs(t, err, oqs.ErrUnknownAlgorithm)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oqs.toml")
	require.NoError(t, os.WriteFile(path, []byte("[kem]\nalgorithm = \"ML-KEM-1024\"\n"), 0o644))
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ML-KEM-1024", cfg.KEM.Algorithm)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "failed to load config file")
	require.True(t, isUsageError(err))
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	l, err := LoggingConfig{Level: "info", Format: "json"}.newLogger(&out)
	require.NoError(t, err)
	ctx := context.Background()
	l.Debug(ctx, "hidden")
	l.Info(ctx, "shown", "k", "v")
	require.False(t, strings.Contains(out.String(), "hidden"))
	require.Contains(t, out.String(), `"msg":"shown"`)

	out.Reset()
	cfg := &Config{Logging: LoggingConfig{Level: "off"}}
	cfg.applyDefaults()
	require.NoError(t, cfg.Validate())
	l, err = cfg.Logging.newLogger(&out)
	require.NoError(t, err)
	l.Error(ctx, "dropped")
	require.Zero(t, out.Len())
}
