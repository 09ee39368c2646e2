package config

import (
	"encoding/base64"

	"github.com/yndnr/rediswire-go/pkg/secretbox"
)

// CLIConfig is the configuration for rediswire-cli.
type CLIConfig struct {
	// Default connection settings
	DefaultServer string `koanf:"default_server" yaml:"default_server"`
	DefaultOutput string `koanf:"default_output" yaml:"default_output"` // table, json, yaml
	DefaultDB     int    `koanf:"default_db" yaml:"default_db"`

	// TimeoutSeconds bounds each reply wait.
	TimeoutSeconds int `koanf:"timeout_seconds" yaml:"timeout_seconds"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level" yaml:"log_level"`

	// Saved connections
	Connections map[string]ConnectionConfig `koanf:"connections" yaml:"connections"`

	// Current active connection
	CurrentConnection string `koanf:"current_connection" yaml:"current_connection,omitempty"`
}

// ConnectionConfig stores saved connection details.
type ConnectionConfig struct {
	Server string `koanf:"server" yaml:"server"`
	DB     int    `koanf:"db" yaml:"db"`

	// AuthSealed is the base64 secretbox blob of the AUTH secret;
	// empty means the connection needs no AUTH.
	AuthSealed string `koanf:"auth_sealed" yaml:"auth_sealed,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer:  "localhost:6379",
		DefaultOutput:  "table",
		TimeoutSeconds: 30,
		LogLevel:       "info",
		Connections:    make(map[string]ConnectionConfig),
	}
}

// SealAuth stores secret sealed under passphrase.
func (c *ConnectionConfig) SealAuth(secret, passphrase string) error {
	blob, err := secretbox.Seal([]byte(secret), passphrase)
	if err != nil {
		return err
	}
	c.AuthSealed = base64.StdEncoding.EncodeToString(blob)
	return nil
}

// OpenAuth recovers the AUTH secret. An empty AuthSealed opens to an
// empty secret without touching the passphrase.
func (c *ConnectionConfig) OpenAuth(passphrase string) (string, error) {
	if c.AuthSealed == "" {
		return "", nil
	}
	blob, err := base64.StdEncoding.DecodeString(c.AuthSealed)
	if err != nil {
		return "", secretbox.ErrBadBlob
	}
	secret, err := secretbox.Open(blob, passphrase)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
