// Package config defines the CLI configuration for rediswire-cli.
//
// Configuration loads with Koanf from multiple sources, priority
// Flag > Env > File > Default. Saved connections keep their AUTH
// secret sealed with pkg/secretbox, never as plaintext on disk.
package config
