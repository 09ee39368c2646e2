package command

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/rediswire-go/internal/cli/config"
	"github.com/yndnr/rediswire-go/internal/cli/connection"
	"github.com/yndnr/rediswire-go/internal/client"
	"github.com/yndnr/rediswire-go/internal/infra/buildinfo"
	"github.com/yndnr/rediswire-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "rediswire-cli",
		Usage:   "Command-line client for RESP servers",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ExecCommand(),
			REPLCommand(),
			BenchCommand(),
			ConfigCommand(),
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			if c.Bool("verbose") {
				level = "debug"
			}
			logger.SetDefault(logger.New(logger.Config{Level: level}))

			c.App.Metadata["config"] = cfg
			c.App.Metadata["connMgr"] = connection.NewManager()
			return nil
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Server address (e.g., localhost:6379)",
			EnvVars: []string{"REDISWIRE_SERVER"},
		},
		&cli.StringFlag{
			Name:    "auth",
			Aliases: []string{"a"},
			Usage:   "AUTH secret",
			EnvVars: []string{"REDISWIRE_AUTH"},
		},
		&cli.StringFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "AUTH username (ACL-style AUTH)",
			EnvVars: []string{"REDISWIRE_USER"},
		},
		&cli.IntFlag{
			Name:    "db",
			Aliases: []string{"n"},
			Usage:   "Database index to SELECT after connecting",
			EnvVars: []string{"REDISWIRE_DB"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Per-reply wait timeout",
			EnvVars: []string{"REDISWIRE_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path",
			EnvVars: []string{"REDISWIRE_CONFIG"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// GetConfig retrieves the loaded configuration from context.
func GetConfig(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata["config"].(*config.CLIConfig); ok {
		return cfg
	}
	return config.Default()
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if mgr, ok := c.App.Metadata["connMgr"].(*connection.Manager); ok {
		return mgr
	}
	return nil
}

// outputFormat resolves the output format, flag over config.
func outputFormat(c *cli.Context) string {
	if f := c.String("output"); f != "" {
		return f
	}
	return GetConfig(c).DefaultOutput
}

// clientConfig builds a dial configuration from flags, the saved
// current connection, and config defaults, in that order.
func clientConfig(c *cli.Context) client.Config {
	cfg := GetConfig(c)

	out := client.Config{
		Addr:         cfg.DefaultServer,
		DB:           cfg.DefaultDB,
		AwaitTimeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Logger:       logger.Default(),
	}

	if name := cfg.CurrentConnection; name != "" {
		if saved, ok := cfg.Connections[name]; ok {
			out.Addr = saved.Server
			out.DB = saved.DB
			if saved.AuthSealed != "" && c.String("auth") == "" {
				secret, err := saved.OpenAuth(os.Getenv("REDISWIRE_PASSPHRASE"))
				if err != nil {
					logger.Default().Warn("could not open sealed auth secret",
						"connection", name,
						"error", err,
					)
				} else {
					out.Auth = secret
				}
			}
		}
	}

	if s := c.String("server"); s != "" {
		out.Addr = s
	}
	if c.IsSet("db") {
		out.DB = c.Int("db")
	}
	if c.IsSet("timeout") {
		out.AwaitTimeout = c.Duration("timeout")
	}
	if a := c.String("auth"); a != "" {
		out.Auth = a
	}
	out.User = c.String("user")
	return out
}

// EnsureConnected dials per the resolved configuration and returns the
// active connection.
func EnsureConnected(c *cli.Context) (*connection.Connection, error) {
	mgr := GetConnectionManager(c)
	if mgr == nil {
		return nil, fmt.Errorf("connection manager not initialized")
	}
	if conn := mgr.Current(); conn != nil {
		return conn, nil
	}

	cfg := clientConfig(c)
	conn, err := mgr.Connect(GetConfig(c).CurrentConnection, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Addr, err)
	}
	return conn, nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
