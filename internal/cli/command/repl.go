package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/rediswire-go/internal/cli/config"
	"github.com/yndnr/rediswire-go/internal/cli/output"
	"github.com/yndnr/rediswire-go/internal/cli/repl"
	"github.com/yndnr/rediswire-go/internal/telemetry/logger"
)

// REPLCommand returns the interactive session command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"i"},
		Usage:   "Start an interactive session",
		Action:  replAction,
	}
}

func replAction(c *cli.Context) error {
	log := logger.Default()

	if _, err := EnsureConnected(c); err != nil {
		return err
	}
	mgr := GetConnectionManager(c)
	defer mgr.Disconnect()

	// Pick up log level edits while the session runs.
	if watcher, err := config.NewWatcher(config.WithWatcherLogger(log)); err == nil {
		path := c.String("config")
		if path == "" {
			path = config.DefaultConfigPath()
		}
		watcher.OnChange(func(string) {
			cfg, err := config.Load(path)
			if err != nil {
				log.Warn("config reload failed", "error", err)
				return
			}
			logger.SetLevel(cfg.LogLevel)
		})
		if err := watcher.Watch(path); err == nil {
			watcher.StartAsync()
			defer watcher.Stop()
		}
	}

	r, err := repl.New(mgr,
		repl.WithFormat(output.Format(outputFormat(c))),
		repl.WithLogger(log),
	)
	if err != nil {
		return err
	}
	return r.Run()
}
