package command

import (
	"context"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/rediswire-go/internal/bench"
	"github.com/yndnr/rediswire-go/internal/infra/shutdown"
	"github.com/yndnr/rediswire-go/internal/telemetry/logger"
	"github.com/yndnr/rediswire-go/internal/telemetry/metric"
)

// BenchCommand returns the load generator command.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Run a GET/SET load test against a server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "requests",
				Aliases: []string{"r"},
				Usage:   "Total number of requests",
				Value:   10000,
			},
			&cli.IntFlag{
				Name:    "clients",
				Usage:   "Number of concurrent connections",
				Value:   4,
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Request rate cap in req/s (0 = unlimited)",
			},
			&cli.IntFlag{
				Name:  "value-size",
				Usage: "SET payload size in bytes",
				Value: 64,
			},
			&cli.IntFlag{
				Name:  "key-space",
				Usage: "Number of distinct keys",
				Value: 1000,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Expose Prometheus metrics on this address while running",
			},
		},
		Action: benchAction,
	}
}

func benchAction(c *cli.Context) error {
	log := logger.Default()
	cfg := clientConfig(c)

	reg := metric.NewRegistry()
	if addr := c.String("metrics-addr"); addr != "" {
		srv := &http.Server{Addr: addr, Handler: reg.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// SIGINT stops the run and still prints the partial report.
	handler := shutdown.NewHandler()
	handler.OnSignal(cancel)
	go handler.Watch()
	defer handler.Release()

	log.Info("starting load test",
		"server", cfg.Addr,
		"requests", c.Int("requests"),
		"clients", c.Int("clients"),
	)

	report, err := bench.Run(ctx, bench.Config{
		Addr:      cfg.Addr,
		Auth:      cfg.Auth,
		DB:        cfg.DB,
		Clients:   c.Int("clients"),
		Requests:  c.Int("requests"),
		Rate:      c.Float64("rate"),
		ValueSize: c.Int("value-size"),
		KeySpace:  c.Int("key-space"),
		Timeout:   cfg.AwaitTimeout,
		Logger:    log,
		Metrics:   reg,
	})
	if err != nil {
		return err
	}
	return report.WriteText(c.App.Writer)
}
