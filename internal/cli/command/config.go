package command

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/rediswire-go/internal/cli/config"
)

// ConfigCommand returns the config command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage settings and saved connections",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: configShowAction,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: configPathAction,
			},
			{
				Name:      "save-connection",
				Usage:     "Save a named connection",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "passphrase",
						Usage: "Passphrase sealing the AUTH secret on disk",
						EnvVars: []string{
							"REDISWIRE_PASSPHRASE",
						},
					},
				},
				Action: configSaveConnectionAction,
			},
			{
				Name:   "connections",
				Usage:  "List saved connections",
				Action: configConnectionsAction,
			},
			{
				Name:      "use",
				Usage:     "Make a saved connection the default",
				ArgsUsage: "NAME",
				Action:    configUseAction,
			},
			{
				Name:      "remove-connection",
				Usage:     "Delete a saved connection",
				ArgsUsage: "NAME",
				Action:    configRemoveConnectionAction,
			},
		},
	}
}

func configPath(c *cli.Context) string {
	if p := c.String("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

func configShowAction(c *cli.Context) error {
	data, err := yaml.Marshal(GetConfig(c))
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(data)
	return err
}

func configPathAction(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, configPath(c))
	return nil
}

func configSaveConnectionAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("connection name required")
	}

	cfg := GetConfig(c)
	dial := clientConfig(c)

	conn := config.ConnectionConfig{Server: dial.Addr, DB: dial.DB}
	if dial.Auth != "" {
		passphrase := c.String("passphrase")
		if passphrase == "" {
			return fmt.Errorf("--passphrase required to store an AUTH secret")
		}
		if err := conn.SealAuth(dial.Auth, passphrase); err != nil {
			return fmt.Errorf("seal auth secret: %w", err)
		}
	}

	if cfg.Connections == nil {
		cfg.Connections = make(map[string]config.ConnectionConfig)
	}
	cfg.Connections[name] = conn

	if err := config.Save(cfg, configPath(c)); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Saved connection %q (%s)\n", name, conn.Server)
	return nil
}

func configConnectionsAction(c *cli.Context) error {
	cfg := GetConfig(c)
	if len(cfg.Connections) == 0 {
		fmt.Fprintln(c.App.Writer, "No saved connections")
		return nil
	}

	names := make([]string, 0, len(cfg.Connections))
	for name := range cfg.Connections {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(c.App.Writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSERVER\tDB\tAUTH")
	for _, name := range names {
		conn := cfg.Connections[name]
		marker := ""
		if name == cfg.CurrentConnection {
			marker = " (current)"
		}
		auth := "-"
		if conn.AuthSealed != "" {
			auth = "sealed"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%d\t%s\n", name, marker, conn.Server, conn.DB, auth)
	}
	return tw.Flush()
}

func configUseAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("connection name required")
	}

	cfg := GetConfig(c)
	if _, ok := cfg.Connections[name]; !ok {
		return fmt.Errorf("no saved connection %q", name)
	}
	cfg.CurrentConnection = name

	if err := config.Save(cfg, configPath(c)); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Now using %q\n", name)
	return nil
}

func configRemoveConnectionAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("connection name required")
	}

	cfg := GetConfig(c)
	if _, ok := cfg.Connections[name]; !ok {
		return fmt.Errorf("no saved connection %q", name)
	}
	delete(cfg.Connections, name)
	if cfg.CurrentConnection == name {
		cfg.CurrentConnection = ""
	}

	if err := config.Save(cfg, configPath(c)); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Removed %q\n", name)
	return nil
}
