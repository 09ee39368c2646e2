package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/rediswire-go/internal/cli/output"
	"github.com/yndnr/rediswire-go/internal/resp"
)

// ExecCommand returns the exec command.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"x"},
		Usage:     "Execute a single command and print the reply",
		ArgsUsage: `"COMMAND" | WORD [WORD...]`,
		Description: `A single quoted argument is parsed like an interactive line, so
embedded quotes group words:

    rediswire-cli exec 'SET greeting "hello world"'

Multiple arguments are sent as-is, one word per argument:

    rediswire-cli exec SET greeting "hello world"`,
		Action: execAction,
	}
}

func execAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no command given")
	}

	conn, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	defer GetConnectionManager(c).Disconnect()

	formatter, err := output.NewFormatter(output.Format(outputFormat(c)))
	if err != nil {
		return err
	}

	var reply *resp.Reply
	if c.NArg() == 1 {
		reply, err = conn.Client.Do(c.Args().First())
	} else {
		reply, err = conn.Client.DoArgs(c.Args().Slice())
	}
	if err != nil && !errors.Is(err, resp.ErrServer) {
		return err
	}

	if ferr := formatter.Format(c.App.Writer, reply); ferr != nil {
		return ferr
	}
	if err != nil {
		// Server error replies render like any other reply, but the
		// process still exits nonzero.
		return cli.Exit("", 1)
	}
	return nil
}
