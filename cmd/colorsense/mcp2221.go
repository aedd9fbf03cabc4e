package main

import (
	"context"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/colorsense/adapter"
	"github.com/mklimuk/colorsense/cmd/colorsense/console"
	"github.com/mklimuk/colorsense/snsctx"
)

var indexFlag = &cli.IntFlag{
	Name:  "index",
	Value: -1,
	Usage: "index of the MCP2221 when more than one is attached",
}

var mcp2221Cmd = cli.Command{
	Name:  "mcp2221",
	Usage: "inspect the USB-I2C bridge",
	Subcommands: cli.Commands{
		&mcp2221StatusCmd,
		&mcp2221ReleaseCmd,
	},
}

var mcp2221StatusCmd = cli.Command{
	Name:  "status",
	Usage: "print bridge status",
	Flags: []cli.Flag{indexFlag},
	Action: withBridge(func(ctx context.Context, a *adapter.MCP2221) (*adapter.MCP2221Status, error) {
		return a.Status(ctx)
	}),
}

var mcp2221ReleaseCmd = cli.Command{
	Name:  "release",
	Usage: "cancel the current transfer and release the bus",
	Flags: []cli.Flag{indexFlag},
	Action: withBridge(func(ctx context.Context, a *adapter.MCP2221) (*adapter.MCP2221Status, error) {
		return a.ReleaseBus(ctx)
	}),
}

func withBridge(fn func(ctx context.Context, a *adapter.MCP2221) (*adapter.MCP2221Status, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		a := adapter.NewMCP2221(adapter.WithDeviceIndex(c.Int("index")))
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		status, err := fn(ctx, a)
		if err != nil {
			return console.Exit(1, "adapter communication error: %s", console.Red(err))
		}
		enc := yaml.NewEncoder(console.Writer())
		defer func() { _ = enc.Close() }()
		err = enc.Encode(status)
		if err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	}
}
