package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/Ambros-Technology/bcm-public-smartcontract/flags"
)

var app = NewApp()

// NewApp returns the operator CLI.
func NewApp() *cli.App {
	app := flags.NewApp("Blockchain monsters game rules engine")
	app.Flags = flags.Merge(
		flags.CommonFlags(),
		flags.NodeFlags(),
		flags.NetworkFlags(),
	)
	app.Before = func(ctx *cli.Context) error {
		cfg, err := MakeAllConfigs(ctx)
		if err != nil {
			return err
		}
		return setupLogging(cfg.Logging, ctx.App.ErrWriter)
	}
	app.Commands = []cli.Command{
		initCommand,
		dumpConfigCommand,
		speciesCommand,
		geneCommand,
		blockHashCommand,
		priceCommand,
		roleCommand,
		callCommand,
	}
	return app
}

// Launch runs the CLI with the given process arguments.
func Launch(args []string) error {
	return app.Run(args)
}
