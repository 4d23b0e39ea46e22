package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NodeFlags holds knobs specific to the local state database.
func NodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "identity",
			Usage: "Custom name of this instance, shown in logs",
		},
		cli.IntFlag{
			Name:  "cache",
			Usage: "Megabytes of memory allocated to the database cache",
			Value: 256,
		},
		cli.IntFlag{
			Name:  "handles",
			Usage: "Number of file handles allotted to the database",
			Value: 256,
		},
		cli.BoolFlag{
			Name:  "inmemory",
			Usage: "Keep the game state in memory only (nothing is persisted)",
		},
	}
}
