package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags select the deployment and its genesis.
func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Network preset (main|test|fake)",
			Value: "main",
		},
		cli.IntFlag{
			Name:  "fakenet",
			Usage: "Use the fake network with this many funded fake accounts",
		},
		cli.StringFlag{
			Name:  "genesis",
			Usage: "YAML genesis file applied by init",
		},
	}
}

// Per-command flags.
var (
	FromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "Account the operation is performed as",
	}
	FakeFromFlag = cli.IntFlag{
		Name:  "fakefrom",
		Usage: "Perform the operation as the n-th fake account",
		Value: -1,
	}
	SpeciesIDFlag = cli.UintFlag{
		Name:  "id",
		Usage: "Species id to build setSpeciesSetting calldata for",
	}
)
