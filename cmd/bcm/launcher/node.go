package launcher

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"gopkg.in/urfave/cli.v1"

	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm/genesis"
	"github.com/Ambros-Technology/bcm-public-smartcontract/evmcore"
	"github.com/Ambros-Technology/bcm-public-smartcontract/flags"
	"github.com/Ambros-Technology/bcm-public-smartcontract/integration"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

var errNotInitialized = errors.New("database is not initialized, run init first")

var (
	initCommand = cli.Command{
		Action:    initGenesis,
		Name:      "init",
		Usage:     "Apply the genesis to an empty datadir",
		ArgsUsage: "",
		Description: `
The init command writes the genesis state into the datadir. The genesis comes
from --genesis, or is the fake genesis when --fakenet is given.`,
	}
	dumpConfigCommand = cli.Command{
		Action:      dumpConfigAction,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Description: `The dumpconfig command shows configuration values in the config file format.`,
	}
)

func loadGenesis(cfg Config, preset integration.Preset) (*genesis.Genesis, error) {
	var g *genesis.Genesis
	switch {
	case cfg.Game.Genesis != "":
		var err error
		if g, err = genesis.LoadFile(cfg.Game.Genesis); err != nil {
			return nil, err
		}
	case preset.Name == "fake":
		size := cfg.Game.FakeNet
		if size <= 0 {
			size = DefaultFakeNetSize
		}
		g = genesis.FakeGenesis(size)
	default:
		return nil, fmt.Errorf("no genesis file given for network %s", preset.Name)
	}
	if g.Network != "" && g.Network != preset.Name {
		return nil, fmt.Errorf("genesis is for network %s, configured network is %s", g.Network, preset.Name)
	}
	return g, nil
}

func initGenesis(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	preset, err := cfg.Preset()
	if err != nil {
		return err
	}
	g, err := loadGenesis(cfg, preset)
	if err != nil {
		return err
	}
	if !preset.InMemory {
		if err := ensureDir(cfg.Node.DataDir); err != nil {
			return err
		}
	}
	db, err := integration.OpenDB(preset, cfg.Node.DataDir)
	if err != nil {
		return err
	}
	node, err := integration.InitNode(preset, db, g)
	if err != nil {
		db.Close()
		return err
	}
	defer node.Close()

	fmt.Fprintf(ctx.App.Writer, "Genesis applied: network=%s species=%d root=%s\n",
		preset.Name, len(g.Species), node.Chain.Current().Root.Hex())
	return nil
}

func dumpConfigAction(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	out, err := dumpConfig(cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}

// openNode opens the configured game state. In-memory states start from
// the genesis on every run.
func openNode(ctx *cli.Context) (*integration.Node, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return nil, err
	}
	preset, err := cfg.Preset()
	if err != nil {
		return nil, err
	}
	db, err := integration.OpenDB(preset, cfg.Node.DataDir)
	if err != nil {
		return nil, err
	}
	root, err := evmcore.HeadRoot(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	var node *integration.Node
	if root == (common.Hash{}) {
		if !preset.InMemory {
			db.Close()
			return nil, errNotInitialized
		}
		g, err := loadGenesis(cfg, preset)
		if err != nil {
			db.Close()
			return nil, err
		}
		node, err = integration.InitNode(preset, db, g)
		if err != nil {
			db.Close()
			return nil, err
		}
		node.Chain.SetTime(inter.FromUnix(time.Now().Unix()))
		return node, nil
	}
	node, err = integration.OpenNode(preset, db, inter.FromUnix(time.Now().Unix()))
	if err != nil {
		db.Close()
		return nil, err
	}
	return node, nil
}

// callerOf returns the account given by --from or --fakefrom.
func callerOf(ctx *cli.Context) (common.Address, error) {
	if n := ctx.Int(flags.FakeFromFlag.Name); n >= 0 {
		return evmcore.FakeAccount(n), nil
	}
	from := ctx.String(flags.FromFlag.Name)
	if !common.IsHexAddress(from) {
		return common.Address{}, fmt.Errorf("invalid --%s account %q", flags.FromFlag.Name, from)
	}
	return common.HexToAddress(from), nil
}

func parseWord(s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("invalid 256-bit value %q", s)
	}
	return v, nil
}

func parseUint(s string) (uint64, error) {
	v, ok := math.ParseUint64(s)
	if !ok {
		return 0, fmt.Errorf("invalid unsigned integer %q", s)
	}
	return v, nil
}
