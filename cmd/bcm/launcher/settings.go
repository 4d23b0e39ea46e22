package launcher

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm/contracts/settingsabi"
	"github.com/Ambros-Technology/bcm-public-smartcontract/flags"
	"github.com/Ambros-Technology/bcm-public-smartcontract/integration"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

var callerFlags = []cli.Flag{flags.FromFlag, flags.FakeFromFlag}

var (
	blockHashCommand = cli.Command{
		Name:     "blockhash",
		Usage:    "Publish and read block-hash records",
		Category: "SETTINGS COMMANDS",
		Subcommands: []cli.Command{
			{
				Name:      "set",
				Usage:     "Publish the hash record of a block",
				ArgsUsage: "<block> <hash>",
				Action:    setBlockHash,
				Flags:     callerFlags,
			},
			{
				Name:      "get",
				Usage:     "Print the hash record of a block",
				ArgsUsage: "<block>",
				Action:    getBlockHash,
			},
		},
	}
	priceCommand = cli.Command{
		Name:     "price",
		Usage:    "Manage the chain currency price, exchange rate and reward ratio cap",
		Category: "SETTINGS COMMANDS",
		Subcommands: []cli.Command{
			{
				Name:      "set",
				Usage:     "Set the chain currency price in USD cents",
				ArgsUsage: "<cents>",
				Action:    setPrice,
				Flags:     callerFlags,
			},
			{
				Name:      "rate",
				Usage:     "Set the token exchange rate in basis points",
				ArgsUsage: "<bps>",
				Action:    setRate,
				Flags:     callerFlags,
			},
			{
				Name:      "ratio",
				Usage:     "Set the duel reward ratio cap",
				ArgsUsage: "<ratio>",
				Action:    setRatio,
				Flags:     callerFlags,
			},
			{
				Name:   "show",
				Usage:  "Print the economy settings",
				Action: showPrice,
			},
		},
	}
	roleCommand = cli.Command{
		Name:     "role",
		Usage:    "Grant and revoke roles",
		Category: "SETTINGS COMMANDS",
		Description: `
Roles: admin, configurator, blockhash-oracle, duel-signer. Only admins may
change roles.`,
		Subcommands: []cli.Command{
			{
				Name:      "grant",
				Usage:     "Grant a role to an account",
				ArgsUsage: "<role> <account>",
				Action:    func(ctx *cli.Context) error { return changeRole(ctx, true) },
				Flags:     callerFlags,
			},
			{
				Name:      "revoke",
				Usage:     "Revoke a role from an account",
				ArgsUsage: "<role> <account>",
				Action:    func(ctx *cli.Context) error { return changeRole(ctx, false) },
				Flags:     callerFlags,
			},
		},
	}
	callCommand = cli.Command{
		Name:      "call",
		Usage:     "Execute settings contract calldata",
		ArgsUsage: "<calldata>",
		Category:  "SETTINGS COMMANDS",
		Action:    callContract,
		Flags:     callerFlags,
		Description: `
Executes hex calldata against the settings contract and prints the
ABI-encoded result. State changes are committed.`,
	}
)

// mutate runs op on the opened node as the configured caller and commits
// the state if it succeeds.
func mutate(ctx *cli.Context, op func(node *integration.Node, caller common.Address) error) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	node, err := openNode(ctx)
	if err != nil {
		return err
	}
	defer node.Close()

	if err := op(node, caller); err != nil {
		return err
	}
	root, err := node.Commit()
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"command": ctx.Command.FullName(),
		"caller":  caller.Hex(),
		"root":    root.Hex(),
	}).Info("Settings committed")
	return nil
}

func oneArg(ctx *cli.Context, what string) (string, error) {
	if len(ctx.Args()) != 1 {
		return "", fmt.Errorf("expected %s", what)
	}
	return ctx.Args().First(), nil
}

func setBlockHash(ctx *cli.Context) error {
	if len(ctx.Args()) != 2 {
		return fmt.Errorf("expected a block number and a hash")
	}
	block, err := parseUint(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	hash, err := parseWord(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	return mutate(ctx, func(node *integration.Node, caller common.Address) error {
		return node.Engine.SetBlockHash(caller, idx.Block(block), hash)
	})
}

func getBlockHash(ctx *cli.Context) error {
	arg, err := oneArg(ctx, "a block number")
	if err != nil {
		return err
	}
	block, err := parseUint(arg)
	if err != nil {
		return err
	}
	node, err := openNode(ctx)
	if err != nil {
		return err
	}
	defer node.Close()

	hash, ok := node.Engine.BlockHash(idx.Block(block))
	if !ok {
		return fmt.Errorf("no hash record for block %d", block)
	}
	fmt.Fprintln(ctx.App.Writer, hash)
	return nil
}

func setPrice(ctx *cli.Context) error {
	arg, err := oneArg(ctx, "a price in cents")
	if err != nil {
		return err
	}
	cents, err := parseWord(arg)
	if err != nil {
		return err
	}
	return mutate(ctx, func(node *integration.Node, caller common.Address) error {
		return node.Engine.SetChainCurrencyPrice(caller, cents)
	})
}

func setRate(ctx *cli.Context) error {
	arg, err := oneArg(ctx, "a rate in basis points")
	if err != nil {
		return err
	}
	bps, err := parseWord(arg)
	if err != nil {
		return err
	}
	return mutate(ctx, func(node *integration.Node, caller common.Address) error {
		return node.Engine.SetExchangeRate(caller, bps)
	})
}

func setRatio(ctx *cli.Context) error {
	arg, err := oneArg(ctx, "a ratio")
	if err != nil {
		return err
	}
	ratio, err := parseUint(arg)
	if err != nil {
		return err
	}
	if ratio > 0xffff {
		return fmt.Errorf("ratio %d does not fit 16 bits", ratio)
	}
	return mutate(ctx, func(node *integration.Node, caller common.Address) error {
		return node.Engine.SetMaxRewardRatio(caller, uint16(ratio))
	})
}

func showPrice(ctx *cli.Context) error {
	node, err := openNode(ctx)
	if err != nil {
		return err
	}
	defer node.Close()

	w := ctx.App.Writer
	fmt.Fprintf(w, "chain currency price: %s\n", node.Store.ChainCurrencyPrice())
	fmt.Fprintf(w, "exchange rate:        %s\n", node.Store.ExchangeRate())
	fmt.Fprintf(w, "max reward ratio:     %d\n", node.Engine.MaxRewardRatio())
	fmt.Fprintf(w, "treasury tokens:      %s\n", node.Token.BalanceOf(node.Preset.Rules.Economy.Treasury))
	return nil
}

func changeRole(ctx *cli.Context, grant bool) error {
	if len(ctx.Args()) != 2 {
		return fmt.Errorf("expected a role and an account")
	}
	action, ok := inter.ParseAction(ctx.Args().Get(0))
	if !ok {
		return fmt.Errorf("unknown role %q", ctx.Args().Get(0))
	}
	if !common.IsHexAddress(ctx.Args().Get(1)) {
		return fmt.Errorf("invalid account %q", ctx.Args().Get(1))
	}
	acc := common.HexToAddress(ctx.Args().Get(1))
	return mutate(ctx, func(node *integration.Node, caller common.Address) error {
		if grant {
			return node.Engine.GrantRole(caller, action, acc)
		}
		return node.Engine.RevokeRole(caller, action, acc)
	})
}

func callContract(ctx *cli.Context) error {
	arg, err := oneArg(ctx, "hex calldata")
	if err != nil {
		return err
	}
	input, err := hexutil.Decode(arg)
	if err != nil {
		return fmt.Errorf("calldata: %w", err)
	}
	var out []byte
	err = mutate(ctx, func(node *integration.Node, caller common.Address) error {
		out, err = settingsabi.New(node.Engine).Call(caller, input)
		return err
	})
	if err != nil {
		if r, ok := err.(*settingsabi.Revert); ok {
			return fmt.Errorf("%w (revert data %s)", err, hexutil.Encode(r.RevertData()))
		}
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(out))
	return nil
}
