package launcher

import (
	"fmt"
	"io/ioutil"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm/contracts/settingsabi"
	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm/genesis"
	"github.com/Ambros-Technology/bcm-public-smartcontract/flags"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

var speciesCommand = cli.Command{
	Name:     "species",
	Usage:    "Encode, decode and inspect species settings",
	Category: "GAME COMMANDS",
	Subcommands: []cli.Command{
		{
			Name:      "encode",
			Usage:     "Pack a YAML species settings file into its two settings words",
			ArgsUsage: "<settings.yaml>",
			Action:    encodeSpecies,
			Flags:     []cli.Flag{flags.SpeciesIDFlag},
			Description: `
Reads the settings in the genesis file format and prints words A and B.
With --id the setSpeciesSetting calldata is printed as well.`,
		},
		{
			Name:      "decode",
			Usage:     "Unpack two settings words into YAML",
			ArgsUsage: "<a> <b>",
			Action:    decodeSpecies,
		},
		{
			Name:      "show",
			Usage:     "Print the views of a configured species",
			ArgsUsage: "<id>",
			Action:    showSpecies,
		},
		{
			Name:   "list",
			Usage:  "List configured species ids",
			Action: listSpecies,
		},
	},
}

func encodeSpecies(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		return fmt.Errorf("expected a settings file")
	}
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	preset, err := cfg.Preset()
	if err != nil {
		return err
	}

	raw, err := ioutil.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	var settings genesis.SpeciesSettings
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	entry := genesis.Species{ID: uint32(ctx.Uint(flags.SpeciesIDFlag.Name)), Settings: &settings}
	species, err := entry.Config()
	if err != nil {
		return err
	}
	if err := species.ValidateRate(preset.Rules.Capture.MaxBoost); err != nil {
		return err
	}
	a, b, err := inter.EncodeSpecies(species)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "a: %s\nb: %s\n", a, b)
	if ctx.IsSet(flags.SpeciesIDFlag.Name) {
		input, err := settingsabi.Pack("setSpeciesSetting", entry.ID, a, b)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "calldata: %s\n", hexutil.Encode(input))
	}
	return nil
}

func decodeSpecies(ctx *cli.Context) error {
	if len(ctx.Args()) != 2 {
		return fmt.Errorf("expected words a and b")
	}
	a, err := parseWord(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := parseWord(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	species, err := inter.DecodeSpecies(a, b)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(genesis.SettingsOf(species))
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}

func showSpecies(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		return fmt.Errorf("expected a species id")
	}
	id, err := parseUint(ctx.Args().First())
	if err != nil {
		return err
	}
	node, err := openNode(ctx)
	if err != nil {
		return err
	}
	defer node.Close()

	e := node.Engine
	fixed, err := e.FixedSpeciesView(uint32(id))
	if err != nil {
		return err
	}
	catch, err := e.CatchSpeciesView(uint32(id))
	if err != nil {
		return err
	}
	battle, err := e.BattleSpeciesView(uint32(id))
	if err != nil {
		return err
	}
	stats, err := e.BattleStats(uint32(id))
	if err != nil {
		return err
	}
	minPay, err := e.MinCapturePayment(uint32(id))
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "species %d\n", id)
	fmt.Fprintf(w, "  hash range:       %d..%d\n", fixed.HashStart, fixed.HashEnd)
	fmt.Fprintf(w, "  types:            %d/%d\n", fixed.PrimaryType, fixed.SecondaryType)
	fmt.Fprintf(w, "  min power:        %s\n", catch.MinPower)
	fmt.Fprintf(w, "  min payment:      %s\n", minPay)
	fmt.Fprintf(w, "  cost per point:   %s\n", catch.CostPerPoint)
	fmt.Fprintf(w, "  limit per block:  %d\n", catch.LimitPerBlock)
	fmt.Fprintf(w, "  base rate:        %d\n", catch.BaseRate)
	fmt.Fprintf(w, "  assist:           type %d exp %d..%d\n", catch.AssistType, catch.AssistMinExp, catch.AssistMaxExp)
	fmt.Fprintf(w, "  staking:          %s\n", battle.Staking)
	fmt.Fprintf(w, "  reward:           %s\n", battle.Reward)
	fmt.Fprintf(w, "  winners per duel: %d\n", battle.WinnersPerDuel)
	fmt.Fprintf(w, "  insurance:        %s\n", battle.Insurance)
	fmt.Fprintf(w, "  stats:            %v\n", stats)
	return nil
}

func listSpecies(ctx *cli.Context) error {
	node, err := openNode(ctx)
	if err != nil {
		return err
	}
	defer node.Close()

	for _, id := range node.Engine.SpeciesIDs() {
		fmt.Fprintln(ctx.App.Writer, id)
	}
	return nil
}
