package launcher

import (
	"fmt"
	"io"
	"math/big"

	"gopkg.in/urfave/cli.v1"

	"github.com/Ambros-Technology/bcm-public-smartcontract/engine"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

var geneCommand = cli.Command{
	Name:     "gene",
	Usage:    "Inspect creature genes",
	Category: "GAME COMMANDS",
	Subcommands: []cli.Command{
		{
			Name:      "decode",
			Usage:     "Unpack a gene word",
			ArgsUsage: "<word>",
			Action:    decodeGene,
		},
		{
			Name:      "show",
			Usage:     "Print the gene and owner of a creature",
			ArgsUsage: "<id>",
			Action:    showGene,
		},
	},
}

func printGene(w io.Writer, word *big.Int) error {
	g, err := inter.DecodeGene(word)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "kind:         %d\n", g.Kind)
	fmt.Fprintf(w, "origin block: %d\n", g.OriginBlock)
	fmt.Fprintf(w, "species:      %d\n", g.Species)
	fmt.Fprintf(w, "types:        %d/%d\n", g.PrimaryType, g.SecondaryType)
	fmt.Fprintf(w, "stats:        %v\n", g.Stats)
	fmt.Fprintf(w, "exp:          %d\n", g.Exp)
	return nil
}

func decodeGene(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		return fmt.Errorf("expected a gene word")
	}
	word, err := parseWord(ctx.Args().First())
	if err != nil {
		return err
	}
	return printGene(ctx.App.Writer, word)
}

func showGene(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		return fmt.Errorf("expected a creature id")
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

	word, ok := node.Engine.Gene(id)
	if !ok {
		return fmt.Errorf("%w: %d", engine.ErrInvalidMonsterID, id)
	}
	owner, err := node.Registry.OwnerOf(id)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "id:           %d\n", id)
	fmt.Fprintf(w, "owner:        %s\n", owner.Hex())
	fmt.Fprintf(w, "last duel:    %d\n", node.Engine.LastDuelID(id))
	fmt.Fprintf(w, "word:         %s\n", word)
	return printGene(w, word)
}
