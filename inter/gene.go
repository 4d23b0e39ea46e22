package inter

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/Ambros-Technology/bcm-public-smartcontract/utils/bits"
)

// ErrInvalidGene is returned for gene words that cannot be decoded.
var ErrInvalidGene = errors.New("invalid gene")

// Gene kinds.
const (
	KindCaptured uint8 = 0
)

// Gene is the decoded attribute set of a creature.
type Gene struct {
	Kind          uint8
	OriginBlock   uint64
	Species       uint32
	PrimaryType   uint8
	SecondaryType uint8
	Stats         [StatCount]uint8
	Exp           uint32
}

var geneLayout = bits.MustLayout(
	bits.Slot{Name: "kind", Width: 8},
	bits.Slot{Name: "originBlock", Width: 64},
	bits.Slot{Name: "species", Width: 32},
	bits.Slot{Name: "type1", Width: 8},
	bits.Slot{Name: "type2", Width: 8},
	bits.Slot{Name: "stat0", Width: 8},
	bits.Slot{Name: "stat1", Width: 8},
	bits.Slot{Name: "stat2", Width: 8},
	bits.Slot{Name: "stat3", Width: 8},
	bits.Slot{Name: "stat4", Width: 8},
	bits.Slot{Name: "stat5", Width: 8},
	bits.Slot{Name: "exp", Width: 32},
	bits.Slot{Name: "reserved", Width: 56},
)

// EncodeGene packs g into a 256-bit word. Every field has a fixed width, so
// encoding cannot fail.
func EncodeGene(g Gene) *big.Int {
	v := []uint64{
		uint64(g.Kind),
		g.OriginBlock,
		uint64(g.Species),
		uint64(g.PrimaryType),
		uint64(g.SecondaryType),
	}
	for _, s := range g.Stats {
		v = append(v, uint64(s))
	}
	v = append(v, uint64(g.Exp), 0)
	w, err := geneLayout.Pack(v)
	if err != nil {
		panic(err)
	}
	return w
}

// DecodeGene unpacks a gene word.
func DecodeGene(word *big.Int) (Gene, error) {
	v, err := geneLayout.Unpack(word)
	if err != nil {
		return Gene{}, fmt.Errorf("%w: %v", ErrInvalidGene, err)
	}
	if v[len(v)-1] != 0 {
		return Gene{}, fmt.Errorf("%w: reserved bits set", ErrInvalidGene)
	}
	g := Gene{
		Kind:          uint8(v[0]),
		OriginBlock:   v[1],
		Species:       uint32(v[2]),
		PrimaryType:   uint8(v[3]),
		SecondaryType: uint8(v[4]),
		Exp:           uint32(v[11]),
	}
	for i := range g.Stats {
		g.Stats[i] = uint8(v[5+i])
	}
	return g, nil
}

// AddExp returns g with its experience increased by delta, saturating at the
// field maximum.
func (g Gene) AddExp(delta uint32) Gene {
	if uint64(g.Exp)+uint64(delta) > math.MaxUint32 {
		g.Exp = math.MaxUint32
	} else {
		g.Exp += delta
	}
	return g
}

// DeriveBattleStats maps a seed onto a starting stat profile near the species
// ladder. Stat i gains the i-th decimal digit of the seed (0..9), then the
// profile is clamped to stay non-increasing and within a byte.
func DeriveBattleStats(ladder [StatCount]uint8, seed *big.Int) [StatCount]uint8 {
	var out [StatCount]uint8
	rest := new(big.Int)
	if seed != nil {
		rest.Abs(seed)
	}
	ten := big.NewInt(10)
	digit := new(big.Int)
	for i := 0; i < StatCount; i++ {
		rest.DivMod(rest, ten, digit)
		v := uint(ladder[i]) + uint(digit.Uint64())
		if v > math.MaxUint8 {
			v = math.MaxUint8
		}
		if i > 0 && v > uint(out[i-1]) {
			v = uint(out[i-1])
		}
		out[i] = uint8(v)
	}
	return out
}
