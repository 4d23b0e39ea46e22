package inter

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Ambros-Technology/bcm-public-smartcontract/utils/bits"
)

// StatCount is the number of battle stats carried by species ladders and genes.
const StatCount = 6

// ErrInvalidConfig is returned for species words that do not describe a
// consistent configuration.
var ErrInvalidConfig = errors.New("invalid species config")

// AssistRequirement constrains which creatures may assist a capture.
type AssistRequirement struct {
	Type   uint8
	MinExp uint32
	MaxExp uint32
}

// SpeciesConfig is the decoded form of a species' two packed settings words.
// Token amounts are milli-tokens, USD amounts are cents.
type SpeciesConfig struct {
	// word A
	HashStart      uint64
	HashEnd        uint64
	PrimaryType    uint8
	SecondaryType  uint8
	StakingMilli   uint32
	RewardMilli    uint32
	WinnersPerDuel uint16
	InsuranceCents uint32

	// word B
	MinPowerCents     uint32
	LimitPerBlock     uint16
	BaseRate          uint8
	CostPerPointCents uint32
	Assist            AssistRequirement
	Ladder            [StatCount]uint8
}

var (
	speciesLayoutA = bits.MustLayout(
		bits.Slot{Name: "hashStart", Width: 64},
		bits.Slot{Name: "hashEnd", Width: 64},
		bits.Slot{Name: "type1", Width: 8},
		bits.Slot{Name: "type2", Width: 8},
		bits.Slot{Name: "staking", Width: 32},
		bits.Slot{Name: "reward", Width: 32},
		bits.Slot{Name: "winners", Width: 16},
		bits.Slot{Name: "insurance", Width: 32},
	)
	speciesLayoutB = bits.MustLayout(
		bits.Slot{Name: "minPower", Width: 32},
		bits.Slot{Name: "limitPerBlock", Width: 16},
		bits.Slot{Name: "baseRate", Width: 8},
		bits.Slot{Name: "costPerPoint", Width: 32},
		bits.Slot{Name: "assistType", Width: 8},
		bits.Slot{Name: "assistMinExp", Width: 32},
		bits.Slot{Name: "assistMaxExp", Width: 32},
		bits.Slot{Name: "stat0", Width: 8},
		bits.Slot{Name: "stat1", Width: 8},
		bits.Slot{Name: "stat2", Width: 8},
		bits.Slot{Name: "stat3", Width: 8},
		bits.Slot{Name: "stat4", Width: 8},
		bits.Slot{Name: "stat5", Width: 8},
		bits.Slot{Name: "reserved", Width: 48},
	)
)

// EncodeSpecies packs cfg into its two settings words.
func EncodeSpecies(cfg SpeciesConfig) (a, b *big.Int, err error) {
	if err := cfg.validateShape(); err != nil {
		return nil, nil, err
	}
	a, err = speciesLayoutA.Pack([]uint64{
		cfg.HashStart,
		cfg.HashEnd,
		uint64(cfg.PrimaryType),
		uint64(cfg.SecondaryType),
		uint64(cfg.StakingMilli),
		uint64(cfg.RewardMilli),
		uint64(cfg.WinnersPerDuel),
		uint64(cfg.InsuranceCents),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	vb := []uint64{
		uint64(cfg.MinPowerCents),
		uint64(cfg.LimitPerBlock),
		uint64(cfg.BaseRate),
		uint64(cfg.CostPerPointCents),
		uint64(cfg.Assist.Type),
		uint64(cfg.Assist.MinExp),
		uint64(cfg.Assist.MaxExp),
	}
	for _, s := range cfg.Ladder {
		vb = append(vb, uint64(s))
	}
	vb = append(vb, 0)
	b, err = speciesLayoutB.Pack(vb)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return a, b, nil
}

// DecodeSpecies unpacks the two settings words of a species.
//
// It fails with ErrInvalidConfig when a word is wider than 256 bits, the
// reserved bits are set, or the decoded fields are inconsistent.
func DecodeSpecies(a, b *big.Int) (SpeciesConfig, error) {
	va, err := speciesLayoutA.Unpack(a)
	if err != nil {
		return SpeciesConfig{}, fmt.Errorf("%w: word A: %v", ErrInvalidConfig, err)
	}
	vb, err := speciesLayoutB.Unpack(b)
	if err != nil {
		return SpeciesConfig{}, fmt.Errorf("%w: word B: %v", ErrInvalidConfig, err)
	}
	if vb[len(vb)-1] != 0 {
		return SpeciesConfig{}, fmt.Errorf("%w: reserved bits set", ErrInvalidConfig)
	}

	cfg := SpeciesConfig{
		HashStart:         va[0],
		HashEnd:           va[1],
		PrimaryType:       uint8(va[2]),
		SecondaryType:     uint8(va[3]),
		StakingMilli:      uint32(va[4]),
		RewardMilli:       uint32(va[5]),
		WinnersPerDuel:    uint16(va[6]),
		InsuranceCents:    uint32(va[7]),
		MinPowerCents:     uint32(vb[0]),
		LimitPerBlock:     uint16(vb[1]),
		BaseRate:          uint8(vb[2]),
		CostPerPointCents: uint32(vb[3]),
		Assist: AssistRequirement{
			Type:   uint8(vb[4]),
			MinExp: uint32(vb[5]),
			MaxExp: uint32(vb[6]),
		},
	}
	for i := range cfg.Ladder {
		cfg.Ladder[i] = uint8(vb[7+i])
	}
	if err := cfg.validateShape(); err != nil {
		return SpeciesConfig{}, err
	}
	return cfg, nil
}

// validateShape checks the invariants that hold for every stored species.
func (cfg SpeciesConfig) validateShape() error {
	if cfg.HashStart > cfg.HashEnd {
		return fmt.Errorf("%w: hash range start %d > end %d", ErrInvalidConfig, cfg.HashStart, cfg.HashEnd)
	}
	if cfg.Assist.MinExp > cfg.Assist.MaxExp {
		return fmt.Errorf("%w: assistant exp range %d > %d", ErrInvalidConfig, cfg.Assist.MinExp, cfg.Assist.MaxExp)
	}
	for i := 1; i < StatCount; i++ {
		if cfg.Ladder[i] > cfg.Ladder[i-1] {
			return fmt.Errorf("%w: stat ladder increases at %d", ErrInvalidConfig, i)
		}
	}
	if cfg.BaseRate > 100 {
		return fmt.Errorf("%w: base rate %d > 100", ErrInvalidConfig, cfg.BaseRate)
	}
	return nil
}

// ValidateRate checks that buying the full boost cannot push the success
// rate above 100 percent.
func (cfg SpeciesConfig) ValidateRate(maxBoost uint8) error {
	if uint(cfg.BaseRate)+uint(maxBoost) > 100 {
		return fmt.Errorf("%w: base rate %d + boost %d > 100", ErrInvalidConfig, cfg.BaseRate, maxBoost)
	}
	return nil
}

// Contains reports whether a block-hash record falls in the species range.
func (cfg SpeciesConfig) Contains(hash *big.Int) bool {
	if hash == nil || hash.Sign() < 0 || !hash.IsUint64() {
		return false
	}
	h := hash.Uint64()
	return cfg.HashStart <= h && h <= cfg.HashEnd
}

// AssistMatches reports whether a creature with the given primary type and
// experience qualifies as an assistant for this species.
func (cfg SpeciesConfig) AssistMatches(primaryType uint8, exp uint32) bool {
	return primaryType == cfg.Assist.Type && cfg.Assist.MinExp <= exp && exp <= cfg.Assist.MaxExp
}
