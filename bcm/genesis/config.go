// Package genesis defines the genesis document of a game deployment and the
// logic applying it to a fresh game state. The genesis establishes everything
// the game needs before the first capture: the species table, the first
// block-hash records, the economy settings, role grants and starting balances.
//
// Key concepts:
//   - Genesis: the complete document, normally authored as YAML by an operator
//   - Species: a species either as its two packed settings words or spelled
//     out field by field
//   - Account: native coin and game token balances granted at genesis
//   - Oracles: duel oracle public keys, trusted as duel signers
//
// Usage:
//
//	g, err := genesis.LoadFile("genesis.yaml")
//	rules, err := integration.GetPresetByName(g.Network)
//	header, err := g.Apply(statedb, db, rules)
//
// Fake networks do not need a file: FakeGenesis builds a deterministic
// document around the fake accounts.
package genesis

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"gopkg.in/yaml.v3"

	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter/oraclepk"
)

// Genesis describes the initial state of a deployment.
type Genesis struct {
	// Network names the rules preset the document is meant for (main, test, fake)
	Network string `yaml:"network"`

	// Time is the genesis unix time; zero means the fake genesis time
	Time int64 `yaml:"time,omitempty"`

	Economy     Economy                     `yaml:"economy"`
	Species     []Species                   `yaml:"species,omitempty"`
	BlockHashes []BlockHash                 `yaml:"blockHashes,omitempty"`
	Accounts    []Account                   `yaml:"accounts,omitempty"`
	Roles       map[string][]common.Address `yaml:"roles,omitempty"`

	// Oracles are public keys granted the duel-signer role
	Oracles []oraclepk.PubKey `yaml:"oracles,omitempty"`
}

// Economy holds the configurator settings present at genesis. Unset values
// are left unset in the game state.
type Economy struct {
	// ChainCurrencyPrice is the USD price of one whole native coin, in cents
	ChainCurrencyPrice *math.HexOrDecimal256 `yaml:"chainCurrencyPrice,omitempty"`

	// ExchangeRate is the token exchange rate in basis points
	ExchangeRate *math.HexOrDecimal256 `yaml:"exchangeRate,omitempty"`

	// MaxRewardRatio overrides the rules' default reward ratio cap
	MaxRewardRatio *uint16 `yaml:"maxRewardRatio,omitempty"`
}

// Species is one entry of the species table. Exactly one of the packed words
// (A and B) or Settings must be given.
type Species struct {
	ID       uint32                `yaml:"id"`
	A        *math.HexOrDecimal256 `yaml:"a,omitempty"`
	B        *math.HexOrDecimal256 `yaml:"b,omitempty"`
	Settings *SpeciesSettings      `yaml:"settings,omitempty"`
}

// SpeciesSettings spells out a species configuration. Token amounts are
// milli-tokens, USD amounts are cents.
type SpeciesSettings struct {
	HashStart     uint64 `yaml:"hashStart"`
	HashEnd       uint64 `yaml:"hashEnd"`
	PrimaryType   uint8  `yaml:"primaryType"`
	SecondaryType uint8  `yaml:"secondaryType"`

	StakingMilli   uint32 `yaml:"stakingMilli"`
	RewardMilli    uint32 `yaml:"rewardMilli"`
	WinnersPerDuel uint16 `yaml:"winnersPerDuel"`
	InsuranceCents uint32 `yaml:"insuranceCents"`

	MinPowerCents     uint32 `yaml:"minPowerCents"`
	LimitPerBlock     uint16 `yaml:"limitPerBlock"`
	BaseRate          uint8  `yaml:"baseRate"`
	CostPerPointCents uint32 `yaml:"costPerPointCents"`

	AssistType   uint8  `yaml:"assistType"`
	AssistMinExp uint32 `yaml:"assistMinExp"`
	AssistMaxExp uint32 `yaml:"assistMaxExp"`

	Ladder []uint8 `yaml:"ladder,flow"`
}

// BlockHash is a block-hash record published at genesis.
type BlockHash struct {
	Block uint64                `yaml:"block"`
	Hash  *math.HexOrDecimal256 `yaml:"hash"`
}

// Account grants starting balances, in base units.
type Account struct {
	Address common.Address        `yaml:"address"`
	Native  *math.HexOrDecimal256 `yaml:"native,omitempty"`
	Tokens  *math.HexOrDecimal256 `yaml:"tokens,omitempty"`
}

// Load decodes a YAML genesis document. Unknown keys are rejected so that
// typos in operator-authored files do not silently drop settings.
func Load(r io.Reader) (*Genesis, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	g := new(Genesis)
	if err := dec.Decode(g); err != nil {
		return nil, fmt.Errorf("decode genesis: %w", err)
	}
	return g, nil
}

// LoadFile decodes the YAML genesis document at path.
func LoadFile(path string) (*Genesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Encode writes g as YAML.
func (g *Genesis) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return err
	}
	return enc.Close()
}

// Config returns the decoded configuration of the species entry.
func (s Species) Config() (inter.SpeciesConfig, error) {
	switch {
	case s.Settings != nil && (s.A != nil || s.B != nil):
		return inter.SpeciesConfig{}, fmt.Errorf("species %d: both words and settings given", s.ID)
	case s.Settings != nil:
		return s.Settings.config()
	case s.A == nil || s.B == nil:
		return inter.SpeciesConfig{}, fmt.Errorf("species %d: missing settings word", s.ID)
	}
	return inter.DecodeSpecies((*big.Int)(s.A), (*big.Int)(s.B))
}

// Words returns the packed settings words of the species entry.
func (s Species) Words() (a, b *big.Int, err error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, nil, err
	}
	return inter.EncodeSpecies(cfg)
}

func (s *SpeciesSettings) config() (inter.SpeciesConfig, error) {
	cfg := inter.SpeciesConfig{
		HashStart:         s.HashStart,
		HashEnd:           s.HashEnd,
		PrimaryType:       s.PrimaryType,
		SecondaryType:     s.SecondaryType,
		StakingMilli:      s.StakingMilli,
		RewardMilli:       s.RewardMilli,
		WinnersPerDuel:    s.WinnersPerDuel,
		InsuranceCents:    s.InsuranceCents,
		MinPowerCents:     s.MinPowerCents,
		LimitPerBlock:     s.LimitPerBlock,
		BaseRate:          s.BaseRate,
		CostPerPointCents: s.CostPerPointCents,
		Assist: inter.AssistRequirement{
			Type:   s.AssistType,
			MinExp: s.AssistMinExp,
			MaxExp: s.AssistMaxExp,
		},
	}
	if len(s.Ladder) != inter.StatCount {
		return cfg, fmt.Errorf("%w: ladder has %d stats, want %d", inter.ErrInvalidConfig, len(s.Ladder), inter.StatCount)
	}
	copy(cfg.Ladder[:], s.Ladder)
	return cfg, nil
}

// SettingsOf spells out cfg for a genesis document.
func SettingsOf(cfg inter.SpeciesConfig) *SpeciesSettings {
	return &SpeciesSettings{
		HashStart:         cfg.HashStart,
		HashEnd:           cfg.HashEnd,
		PrimaryType:       cfg.PrimaryType,
		SecondaryType:     cfg.SecondaryType,
		StakingMilli:      cfg.StakingMilli,
		RewardMilli:       cfg.RewardMilli,
		WinnersPerDuel:    cfg.WinnersPerDuel,
		InsuranceCents:    cfg.InsuranceCents,
		MinPowerCents:     cfg.MinPowerCents,
		LimitPerBlock:     cfg.LimitPerBlock,
		BaseRate:          cfg.BaseRate,
		CostPerPointCents: cfg.CostPerPointCents,
		AssistType:        cfg.Assist.Type,
		AssistMinExp:      cfg.Assist.MinExp,
		AssistMaxExp:      cfg.Assist.MaxExp,
		Ladder:            append([]uint8(nil), cfg.Ladder[:]...),
	}
}
