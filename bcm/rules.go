// Package bcm defines the network rules and game constants of a deployment.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - Capture rules: assistant bonus, purchasable boost and the success ceiling
//   - Duel rules: the default reward ratio cap
//   - Economy rules: token decimals and the treasury account
//
// The Rules type is the central configuration structure: every component that
// depends on network identity or game-balance constants receives a copy of it.
package bcm

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Network identification constants
const (
	// MainNetworkID is the chain ID of the production deployment (BNB Smart Chain).
	MainNetworkID uint64 = 56

	// TestNetworkID is the chain ID of the public test deployment.
	TestNetworkID uint64 = 97

	// FakeNetworkID is the chain ID used by local and fake networks.
	FakeNetworkID uint64 = 1337

	// FakeInternalChainID is the internal chain number of fake networks.
	// It forms the low byte of every monster id minted there.
	FakeInternalChainID uint8 = 12
)

// Rules describes the complete configuration of a game deployment.
//
// Note: When implementing Copy(), ensure all non-copiable variables (like *big.Int)
// are properly deep-copied to avoid shared state issues.
type Rules struct {
	Name string // Network name identifier (e.g., "main", "test", "fake")

	// ChainID is the host chain id signed into duel outcomes and permits
	ChainID uint64

	// InternalChainID is the game's own number for the host chain. Monster
	// ids carry it in their low byte so ids stay unique across chains.
	InternalChainID uint8

	// Capture options
	Capture CaptureRules

	// Duel options
	Duel DuelRules

	// Economy options
	Economy EconomyRules
}

// CaptureRules bounds the success rate of capture attempts.
type CaptureRules struct {
	// AssistantBonus is added when the assistant matches the species'
	// required type and experience range
	AssistantBonus uint8

	// MaxBoost is the most percentage points a payment above the minimum
	// can buy. Species are rejected if base rate + MaxBoost exceeds 100.
	MaxBoost uint8

	// MaxRate is the hard ceiling of the effective success rate
	MaxRate uint8
}

// DuelRules holds duel constants.
type DuelRules struct {
	// DefaultMaxRewardRatio caps reward ratios until a configurator sets
	// another cap (in percent, 200 = twice the species reward)
	DefaultMaxRewardRatio uint16
}

// EconomyRules holds token and treasury parameters.
type EconomyRules struct {
	// TokenDecimals of the game token
	TokenDecimals uint8

	// Treasury receives capture and insurance payments and pays duel rewards
	Treasury common.Address

	// InitialTreasuryTokens is minted to the treasury by fake genesis
	InitialTreasuryTokens *big.Int
}

// TreasuryAddress is the default treasury: the game contract account itself.
var TreasuryAddress = common.HexToAddress("0xbc30000000000000000000000000000000000000")

// MainNetRules returns the configuration rules of the production deployment.
func MainNetRules() Rules {
	return Rules{
		Name:            "main",
		ChainID:         MainNetworkID,
		InternalChainID: 1,
		Capture:         DefaultCaptureRules(),
		Duel:            DefaultDuelRules(),
		Economy:         DefaultEconomyRules(),
	}
}

// TestNetRules returns the configuration rules of the public test deployment.
// Testnet uses the same game constants as mainnet for realistic testing.
func TestNetRules() Rules {
	return Rules{
		Name:            "test",
		ChainID:         TestNetworkID,
		InternalChainID: 2,
		Capture:         DefaultCaptureRules(),
		Duel:            DefaultDuelRules(),
		Economy:         DefaultEconomyRules(),
	}
}

// FakeNetRules returns the configuration rules for fake/local networks.
// The treasury starts with a token float so duel rewards can be paid
// without a separate funding step.
func FakeNetRules() Rules {
	return Rules{
		Name:            "fake",
		ChainID:         FakeNetworkID,
		InternalChainID: FakeInternalChainID,
		Capture:         DefaultCaptureRules(),
		Duel:            DefaultDuelRules(),
		Economy:         FakeEconomyRules(),
	}
}

// DefaultCaptureRules returns the capture constants of all networks.
func DefaultCaptureRules() CaptureRules {
	return CaptureRules{
		AssistantBonus: 15,
		MaxBoost:       10,
		MaxRate:        85,
	}
}

// DefaultDuelRules returns the duel constants of all networks.
func DefaultDuelRules() DuelRules {
	return DuelRules{
		DefaultMaxRewardRatio: 200,
	}
}

// DefaultEconomyRules returns the production economy configuration.
func DefaultEconomyRules() EconomyRules {
	return EconomyRules{
		TokenDecimals:         18,
		Treasury:              TreasuryAddress,
		InitialTreasuryTokens: new(big.Int),
	}
}

// FakeEconomyRules returns the fake network economy configuration.
func FakeEconomyRules() EconomyRules {
	cfg := DefaultEconomyRules()
	// one million tokens
	cfg.InitialTreasuryTokens = new(big.Int).Mul(big.NewInt(1e6), big.NewInt(1e18))
	return cfg
}

// Copy creates a deep copy of Rules.
func (r Rules) Copy() Rules {
	cp := r
	if r.Economy.InitialTreasuryTokens != nil {
		cp.Economy.InitialTreasuryTokens = new(big.Int).Set(r.Economy.InitialTreasuryTokens)
	}
	return cp
}

// MonsterID composes the id of the n-th monster minted on this network.
func (r Rules) MonsterID(seq uint64) uint64 {
	return seq<<8 | uint64(r.InternalChainID)
}

// String returns a JSON representation of Rules for debugging and logging.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
