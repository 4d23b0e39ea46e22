package genesis

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/Ambros-Technology/bcm-public-smartcontract/evmcore"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter/oraclepk"
)

// FakeSpeciesID is the species configured by FakeGenesis.
const FakeSpeciesID uint32 = 40

// FakeSpecies is the sample species of fake networks: a hash range starting
// at 0xac4cd331e003bb60, types 1/2 and a 20 USD minimum capture power.
func FakeSpecies() inter.SpeciesConfig {
	return inter.SpeciesConfig{
		HashStart:         12415530483918814048,
		HashEnd:           12610086098002277759,
		PrimaryType:       1,
		SecondaryType:     2,
		StakingMilli:      10000,
		RewardMilli:       8000,
		WinnersPerDuel:    2,
		InsuranceCents:    3500,
		MinPowerCents:     2000,
		LimitPerBlock:     5,
		BaseRate:          60,
		CostPerPointCents: 100,
		Assist:            inter.AssistRequirement{Type: 3, MinExp: 20, MaxExp: 1000},
		Ladder:            [inter.StatCount]uint8{80, 70, 60, 50, 40, 30},
	}
}

func amount(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v)
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

// FakeGenesis returns the genesis of a fake network with the given number
// of funded fake accounts. Account 0 is the admin, account 1 signs duels and
// publishes block hashes.
func FakeGenesis(accounts int) *Genesis {
	ratio := uint16(200)
	g := &Genesis{
		Network: "fake",
		Economy: Economy{
			ChainCurrencyPrice: amount(big.NewInt(45100)),
			ExchangeRate:       amount(big.NewInt(100000)),
			MaxRewardRatio:     &ratio,
		},
		Species: []Species{
			{ID: FakeSpeciesID, Settings: SettingsOf(FakeSpecies())},
		},
		Roles: map[string][]common.Address{},
	}
	for i := 0; i < accounts; i++ {
		g.Accounts = append(g.Accounts, Account{
			Address: evmcore.FakeAccount(i),
			Native:  amount(ether(1000)),
			Tokens:  amount(ether(100000)),
		})
	}
	if accounts > 0 {
		g.Roles[string(inter.ActionAdmin)] = []common.Address{evmcore.FakeAccount(0)}
	}
	if accounts > 1 {
		g.Roles[string(inter.ActionSetBlockHash)] = []common.Address{evmcore.FakeAccount(1)}
		g.Oracles = []oraclepk.PubKey{oraclepk.FromECDSA(&evmcore.FakeKey(1).PublicKey)}
	}
	return g
}
