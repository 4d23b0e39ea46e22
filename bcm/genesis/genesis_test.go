package genesis

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm"
	"github.com/Ambros-Technology/bcm-public-smartcontract/evmcore"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter/oraclepk"
	"github.com/Ambros-Technology/bcm-public-smartcontract/ledger"
	"github.com/Ambros-Technology/bcm-public-smartcontract/store"
)

const (
	speciesWordA = "77933547946353024075082418532612499980085293345073630603535821425213515500972"
	speciesWordB = "53919895487598258933799825820858378146618790772361542910696055235411968"
)

const sampleYAML = `
network: fake
time: 1700000000
economy:
  chainCurrencyPrice: 45100
  exchangeRate: 0x186a0
  maxRewardRatio: 150
species:
  - id: 40
    a: 77933547946353024075082418532612499980085293345073630603535821425213515500972
    b: "53919895487598258933799825820858378146618790772361542910696055235411968"
  - id: 7
    settings:
      hashStart: 100
      hashEnd: 200
      primaryType: 4
      baseRate: 50
      limitPerBlock: 1
      ladder: [9, 8, 7, 6, 5, 4]
blockHashes:
  - block: 12345
    hash: 12415530483918814249
accounts:
  - address: 0x8FB58D8a64a579CfcA349b8b34B69b48FC9C0CB2
    native: 1000000000000000000
    tokens: 0x3635c9adc5dea00000
roles:
  admin: [0x8FB58D8a64a579CfcA349b8b34B69b48FC9C0CB2]
  duel-signer:
    - 0x00000000000000000000000000000000000000aa
`

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return v
}

func TestFakeSpeciesMatchesSampleWords(t *testing.T) {
	require := require.New(t)

	a, b, err := inter.EncodeSpecies(FakeSpecies())
	require.NoError(err)
	require.Equal(mustBig(speciesWordA), a)
	require.Equal(mustBig(speciesWordB), b)
}

func TestLoadAndApply(t *testing.T) {
	require := require.New(t)

	g, err := Load(strings.NewReader(sampleYAML))
	require.NoError(err)
	require.Equal("fake", g.Network)
	require.Equal([]uint32{7, 40}, g.SpeciesIDs())

	db := evmcore.NewMemoryDB()
	statedb, err := evmcore.OpenState(db)
	require.NoError(err)
	h, err := g.Apply(statedb, db, bcm.FakeNetRules())
	require.NoError(err)
	require.Equal(inter.FromUnix(1700000000), h.Time)

	// everything must survive a reopen from the persisted root
	statedb, err = evmcore.OpenState(db)
	require.NoError(err)
	s := store.New(statedb, store.ContractAddress)

	a, b, ok := s.Species(40)
	require.True(ok)
	require.Equal(0, a.Cmp(mustBig(speciesWordA)))
	require.Equal(0, b.Cmp(mustBig(speciesWordB)))

	a, b, ok = s.Species(7)
	require.True(ok)
	cfg, err := inter.DecodeSpecies(a, b)
	require.NoError(err)
	require.Equal(uint64(100), cfg.HashStart)
	require.Equal(uint8(50), cfg.BaseRate)
	require.Equal([inter.StatCount]uint8{9, 8, 7, 6, 5, 4}, cfg.Ladder)

	hash, ok := s.BlockHash(idx.Block(12345))
	require.True(ok)
	require.Equal(0, hash.Cmp(mustBig("12415530483918814249")))

	require.Equal(int64(45100), s.ChainCurrencyPrice().Int64())
	require.Equal(int64(100000), s.ExchangeRate().Int64())
	ratio, ok := s.MaxRewardRatio()
	require.True(ok)
	require.Equal(uint64(150), ratio)

	acc := common.HexToAddress("0x8FB58D8a64a579CfcA349b8b34B69b48FC9C0CB2")
	require.Equal(big.NewInt(1e18), statedb.GetBalance(acc))
	token := ledger.NewToken(statedb)
	require.Equal(mustBig("1000000000000000000000"), token.BalanceOf(acc))
	require.Equal(bcm.FakeNetRules().Economy.InitialTreasuryTokens, token.BalanceOf(bcm.TreasuryAddress))

	roles := ledger.NewRoles(s)
	require.NoError(roles.IsAuthorized(acc, inter.ActionConfigure))
	require.NoError(roles.IsAuthorized(common.HexToAddress("0xaa"), inter.ActionSignDuel))
	require.Error(roles.IsAuthorized(common.HexToAddress("0xaa"), inter.ActionConfigure))

	for _, sys := range SystemAccounts {
		require.Equal(uint64(1), statedb.GetNonce(sys))
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("network: fake\nspecie: []\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	rules := bcm.FakeNetRules()
	words := func(id uint32) Species {
		return Species{ID: id, A: amount(mustBig(speciesWordA)), B: amount(mustBig(speciesWordB))}
	}
	tooLikely := SettingsOf(FakeSpecies())
	tooLikely.BaseRate = 91
	shortLadder := SettingsOf(FakeSpecies())
	shortLadder.Ladder = shortLadder.Ladder[:5]
	both := words(3)
	both.Settings = SettingsOf(FakeSpecies())

	for _, tc := range []struct {
		name    string
		g       Genesis
		invalid bool
	}{
		{"ok", Genesis{Species: []Species{words(1), words(2)}}, false},
		{"species zero", Genesis{Species: []Species{words(0)}}, true},
		{"duplicate", Genesis{Species: []Species{words(1), words(1)}}, true},
		{"half words", Genesis{Species: []Species{{ID: 1, A: amount(big.NewInt(1))}}}, true},
		{"words and settings", Genesis{Species: []Species{both}}, true},
		{"boost overflows", Genesis{Species: []Species{{ID: 1, Settings: tooLikely}}}, true},
		{"short ladder", Genesis{Species: []Species{{ID: 1, Settings: shortLadder}}}, true},
		{"hash missing", Genesis{BlockHashes: []BlockHash{{Block: 1}}}, true},
		{"unknown role", Genesis{Roles: map[string][]common.Address{"root": nil}}, true},
		{"oracle key type", Genesis{Oracles: []oraclepk.PubKey{{Type: 0x01, Raw: []byte{4}}}}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.g.Validate(rules)
			if tc.invalid {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}

	g := Genesis{Species: []Species{{ID: 1, Settings: tooLikely}}}
	require.True(t, errors.Is(g.Validate(rules), inter.ErrInvalidConfig))
}

func TestFakeGenesisRoundTrip(t *testing.T) {
	require := require.New(t)

	g := FakeGenesis(3)
	require.NoError(g.Validate(bcm.FakeNetRules()))
	require.Len(g.Accounts, 3)
	require.Equal([]common.Address{evmcore.FakeAccount(0)}, g.Roles["admin"])
	require.Equal([]common.Address{evmcore.FakeAccount(1)}, g.Roles["blockhash-oracle"])
	require.Len(g.Oracles, 1)
	signer, err := g.Oracles[0].Address()
	require.NoError(err)
	require.Equal(evmcore.FakeAccount(1), signer)

	var buf bytes.Buffer
	require.NoError(g.Encode(&buf))
	decoded, err := Load(&buf)
	require.NoError(err)
	require.Equal(g.Network, decoded.Network)
	require.Equal(g.Roles, decoded.Roles)
	require.Equal(g.Oracles, decoded.Oracles)
	require.Equal(g.Species[0].Settings, decoded.Species[0].Settings)
	require.Equal(0, (*big.Int)(decoded.Accounts[2].Tokens).Cmp(ether(100000)))

	require.Empty(FakeGenesis(0).Roles)
}

func TestOraclesBecomeDuelSigners(t *testing.T) {
	require := require.New(t)

	g := FakeGenesis(2)
	statedb := evmcore.NewMemoryState()
	_, err := g.Apply(statedb, nil, bcm.FakeNetRules())
	require.NoError(err)

	roles := ledger.NewRoles(store.New(statedb, store.ContractAddress))
	require.NoError(roles.IsAuthorized(evmcore.FakeAccount(1), inter.ActionSignDuel))
	// admins are not trusted as duel signers
	require.Error(roles.IsAuthorized(evmcore.FakeAccount(0), inter.ActionSignDuel))
}
