package genesis

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/sirupsen/logrus"

	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm"
	"github.com/Ambros-Technology/bcm-public-smartcontract/evmcore"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/ledger"
	"github.com/Ambros-Technology/bcm-public-smartcontract/store"
)

// SystemAccounts are the accounts holding game storage.
var SystemAccounts = []common.Address{
	store.ContractAddress,
	ledger.TokenAddress,
	ledger.RegistryAddress,
}

// Validate checks the document without touching any state.
func (g *Genesis) Validate(rules bcm.Rules) error {
	seen := make(map[uint32]bool, len(g.Species))
	for _, s := range g.Species {
		if s.ID == 0 {
			return fmt.Errorf("%w: species id 0", inter.ErrInvalidConfig)
		}
		if seen[s.ID] {
			return fmt.Errorf("species %d listed twice", s.ID)
		}
		seen[s.ID] = true

		cfg, err := s.Config()
		if err != nil {
			return fmt.Errorf("species %d: %w", s.ID, err)
		}
		if err := cfg.ValidateRate(rules.Capture.MaxBoost); err != nil {
			return fmt.Errorf("species %d: %w", s.ID, err)
		}
	}
	for _, h := range g.BlockHashes {
		if h.Hash == nil {
			return fmt.Errorf("block %d: missing hash", h.Block)
		}
	}
	for name := range g.Roles {
		if _, ok := inter.ParseAction(name); !ok {
			return fmt.Errorf("unknown role %q", name)
		}
	}
	for i, pk := range g.Oracles {
		if _, err := pk.Address(); err != nil {
			return fmt.Errorf("oracle %d: %w", i, err)
		}
	}
	return nil
}

// Apply writes the document into statedb under rules and persists the
// result to db. It returns the genesis header.
func (g *Genesis) Apply(statedb *state.StateDB, db ethdb.KeyValueWriter, rules bcm.Rules) (*evmcore.Header, error) {
	if err := g.Validate(rules); err != nil {
		return nil, err
	}
	log := logrus.WithField("module", "genesis")

	s := store.New(statedb, store.ContractAddress)
	token := ledger.NewToken(statedb)
	roles := ledger.NewRoles(s)

	for _, sp := range g.Species {
		a, b, err := sp.Words()
		if err != nil {
			return nil, err
		}
		s.SetSpecies(sp.ID, a, b)
	}
	for _, h := range g.BlockHashes {
		s.SetBlockHash(idx.Block(h.Block), (*big.Int)(h.Hash))
	}

	if g.Economy.ChainCurrencyPrice != nil {
		s.SetChainCurrencyPrice((*big.Int)(g.Economy.ChainCurrencyPrice))
	}
	if g.Economy.ExchangeRate != nil {
		s.SetExchangeRate((*big.Int)(g.Economy.ExchangeRate))
	}
	if g.Economy.MaxRewardRatio != nil {
		s.SetMaxRewardRatio(uint64(*g.Economy.MaxRewardRatio))
	}

	// grant in a fixed order, map iteration is random
	for _, action := range inter.Actions {
		for _, acc := range g.Roles[string(action)] {
			roles.Grant(action, acc)
		}
	}
	for _, pk := range g.Oracles {
		signer, _ := pk.Address()
		roles.Grant(inter.ActionSignDuel, signer)
		log.WithField("signer", signer.Hex()).Debug("Duel oracle trusted")
	}

	if t := rules.Economy.InitialTreasuryTokens; t != nil && t.Sign() > 0 {
		if err := token.Mint(rules.Economy.Treasury, t); err != nil {
			return nil, err
		}
	}
	balances := make(map[common.Address]*big.Int, len(g.Accounts))
	for _, acc := range g.Accounts {
		if acc.Tokens != nil {
			if err := token.Mint(acc.Address, (*big.Int)(acc.Tokens)); err != nil {
				return nil, fmt.Errorf("account %s: %w", acc.Address.Hex(), err)
			}
		}
		if acc.Native != nil {
			balances[acc.Address] = new(big.Int).Set((*big.Int)(acc.Native))
		}
	}

	time := evmcore.FakeGenesisTime
	if g.Time != 0 {
		time = inter.FromUnix(g.Time)
	}
	h, err := evmcore.ApplyFakeGenesis(statedb, db, time, SystemAccounts, balances)
	if err != nil {
		return nil, err
	}
	log.WithField("network", rules.Name).
		WithField("species", len(g.Species)).
		WithField("accounts", len(g.Accounts)).
		WithField("root", h.Root.Hex()).
		Info("Genesis applied")
	return h, nil
}

// SpeciesIDs returns the species ids of the document in ascending order.
func (g *Genesis) SpeciesIDs() []uint32 {
	ids := make([]uint32, 0, len(g.Species))
	for _, s := range g.Species {
		ids = append(ids, s.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
