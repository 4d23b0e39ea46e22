package integration

import (
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/sirupsen/logrus"

	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm/genesis"
	"github.com/Ambros-Technology/bcm-public-smartcontract/engine"
	"github.com/Ambros-Technology/bcm-public-smartcontract/evmcore"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/ledger"
	"github.com/Ambros-Technology/bcm-public-smartcontract/randomness"
	"github.com/Ambros-Technology/bcm-public-smartcontract/store"
)

// ChainDataDir is the directory under the datadir holding the game state.
const ChainDataDir = "chaindata"

// Node is an assembled game: the state database, the ledger collaborators
// and the engine operating on them.
type Node struct {
	Preset Preset

	DB    ethdb.Database
	State *state.StateDB
	Chain *evmcore.Chain
	Store *store.Store

	Native   *ledger.Native
	Token    *ledger.Token
	Registry *ledger.Registry
	Roles    *ledger.Roles

	Engine *engine.Engine

	log *logrus.Entry
}

// MakeEngine wires an engine over statedb. Seeds come from the published
// block-hash records and time from chain.
func MakeEngine(preset Preset, statedb *state.StateDB, chain *evmcore.Chain) *Node {
	s := store.New(statedb, store.ContractAddress)
	n := &Node{
		Preset:   preset,
		State:    statedb,
		Chain:    chain,
		Store:    s,
		Native:   ledger.NewNative(statedb),
		Token:    ledger.NewToken(statedb),
		Registry: ledger.NewRegistry(statedb),
		Roles:    ledger.NewRoles(s),
		log:      logrus.WithField("module", "integration").WithField("network", preset.Rules.Name),
	}
	n.Engine = engine.New(preset.Rules, engine.Deps{
		State:     statedb,
		Store:     s,
		Native:    n.Native,
		Token:     n.Token,
		Registry:  n.Registry,
		Roles:     n.Roles,
		Clock:     chain,
		Recoverer: ledger.ECDSARecoverer{},
		Seeds:     randomness.BlockHashes{Records: s},
	})
	return n
}

// OpenDB opens the database a preset asks for. Persistent databases live in
// datadir/chaindata.
func OpenDB(preset Preset, datadir string) (ethdb.Database, error) {
	if preset.InMemory {
		return evmcore.NewMemoryDB(), nil
	}
	return evmcore.OpenLevelDB(filepath.Join(datadir, ChainDataDir), preset.CacheMB, preset.Handles, false)
}

// OpenNode opens the latest persisted state of db. The chain clock starts at
// now.
func OpenNode(preset Preset, db ethdb.Database, now inter.Timestamp) (*Node, error) {
	statedb, err := evmcore.OpenState(db)
	if err != nil {
		return nil, err
	}
	root, err := evmcore.HeadRoot(db)
	if err != nil {
		return nil, err
	}
	n := MakeEngine(preset, statedb, evmcore.NewChain(evmcore.Header{Root: root, Time: now}))
	n.DB = db
	n.log.WithField("root", root.Hex()).Debug("State opened")
	return n, nil
}

// InitNode applies g to the empty state of db and opens the result.
func InitNode(preset Preset, db ethdb.Database, g *genesis.Genesis) (*Node, error) {
	root, err := evmcore.HeadRoot(db)
	if err != nil {
		return nil, err
	}
	if root != (common.Hash{}) {
		return nil, fmt.Errorf("database already initialized at %s", root.Hex())
	}
	statedb, err := evmcore.OpenState(db)
	if err != nil {
		return nil, err
	}
	h, err := g.Apply(statedb, db, preset.Rules)
	if err != nil {
		return nil, err
	}
	n := MakeEngine(preset, statedb, evmcore.NewChain(*h))
	n.DB = db
	return n, nil
}

// NewFakeNode returns an in-memory node initialized with the fake genesis
// of the given number of accounts.
func NewFakeNode(preset Preset, accounts int) (*Node, error) {
	preset.InMemory = true
	return InitNode(preset, evmcore.NewMemoryDB(), genesis.FakeGenesis(accounts))
}

// Commit persists the state changes made since the last commit.
func (n *Node) Commit() (common.Hash, error) {
	root, err := evmcore.Flush(n.State, n.DB)
	if err != nil {
		return common.Hash{}, err
	}
	n.log.WithField("root", root.Hex()).Debug("State committed")
	return root, nil
}

// Close stops the engine and releases the database.
func (n *Node) Close() error {
	n.Engine.Close()
	if n.DB != nil {
		return n.DB.Close()
	}
	return nil
}
