package evmcore

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/ethdb"
)

// headRootKey stores the state root written by the latest Flush.
var headRootKey = []byte("bcm-head-root")

// NewMemoryDB returns an in-memory ethdb database.
func NewMemoryDB() ethdb.Database {
	return rawdb.NewMemoryDatabase()
}

// OpenLevelDB opens (or creates) an on-disk leveldb database.
func OpenLevelDB(path string, cacheMB, handles int, readonly bool) (ethdb.Database, error) {
	db, err := rawdb.NewLevelDBDatabase(path, cacheMB, handles, "bcm/db/", readonly)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return db, nil
}

// NewMemoryState returns an empty StateDB backed by memory.
func NewMemoryState() *state.StateDB {
	statedb, err := state.New(common.Hash{}, state.NewDatabase(rawdb.NewMemoryDatabase()), nil)
	if err != nil {
		panic(err)
	}
	return statedb
}

// HeadRoot returns the state root of the latest Flush, or the empty hash for
// a fresh database.
func HeadRoot(db ethdb.KeyValueReader) (common.Hash, error) {
	ok, err := db.Has(headRootKey)
	if err != nil || !ok {
		return common.Hash{}, err
	}
	raw, err := db.Get(headRootKey)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(raw), nil
}

// OpenState opens the StateDB at the latest flushed root of db.
func OpenState(db ethdb.Database) (*state.StateDB, error) {
	root, err := HeadRoot(db)
	if err != nil {
		return nil, err
	}
	statedb, err := state.New(root, state.NewDatabase(db), nil)
	if err != nil {
		return nil, fmt.Errorf("open state at %s: %w", root.Hex(), err)
	}
	return statedb, nil
}

// Flush commits state changes, writes the trie nodes to the underlying
// database and records the new head root.
//
// Empty accounts are kept: game accounts hold storage without code, which
// EIP-161 cleanup would otherwise consider empty.
func Flush(statedb *state.StateDB, db ethdb.KeyValueWriter) (root common.Hash, err error) {
	root, err = statedb.Commit(false)
	if err != nil {
		return
	}
	err = statedb.Database().TrieDB().Commit(root, false, nil)
	if err != nil {
		return
	}
	if db != nil {
		err = db.Put(headRootKey, root.Bytes())
	}
	return
}
