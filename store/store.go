// Package store keeps the persisted game state in the storage slots of the
// game contract account, the same way the deployed contracts do. Every
// surface is addressed by keccak256(tag ‖ key parts), so surfaces never
// collide and the whole state lives in one go-ethereum state trie.
//
// Store does not serialize access; the engine runs one operation at a time.
package store

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ContractAddress is the account holding game storage and the treasury.
var ContractAddress = common.HexToAddress("0xbc30000000000000000000000000000000000000")

// StateDB is the subset of go-ethereum's vm.StateDB the store needs.
type StateDB interface {
	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)
}

// Store provides typed access to the game storage.
type Store struct {
	db   StateDB
	addr common.Address
}

// New returns a store over db rooted at the given account.
func New(db StateDB, addr common.Address) *Store {
	return &Store{db: db, addr: addr}
}

// Address returns the account the store writes to.
func (s *Store) Address() common.Address {
	return s.addr
}

// Slot derives the storage key of a surface entry.
func Slot(tag string, parts ...[]byte) common.Hash {
	buf := make([]byte, 0, len(tag)+len(parts)*32)
	buf = append(buf, tag...)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return crypto.Keccak256Hash(buf)
}

func u64(v uint64) []byte {
	return bigendian.Uint64ToBytes(v)
}

func u32(v uint32) []byte {
	return bigendian.Uint32ToBytes(v)
}

func uint64Hash(v uint64) (h common.Hash) {
	copy(h[common.HashLength-8:], bigendian.Uint64ToBytes(v))
	return h
}

func hashUint64(h common.Hash) uint64 {
	return bigendian.BytesToUint64(h[common.HashLength-8:])
}

var one = uint64Hash(1)

func (s *Store) get(key common.Hash) common.Hash {
	return s.db.GetState(s.addr, key)
}

func (s *Store) set(key, value common.Hash) {
	s.db.SetState(s.addr, key, value)
}

func (s *Store) getBig(key common.Hash) *big.Int {
	return s.get(key).Big()
}

func (s *Store) setBig(key common.Hash, v *big.Int) {
	s.set(key, common.BigToHash(v))
}

func (s *Store) getUint64(key common.Hash) uint64 {
	return hashUint64(s.get(key))
}

func (s *Store) setUint64(key common.Hash, v uint64) {
	s.set(key, uint64Hash(v))
}

func (s *Store) flag(key common.Hash) bool {
	return s.get(key) != (common.Hash{})
}

func (s *Store) setFlag(key common.Hash, v bool) {
	if v {
		s.set(key, one)
	} else {
		s.set(key, common.Hash{})
	}
}

// blockKey encodes a block index as a key part.
func blockKey(b idx.Block) []byte {
	return u64(uint64(b))
}
