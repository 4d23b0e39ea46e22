package store

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// SetBlockHash records the oracle-supplied hash of a block.
func (s *Store) SetBlockHash(block idx.Block, hash *big.Int) {
	s.setFlag(Slot("blockhash.known", blockKey(block)), true)
	s.setBig(Slot("blockhash", blockKey(block)), hash)
}

// BlockHash returns the recorded hash of a block.
func (s *Store) BlockHash(block idx.Block) (*big.Int, bool) {
	if !s.flag(Slot("blockhash.known", blockKey(block))) {
		return nil, false
	}
	return s.getBig(Slot("blockhash", blockKey(block))), true
}

// LockBlockHash freezes a record once it produced a creature.
func (s *Store) LockBlockHash(block idx.Block) {
	s.setFlag(Slot("blockhash.locked", blockKey(block)), true)
}

// BlockHashLocked reports whether the record is frozen.
func (s *Store) BlockHashLocked(block idx.Block) bool {
	return s.flag(Slot("blockhash.locked", blockKey(block)))
}

// Gene returns the stored gene word of a creature.
func (s *Store) Gene(id uint64) (*big.Int, bool) {
	if !s.flag(Slot("gene.known", u64(id))) {
		return nil, false
	}
	return s.getBig(Slot("gene", u64(id))), true
}

// SetGene stores the gene word of a creature.
func (s *Store) SetGene(id uint64, gene *big.Int) {
	s.setFlag(Slot("gene.known", u64(id)), true)
	s.setBig(Slot("gene", u64(id)), gene)
}

// DeleteGene forgets a burned creature.
func (s *Store) DeleteGene(id uint64) {
	s.setFlag(Slot("gene.known", u64(id)), false)
	s.set(Slot("gene", u64(id)), common.Hash{})
}

// LastDuelID returns the highest duel id accepted for a creature.
func (s *Store) LastDuelID(id uint64) uint64 {
	return s.getUint64(Slot("duel.last", u64(id)))
}

// SetLastDuelID records the highest duel id accepted for a creature.
func (s *Store) SetLastDuelID(id uint64, duelID uint64) {
	s.setUint64(Slot("duel.last", u64(id)), duelID)
}

// Captures returns the number of creatures captured from a block for a species.
func (s *Store) Captures(species uint32, block idx.Block) uint64 {
	return s.getUint64(Slot("capture.count", u32(species), blockKey(block)))
}

// IncCaptures increments the capture counter and returns the new value.
func (s *Store) IncCaptures(species uint32, block idx.Block) uint64 {
	key := Slot("capture.count", u32(species), blockKey(block))
	n := s.getUint64(key) + 1
	s.setUint64(key, n)
	return n
}

// Winners returns how many rewarded wins a battle paid for a species.
func (s *Store) Winners(battle uint64, species uint32) uint64 {
	return s.getUint64(Slot("duel.winners", u64(battle), u32(species)))
}

// IncWinners increments the winner counter and returns the new value.
func (s *Store) IncWinners(battle uint64, species uint32) uint64 {
	key := Slot("duel.winners", u64(battle), u32(species))
	n := s.getUint64(key) + 1
	s.setUint64(key, n)
	return n
}

// PermitUsed reports whether a grantor's nonce was consumed or cancelled.
func (s *Store) PermitUsed(grantor common.Address, nonce *big.Int) bool {
	return s.flag(Slot("permit.used", grantor.Bytes(), common.BigToHash(nonce).Bytes()))
}

// UsePermit consumes a grantor's nonce.
func (s *Store) UsePermit(grantor common.Address, nonce *big.Int) {
	s.setFlag(Slot("permit.used", grantor.Bytes(), common.BigToHash(nonce).Bytes()), true)
}

// NextMonsterSeq allocates the next creature sequence number, starting at 1.
func (s *Store) NextMonsterSeq() uint64 {
	key := Slot("monster.seq")
	n := s.getUint64(key) + 1
	s.setUint64(key, n)
	return n
}
