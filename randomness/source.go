// Package randomness provides the seeds capture rolls, duel survival rolls
// and stat derivation are drawn from. The seed of a block is the block-hash
// record the oracle published for it, so every roll can be replayed by an
// independent verifier.
package randomness

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
)

// ErrUnknownBlock is returned when no record exists for the block.
var ErrUnknownBlock = errors.New("unknown block")

// Source yields the seed of a block.
type Source interface {
	Seed(block idx.Block) (*big.Int, error)
}

// HashRecords is the part of the game store holding block-hash records.
type HashRecords interface {
	BlockHash(block idx.Block) (*big.Int, bool)
}

// BlockHashes serves seeds from published block-hash records.
type BlockHashes struct {
	Records HashRecords
}

// Seed returns the record of block.
func (s BlockHashes) Seed(block idx.Block) (*big.Int, error) {
	h, ok := s.Records.BlockHash(block)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBlock, block)
	}
	return h, nil
}

// Fixed returns the same seed for every block.
type Fixed struct {
	Value *big.Int
}

// Seed returns a copy of the fixed value.
func (f *Fixed) Seed(idx.Block) (*big.Int, error) {
	if f.Value == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(f.Value), nil
}

// Set replaces the fixed value.
func (f *Fixed) Set(v *big.Int) {
	f.Value = new(big.Int).Set(v)
}

// Roll reduces a seed to a percentile in [0, 100).
func Roll(seed *big.Int) uint8 {
	r := new(big.Int).Mod(seed, big.NewInt(100))
	return uint8(r.Uint64())
}
