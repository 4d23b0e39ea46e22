// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package evmcore

import (
	"math/big"
	"sync"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

// Header is the host block context a game operation executes in.
type Header struct {
	Number idx.Block
	Hash   common.Hash
	Root   common.Hash
	Time   inter.Timestamp
}

// ConvertFromEthHeader builds a Header from a go-ethereum header.
func ConvertFromEthHeader(h *types.Header) *Header {
	return &Header{
		Number: idx.Block(h.Number.Uint64()),
		Hash:   h.Hash(),
		Root:   h.Root,
		Time:   inter.FromUnix(int64(h.Time)),
	}
}

// HashRecord reduces a block hash to the 64-bit record the oracle publishes
// for species selection: the leading 8 bytes, big-endian.
func HashRecord(h common.Hash) *big.Int {
	return new(big.Int).SetUint64(bigendian.BytesToUint64(h[:8]))
}

// Record returns HashRecord of the header hash.
func (h *Header) Record() *big.Int {
	return HashRecord(h.Hash)
}

// Chain is a mutable host context: it provides the current time and the
// current block to the engine and can be advanced by the embedding
// application or by tests.
type Chain struct {
	mu     sync.RWMutex
	header Header
}

// NewChain starts a chain at the given header.
func NewChain(h Header) *Chain {
	return &Chain{header: h}
}

// Now implements the engine clock.
func (c *Chain) Now() inter.Timestamp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.header.Time
}

// Current returns a copy of the current header.
func (c *Chain) Current() Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.header
}

// Advance moves to the next block at the given time.
func (c *Chain) Advance(hash common.Hash, time inter.Timestamp) Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header = Header{
		Number: c.header.Number + 1,
		Hash:   hash,
		Root:   c.header.Root,
		Time:   time,
	}
	return c.header
}

// SetTime moves the clock without producing a block.
func (c *Chain) SetTime(time inter.Timestamp) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header.Time = time
}
