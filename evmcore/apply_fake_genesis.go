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

// Package evmcore hosts the game state inside a go-ethereum state trie.
//
// The game contracts, the game token and the creature registry are plain
// accounts whose storage slots hold the persisted surfaces; native coin
// balances are account balances. Snapshots of the StateDB give every game
// operation all-or-nothing semantics, and Flush persists the trie to an
// ethdb database (memory or leveldb) under a well-known head-root key.
package evmcore

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/sirupsen/logrus"

	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

// FakeGenesisTime is the default timestamp used for fake genesis states.
var FakeGenesisTime = inter.FromUnix(1608600000)

// ApplyFakeGenesis pre-funds accounts with native coin, marks the system
// accounts as live so they survive empty-account cleanup, and persists the
// result. It returns the genesis header (block 0).
func ApplyFakeGenesis(statedb *state.StateDB, db ethdb.KeyValueWriter, time inter.Timestamp, system []common.Address, balances map[common.Address]*big.Int) (*Header, error) {
	for _, acc := range system {
		if statedb.GetNonce(acc) == 0 {
			statedb.SetNonce(acc, 1)
		}
	}
	for acc, balance := range balances {
		statedb.SetBalance(acc, balance)
	}

	root, err := Flush(statedb, db)
	if err != nil {
		return nil, err
	}
	return genesisHeader(time, root), nil
}

// MustApplyFakeGenesis is ApplyFakeGenesis that panics on error.
func MustApplyFakeGenesis(statedb *state.StateDB, db ethdb.KeyValueWriter, time inter.Timestamp, system []common.Address, balances map[common.Address]*big.Int) *Header {
	h, err := ApplyFakeGenesis(statedb, db, time, system, balances)
	if err != nil {
		logrus.WithError(err).Fatal("ApplyFakeGenesis")
	}
	return h
}

func genesisHeader(time inter.Timestamp, root common.Hash) *Header {
	return &Header{
		Number: 0,
		Root:   root,
		Time:   time,
	}
}

// FakeKey derives a deterministic secp256k1 key; the same n always yields
// the same key.
func FakeKey(n int) *ecdsa.PrivateKey {
	key, err := crypto.ToECDSA(crypto.Keccak256([]byte("bcm.fakekey"), bigendian.Uint64ToBytes(uint64(n))))
	if err != nil {
		panic(err)
	}
	return key
}

// FakeAccount returns the address of FakeKey(n).
func FakeAccount(n int) common.Address {
	return crypto.PubkeyToAddress(FakeKey(n).PublicKey)
}
