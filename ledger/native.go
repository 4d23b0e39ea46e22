// Package ledger implements the accounting collaborators the game engine
// consumes: native coin balances, the game token, the creature ownership
// registry, role checks and signature recovery. All of them keep their state
// in the same go-ethereum state trie as the engine, so a StateDB snapshot
// covers them too.
package ledger

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInsufficientFunds is returned when a native transfer exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")
	// ErrNegativeAmount is returned for negative transfer amounts.
	ErrNegativeAmount = errors.New("negative amount")
)

// BalanceDB is the part of go-ethereum's StateDB holding account balances.
type BalanceDB interface {
	GetBalance(common.Address) *big.Int
	AddBalance(common.Address, *big.Int)
	SubBalance(common.Address, *big.Int)
}

// Native moves the chain's own coin between accounts.
type Native struct {
	db BalanceDB
}

// NewNative returns the native coin ledger over db.
func NewNative(db BalanceDB) *Native {
	return &Native{db: db}
}

// BalanceOf returns the balance of acc in base units.
func (n *Native) BalanceOf(acc common.Address) *big.Int {
	return new(big.Int).Set(n.db.GetBalance(acc))
}

// Transfer moves amount from one account to another.
func (n *Native) Transfer(from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	if have := n.db.GetBalance(from); have.Cmp(amount) < 0 {
		return fmt.Errorf("%w: address %s have %v want %v", ErrInsufficientFunds, from.Hex(), have, amount)
	}
	n.db.SubBalance(from, amount)
	n.db.AddBalance(to, amount)
	return nil
}
