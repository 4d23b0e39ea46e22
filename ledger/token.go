package ledger

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Ambros-Technology/bcm-public-smartcontract/store"
)

// TokenAddress is the account holding the game token's storage.
var TokenAddress = common.HexToAddress("0xbc30000000000000000000000000000000000020")

// ErrTransferExceedsBalance is returned when a token transfer exceeds the balance.
var ErrTransferExceedsBalance = errors.New("transfer amount exceeds balance")

var totalSupplyKey = store.Slot("token.supply")

// Token is the game's fungible token, 18 decimals.
type Token struct {
	db   store.StateDB
	addr common.Address
}

// NewToken returns the token ledger stored at TokenAddress.
func NewToken(db store.StateDB) *Token {
	return &Token{db: db, addr: TokenAddress}
}

func balanceKey(acc common.Address) common.Hash {
	return store.Slot("token.balance", acc.Bytes())
}

func (t *Token) get(key common.Hash) *big.Int {
	return t.db.GetState(t.addr, key).Big()
}

func (t *Token) set(key common.Hash, v *big.Int) {
	t.db.SetState(t.addr, key, common.BigToHash(v))
}

// BalanceOf returns the token balance of acc in base units.
func (t *Token) BalanceOf(acc common.Address) *big.Int {
	return t.get(balanceKey(acc))
}

// TotalSupply returns the amount ever minted.
func (t *Token) TotalSupply() *big.Int {
	return t.get(totalSupplyKey)
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	have := t.BalanceOf(from)
	if have.Cmp(amount) < 0 {
		return fmt.Errorf("%w: address %s have %v want %v", ErrTransferExceedsBalance, from.Hex(), have, amount)
	}
	if from == to || amount.Sign() == 0 {
		return nil
	}
	t.set(balanceKey(from), have.Sub(have, amount))
	t.set(balanceKey(to), new(big.Int).Add(t.BalanceOf(to), amount))
	return nil
}

// Mint creates amount new tokens owned by to.
func (t *Token) Mint(to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	t.set(totalSupplyKey, new(big.Int).Add(t.TotalSupply(), amount))
	t.set(balanceKey(to), new(big.Int).Add(t.BalanceOf(to), amount))
	return nil
}
