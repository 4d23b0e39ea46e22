package inter

import (
	"fmt"
	"math/big"
)

// Currency selects how a payment is settled.
type Currency uint8

const (
	// Native is the chain's own coin.
	Native Currency = iota
	// Token is the game's fungible token.
	Token
)

func (c Currency) String() string {
	switch c {
	case Native:
		return "native"
	case Token:
		return "token"
	default:
		return fmt.Sprintf("currency(%d)", uint8(c))
	}
}

// Payment is an amount in base units of the chosen currency.
type Payment struct {
	Currency Currency
	Amount   *big.Int
}

// NativePayment builds a payment in the chain currency.
func NativePayment(amount *big.Int) Payment {
	return Payment{Currency: Native, Amount: amount}
}

// TokenPayment builds a payment in game tokens.
func TokenPayment(amount *big.Int) Payment {
	return Payment{Currency: Token, Amount: amount}
}

// IsZero reports whether nothing is paid.
func (p Payment) IsZero() bool {
	return p.Amount == nil || p.Amount.Sign() == 0
}

// Value returns the amount, never nil.
func (p Payment) Value() *big.Int {
	if p.Amount == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(p.Amount)
}
