// Package economy converts the USD-cent and milli-token amounts stored in
// species settings into base units of the native coin and the game token.
//
// The chain-currency price is expressed in USD cents per whole coin ($451 is
// stored as 45100) and the exchange rate in game tokens per native coin,
// scaled by 10000 (basis points). All divisions truncate; checks that must
// never under-charge compare cross-multiplied values instead.
package economy

import (
	"errors"
	"math/big"

	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

// BasisPoints scales the exchange rate.
const BasisPoints = 10000

var (
	// NativeUnit is the number of base units in one whole native coin.
	NativeUnit = big.NewInt(1e18)
	// MilliTokenUnit is the number of token base units in one milli-token.
	MilliTokenUnit = big.NewInt(1e15)

	basisPoints = big.NewInt(BasisPoints)
)

var (
	// ErrPriceUnset is returned when a USD conversion is attempted before the
	// chain-currency price is configured.
	ErrPriceUnset = errors.New("chain currency price is not set")
	// ErrRateUnset is returned when a token conversion is attempted before the
	// exchange rate is configured.
	ErrRateUnset = errors.New("exchange rate is not set")
)

// Converter holds one snapshot of the economic settings.
type Converter struct {
	price *big.Int
	rate  *big.Int
}

// New returns a converter for the given price (USD cents per coin) and
// exchange rate (tokens per coin, basis points). Nil means unset.
func New(priceCents, rateBps *big.Int) *Converter {
	c := &Converter{price: new(big.Int), rate: new(big.Int)}
	if priceCents != nil {
		c.price.Set(priceCents)
	}
	if rateBps != nil {
		c.rate.Set(rateBps)
	}
	return c
}

// Price returns the configured price in USD cents per whole coin.
func (c *Converter) Price() *big.Int {
	return new(big.Int).Set(c.price)
}

// Rate returns the configured exchange rate in basis points.
func (c *Converter) Rate() *big.Int {
	return new(big.Int).Set(c.rate)
}

func cents(v uint64) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(v), NativeUnit)
}

// ToNative converts USD cents to native base units, truncating.
func (c *Converter) ToNative(usdCents uint64) (*big.Int, error) {
	if c.price.Sign() <= 0 {
		return nil, ErrPriceUnset
	}
	v := cents(usdCents)
	return v.Div(v, c.price), nil
}

// ToNativeCeil converts USD cents to the smallest native amount that covers
// them. Paying this amount always passes Covers.
func (c *Converter) ToNativeCeil(usdCents uint64) (*big.Int, error) {
	if c.price.Sign() <= 0 {
		return nil, ErrPriceUnset
	}
	v := cents(usdCents)
	v.Add(v, c.price)
	v.Sub(v, big.NewInt(1))
	return v.Div(v, c.price), nil
}

// Covers reports whether native base units are worth at least usdCents.
// The check is exact, so truncation never lets a payment fall short.
func (c *Converter) Covers(native *big.Int, usdCents uint64) (bool, error) {
	if c.price.Sign() <= 0 {
		return false, ErrPriceUnset
	}
	paid := new(big.Int).Mul(native, c.price)
	return paid.Cmp(cents(usdCents)) >= 0, nil
}

// Points returns how many whole costCents units native pays for beyond
// minCents, capped at max. A zero cost buys nothing.
func (c *Converter) Points(native *big.Int, minCents, costCents, max uint64) (uint64, error) {
	if c.price.Sign() <= 0 {
		return 0, ErrPriceUnset
	}
	if costCents == 0 || max == 0 {
		return 0, nil
	}
	excess := new(big.Int).Mul(native, c.price)
	excess.Sub(excess, cents(minCents))
	if excess.Sign() <= 0 {
		return 0, nil
	}
	points := excess.Div(excess, cents(costCents))
	if !points.IsUint64() || points.Uint64() > max {
		return max, nil
	}
	return points.Uint64(), nil
}

// ToToken converts native base units to token base units, truncating.
func (c *Converter) ToToken(native *big.Int) (*big.Int, error) {
	if c.rate.Sign() <= 0 {
		return nil, ErrRateUnset
	}
	v := new(big.Int).Mul(native, c.rate)
	return v.Div(v, basisPoints), nil
}

// FromToken converts token base units to native base units, truncating.
func (c *Converter) FromToken(token *big.Int) (*big.Int, error) {
	if c.rate.Sign() <= 0 {
		return nil, ErrRateUnset
	}
	v := new(big.Int).Mul(token, basisPoints)
	return v.Div(v, c.rate), nil
}

// NativeValue returns what a payment is worth in native base units.
func (c *Converter) NativeValue(p inter.Payment) (*big.Int, error) {
	if p.Currency == inter.Token {
		return c.FromToken(p.Value())
	}
	return p.Value(), nil
}

// USDToToken converts USD cents to token base units via the native price.
func (c *Converter) USDToToken(usdCents uint64) (*big.Int, error) {
	native, err := c.ToNative(usdCents)
	if err != nil {
		return nil, err
	}
	return c.ToToken(native)
}

// MilliTokens converts a milli-token settings amount to token base units.
func MilliTokens(milli uint32) *big.Int {
	return new(big.Int).Mul(big.NewInt(int64(milli)), MilliTokenUnit)
}
