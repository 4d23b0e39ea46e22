package store

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Settings slots.
var (
	priceKey    = Slot("settings.price")
	rateKey     = Slot("settings.rate")
	maxRatioKey = Slot("settings.maxRatio")
)

// ChainCurrencyPrice returns USD cents per whole native coin.
func (s *Store) ChainCurrencyPrice() *big.Int {
	return s.getBig(priceKey)
}

// SetChainCurrencyPrice stores USD cents per whole native coin.
func (s *Store) SetChainCurrencyPrice(v *big.Int) {
	s.setBig(priceKey, v)
}

// ExchangeRate returns game tokens per native coin in basis points.
func (s *Store) ExchangeRate() *big.Int {
	return s.getBig(rateKey)
}

// SetExchangeRate stores game tokens per native coin in basis points.
func (s *Store) SetExchangeRate(v *big.Int) {
	s.setBig(rateKey, v)
}

// MaxRewardRatio returns the highest accepted duel reward ratio and whether
// it was ever set.
func (s *Store) MaxRewardRatio() (uint64, bool) {
	h := s.get(maxRatioKey)
	if h == (common.Hash{}) {
		return 0, false
	}
	// stored off by one so that zero stays distinguishable from unset
	return hashUint64(h) - 1, true
}

// SetMaxRewardRatio stores the highest accepted duel reward ratio.
func (s *Store) SetMaxRewardRatio(v uint64) {
	s.setUint64(maxRatioKey, v+1)
}

// HasRole reports whether an account holds a role.
func (s *Store) HasRole(role string, acc common.Address) bool {
	return s.flag(Slot("role", []byte(role), acc.Bytes()))
}

// SetRole grants or revokes a role.
func (s *Store) SetRole(role string, acc common.Address, granted bool) {
	s.setFlag(Slot("role", []byte(role), acc.Bytes()), granted)
}
