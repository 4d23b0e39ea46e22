package inter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Ambros-Technology/bcm-public-smartcontract/utils/fast"
)

// TradePermit is an off-chain offer signed by Grantor allowing Grantee to
// take MonsterID at Price until Expiry.
type TradePermit struct {
	ChainID   uint64
	Grantor   common.Address
	Grantee   common.Address
	MonsterID uint64
	Nonce     *big.Int
	Expiry    uint64 // UNIX seconds
	Price     *big.Int
	Currency  Currency
}

// MarshalBinary returns the packed preimage of the permit.
func (p TradePermit) MarshalBinary() ([]byte, error) {
	w := fast.NewWriter(make([]byte, 0, 32+20+20+32+32+8+32+1))
	w.WriteUint256(new(big.Int).SetUint64(p.ChainID))
	w.WriteAddress(p.Grantor)
	w.WriteAddress(p.Grantee)
	w.WriteUint256(new(big.Int).SetUint64(p.MonsterID))
	w.WriteUint256(p.Nonce)
	w.WriteUint64(p.Expiry)
	w.WriteUint256(p.Price)
	w.WriteByte(byte(p.Currency))
	return w.Bytes(), nil
}

// Digest is the EIP-191 prefixed hash the grantor signs.
func (p TradePermit) Digest() common.Hash {
	raw, _ := p.MarshalBinary()
	return common.BytesToHash(accounts.TextHash(crypto.Keccak256(raw)))
}

// Expired reports whether the permit is no longer acceptable at now.
func (p TradePermit) Expired(now Timestamp) bool {
	return uint64(now.Unix()) > p.Expiry
}
