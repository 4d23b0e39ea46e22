// Package oraclepk represents the public keys of trusted duel oracles.
// Keys are kept as a type byte plus raw bytes so configuration files and
// flags can carry them as a single hex string; the oracle identity checked
// against recovered signatures is the key's Ethereum address.
package oraclepk

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PubKey is a typed oracle public key.
type PubKey struct {
	Type uint8
	Raw  []byte
}

// Types lists the supported key types.
var Types = struct {
	Secp256k1 uint8
}{
	Secp256k1: 0xc0,
}

// FromECDSA wraps an uncompressed secp256k1 public key.
func FromECDSA(pub *ecdsa.PublicKey) PubKey {
	return PubKey{
		Type: Types.Secp256k1,
		Raw:  crypto.FromECDSAPub(pub),
	}
}

// Empty reports whether the key is unset.
func (pk PubKey) Empty() bool {
	return len(pk.Raw) == 0 && pk.Type == 0
}

// String returns the 0x-prefixed hex of Bytes.
func (pk PubKey) String() string {
	return "0x" + common.Bytes2Hex(pk.Bytes())
}

// Bytes returns [Type] followed by Raw.
func (pk PubKey) Bytes() []byte {
	return append([]byte{pk.Type}, pk.Raw...)
}

// Copy returns a deep copy.
func (pk PubKey) Copy() PubKey {
	return PubKey{
		Type: pk.Type,
		Raw:  common.CopyBytes(pk.Raw),
	}
}

// Address derives the signer address messages must recover to.
func (pk PubKey) Address() (common.Address, error) {
	if pk.Type != Types.Secp256k1 {
		return common.Address{}, fmt.Errorf("unsupported oracle key type %#x", pk.Type)
	}
	pub, err := crypto.UnmarshalPubkey(pk.Raw)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// FromString parses a hex string, with or without 0x prefix.
func FromString(str string) (PubKey, error) {
	return FromBytes(common.FromHex(str))
}

// FromBytes parses [Type] followed by Raw.
func FromBytes(b []byte) (PubKey, error) {
	if len(b) == 0 {
		return PubKey{}, errors.New("empty pubkey")
	}
	return PubKey{b[0], b[1:]}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (pk PubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PubKey) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*pk = res
	return nil
}
