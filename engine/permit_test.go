package engine

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm"
	"github.com/Ambros-Technology/bcm-public-smartcontract/evmcore"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/ledger"
)

func testPermit(grantor *ecdsa.PrivateKey, nonce int64) inter.TradePermit {
	return inter.TradePermit{
		ChainID:   bcm.FakeNetworkID,
		Grantor:   crypto.PubkeyToAddress(grantor.PublicKey),
		Grantee:   evmcore.FakeAccount(3),
		MonsterID: 268,
		Nonce:     big.NewInt(nonce),
		Expiry:    expiresAt,
		Price:     ether(1500),
		Currency:  inter.Token,
	}
}

func signPermit(t *testing.T, p inter.TradePermit, key *ecdsa.PrivateKey) []byte {
	sig, err := ledger.Sign(p.Digest(), key)
	require.NoError(t, err)
	return sig
}

func TestPermitConsumedOnce(t *testing.T) {
	env := newTestEnv(t)
	r := env.require
	key := evmcore.FakeKey(2)

	p := testPermit(key, 1)
	sig := signPermit(t, p, key)
	got, err := env.VerifyAndConsume(p, sig)
	r.NoError(err)
	r.Equal(p, got)
	r.True(env.PermitUsed(p.Grantor, p.Nonce))

	_, err = env.VerifyAndConsume(p, sig)
	r.True(errors.Is(err, ErrUsedPermit), err)

	// the nonce, not the permit, is consumed
	other := p
	other.Price = ether(1)
	_, err = env.VerifyAndConsume(other, signPermit(t, other, key))
	r.True(errors.Is(err, ErrUsedPermit), err)

	// nonces are scoped per grantor
	key2 := evmcore.FakeKey(4)
	p2 := testPermit(key2, 1)
	_, err = env.VerifyAndConsume(p2, signPermit(t, p2, key2))
	r.NoError(err)
}

func TestPermitCancelBeforeIssue(t *testing.T) {
	env := newTestEnv(t)
	r := env.require
	key := evmcore.FakeKey(2)
	grantor := crypto.PubkeyToAddress(key.PublicKey)

	r.NoError(env.CancelPermit(grantor, big.NewInt(7)))
	ev := <-env.cancels
	r.Equal(grantor, ev.Grantor)
	r.Equal(0, ev.Nonce.Cmp(big.NewInt(7)))

	p := testPermit(key, 7)
	_, err := env.VerifyAndConsume(p, signPermit(t, p, key))
	r.True(errors.Is(err, ErrUsedPermit), err)

	// cancelling twice is harmless
	r.NoError(env.CancelPermit(grantor, big.NewInt(7)))
	r.True(errors.Is(env.CancelPermit(grantor, big.NewInt(-7)), ErrInvalidValue))
}

func TestPermitRejections(t *testing.T) {
	env := newTestEnv(t)
	key := evmcore.FakeKey(2)

	expired := testPermit(key, 3)
	expired.Expiry = startUnix - 1
	wrongChain := testPermit(key, 4)
	wrongChain.ChainID = bcm.MainNetworkID
	forged := testPermit(key, 5)
	// a used nonce is reported before expiry
	usedAndExpired := testPermit(key, 6)
	usedAndExpired.Expiry = startUnix - 1
	require.NoError(t, env.CancelPermit(usedAndExpired.Grantor, usedAndExpired.Nonce))

	for _, tc := range []struct {
		name string
		p    inter.TradePermit
		sig  []byte
		want error
	}{
		{"signed by someone else", forged, signPermit(t, forged, evmcore.FakeKey(9)), ErrInvalidSignature},
		{"malformed signature", forged, []byte{1, 2, 3}, ErrInvalidSignature},
		{"expired", expired, signPermit(t, expired, key), ErrExpired},
		{"other chain", wrongChain, signPermit(t, wrongChain, key), ErrInvalidChain},
		{"used before expired", usedAndExpired, signPermit(t, usedAndExpired, key), ErrUsedPermit},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.VerifyAndConsume(tc.p, tc.sig)
			require.True(t, errors.Is(err, tc.want), err)
		})
	}
	require.False(t, env.PermitUsed(forged.Grantor, forged.Nonce))
	require.False(t, env.PermitUsed(expired.Grantor, expired.Nonce))
}

func TestPermitNonceMustBeCanonical(t *testing.T) {
	env := newTestEnv(t)
	r := env.require
	key := evmcore.FakeKey(2)

	top := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	p := testPermit(key, 0)
	p.Nonce = top
	sig := signPermit(t, p, key)

	// -1 and 2^256+n sign the same digest as their 256-bit residues
	for _, alias := range []*big.Int{big.NewInt(-1), new(big.Int).Add(top, new(big.Int).Lsh(big.NewInt(1), 256))} {
		q := p
		q.Nonce = alias
		r.Equal(p.Digest(), q.Digest())
		_, err := env.VerifyAndConsume(q, sig)
		r.True(errors.Is(err, ErrInvalidValue), err)
	}
	r.False(env.PermitUsed(p.Grantor, top))

	_, err := env.VerifyAndConsume(p, sig)
	r.NoError(err)
	_, err = env.VerifyAndConsume(p, sig)
	r.True(errors.Is(err, ErrUsedPermit), err)

	negative := testPermit(key, 8)
	negative.Price = big.NewInt(-1)
	_, err = env.VerifyAndConsume(negative, signPermit(t, negative, key))
	r.True(errors.Is(err, ErrInvalidValue), err)
	r.False(env.PermitUsed(negative.Grantor, negative.Nonce))
}
