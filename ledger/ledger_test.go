package ledger

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/Ambros-Technology/bcm-public-smartcontract/evmcore"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/store"
)

var (
	alice = common.HexToAddress("0xa11ce00000000000000000000000000000000001")
	bob   = common.HexToAddress("0xb0b0000000000000000000000000000000000002")
)

func TestNative(t *testing.T) {
	require := require.New(t)

	statedb := evmcore.NewMemoryState()
	statedb.SetBalance(alice, big.NewInt(100))
	n := NewNative(statedb)

	require.NoError(n.Transfer(alice, bob, big.NewInt(40)))
	require.Equal(big.NewInt(60), n.BalanceOf(alice))
	require.Equal(big.NewInt(40), n.BalanceOf(bob))

	err := n.Transfer(alice, bob, big.NewInt(61))
	require.True(errors.Is(err, ErrInsufficientFunds), err)
	require.Equal(big.NewInt(60), n.BalanceOf(alice))

	require.Equal(ErrNegativeAmount, n.Transfer(alice, bob, big.NewInt(-1)))
	require.NoError(n.Transfer(bob, alice, new(big.Int)))
}

func TestToken(t *testing.T) {
	require := require.New(t)

	tok := NewToken(evmcore.NewMemoryState())
	require.Equal(0, tok.BalanceOf(alice).Sign())

	require.NoError(tok.Mint(alice, big.NewInt(1000)))
	require.NoError(tok.Mint(bob, big.NewInt(5)))
	require.Equal(big.NewInt(1005), tok.TotalSupply())

	require.NoError(tok.Transfer(alice, bob, big.NewInt(300)))
	require.Equal(big.NewInt(700), tok.BalanceOf(alice))
	require.Equal(big.NewInt(305), tok.BalanceOf(bob))

	err := tok.Transfer(bob, alice, big.NewInt(306))
	require.True(errors.Is(err, ErrTransferExceedsBalance), err)

	// self transfer keeps the balance
	require.NoError(tok.Transfer(alice, alice, big.NewInt(700)))
	require.Equal(big.NewInt(700), tok.BalanceOf(alice))
	require.Equal(big.NewInt(1005), tok.TotalSupply())
}

func TestRegistry(t *testing.T) {
	require := require.New(t)

	r := NewRegistry(evmcore.NewMemoryState())

	_, err := r.OwnerOf(268)
	require.True(errors.Is(err, ErrNonexistentMonster))

	require.NoError(r.Mint(alice, 268))
	require.NoError(r.Mint(alice, 524))
	require.True(errors.Is(r.Mint(bob, 268), ErrAlreadyMinted))
	require.Equal(ErrZeroAddress, r.Mint(common.Address{}, 780))

	owner, err := r.OwnerOf(268)
	require.NoError(err)
	require.Equal(alice, owner)
	require.Equal(uint64(2), r.BalanceOf(alice))

	require.True(errors.Is(r.Transfer(bob, alice, 268), ErrNotOwner))
	require.NoError(r.Transfer(alice, bob, 268))
	require.Equal(uint64(1), r.BalanceOf(alice))
	require.Equal(uint64(1), r.BalanceOf(bob))

	require.NoError(r.Burn(268))
	require.False(r.Exists(268))
	require.Equal(uint64(0), r.BalanceOf(bob))
	require.True(errors.Is(r.Burn(268), ErrNonexistentMonster))
}

func TestRoles(t *testing.T) {
	require := require.New(t)

	roles := NewRoles(store.New(evmcore.NewMemoryState(), store.ContractAddress))

	err := roles.IsAuthorized(alice, inter.ActionConfigure)
	require.True(errors.Is(err, ErrUnauthorized))

	roles.Grant(inter.ActionConfigure, alice)
	require.NoError(roles.IsAuthorized(alice, inter.ActionConfigure))
	require.Error(roles.IsAuthorized(alice, inter.ActionSetBlockHash))

	roles.Grant(inter.ActionAdmin, bob)
	for _, a := range []inter.Action{inter.ActionAdmin, inter.ActionConfigure, inter.ActionSetBlockHash} {
		require.NoError(roles.IsAuthorized(bob, a), a)
	}
	require.Error(roles.IsAuthorized(bob, inter.ActionSignDuel))

	roles.Revoke(inter.ActionConfigure, alice)
	require.Error(roles.IsAuthorized(alice, inter.ActionConfigure))
}

func TestECDSARecoverer(t *testing.T) {
	require := require.New(t)

	key, err := crypto.GenerateKey()
	require.NoError(err)
	want := crypto.PubkeyToAddress(key.PublicKey)
	digest := crypto.Keccak256Hash([]byte("duel"))

	sig, err := Sign(digest, key)
	require.NoError(err)
	require.True(sig[64] == 27 || sig[64] == 28)

	got, err := ECDSARecoverer{}.Recover(digest, sig)
	require.NoError(err)
	require.Equal(want, got)

	raw := append([]byte(nil), sig...)
	raw[64] -= 27
	got, err = ECDSARecoverer{}.Recover(digest, raw)
	require.NoError(err)
	require.Equal(want, got)

	// another digest recovers another address
	got, err = ECDSARecoverer{}.Recover(crypto.Keccak256Hash([]byte("other")), sig)
	if err == nil {
		require.NotEqual(want, got)
	}

	for name, bad := range map[string][]byte{
		"short":    sig[:64],
		"bad v":    append(append([]byte(nil), sig[:64]...), 5),
		"empty":    nil,
		"too long": append(append([]byte(nil), sig...), 0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ECDSARecoverer{}.Recover(digest, bad)
			require.True(errors.Is(err, ErrBadSignature), err)
		})
	}
}
