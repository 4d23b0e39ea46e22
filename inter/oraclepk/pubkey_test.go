package oraclepk

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	require := require.New(t)

	exp := PubKey{
		Type: Types.Secp256k1,
		Raw:  common.FromHex("45b86101f804f3f4f2012ef31fff807e87de579a3faa7947d1b487a810e35dc2c3b6071ac465046634b5f4a8e09bf8e1f2e7eccb699356b9e6fd496ca4b1677d1"),
	}
	for _, s := range []string{
		"c0045b86101f804f3f4f2012ef31fff807e87de579a3faa7947d1b487a810e35dc2c3b6071ac465046634b5f4a8e09bf8e1f2e7eccb699356b9e6fd496ca4b1677d1",
		"0xc0045b86101f804f3f4f2012ef31fff807e87de579a3faa7947d1b487a810e35dc2c3b6071ac465046634b5f4a8e09bf8e1f2e7eccb699356b9e6fd496ca4b1677d1",
	} {
		got, err := FromString(s)
		require.NoError(err)
		require.Equal(exp, got)
	}

	_, err := FromString("")
	require.Error(err)
	_, err = FromString("0x")
	require.Error(err)
}

func TestAddressMatchesSigner(t *testing.T) {
	require := require.New(t)

	key, err := crypto.GenerateKey()
	require.NoError(err)

	pk := FromECDSA(&key.PublicKey)
	addr, err := pk.Address()
	require.NoError(err)
	require.Equal(crypto.PubkeyToAddress(key.PublicKey), addr)

	parsed, err := FromString(pk.String())
	require.NoError(err)
	require.Equal(pk, parsed)

	_, err = PubKey{Type: 0x01, Raw: pk.Raw}.Address()
	require.Error(err)
	_, err = PubKey{Type: Types.Secp256k1, Raw: []byte{1, 2, 3}}.Address()
	require.Error(err)
}

func TestJSONText(t *testing.T) {
	require := require.New(t)

	key, err := crypto.GenerateKey()
	require.NoError(err)
	pk := FromECDSA(&key.PublicKey)

	raw, err := json.Marshal(&pk)
	require.NoError(err)
	require.Equal(`"`+pk.String()+`"`, string(raw))

	var back PubKey
	require.NoError(json.Unmarshal(raw, &back))
	require.Equal(pk, back)

	cp := pk.Copy()
	cp.Raw[0] ^= 0xff
	require.NotEqual(pk.Raw[0], cp.Raw[0])
	require.False(pk.Empty())
	require.True(PubKey{}.Empty())
}
