package economy

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return v
}

// $451 per coin, 10 tokens per coin
func testConverter() *Converter {
	return New(big.NewInt(45100), big.NewInt(100000))
}

func TestToNative(t *testing.T) {
	c := testConverter()
	for _, tc := range []struct {
		cents uint64
		floor string
		ceil  string
	}{
		{2000, "44345898004434589", "44345898004434590"},
		{100, "2217294900221729", "2217294900221730"},
		{3500, "77605321507760532", "77605321507760533"},
		{0, "0", "0"},
		{45100, "1000000000000000000", "1000000000000000000"},
	} {
		got, err := c.ToNative(tc.cents)
		require.NoError(t, err)
		require.Equal(t, tc.floor, got.String())

		got, err = c.ToNativeCeil(tc.cents)
		require.NoError(t, err)
		require.Equal(t, tc.ceil, got.String())

		ok, err := c.Covers(got, tc.cents)
		require.NoError(t, err)
		require.True(t, ok, "ceil amount must cover %d cents", tc.cents)
	}
}

func TestCoversNeverUndercharges(t *testing.T) {
	require := require.New(t)
	c := testConverter()

	ok, err := c.Covers(mustBig("77605321507760532"), 3500)
	require.NoError(err)
	require.False(ok, "truncated amount is one wei short")

	ok, err = c.Covers(mustBig("77610000000000000"), 3500)
	require.NoError(err)
	require.True(ok)
}

func TestPoints(t *testing.T) {
	c := testConverter()
	for _, tc := range []struct {
		name    string
		paid    string
		cost    uint64
		max     uint64
		expects uint64
	}{
		{"exact minimum", "44345898004434590", 100, 10, 0},
		{"one point", "46620000000000000", 100, 10, 1},
		{"just short of two", "48780000000000000", 100, 10, 1},
		{"capped", "1000000000000000000", 100, 10, 10},
		{"below minimum", "1", 100, 10, 0},
		{"free points are not sold", "1000000000000000000", 0, 10, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Points(mustBig(tc.paid), 2000, tc.cost, tc.max)
			require.NoError(t, err)
			require.Equal(t, tc.expects, got)
		})
	}
}

func TestTokenConversion(t *testing.T) {
	require := require.New(t)
	c := testConverter()

	tok, err := c.ToToken(big.NewInt(1e18))
	require.NoError(err)
	require.Equal(mustBig("10000000000000000000"), tok)

	native, err := c.FromToken(tok)
	require.NoError(err)
	require.Equal(big.NewInt(1e18), native)

	v, err := c.NativeValue(inter.TokenPayment(big.NewInt(25)))
	require.NoError(err)
	require.Equal(big.NewInt(2), v, "truncates toward zero")

	v, err = c.NativeValue(inter.NativePayment(big.NewInt(25)))
	require.NoError(err)
	require.Equal(big.NewInt(25), v)

	insurance, err := c.USDToToken(3500)
	require.NoError(err)
	require.Equal("776053215077605320", insurance.String())
}

func TestUnsetSettings(t *testing.T) {
	require := require.New(t)
	c := New(nil, nil)

	_, err := c.ToNative(1)
	require.Equal(ErrPriceUnset, err)
	_, err = c.ToNativeCeil(1)
	require.Equal(ErrPriceUnset, err)
	_, err = c.Covers(big.NewInt(1), 1)
	require.Equal(ErrPriceUnset, err)
	_, err = c.Points(big.NewInt(1), 1, 1, 1)
	require.Equal(ErrPriceUnset, err)
	_, err = c.ToToken(big.NewInt(1))
	require.Equal(ErrRateUnset, err)
	_, err = c.FromToken(big.NewInt(1))
	require.Equal(ErrRateUnset, err)
	require.Equal(0, c.Price().Sign())
}

func TestMilliTokens(t *testing.T) {
	require.Equal(t, "10000000000000000000", MilliTokens(10000).String())
	require.Equal(t, "8000000000000000000", MilliTokens(8000).String())
}
