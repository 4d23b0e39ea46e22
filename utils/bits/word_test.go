package bits

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var testLayout = MustLayout(
	Slot{"hi", 64},
	Slot{"a", 8},
	Slot{"b", 32},
	Slot{"c", 1},
	Slot{"d", 63},
	Slot{"lo", 64},
	Slot{"pad", 24},
)

func TestLayoutPackKnownWord(t *testing.T) {
	require := require.New(t)

	l := MustLayout(Slot{"a", 64}, Slot{"b", 64}, Slot{"c", 64}, Slot{"d", 64})
	w, err := l.Pack([]uint64{1, 2, 3, 4})
	require.NoError(err)

	exp, _ := new(big.Int).SetString("0000000000000001"+"0000000000000002"+"0000000000000003"+"0000000000000004", 16)
	require.Equal(0, exp.Cmp(w))
	require.Equal(192, l.Offset(0))
	require.Equal(0, l.Offset(3))
}

func TestLayoutRoundTripRand(t *testing.T) {
	require := require.New(t)
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		values := make([]uint64, testLayout.Len())
		for j, s := range testLayout.Slots() {
			v := r.Uint64()
			if s.Width < 64 {
				v &= 1<<uint(s.Width) - 1
			}
			values[j] = v
		}
		w, err := testLayout.Pack(values)
		require.NoError(err)
		require.LessOrEqual(w.BitLen(), WordBits)

		got, err := testLayout.Unpack(w)
		require.NoError(err)
		require.Equal(values, got)
	}
}

func TestLayoutErrors(t *testing.T) {
	require := require.New(t)

	_, err := testLayout.Pack([]uint64{0, 256, 0, 0, 0, 0, 0})
	require.True(errors.Is(err, ErrSlotOverflow))

	_, err = testLayout.Pack([]uint64{1})
	require.Error(err)

	tooWide := new(big.Int).Lsh(big.NewInt(1), WordBits)
	_, err = testLayout.Unpack(tooWide)
	require.Equal(ErrWordOverflow, err)

	_, err = testLayout.Unpack(big.NewInt(-1))
	require.Equal(ErrWordOverflow, err)

	require.Panics(func() { MustLayout(Slot{"x", 8}) })
	require.Panics(func() { MustLayout(Slot{"x", 128}, Slot{"y", 128}) })
}
