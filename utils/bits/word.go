package bits

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// WordBits is the width of every packed word.
const WordBits = 256

var (
	// ErrSlotOverflow is returned when a value does not fit its slot width.
	ErrSlotOverflow = errors.New("value exceeds slot width")
	// ErrWordOverflow is returned when a word is negative or wider than 256 bits.
	ErrWordOverflow = errors.New("word exceeds 256 bits")
)

// Slot is a named fixed-width field of a packed word.
type Slot struct {
	Name  string
	Width int
}

// Layout describes a 256-bit word as an ordered list of slots, listed from
// the most significant field to the least significant one.
type Layout struct {
	slots []Slot
}

// MustLayout builds a Layout and panics unless the slot widths add up to
// exactly 256 bits and no slot is wider than 64 bits.
func MustLayout(slots ...Slot) Layout {
	total := 0
	for _, s := range slots {
		if s.Width <= 0 || s.Width > 64 {
			panic(fmt.Sprintf("bits: slot %q has unsupported width %d", s.Name, s.Width))
		}
		total += s.Width
	}
	if total != WordBits {
		panic(fmt.Sprintf("bits: layout covers %d bits, want %d", total, WordBits))
	}
	return Layout{slots: append([]Slot(nil), slots...)}
}

// Len returns the number of slots.
func (l Layout) Len() int {
	return len(l.slots)
}

// Slots returns a copy of the slot list.
func (l Layout) Slots() []Slot {
	return append([]Slot(nil), l.slots...)
}

// Offset returns the bit position of the lowest bit of slot i.
func (l Layout) Offset(i int) int {
	off := WordBits
	for j := 0; j <= i; j++ {
		off -= l.slots[j].Width
	}
	return off
}

func fits(v uint64, width int) bool {
	return width == 64 || v>>uint(width) == 0
}

// Pack encodes values (one per slot, in layout order) into a word.
func (l Layout) Pack(values []uint64) (*big.Int, error) {
	if len(values) != len(l.slots) {
		return nil, fmt.Errorf("bits: got %d values for %d slots", len(values), len(l.slots))
	}
	arr := Array{Bytes: make([]byte, 0, WordBits/8)}
	w := NewWriter(&arr)
	for i := len(l.slots) - 1; i >= 0; i-- {
		s := l.slots[i]
		if !fits(values[i], s.Width) {
			return nil, fmt.Errorf("%w: %s=%d does not fit %d bits", ErrSlotOverflow, s.Name, values[i], s.Width)
		}
		w.Write(s.Width, values[i])
	}
	return new(big.Int).SetBytes(reverse(arr.Bytes)), nil
}

// Unpack decodes a word into one value per slot, in layout order.
func (l Layout) Unpack(word *big.Int) ([]uint64, error) {
	if word == nil {
		word = new(big.Int)
	}
	if word.Sign() < 0 || word.BitLen() > WordBits {
		return nil, ErrWordOverflow
	}
	arr := Array{Bytes: reverse(math.PaddedBigBytes(word, WordBits/8))}
	r := NewReader(&arr)
	values := make([]uint64, len(l.slots))
	for i := len(l.slots) - 1; i >= 0; i-- {
		values[i] = r.Read(l.slots[i].Width)
	}
	return values, nil
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
