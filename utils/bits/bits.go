package bits

// This package implements a low-level bit stream Reader and Writer plus a
// fixed-width 256-bit word Layout built on top of them.
//
// The stream is LSB-first: the first written bit lands in bit 0 of Bytes[0].
// Layout uses the stream to pack ordered slots into the big-endian 256-bit
// integers stored by the game contracts (species settings, genes, duel
// outcome messages).

type (
	// Array is a container for the underlying byte slice that holds the bitstream.
	Array struct {
		Bytes []byte
	}

	// Writer appends variable numbers of bits into an Array.
	Writer struct {
		*Array
		bitOffset int // 0-7: index of the next bit to write in Bytes[last]
	}

	// Reader consumes variable numbers of bits from an Array.
	Reader struct {
		*Array
		byteOffset int
		bitOffset  int
	}
)

// NewWriter creates a new bitstream writer pointing to the given array.
func NewWriter(arr *Array) *Writer {
	return &Writer{
		Array: arr,
	}
}

// NewReader creates a new bitstream reader pointing to the given array.
func NewReader(arr *Array) *Reader {
	return &Reader{
		Array: arr,
	}
}

func (a *Writer) byteBitsFree() int {
	return 8 - a.bitOffset
}

func (a *Writer) writeIntoLastByte(v uint64) {
	a.Bytes[len(a.Bytes)-1] |= byte(v << a.bitOffset)
}

// zeroTopByteBits keeps the lowest 8-bits bits of v.
func zeroTopByteBits(v uint64, bits int) uint64 {
	mask := uint64(0xff) >> bits
	return v & mask
}

// Write appends the lowest 'bits' bits of v into the bitstream.
// The caller guarantees v < 2^bits; higher bits would leak into the next slot.
func (a *Writer) Write(bits int, v uint64) {
	if bits == 0 {
		return
	}
	if a.bitOffset == 0 {
		a.Bytes = append(a.Bytes, byte(0))
	}

	free := a.byteBitsFree()

	if bits <= free {
		a.writeIntoLastByte(v)
		if bits == free {
			a.bitOffset = 0
		} else {
			a.bitOffset += bits
		}
		return
	}

	// spill over: fill the current byte, then continue with the rest
	a.writeIntoLastByte(zeroTopByteBits(v, a.bitOffset))
	a.bitOffset = 0
	a.Write(bits-free, v>>free)
}

func (a *Reader) byteBitsFree() int {
	return 8 - a.bitOffset
}

// Read extracts 'bits' bits from the stream and advances the cursor.
func (a *Reader) Read(bits int) (v uint64) {
	if bits == 0 {
		return 0
	}

	free := a.byteBitsFree()

	if bits <= free {
		clear := 8 - (a.bitOffset + bits)
		v = zeroTopByteBits(uint64(a.Bytes[a.byteOffset]), clear) >> a.bitOffset
		if bits == free {
			a.bitOffset = 0
			a.byteOffset++
		} else {
			a.bitOffset += bits
		}
		return
	}

	v = uint64(a.Bytes[a.byteOffset]) >> a.bitOffset
	a.bitOffset = 0
	a.byteOffset++

	rest := a.Read(bits - free)
	v |= rest << free
	return
}

// View peeks at the next 'bits' without advancing the cursor.
func (a *Reader) View(bits int) (v uint64) {
	cp := *a
	return cp.Read(bits)
}

// NonReadBytes returns the number of unconsumed bytes, counting a partially read one.
func (a *Reader) NonReadBytes() int {
	return len(a.Bytes) - a.byteOffset
}

// NonReadBits returns the total number of unread bits.
func (a *Reader) NonReadBits() int {
	return a.NonReadBytes()*8 - a.bitOffset
}
