package fast

// buffer.go provides a lightweight, non-thread-safe wrapper around byte slices
// used to build tightly packed (abi.encodePacked style) byte strings, the
// preimages of every signed game message.
//
// Reader performs no bounds checking: reading past the end panics. Use
// Remaining before consuming untrusted input.

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

type Reader struct {
	buf    []byte
	offset int
}

type Writer struct {
	buf []byte
}

// NewReader creates a Reader to consume the provided byte slice.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:    bb,
		offset: 0,
	}
}

// NewWriter creates a Writer that appends to the provided initial slice.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteByte appends a single byte to the buffer.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends a slice of bytes to the buffer.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// WriteUint64 appends v as 8 big-endian bytes.
func (b *Writer) WriteUint64(v uint64) {
	b.Write(bigendian.Uint64ToBytes(v))
}

// WriteUint256 appends v as 32 big-endian bytes. Negative or oversized
// values are reduced modulo 2^256, like a uint256 cast.
func (b *Writer) WriteUint256(v *big.Int) {
	if v == nil {
		v = new(big.Int)
	}
	b.Write(math.U256Bytes(new(big.Int).Set(v)))
}

// WriteAddress appends the 20 address bytes.
func (b *Writer) WriteAddress(addr common.Address) {
	b.Write(addr.Bytes())
}

// Read consumes and returns the next n bytes. The result shares memory with
// the underlying buffer.
func (b *Reader) Read(n int) []byte {
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res
}

// ReadByte consumes and returns a single byte.
func (b *Reader) ReadByte() byte {
	res := b.buf[b.offset]
	b.offset++
	return res
}

// ReadUint64 consumes 8 big-endian bytes.
func (b *Reader) ReadUint64() uint64 {
	return bigendian.BytesToUint64(b.Read(8))
}

// ReadUint256 consumes 32 big-endian bytes.
func (b *Reader) ReadUint256() *big.Int {
	return new(big.Int).SetBytes(b.Read(32))
}

// ReadAddress consumes 20 bytes.
func (b *Reader) ReadAddress() common.Address {
	return common.BytesToAddress(b.Read(common.AddressLength))
}

// Position returns the current cursor index of the Reader.
func (b *Reader) Position() int {
	return b.offset
}

// Remaining returns the number of unread bytes.
func (b *Reader) Remaining() int {
	return len(b.buf) - b.offset
}

// Bytes returns the entire underlying buffer of the Reader.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Bytes returns the accumulated content of the Writer.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Empty reports whether the Reader has reached the end of the buffer.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}
