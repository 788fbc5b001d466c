// Package unsynch implements the ID3v2 synchronisation-safety primitives:
// the 28-bit synch-safe integer used by size fields and the byte-escaping
// scheme that removes false MPEG sync patterns from frame content.
package unsynch

import (
	"encoding/binary"
	"io"
)

// MaxUint32 is the largest value a synch-safe integer can carry.
const MaxUint32 uint32 = 1<<28 - 1

// EncodeUint32 spreads the low 28 bits of n over four 7-bit groups.
// Values above MaxUint32 lose their high bits.
func EncodeUint32(n uint32) uint32 {
	return n&0x7f |
		(n&0x3f80)<<1 |
		(n&0x1fc000)<<2 |
		(n&0xfe00000)<<3
}

// DecodeUint32 packs the low 7 bits of each byte of n into a 28-bit value.
// The top bit of every byte is ignored.
func DecodeUint32(n uint32) uint32 {
	return n&0x7f |
		(n&0x7f00)>>1 |
		(n&0x7f0000)>>2 |
		(n&0x7f000000)>>3
}

// PutUint32 writes the synch-safe form of n into b[0:4].
func PutUint32(b []byte, n uint32) {
	binary.BigEndian.PutUint32(b, EncodeUint32(n))
}

// Uint32 reads a synch-safe value from b[0:4].
func Uint32(b []byte) uint32 {
	return DecodeUint32(binary.BigEndian.Uint32(b))
}

// ReadUint32 reads one 4-byte synch-safe field from r.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return Uint32(buf[:]), nil
}

// Encode returns b with a 0x00 inserted after every 0xFF that is followed
// by 0x00 or by a byte in 0xE0..0xFF, and after a trailing 0xFF.
// b is returned unchanged when nothing needs escaping.
func Encode(b []byte) []byte {
	extra := 0
	for i, c := range b {
		if c == 0xff && (i+1 == len(b) || needsEscape(b[i+1])) {
			extra++
		}
	}
	if extra == 0 {
		return b
	}
	out := make([]byte, 0, len(b)+extra)
	for i, c := range b {
		out = append(out, c)
		if c == 0xff && (i+1 == len(b) || needsEscape(b[i+1])) {
			out = append(out, 0x00)
		}
	}
	return out
}

// Decode reverses Encode: the 0x00 following each 0xFF is dropped.
func Decode(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xff && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}
	return out
}

func needsEscape(next byte) bool {
	return next == 0x00 || next&0xe0 == 0xe0
}
