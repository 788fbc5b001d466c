package tag

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/tagframe/internal/protocol/unsynch"
)

// HeaderSize is the tag header and footer length.
const HeaderSize = 10

const (
	flagUnsynchronisation byte = 0x80
	flagExtendedHeader    byte = 0x40
	flagExperimental      byte = 0x20
	flagFooter            byte = 0x10
)

var magic = []byte("ID3")

var (
	ErrNoTag              = errors.New("tag: no ID3v2 tag")
	ErrUnsupportedVersion = errors.New("tag: unsupported version")
	ErrExtendedHeader     = errors.New("tag: invalid extended header")
	ErrNegativePadding    = errors.New("tag: negative padding")
)

// Header is the fixed ID3v2 tag header.
type Header struct {
	Version           uint8
	Revision          uint8
	Unsynchronisation bool
	ExtendedHeader    bool
	Experimental      bool
	Footer            bool
	// Size excludes the header and footer.
	Size uint32
}

// ReadHeader reads and checks a v2.4 tag header.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, err
	}
	return ParseHeader(buf[:])
}

// ParseHeader decodes a 10-byte tag header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, fmt.Errorf("tag: invalid header length: %d", len(b))
	}
	if !bytes.Equal(b[0:3], magic) {
		return Header{}, ErrNoTag
	}
	h := Header{
		Version:           b[3],
		Revision:          b[4],
		Unsynchronisation: b[5]&flagUnsynchronisation != 0,
		ExtendedHeader:    b[5]&flagExtendedHeader != 0,
		Experimental:      b[5]&flagExperimental != 0,
		Footer:            b[5]&flagFooter != 0,
		Size:              unsynch.Uint32(b[6:10]),
	}
	if h.Version != 4 {
		return Header{}, fmt.Errorf("%w: 2.%d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}

// Bytes encodes h. Version is forced to 2.4.
func (h Header) Bytes() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:3], magic)
	buf[3] = 4
	buf[4] = h.Revision
	if h.Unsynchronisation {
		buf[5] |= flagUnsynchronisation
	}
	if h.ExtendedHeader {
		buf[5] |= flagExtendedHeader
	}
	if h.Experimental {
		buf[5] |= flagExperimental
	}
	if h.Footer {
		buf[5] |= flagFooter
	}
	unsynch.PutUint32(buf[6:10], h.Size)
	return buf
}
