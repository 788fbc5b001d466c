package frame

import (
	"errors"
	"fmt"
)

// HeaderSize is the fixed frame header: 4 id + 4 size + 2 flags.
const HeaderSize = 10

// IDSize is the length of a frame identifier.
const IDSize = 4

var (
	ErrUnsupportedFeature = errors.New("frame: unsupported feature")
	ErrInvalidID          = errors.New("frame: invalid frame id")
	ErrSizeOutOfRange     = errors.New("frame: size exceeds synch-safe range")
	ErrLengthMismatch     = errors.New("frame: data length indicator mismatch")
)

// UnsupportedFeatureError reports a frame that uses a flag this codec
// refuses to honour.
type UnsupportedFeatureError struct {
	ID      string
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("frame: [%s] %s is not supported", e.ID, e.Feature)
}

func (e *UnsupportedFeatureError) Is(target error) bool {
	return target == ErrUnsupportedFeature
}

// Version is an ID3v2 major version. It selects the flag bit layout.
type Version uint8

const (
	V23 Version = 0x3
	V24 Version = 0x4
)

// Encoding is an ID3v2 text encoding key.
type Encoding uint8

const (
	Latin1  Encoding = 0
	UTF16   Encoding = 1
	UTF16BE Encoding = 2
	UTF8    Encoding = 3
)

// Frame is one decoded metadata record. Content is opaque to this package.
type Frame struct {
	ID      string
	Flags   Flags
	Content []byte
}

// New returns an empty frame for id.
func New(id string) *Frame {
	return &Frame{ID: id}
}

func (f *Frame) String() string {
	return fmt.Sprintf("%s flags=%s content=%d", f.ID, f.Flags, len(f.Content))
}

// validID reports whether id is four bytes from A-Z0-9.
func validID(id []byte) bool {
	if len(id) != IDSize {
		return false
	}
	for _, c := range id {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
