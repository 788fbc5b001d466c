package frame

import (
	"encoding/binary"
	"io"

	"github.com/danmuck/tagframe/internal/protocol/unsynch"
	"github.com/rs/zerolog/log"
)

// V4 is the ID3v2.4 frame codec. The zero value uses DecodeContent and
// EncodeContent.
type V4 struct {
	DecodeContent ContentDecoder
	EncodeContent ContentEncoder

	// StrictLength rejects frames whose data length indicator disagrees
	// with the decoded content length. Off by default: the indicator is
	// read and discarded.
	StrictLength bool
}

var _ Codec = (*V4)(nil)

// Decode reads one frame from r.
//
// On an unsupported feature the returned count is the full declared frame
// length and only the 10 header bytes have been consumed, so the caller can
// discard the rest and keep walking.
func (c *V4) Decode(r io.Reader) (int, *Frame, error) {
	id, ok, err := readIDOrPadding(r)
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		log.Debug().Msg("frame: padding reached")
		return 0, nil, nil
	}
	f := New(id)
	log.Debug().Str("id", id).Msg("reading frame")

	var head [HeaderSize - IDSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return 0, nil, err
	}
	contentSize := unsynch.Uint32(head[0:4])
	n := HeaderSize + int(contentSize)

	flags := ParseFlags(binary.BigEndian.Uint16(head[4:6]))
	if feature, bad := flags.unsupported(); bad {
		log.Debug().Str("id", id).Str("feature", feature).Msg("unsupported frame feature")
		return n, nil, &UnsupportedFeatureError{ID: id, Feature: feature}
	}
	f.Flags = flags

	readSize := contentSize
	var decompressedSize uint32
	if flags.DataLengthIndicator {
		decompressedSize, err = unsynch.ReadUint32(r)
		if err != nil {
			return 0, nil, err
		}
		if readSize < 4 {
			readSize = 0
		} else {
			readSize -= 4
		}
	}

	decode := c.DecodeContent
	if decode == nil {
		decode = DecodeContent
	}
	content, err := decode(io.LimitReader(r, int64(readSize)), id, flags)
	if err != nil {
		return 0, nil, err
	}
	if c.StrictLength && flags.DataLengthIndicator && uint32(len(content)) != decompressedSize {
		log.Debug().
			Str("id", id).
			Uint32("indicated", decompressedSize).
			Int("decoded", len(content)).
			Msg("data length indicator mismatch")
		return 0, nil, ErrLengthMismatch
	}
	f.Content = content

	return n, f, nil
}

// Write encodes f to w and returns the number of bytes written. f is not
// modified.
func (c *V4) Write(w io.Writer, f *Frame) (int, error) {
	if len(f.ID) != IDSize {
		return 0, ErrInvalidID
	}
	if feature, bad := f.Flags.unsupported(); bad {
		return 0, &UnsupportedFeatureError{ID: f.ID, Feature: feature}
	}

	encode := c.EncodeContent
	if encode == nil {
		encode = EncodeContent
	}
	content, err := encode(f, V24, UTF8)
	if err != nil {
		return 0, err
	}
	contentSize := uint32(len(content))
	decompressedSize := contentSize

	if f.Flags.Compression {
		log.Debug().Str("id", f.ID).Msg("compressing frame content")
		content, err = compress(content)
		if err != nil {
			return 0, err
		}
		contentSize = uint32(len(content))
	}

	if f.Flags.DataLengthIndicator {
		contentSize += 4
	}

	// Escaping runs last; the indicator keeps the pre-escape length while
	// the size field counts the bytes that follow on the wire.
	if f.Flags.Unsynchronization {
		escaped := unsynch.Encode(content)
		contentSize += uint32(len(escaped) - len(content))
		content = escaped
	}

	if contentSize > unsynch.MaxUint32 || decompressedSize > unsynch.MaxUint32 {
		return 0, ErrSizeOutOfRange
	}

	head := make([]byte, HeaderSize, HeaderSize+4)
	copy(head[0:4], f.ID)
	unsynch.PutUint32(head[4:8], contentSize)
	flagBytes := f.Flags.Bytes(V24)
	copy(head[8:10], flagBytes[:])
	if f.Flags.DataLengthIndicator {
		log.Debug().Str("id", f.ID).Uint32("size", decompressedSize).Msg("adding data length indicator")
		head = head[:HeaderSize+4]
		unsynch.PutUint32(head[HeaderSize:], decompressedSize)
	}

	if _, err := w.Write(head); err != nil {
		return 0, err
	}
	if len(content) > 0 {
		if _, err := w.Write(content); err != nil {
			return 0, err
		}
	}

	return HeaderSize + int(contentSize), nil
}
