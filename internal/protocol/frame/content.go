package frame

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/danmuck/tagframe/internal/protocol/unsynch"
)

// ContentDecoder turns the bounded raw content of frame id into its
// transform-reversed bytes.
type ContentDecoder func(r io.Reader, id string, flags Flags) ([]byte, error)

// ContentEncoder serialises the content of f for version using enc for text.
type ContentEncoder func(f *Frame, version Version, enc Encoding) ([]byte, error)

// DecodeContent reads r to the end, then reverses unsynchronisation and
// compression in that order when flagged.
func DecodeContent(r io.Reader, id string, flags Flags) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if flags.Unsynchronization {
		data = unsynch.Decode(data)
	}
	if flags.Compression {
		data, err = decompress(data)
		if err != nil {
			return nil, fmt.Errorf("frame: [%s] decompress: %w", id, err)
		}
	}
	return data, nil
}

// EncodeContent returns an owned copy of f.Content. Content is opaque here,
// so version and enc do not change the bytes.
func EncodeContent(f *Frame, _ Version, _ Encoding) ([]byte, error) {
	buf := make([]byte, len(f.Content))
	copy(buf, f.Content)
	return buf, nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
