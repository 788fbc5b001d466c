package tag

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/tagframe/internal/protocol/frame"
	"github.com/danmuck/tagframe/internal/protocol/unsynch"
	"github.com/rs/zerolog/log"
)

// Options controls the frame walk.
type Options struct {
	// SkipUnsupported discards frames rejected as unsupported instead of
	// failing the whole tag.
	SkipUnsupported bool
}

// Skipped records a frame left out of the walk.
type Skipped struct {
	ID   string
	Size int
	Err  error
}

// Tag is one decoded ID3v2.4 tag.
type Tag struct {
	Header  Header
	Frames  []*frame.Frame
	Skipped []Skipped
}

// Frame returns the first frame with id.
func (t *Tag) Frame(id string) (*frame.Frame, bool) {
	for _, f := range t.Frames {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// Read decodes the tag at the start of r with codec. On success r is
// positioned at the first byte after the tag (and its footer).
func Read(r io.Reader, codec frame.Codec, opts Options) (*Tag, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	t := &Tag{Header: h}
	body := io.LimitReader(r, int64(h.Size))
	remaining := int(h.Size)

	if h.ExtendedHeader {
		size, err := unsynch.ReadUint32(body)
		if err != nil {
			return nil, err
		}
		// v2.4 extended header size includes its own 4 bytes
		if size < 4 || int(size) > remaining {
			return nil, ErrExtendedHeader
		}
		if _, err := io.CopyN(io.Discard, body, int64(size-4)); err != nil {
			return nil, err
		}
		remaining -= int(size)
	}

	for remaining >= frame.HeaderSize {
		n, f, err := codec.Decode(body)
		if err != nil {
			var ufe *frame.UnsupportedFeatureError
			if opts.SkipUnsupported && errors.As(err, &ufe) {
				log.Warn().Str("id", ufe.ID).Str("feature", ufe.Feature).Int("size", n).Msg("skipping frame")
				if _, err := io.CopyN(io.Discard, body, int64(n-frame.HeaderSize)); err != nil {
					return nil, err
				}
				t.Skipped = append(t.Skipped, Skipped{ID: ufe.ID, Size: n, Err: ufe})
				remaining -= n
				continue
			}
			return nil, fmt.Errorf("tag: frame %d: %w", len(t.Frames)+len(t.Skipped), err)
		}
		if f == nil {
			break
		}
		t.Frames = append(t.Frames, f)
		remaining -= n
	}
	log.Debug().Int("frames", len(t.Frames)).Int("skipped", len(t.Skipped)).Msg("tag read")

	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}
	if h.Footer {
		if _, err := io.CopyN(io.Discard, r, HeaderSize); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Write encodes frames with codec as a v2.4 tag followed by padding zero
// bytes. It returns the number of bytes written.
func Write(w io.Writer, frames []*frame.Frame, codec frame.Codec, padding int) (int, error) {
	if padding < 0 {
		return 0, ErrNegativePadding
	}
	var body bytes.Buffer
	for _, f := range frames {
		if _, err := codec.Write(&body, f); err != nil {
			return 0, fmt.Errorf("tag: write %s: %w", f.ID, err)
		}
	}
	size := body.Len() + padding
	if size > int(unsynch.MaxUint32) {
		return 0, frame.ErrSizeOutOfRange
	}

	h := Header{Version: 4, Size: uint32(size)}
	if _, err := w.Write(h.Bytes()); err != nil {
		return 0, err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return 0, err
	}
	if padding > 0 {
		if _, err := w.Write(make([]byte, padding)); err != nil {
			return 0, err
		}
	}
	return HeaderSize + size, nil
}
