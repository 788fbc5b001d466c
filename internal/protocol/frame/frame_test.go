package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/danmuck/tagframe/internal/protocol/unsynch"
	"github.com/danmuck/tagframe/internal/testutil/testlog"
)

func TestDecodeKnownBytes(t *testing.T) {
	testlog.Start(t)
	raw := []byte{0x54, 0x49, 0x54, 0x32, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 'H', 'e', 'l', 'l', 'o'}
	var c V4
	n, f, err := c.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != 15 {
		t.Fatalf("expected 15 bytes consumed, got %d", n)
	}
	if f == nil || f.ID != "TIT2" || string(f.Content) != "Hello" || f.Flags != (Flags{}) {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestWriteKnownBytes(t *testing.T) {
	testlog.Start(t)
	want := []byte{0x54, 0x49, 0x54, 0x32, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 'H', 'e', 'l', 'l', 'o'}
	var buf bytes.Buffer
	var c V4
	n, err := c.Write(&buf, &Frame{ID: "TIT2", Content: []byte("Hello")})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != 15 {
		t.Fatalf("expected 15 bytes written, got %d", n)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("wire mismatch: got % x want % x", buf.Bytes(), want)
	}
}

func TestDecodePaddingConsumesOnlyProbe(t *testing.T) {
	testlog.Start(t)
	r := bytes.NewReader(make([]byte, 32))
	var c V4
	n, f, err := c.Decode(r)
	if err != nil || f != nil || n != 0 {
		t.Fatalf("expected padding, got n=%d f=%v err=%v", n, f, err)
	}
	if r.Len() != 28 {
		t.Fatalf("expected only the id probe consumed, %d bytes left", r.Len())
	}
}

func TestDecodeInvalidIDIsPadding(t *testing.T) {
	testlog.Start(t)
	for _, id := range []string{"tit2", "TI T", "\xffTIT"} {
		raw := append([]byte(id), 0, 0, 0, 1, 0, 0, 'x')
		var c V4
		n, f, err := c.Decode(bytes.NewReader(raw))
		if err != nil || f != nil || n != 0 {
			t.Fatalf("id %q: expected padding, got n=%d f=%v err=%v", id, n, f, err)
		}
	}
}

func TestDecodeShortReadsPropagate(t *testing.T) {
	testlog.Start(t)
	var c V4
	if _, _, err := c.Decode(bytes.NewReader(nil)); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if _, _, err := c.Decode(bytes.NewReader([]byte("TIT2\x00\x00"))); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	// indicator flagged but missing
	if _, _, err := c.Decode(bytes.NewReader([]byte("TIT2\x00\x00\x00\x08\x00\x01\x00"))); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF for indicator, got %v", err)
	}
}

func TestDecodeRejectsUnsupportedFeatures(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name    string
		flags   uint16
		feature string
	}{
		{"encryption", FlagEncryption, "encryption"},
		{"grouping", FlagGroupingIdentity, "grouping identity"},
		{"encryption with indicator", FlagEncryption | FlagDataLengthIndicator, "encryption"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content := []byte("secret-data")
			raw := make([]byte, HeaderSize)
			copy(raw, "APIC")
			unsynch.PutUint32(raw[4:8], uint32(len(content)))
			raw[8] = byte(tc.flags >> 8)
			raw[9] = byte(tc.flags)
			r := bytes.NewReader(append(raw, content...))

			var c V4
			n, f, err := c.Decode(r)
			if !errors.Is(err, ErrUnsupportedFeature) {
				t.Fatalf("expected ErrUnsupportedFeature, got %v", err)
			}
			var ufe *UnsupportedFeatureError
			if !errors.As(err, &ufe) || ufe.ID != "APIC" || ufe.Feature != tc.feature {
				t.Fatalf("unexpected error detail: %#v", err)
			}
			if f != nil {
				t.Fatalf("expected no frame, got %+v", f)
			}
			if r.Len() != len(content) {
				t.Fatalf("content bytes consumed: %d left, want %d", r.Len(), len(content))
			}
			if n != HeaderSize+len(content) {
				t.Fatalf("expected skip length %d, got %d", HeaderSize+len(content), n)
			}
		})
	}
}

func TestDecodeBoundedRead(t *testing.T) {
	testlog.Start(t)
	raw := []byte("TALB\x00\x00\x00\x03\x00\x00abcTPE1")
	r := bytes.NewReader(raw)
	var c V4
	n, f, err := c.Decode(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != 13 || string(f.Content) != "abc" {
		t.Fatalf("unexpected n=%d content=%q", n, f.Content)
	}
	if r.Len() != 4 {
		t.Fatalf("read past frame: %d bytes left", r.Len())
	}
}

func TestDecodeTrustsDeclaredSizeAtEOF(t *testing.T) {
	testlog.Start(t)
	raw := []byte("TALB\x00\x00\x00\x64\x00\x00abc")
	var c V4
	n, f, err := c.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != HeaderSize+100 || string(f.Content) != "abc" {
		t.Fatalf("unexpected n=%d content=%q", n, f.Content)
	}
}

func TestDecodeIndicatorBelowFourReadsNothing(t *testing.T) {
	testlog.Start(t)
	raw := []byte("TALB\x00\x00\x00\x02\x00\x01\x00\x00\x00\x00TPE1")
	r := bytes.NewReader(raw)
	var c V4
	n, f, err := c.Decode(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != 12 || len(f.Content) != 0 {
		t.Fatalf("unexpected n=%d content=%q", n, f.Content)
	}
	if r.Len() != 4 {
		t.Fatalf("expected next id untouched, %d bytes left", r.Len())
	}
}
