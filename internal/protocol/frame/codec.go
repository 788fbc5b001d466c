package frame

import "io"

// Codec reads and writes frames for one tag version.
//
// Decode returns the number of bytes the frame occupies in the stream.
// A nil frame with a nil error means the stream reached padding.
// Write returns the number of bytes written.
type Codec interface {
	Decode(r io.Reader) (int, *Frame, error)
	Write(w io.Writer, f *Frame) (int, error)
}

// readIDOrPadding reads the 4-byte id probe. ok is false when the probe
// is padding or otherwise not a frame id.
func readIDOrPadding(r io.Reader) (id string, ok bool, err error) {
	var buf [IDSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return "", false, err
	}
	if buf[0] == 0 || !validID(buf[:]) {
		return "", false, nil
	}
	return string(buf[:]), true, nil
}
