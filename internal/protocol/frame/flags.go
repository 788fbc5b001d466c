package frame

import "strings"

// v2.4 frame flag bits.
const (
	FlagTagAlterPreservation  uint16 = 0x4000
	FlagFileAlterPreservation uint16 = 0x2000
	FlagReadOnly              uint16 = 0x1000
	FlagGroupingIdentity      uint16 = 0x0040
	FlagCompression           uint16 = 0x0008
	FlagEncryption            uint16 = 0x0004
	FlagUnsynchronization     uint16 = 0x0002
	FlagDataLengthIndicator   uint16 = 0x0001
)

// v2.3 frame flag bits; v2.3 has no unsynchronisation or indicator bit.
const (
	v23TagAlterPreservation  uint16 = 0x8000
	v23FileAlterPreservation uint16 = 0x4000
	v23ReadOnly              uint16 = 0x2000
	v23Compression           uint16 = 0x0080
	v23Encryption            uint16 = 0x0040
	v23GroupingIdentity      uint16 = 0x0020
)

// Flags is the frame status and format flag field.
type Flags struct {
	TagAlterPreservation  bool
	FileAlterPreservation bool
	ReadOnly              bool
	GroupingIdentity      bool
	Compression           bool
	Encryption            bool
	Unsynchronization     bool
	DataLengthIndicator   bool
}

// ParseFlags unpacks a v2.4 flag field.
func ParseFlags(raw uint16) Flags {
	return Flags{
		TagAlterPreservation:  raw&FlagTagAlterPreservation != 0,
		FileAlterPreservation: raw&FlagFileAlterPreservation != 0,
		ReadOnly:              raw&FlagReadOnly != 0,
		GroupingIdentity:      raw&FlagGroupingIdentity != 0,
		Compression:           raw&FlagCompression != 0,
		Encryption:            raw&FlagEncryption != 0,
		Unsynchronization:     raw&FlagUnsynchronization != 0,
		DataLengthIndicator:   raw&FlagDataLengthIndicator != 0,
	}
}

// Bytes packs f into the two flag bytes for version. V24 (0x4) uses the
// v2.4 layout; V23 uses the v2.3 layout and drops the bits v2.3 lacks.
func (f Flags) Bytes(version Version) [2]byte {
	var raw uint16
	if version == V23 {
		raw = f.v23()
	} else {
		raw = f.Uint16()
	}
	return [2]byte{byte(raw >> 8), byte(raw)}
}

// Uint16 returns the v2.4 flag field.
func (f Flags) Uint16() uint16 {
	var raw uint16
	if f.TagAlterPreservation {
		raw |= FlagTagAlterPreservation
	}
	if f.FileAlterPreservation {
		raw |= FlagFileAlterPreservation
	}
	if f.ReadOnly {
		raw |= FlagReadOnly
	}
	if f.GroupingIdentity {
		raw |= FlagGroupingIdentity
	}
	if f.Compression {
		raw |= FlagCompression
	}
	if f.Encryption {
		raw |= FlagEncryption
	}
	if f.Unsynchronization {
		raw |= FlagUnsynchronization
	}
	if f.DataLengthIndicator {
		raw |= FlagDataLengthIndicator
	}
	return raw
}

func (f Flags) v23() uint16 {
	var raw uint16
	if f.TagAlterPreservation {
		raw |= v23TagAlterPreservation
	}
	if f.FileAlterPreservation {
		raw |= v23FileAlterPreservation
	}
	if f.ReadOnly {
		raw |= v23ReadOnly
	}
	if f.Compression {
		raw |= v23Compression
	}
	if f.Encryption {
		raw |= v23Encryption
	}
	if f.GroupingIdentity {
		raw |= v23GroupingIdentity
	}
	return raw
}

// unsupported names the first flag set on f that the codec rejects.
func (f Flags) unsupported() (string, bool) {
	switch {
	case f.Encryption:
		return "encryption", true
	case f.GroupingIdentity:
		return "grouping identity", true
	}
	return "", false
}

func (f Flags) String() string {
	names := make([]string, 0, 8)
	add := func(set bool, name string) {
		if set {
			names = append(names, name)
		}
	}
	add(f.TagAlterPreservation, "tag_alter")
	add(f.FileAlterPreservation, "file_alter")
	add(f.ReadOnly, "read_only")
	add(f.GroupingIdentity, "grouping")
	add(f.Compression, "compression")
	add(f.Encryption, "encryption")
	add(f.Unsynchronization, "unsync")
	add(f.DataLengthIndicator, "dli")
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
