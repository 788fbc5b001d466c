package unsynch

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint32KnownValues(t *testing.T) {
	cases := []struct {
		value   uint32
		encoded uint32
	}{
		{0, 0x00000000},
		{5, 0x00000005},
		{0x7f, 0x0000007f},
		{0x80, 0x00000100},
		{0xff, 0x0000017f},
		{0x3fff, 0x00007f7f},
		{0x4000, 0x00010000},
		{MaxUint32, 0x7f7f7f7f},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.encoded, EncodeUint32(tc.value), "encode %#x", tc.value)
		assert.Equalf(t, tc.value, DecodeUint32(tc.encoded), "decode %#x", tc.encoded)
	}
}

func TestUint32RoundTripKeepsHighBitsClear(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := []uint32{0, 1, 127, 128, 16383, 16384, MaxUint32 - 1, MaxUint32}
	for i := 0; i < 2000; i++ {
		values = append(values, rng.Uint32()&MaxUint32)
	}
	for _, v := range values {
		var buf [4]byte
		PutUint32(buf[:], v)
		for i, b := range buf {
			require.Zerof(t, b&0x80, "value %#x byte %d has high bit set", v, i)
		}
		require.Equal(t, v, Uint32(buf[:]))
		require.Equal(t, v, DecodeUint32(EncodeUint32(v)))
	}
}

func TestDecodeUint32IgnoresHighBits(t *testing.T) {
	assert.Equal(t, DecodeUint32(0x7f7f7f7f), DecodeUint32(0xffffffff))
	assert.Equal(t, uint32(5), DecodeUint32(0x80808085))
}

func TestReadUint32(t *testing.T) {
	v, err := ReadUint32(bytes.NewReader([]byte{0x00, 0x00, 0x02, 0x01}))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x101), v)

	_, err = ReadUint32(bytes.NewReader([]byte{0x00, 0x01}))
	assert.Error(t, err)
}

func TestEncodeEscapesFalseSyncs(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		out  []byte
	}{
		{"empty", []byte{}, []byte{}},
		{"plain", []byte("Hello"), []byte("Hello")},
		{"ff then low byte", []byte{0xff, 0x01}, []byte{0xff, 0x01}},
		{"ff then zero", []byte{0xff, 0x00}, []byte{0xff, 0x00, 0x00}},
		{"false sync", []byte{0xff, 0xe0}, []byte{0xff, 0x00, 0xe0}},
		{"ff ff", []byte{0xff, 0xff, 0x01}, []byte{0xff, 0x00, 0xff, 0x01}},
		{"trailing ff", []byte{0x01, 0xff}, []byte{0x01, 0xff, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Encode(tc.in)
			assert.True(t, bytes.Equal(tc.out, got), "got % x want % x", got, tc.out)
			assert.True(t, bytes.Equal(tc.in, Decode(got)), "decode mismatch % x", Decode(got))
		})
	}
}

func TestEncodeDecodeRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		in := make([]byte, rng.Intn(64))
		for j := range in {
			// bias toward 0xff, 0x00 and 0xe0 so escaping paths are hit often
			switch rng.Intn(4) {
			case 0:
				in[j] = 0xff
			case 1:
				in[j] = 0x00
			case 2:
				in[j] = 0xe0 | byte(rng.Intn(0x20))
			default:
				in[j] = byte(rng.Intn(256))
			}
		}
		enc := Encode(in)
		for j := 0; j+1 < len(enc); j++ {
			if enc[j] == 0xff {
				require.Falsef(t, enc[j+1]&0xe0 == 0xe0, "false sync left at %d in % x", j, enc)
			}
		}
		if len(enc) > 0 {
			require.NotEqual(t, byte(0xff), enc[len(enc)-1])
		}
		require.True(t, bytes.Equal(in, Decode(enc)), "round trip % x", in)
	}
}
