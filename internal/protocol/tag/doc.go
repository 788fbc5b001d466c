// Package tag walks the ID3v2.4 tag container around a frame codec.
//
// Ownership boundary:
// - tag header read/write
// - frame walk loop driven by frame.Codec consumed-byte counts
//
// Frame layout and flag handling belong to package frame.
package tag
