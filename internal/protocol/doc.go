// Package protocol groups the ID3v2.4 wire packages.
//
// Ownership boundary:
// - unsynch: synch-safe integers and unsynchronisation escaping
// - frame: frame header, flags and content transforms
// - tag: tag container walk around a frame codec
package protocol
