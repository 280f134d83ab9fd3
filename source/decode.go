package source

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// GUID is a 16-byte class/format identifier, already canonicalized to the
// standard mixed-endian layout (see ParseGUID).
type GUID [16]byte

// ParseGUID reads a 16-byte GUID from b at offset and canonicalizes it: the
// first 4 bytes, then the next 2, then the next 2 are byte-swapped from
// their on-disk little-endian group order; the remaining 8 bytes are kept
// in source order. Both class IDs and format IDs use this layout, per
// spec.md §4.4. Every caller goes through this single helper rather than
// inlining the swap, per spec.md's design note 9.
func ParseGUID(b []byte, offset int) GUID {
	var g GUID
	src := b[offset : offset+16]
	g[0], g[1], g[2], g[3] = src[3], src[2], src[1], src[0]
	g[4], g[5] = src[5], src[4]
	g[6], g[7] = src[7], src[6]
	copy(g[8:], src[8:16])
	return g
}

func Uint16(b []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(b[offset : offset+2])
}

func Uint32(b []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(b[offset : offset+4])
}

func Uint64(b []byte, offset int) uint64 {
	return binary.LittleEndian.Uint64(b[offset : offset+8])
}

func Int16(b []byte, offset int) int16 {
	return int16(Uint16(b, offset))
}

func Int32(b []byte, offset int) int32 {
	return int32(Uint32(b, offset))
}

func Int64(b []byte, offset int) int64 {
	return int64(Uint64(b, offset))
}

func Float32(b []byte, offset int) float32 {
	return math.Float32frombits(Uint32(b, offset))
}

func Float64(b []byte, offset int) float64 {
	return math.Float64frombits(Uint64(b, offset))
}

// UTF16LEString decodes n bytes (must be even) at offset as UTF-16LE text.
func UTF16LEString(b []byte, offset, n int) string {
	if n <= 0 {
		return ""
	}
	words := make([]uint16, n/2)
	for i := range words {
		words[i] = Uint16(b, offset+i*2)
	}
	return string(utf16.Decode(words))
}
