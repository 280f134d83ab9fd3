// Package header parses and validates the 512-byte CFB file header.
package header

import (
	"fmt"

	"github.com/go-cfb/cfb/internal/cfberr"
	"github.com/go-cfb/cfb/source"
)

const (
	// Size is the fixed 512-byte CFB header length.
	Size = 512

	// SECT sentinels, per spec.md §3.
	FreeSect   uint32 = 0xFFFFFFFF
	EndOfChain uint32 = 0xFFFFFFFE
	FATSect    uint32 = 0xFFFFFFFD
	DIFSect    uint32 = 0xFFFFFFFC
)

// signature is the fixed 8-byte CFB magic.
var signature = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Header is the immutable geometry and chain-root information extracted
// from a CFB file's first 512 bytes, per spec.md §3.
type Header struct {
	ClassID           source.GUID
	MinorVersion      uint16
	MajorVersion      uint16
	SectorSize        uint32 // bytes, 2^v
	MiniSectorSize    uint32 // bytes, 2^w
	NSectFAT          uint32
	SectDir           uint32
	MaxMiniStreamSize uint32
	SectMiniFAT       uint32
	NSectMiniFAT      uint32
	SectDIF           uint32
	NSectDIF          uint32

	// InitialFAT holds up to 109 FAT sector numbers embedded in the
	// header, stopping at the first sentinel, per spec.md §4.2.
	InitialFAT []uint32
}

// Read validates and parses the 512-byte header at the start of src.
func Read(src *source.Source) (*Header, error) {
	buf, err := src.Read(0, Size)
	if err != nil {
		return nil, cfberr.Wrap(cfberr.IOError, "reading header", err)
	}
	if len(buf) < Size {
		return nil, cfberr.New(cfberr.InvalidFormat, "file shorter than 512-byte header")
	}
	for i, b := range signature {
		if buf[i] != b {
			return nil, cfberr.New(cfberr.InvalidFormat, "bad magic signature")
		}
	}

	h := &Header{
		ClassID:      source.ParseGUID(buf, 8),
		MinorVersion: source.Uint16(buf, 24),
		MajorVersion: source.Uint16(buf, 26),
	}

	sectorShift := source.Uint16(buf, 30)
	miniSectorShift := source.Uint16(buf, 32)
	h.SectorSize = 1 << sectorShift
	h.MiniSectorSize = 1 << miniSectorShift

	h.NSectFAT = source.Uint32(buf, 44)
	h.SectDir = source.Uint32(buf, 48)
	h.MaxMiniStreamSize = source.Uint32(buf, 56)
	h.SectMiniFAT = source.Uint32(buf, 60)
	h.NSectMiniFAT = source.Uint32(buf, 64)
	h.SectDIF = source.Uint32(buf, 68)
	h.NSectDIF = source.Uint32(buf, 72)

	if err := h.validateVersion(); err != nil {
		return nil, err
	}

	h.InitialFAT = make([]uint32, 0, 109)
	for i := 0; i < 109; i++ {
		sect := source.Uint32(buf, 76+i*4)
		if sect == EndOfChain || sect == FreeSect {
			break
		}
		h.InitialFAT = append(h.InitialFAT, sect)
	}

	return h, nil
}

// validateVersion enforces the (version, sector-size) combinations spec.md
// §4.4 allows: version 3 at 512-byte sectors, version 4 at 4096-byte
// sectors. Anything else is a VersionMismatch.
func (h *Header) validateVersion() error {
	switch {
	case h.MajorVersion == 3 && h.SectorSize == 512:
		return nil
	case h.MajorVersion == 4 && h.SectorSize == 4096:
		return nil
	default:
		return cfberr.New(cfberr.VersionMismatch, fmt.Sprintf(
			"unsupported (version=%d, sectorSize=%d) combination", h.MajorVersion, h.SectorSize))
	}
}

// Offset returns the file offset of sector number sect. Headers always
// occupy the first 512 bytes; everything after is sectored, per spec.md
// §4.3.
func (h *Header) Offset(sect uint32) int64 {
	return int64(Size) + int64(sect)*int64(h.SectorSize)
}
