package propset

import (
	"encoding/binary"

	"github.com/go-cfb/cfb/source"
)

// VT is an OLE VARIANT type tag, per spec.md §4.8 / §6.
type VT uint32

const (
	VTEmpty   VT = 0
	VTNull    VT = 1
	VTI2      VT = 2
	VTI4      VT = 3
	VTR4      VT = 4
	VTR8      VT = 5
	VTDate    VT = 7
	VTBSTR    VT = 8
	VTError   VT = 10
	VTBool    VT = 11
	VTI1      VT = 16
	VTUI1     VT = 17
	VTUI2     VT = 18
	VTUI4     VT = 19
	VTInt     VT = 22
	VTUInt    VT = 23
	VTLPSTR   VT = 30
	VTLPWSTR  VT = 31
	VTFileTime VT = 64
	VTBlob    VT = 65
	VTClsid   VT = 72
)

// Well-known property IDs, per spec.md §4.8/§6/GLOSSARY (PID_*).
const (
	PIDDictionary  uint32 = 0
	PIDCodepage    uint32 = 1
	PIDTitle       uint32 = 2
	PIDSubject     uint32 = 3
	PIDAuthor      uint32 = 4
	PIDKeywords    uint32 = 5
	PIDComments    uint32 = 6
	PIDTemplate    uint32 = 7
	PIDLastAuthor  uint32 = 8
	PIDRevNumber   uint32 = 9
	PIDEditTime    uint32 = 10
	PIDLastPrinted uint32 = 11
	PIDCreateDTM   uint32 = 12
	PIDLastSaveDTM uint32 = 13
	PIDPageCount   uint32 = 14
	PIDWordCount   uint32 = 15
	PIDCharCount   uint32 = 16
	PIDThumbnail   uint32 = 17
	PIDAppName     uint32 = 18
	PIDSecurity    uint32 = 19
)

// FORMATID GUIDs for the two well-known CFB property-set streams.
var (
	FormatIDSummary    = canonicalGUID(0xF29F85E0, 0x4FF9, 0x1068, [8]byte{0xAB, 0x91, 0x08, 0x00, 0x2B, 0x27, 0xB3, 0xD9})
	FormatIDDocSummary = canonicalGUID(0xD5CDD505, 0x2E9C, 0x101B, [8]byte{0x93, 0x97, 0x08, 0x00, 0x2B, 0x2C, 0xF9, 0xAE})
)

// canonicalGUID builds a source.GUID directly in its canonicalized form
// (the same layout ParseGUID produces from on-disk bytes), from the
// conventional {data1-data2-data3-data4} GUID literal groups.
func canonicalGUID(data1 uint32, data2, data3 uint16, data4 [8]byte) source.GUID {
	var g source.GUID
	binary.BigEndian.PutUint32(g[0:4], data1)
	binary.BigEndian.PutUint16(g[4:6], data2)
	binary.BigEndian.PutUint16(g[6:8], data3)
	copy(g[8:], data4[:])
	return g
}
