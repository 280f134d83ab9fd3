// Package propset decodes the OLE PROPERTY SET layout embedded in CFB
// streams such as \x05SummaryInformation, per spec.md §4.8.
package propset

import (
	"time"

	"github.com/go-cfb/cfb/internal/cfberr"
	"github.com/go-cfb/cfb/source"
)

// BugCompatibleDates, when true, makes VT_DATE decode reproduce the
// time-of-parse bug described in spec.md §4.8/§9 instead of the correct
// days-since-1899-12-30 conversion. Default false: SPEC_FULL.md §12
// decided the correct conversion is the default behavior.
var BugCompatibleDates = false

// Item is one decoded (id, type, value) entry from a property section.
type Item struct {
	ID    uint32
	Type  VT
	Value interface{}

	// RawCount is the on-disk `count` field for VT_BSTR/VT_LPSTR/
	// VT_LPWSTR/VT_BLOB items, exposed so callers can recover the
	// original framing even though Value has trailing NULs stripped for
	// the string types (SPEC_FULL.md §12).
	RawCount uint32
}

// PropertySet is a decoded OLE PROPERTYSET, restricted to its first
// section per spec.md §4.9 (a second section, when present, is attached
// to Section2 instead of being discarded — SPEC_FULL.md §11).
type PropertySet struct {
	FmtVersion uint16
	FmtID      source.GUID
	Items      []Item
	Section2   *PropertySet
}

// ByID returns the first item with the given property ID, if any.
func (p *PropertySet) ByID(id uint32) (Item, bool) {
	for _, it := range p.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Decode parses a complete property-set stream, per spec.md §4.8.
func Decode(data []byte) (*PropertySet, error) {
	if len(data) < 28 {
		return nil, cfberr.New(cfberr.Truncated, "property set header shorter than 28 bytes")
	}
	if source.Uint16(data, 0) != 0xFFFE {
		return nil, cfberr.New(cfberr.InvalidFormat, "bad property set byte-order mark")
	}
	fmtVer := source.Uint16(data, 2)

	if len(data) < 48 {
		return nil, cfberr.New(cfberr.Truncated, "property set shorter than FORMATIDOFFSET")
	}
	numSections := source.Uint32(data, 24)
	fmtID := source.ParseGUID(data, 28)
	sectionStart := source.Uint32(data, 44)

	items, err := decodeSection(data, int(sectionStart))
	if err != nil {
		return nil, err
	}
	ps := &PropertySet{FmtVersion: fmtVer, FmtID: fmtID, Items: items}

	if numSections == 2 && len(data) >= int(sectionStart)+20 {
		// The second FORMATIDOFFSET record immediately follows the first,
		// at offset 48 (16-byte GUID + 4-byte section offset).
		if len(data) >= 68 {
			fmtID2 := source.ParseGUID(data, 48)
			sectionStart2 := source.Uint32(data, 64)
			if items2, err2 := decodeSection(data, int(sectionStart2)); err2 == nil {
				ps.Section2 = &PropertySet{FmtVersion: fmtVer, FmtID: fmtID2, Items: items2}
			}
		}
	}

	return ps, nil
}

// decodeSection parses the PROPERTYSECTIONHEADER at sectionStart and every
// item it lists, per spec.md §4.8. An unknown type tag is skipped
// silently for that item, per spec.md §3/§4.8.
func decodeSection(data []byte, sectionStart int) ([]Item, error) {
	if sectionStart < 0 || sectionStart+8 > len(data) {
		return nil, cfberr.New(cfberr.Truncated, "property section header out of bounds")
	}
	numProps := source.Uint32(data, sectionStart+4)

	// A codepage property (PID_CODEPAGE), if present, governs how
	// VT_LPSTR/VT_BSTR bytes in ANSI strings are decoded (SPEC_FULL.md
	// §10). It must be located before decoding string values, so do a
	// first pass purely for codepage, then a full pass for all items.
	codepage := findCodepage(data, sectionStart, numProps)

	items := make([]Item, 0, numProps)
	for i := uint32(0); i < numProps; i++ {
		headerOffset := sectionStart + 8 + 8*int(i)
		if headerOffset+8 > len(data) {
			break
		}
		id := source.Uint32(data, headerOffset)
		valueOffset := source.Uint32(data, headerOffset+4)
		loc := sectionStart + int(valueOffset)
		if loc < 0 || loc+4 > len(data) {
			continue
		}
		typ := VT(source.Uint32(data, loc))
		value, rawCount, ok := decodeValue(data, loc+4, typ, id, codepage)
		if !ok {
			continue
		}
		items = append(items, Item{ID: id, Type: typ, Value: value, RawCount: rawCount})
	}
	return items, nil
}

func findCodepage(data []byte, sectionStart int, numProps uint32) int {
	for i := uint32(0); i < numProps; i++ {
		headerOffset := sectionStart + 8 + 8*int(i)
		if headerOffset+8 > len(data) {
			break
		}
		if source.Uint32(data, headerOffset) != PIDCodepage {
			continue
		}
		loc := sectionStart + int(source.Uint32(data, headerOffset+4))
		if loc+8 > len(data) || VT(source.Uint32(data, loc)) != VTI2 {
			return 0
		}
		return int(uint16(source.Uint16(data, loc+4)))
	}
	return 0
}

// decodeValue decodes one typed value starting at off, per the table in
// spec.md §4.8. Returns ok=false for unknown tags or truncated data so the
// caller can skip the item and continue, per spec.md's error-isolation
// policy.
func decodeValue(data []byte, off int, typ VT, id uint32, codepage int) (value interface{}, rawCount uint32, ok bool) {
	fits := func(n int) bool { return off+n <= len(data) }

	switch typ {
	case VTNull, VTEmpty:
		return nil, 0, true
	case VTI2:
		if !fits(2) {
			return nil, 0, false
		}
		return source.Int16(data, off), 0, true
	case VTI4, VTInt:
		if !fits(4) {
			return nil, 0, false
		}
		return source.Int32(data, off), 0, true
	case VTR4:
		if !fits(4) {
			return nil, 0, false
		}
		return source.Float32(data, off), 0, true
	case VTR8:
		if !fits(8) {
			return nil, 0, false
		}
		return source.Float64(data, off), 0, true
	case VTDate:
		if !fits(8) {
			return nil, 0, false
		}
		return decodeDate(source.Float64(data, off)), 0, true
	case VTError:
		if !fits(4) {
			return nil, 0, false
		}
		return source.Int32(data, off), 0, true
	case VTBool:
		if !fits(1) {
			return nil, 0, false
		}
		return data[off] != 0, 0, true
	case VTI1:
		if !fits(1) {
			return nil, 0, false
		}
		return int8(data[off]), 0, true
	case VTUI1:
		if !fits(1) {
			return nil, 0, false
		}
		return data[off], 0, true
	case VTUI2:
		if !fits(2) {
			return nil, 0, false
		}
		return source.Uint16(data, off), 0, true
	case VTUI4, VTUInt:
		if !fits(4) {
			return nil, 0, false
		}
		return source.Uint32(data, off), 0, true
	case VTBSTR:
		return decodeCountedBytes(data, off, true, codepage)
	case VTLPSTR:
		return decodeCountedBytes(data, off, true, codepage)
	case VTLPWSTR:
		return decodeCountedUTF16(data, off)
	case VTFileTime:
		if !fits(8) {
			return nil, 0, false
		}
		low := source.Uint32(data, off)
		high := source.Uint32(data, off+4)
		ticks := (uint64(high) << 32) | uint64(low)
		return decodeFileTime(ticks, id), 0, true
	case VTBlob:
		if !fits(4) {
			return nil, 0, false
		}
		count := source.Uint32(data, off)
		if !fits(4 + int(count)) {
			return nil, 0, false
		}
		raw := make([]byte, count)
		copy(raw, data[off+4:off+4+int(count)])
		return raw, count, true
	case VTClsid:
		if !fits(16) {
			return nil, 0, false
		}
		return source.ParseGUID(data, off), 0, true
	default:
		return nil, 0, false
	}
}

// decodeCountedBytes reads the u32 count + count raw bytes, per spec.md
// §4.8's VT_BSTR/VT_LPSTR row, then decodes text (stripping one trailing
// NUL, SPEC_FULL.md §12) through the given codepage.
func decodeCountedBytes(data []byte, off int, stripTrailingNul bool, codepage int) (interface{}, uint32, bool) {
	if off+4 > len(data) {
		return nil, 0, false
	}
	count := source.Uint32(data, off)
	if off+4+int(count) > len(data) {
		return nil, 0, false
	}
	raw := data[off+4 : off+4+int(count)]
	n := len(raw)
	if stripTrailingNul && n > 0 && raw[n-1] == 0 {
		n--
	}
	return decodeANSI(raw[:n], codepage), count, true
}

func decodeCountedUTF16(data []byte, off int) (interface{}, uint32, bool) {
	if off+4 > len(data) {
		return nil, 0, false
	}
	count := source.Uint32(data, off) // count of UTF-16 code units
	byteLen := int(count) * 2
	if off+4+byteLen > len(data) {
		return nil, 0, false
	}
	s := source.UTF16LEString(data, off+4, byteLen)
	// strip a single trailing NUL code unit, matching the ANSI string
	// behavior (SPEC_FULL.md §12).
	if n := len(s); n > 0 && s[n-1] == 0 {
		s = s[:n-1]
	}
	return s, count, true
}

// decodeFileTime converts a 100-ns tick count per spec.md §4.8: absolute
// timestamps for most properties, but PID_EDITTIME is an elapsed duration
// in seconds.
func decodeFileTime(ticks uint64, id uint32) interface{} {
	if id == PIDEditTime {
		return int64(ticks / 10_000_000)
	}
	const fileTimeToUnixEpoch = 116444736000000000
	unixSeconds := (int64(ticks) - fileTimeToUnixEpoch) / 10_000_000
	return unixSeconds
}

// decodeDate implements spec.md §9's decided resolution of the VT_DATE
// open question: days-since-1899-12-30 to Unix seconds, correctly, unless
// BugCompatibleDates asks for the source's time-of-parse bug.
func decodeDate(val float64) int64 {
	if BugCompatibleDates {
		// Reproduces the source's (val - (val - unixDays)) * 86400
		// simplification, which collapses to "now" regardless of val.
		// A caller that opts into this mode accepts that the result is
		// the moment of decoding, not a property of the stored data.
		return time.Now().Unix()
	}
	const daysBetweenOLEEpochAndUnixEpoch = 25569
	return int64((val - daysBetweenOLEEpochAndUnixEpoch) * 86400)
}
