// Package directory reads the CFB directory sector chain into a flat array
// of entries and lifts it into a tree rooted at entry 0, per spec.md §4.4.
package directory

import (
	"strings"

	"github.com/go-cfb/cfb/alloc"
	"github.com/go-cfb/cfb/header"
	"github.com/go-cfb/cfb/internal/cfberr"
	"github.com/go-cfb/cfb/source"
)

// Type is the on-disk object-type byte of a directory entry.
type Type byte

const (
	Invalid   Type = 0
	Storage   Type = 1
	Stream    Type = 2
	LockBytes Type = 3
	Property  Type = 4
	Root      Type = 5
)

const entrySize = 128

// Entry is a lifted directory record, per spec.md §3. The red-black
// sibling/child links (left/right/child) are unexported; children is reachable
// only through the post-lift Children list built in tree.go.
type Entry struct {
	Index int
	Name  string
	Type  Type

	// STORAGE/ROOT fields.
	ClassID    source.GUID
	UserFlags  uint32
	CreateTS   uint64
	ModifyTS   uint64

	// STREAM/ROOT fields.
	Sect uint32
	Size uint64

	// IsPropertySet is true when the on-disk entry's first byte is 0x05,
	// marking this STREAM/ROOT entry as an OLE property-set stream per
	// spec.md §4.4. The actual decode happens one layer up (in the cfb
	// orchestrator), since it requires stream-byte reconstruction.
	IsPropertySet bool

	left, right, child int32
}

// Read walks the directory sector chain starting at h.SectDir, following
// fat until ENDOFCHAIN, and parses every 128-byte entry it finds. Parsing
// stops at the first entry of type INVALID, per spec.md §4.4.
func Read(src *source.Source, h *header.Header, fat alloc.Table) ([]*Entry, error) {
	entriesPerSector := int(h.SectorSize) / entrySize
	use64BitSize := h.MajorVersion == 4 && h.SectorSize == 4096
	var entries []*Entry

	sect := h.SectDir
	idx := 0
outer:
	for sect != header.EndOfChain {
		buf, err := src.ReadRequired(h.Offset(sect), int(h.SectorSize))
		if err != nil {
			return nil, cfberr.Wrap(cfberr.Truncated, "reading directory sector", err)
		}
		for i := 0; i < entriesPerSector; i++ {
			raw := buf[i*entrySize : (i+1)*entrySize]
			if Type(raw[66]) == Invalid {
				break outer
			}
			entries = append(entries, parseEntry(raw, idx, use64BitSize))
			idx++
		}
		next, err := fat.Next(sect)
		if err != nil {
			return nil, err
		}
		sect = next
	}
	return entries, nil
}

// parseEntry lifts one 128-byte on-disk record. use64BitSize selects the
// size-field versioning rule from spec.md §4.4: version 3 at 512-byte
// sectors only trusts the low 32 bits; version 4 at 4096-byte sectors uses
// the full 64 bits. header.Read has already rejected any other
// (version, sectorSize) combination.
func parseEntry(raw []byte, index int, use64BitSize bool) *Entry {
	nameLen := source.Uint16(raw, 64)
	var name string
	if nameLen >= 2 {
		name = trimControl(source.UTF16LEString(raw, 0, int(nameLen)-2))
	}

	size := source.Uint64(raw, 120)
	if !use64BitSize {
		size = uint64(uint32(size))
	}

	return &Entry{
		Index:         index,
		Name:          name,
		Type:          Type(raw[66]),
		left:          source.Int32(raw, 68),
		right:         source.Int32(raw, 72),
		child:         source.Int32(raw, 76),
		ClassID:       source.ParseGUID(raw, 80),
		UserFlags:     source.Uint32(raw, 96),
		CreateTS:      source.Uint64(raw, 100),
		ModifyTS:      source.Uint64(raw, 108),
		Sect:          source.Uint32(raw, 116),
		Size:          size,
		IsPropertySet: raw[0] == 0x05,
	}
}

// trimControl strips code points 0x00-0x1F from a decoded entry name, per
// spec.md §4.4. Well-known property-set stream names carry a leading 0x05
// marker byte on disk (e.g. "\x05SummaryInformation") that must not survive
// into the lifted Name.
func trimControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
