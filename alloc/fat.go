// Package alloc assembles the FAT and mini-FAT sector-chain tables, per
// spec.md §4.3 and §4.6.
package alloc

import (
	"github.com/go-cfb/cfb/header"
	"github.com/go-cfb/cfb/internal/cfberr"
	"github.com/go-cfb/cfb/source"
)

// Table is a flat sect -> next-sect map, shared shape for both the FAT and
// the mini-FAT (spec.md §3: "Mini-FAT — same shape as FAT").
type Table []uint32

// Next returns the sector chained after sect, or an error if sect falls
// outside the assembled table.
func (t Table) Next(sect uint32) (uint32, error) {
	if int(sect) < 0 || int(sect) >= len(t) {
		return 0, cfberr.New(cfberr.Truncated, "sector reference outside allocation table")
	}
	return t[sect], nil
}

// BuildFAT concatenates one full sector per FAT SECT enumerated in the
// header (in header-enumeration order), then extends the list via the
// DIFAT chain when present, per spec.md §4.3.
func BuildFAT(src *source.Source, h *header.Header) (Table, error) {
	fatSects := append([]uint32(nil), h.InitialFAT...)

	if h.SectDIF != header.EndOfChain && h.SectDIF != header.FreeSect {
		extra, err := readDIFATChain(src, h)
		if err != nil {
			return nil, err
		}
		fatSects = append(fatSects, extra...)
	}

	return readFATSectors(src, h, fatSects)
}

// readDIFATChain walks the DIFAT sector chain starting at h.SectDIF. Every
// 4-byte word in a DIFAT sector is a FAT-sector SECT except the sector's
// last word, which points at the next DIFAT sector (or is ENDOFCHAIN).
func readDIFATChain(src *source.Source, h *header.Header) ([]uint32, error) {
	var sects []uint32
	sect := h.SectDIF
	wordsPerSector := int(h.SectorSize) / 4

	for sect != header.EndOfChain && sect != header.FreeSect {
		buf, err := src.ReadRequired(h.Offset(sect), int(h.SectorSize))
		if err != nil {
			return nil, cfberr.Wrap(cfberr.Truncated, "reading DIFAT sector", err)
		}
		for i := 0; i < wordsPerSector-1; i++ {
			sects = append(sects, source.Uint32(buf, i*4))
		}
		sect = source.Uint32(buf, (wordsPerSector-1)*4)
	}
	return sects, nil
}

// readFATSectors reads the sector at each listed FAT SECT and appends its
// 32-bit words, in order, into the assembled FAT array.
func readFATSectors(src *source.Source, h *header.Header, fatSects []uint32) (Table, error) {
	wordsPerSector := int(h.SectorSize) / 4
	fat := make(Table, 0, len(fatSects)*wordsPerSector)

	for _, sect := range fatSects {
		buf, err := src.ReadRequired(h.Offset(sect), int(h.SectorSize))
		if err != nil {
			return nil, cfberr.Wrap(cfberr.Truncated, "reading FAT sector", err)
		}
		for i := 0; i < wordsPerSector; i++ {
			fat = append(fat, source.Uint32(buf, i*4))
		}
	}
	return fat, nil
}
