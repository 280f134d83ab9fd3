package alloc

import (
	"github.com/go-cfb/cfb/header"
	"github.com/go-cfb/cfb/internal/cfberr"
	"github.com/go-cfb/cfb/source"
)

// BuildMiniFAT assembles the mini-FAT, per spec.md §4.6. Unlike the FAT,
// the mini-FAT's initial chain isn't in the header: it's stored as a
// regular FAT chain starting at h.SectMiniFAT and is walked via the
// already-assembled main FAT.
func BuildMiniFAT(src *source.Source, h *header.Header, fat Table) (Table, error) {
	if h.SectMiniFAT == header.EndOfChain || h.SectMiniFAT == header.FreeSect || h.NSectMiniFAT == 0 {
		return nil, nil
	}

	wordsPerSector := int(h.SectorSize) / 4
	miniFAT := make(Table, 0, int(h.NSectMiniFAT)*wordsPerSector)

	sect := h.SectMiniFAT
	for i := uint32(0); i < h.NSectMiniFAT; i++ {
		if sect == header.EndOfChain {
			break
		}
		buf, err := src.ReadRequired(h.Offset(sect), int(h.SectorSize))
		if err != nil {
			return nil, cfberr.Wrap(cfberr.Truncated, "reading mini-FAT sector", err)
		}
		for j := 0; j < wordsPerSector; j++ {
			miniFAT = append(miniFAT, source.Uint32(buf, j*4))
		}
		next, err := fat.Next(sect)
		if err != nil {
			return nil, err
		}
		sect = next
	}
	return miniFAT, nil
}
