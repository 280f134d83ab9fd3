package cfb

import (
	"io"

	"github.com/go-cfb/cfb/alloc"
	"github.com/go-cfb/cfb/directory"
	"github.com/go-cfb/cfb/header"
	"github.com/go-cfb/cfb/internal/cfberr"
	"github.com/go-cfb/cfb/source"
)

// streamReader is a lazy, single-pass io.Reader over one directory entry's
// chain of sectors (FAT-mode) or mini-sectors (mini-FAT mode), per
// spec.md §4.5. It is non-restartable: callers that need random access
// must buffer (io.ReadAll).
type streamReader struct {
	src *source.Source
	h   *header.Header

	fat     alloc.Table
	miniFAT alloc.Table
	root    *directory.Entry

	mini bool

	curSect   uint32
	haveChain bool
	remaining uint64 // bytes left to emit, enforces exact entry.Size truncation

	buf []byte // bytes from the current sector not yet returned
	err error  // sticky terminal error
}

// newStreamReader builds the reader for entry, routing to FAT or mini-FAT
// mode per spec.md §4.5: entries at or above h.MaxMiniStreamSize go
// through the FAT; smaller entries go through the mini-FAT, relative to
// the root entry's mini-stream.
func newStreamReader(src *source.Source, h *header.Header, fat, miniFAT alloc.Table, root, entry *directory.Entry) *streamReader {
	mini := entry.Size < uint64(h.MaxMiniStreamSize)
	return &streamReader{
		src:       src,
		h:         h,
		fat:       fat,
		miniFAT:   miniFAT,
		root:      root,
		mini:      mini,
		curSect:   entry.Sect,
		haveChain: true,
		remaining: entry.Size,
	}
}

func (r *streamReader) Read(p []byte) (int, error) {
	if r.err != nil && len(r.buf) == 0 {
		return 0, r.err
	}
	n := 0
	for n < len(p) {
		if len(r.buf) == 0 {
			if err := r.fill(); err != nil {
				r.err = err
				if n > 0 {
					return n, nil
				}
				return 0, err
			}
			if len(r.buf) == 0 {
				r.err = io.EOF
				if n > 0 {
					return n, nil
				}
				return 0, io.EOF
			}
		}
		c := copy(p[n:], r.buf)
		r.buf = r.buf[c:]
		n += c
	}
	return n, nil
}

// fill reads the next sector (or mini-sector) of the chain into r.buf,
// truncating to r.remaining so the cumulative emitted length equals the
// entry's declared size exactly, per spec.md §4.5.
func (r *streamReader) fill() error {
	if r.remaining == 0 || !r.haveChain || r.curSect == header.EndOfChain {
		r.haveChain = false
		return nil
	}

	var blockSize uint32
	var offset int64
	if r.mini {
		blockSize = r.h.MiniSectorSize
		miniStreamBase := r.h.Offset(r.root.Sect)
		offset = miniStreamBase + int64(r.curSect)*int64(blockSize)
	} else {
		blockSize = r.h.SectorSize
		offset = r.h.Offset(r.curSect)
	}

	want := int(blockSize)
	if uint64(want) > r.remaining {
		want = int(r.remaining)
	}

	block, err := r.src.Read(offset, want)
	if err != nil {
		return cfberr.Wrap(cfberr.IOError, "reading stream block", err)
	}
	if len(block) < want {
		return cfberr.New(cfberr.Truncated, "stream chain read past end of backing source")
	}

	r.buf = block
	r.remaining -= uint64(len(block))

	table := r.fat
	if r.mini {
		table = r.miniFAT
	}
	next, err := table.Next(r.curSect)
	if err != nil {
		return err
	}
	r.curSect = next
	return nil
}
