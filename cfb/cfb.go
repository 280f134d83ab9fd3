// Package cfb reads Microsoft Compound File Binary (CFB/OLE2) structured
// storage files: the container format behind legacy .doc/.xls/.ppt and
// MSI files, per spec.md §1-§4. It exposes the directory tree and lets
// callers stream any entry's bytes; it does not interpret what a given
// stream's bytes mean beyond the well-known OLE property-set streams.
package cfb

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/go-cfb/cfb/alloc"
	"github.com/go-cfb/cfb/directory"
	"github.com/go-cfb/cfb/header"
	"github.com/go-cfb/cfb/internal/cfberr"
	"github.com/go-cfb/cfb/propset"
	"github.com/go-cfb/cfb/source"
)

// Entry is one node of the storage/stream tree, per spec.md §3/§4.4. A
// STORAGE or ROOT entry's Children holds its lifted child collection; a
// STREAM entry's bytes are reachable through Reader.Stream.
type Entry struct {
	directory.Entry

	// Properties is non-nil when this entry's on-disk first byte marked
	// it as an OLE property-set stream and the bytes decoded cleanly,
	// per spec.md §4.8. A decode failure leaves this nil without
	// failing Open, per SPEC_FULL.md §7's per-entry isolation policy.
	Properties *propset.PropertySet

	tree *directory.Tree
	all  []*Entry // the Reader's flat entry list, indexed by Entry.Index
}

// Children returns e's child entries in the tree's traversal order, or nil
// for a STREAM entry.
func (e *Entry) Children() []*Entry {
	wrapped := e.tree.Children(&e.Entry)
	if wrapped == nil {
		return nil
	}
	out := make([]*Entry, len(wrapped))
	for i, c := range wrapped {
		out[i] = e.all[c.Index]
	}
	return out
}

// Reader is an opened CFB file, per spec.md §4. It holds the fully
// assembled FAT, mini-FAT and directory tree; streaming an entry's bytes
// re-derives the chain walk lazily rather than buffering it at Open time.
type Reader struct {
	src     *source.Source
	closer  io.Closer
	h       *header.Header
	fat     alloc.Table
	miniFAT alloc.Table
	tree    *directory.Tree
	entries []*Entry
}

// Open parses r as a CFB container, per spec.md §4's phase sequence:
// header, then FAT (including any DIFAT extension), then directory, then
// mini-FAT, then property-set decode for entries that carry one. The
// first phase to fail aborts Open entirely; a later, per-entry
// property-set decode failure does not (SPEC_FULL.md §7).
func Open(r io.ReaderAt) (*Reader, error) {
	src := source.New(r)

	h, err := header.Read(src)
	if err != nil {
		return nil, err
	}

	fat, err := alloc.BuildFAT(src, h)
	if err != nil {
		return nil, err
	}

	rawEntries, err := directory.Read(src, h, fat)
	if err != nil {
		return nil, err
	}
	tree, err := directory.Lift(rawEntries)
	if err != nil {
		return nil, err
	}

	miniFAT, err := alloc.BuildMiniFAT(src, h, fat)
	if err != nil {
		return nil, err
	}

	rd := &Reader{
		src:     src,
		h:       h,
		fat:     fat,
		miniFAT: miniFAT,
		tree:    tree,
	}

	rd.entries = make([]*Entry, len(rawEntries))
	for i, re := range rawEntries {
		rd.entries[i] = &Entry{Entry: *re, tree: tree, all: rd.entries}
	}
	for _, e := range rd.entries {
		if !e.IsPropertySet {
			continue
		}
		data, err := rd.readAll(&e.Entry)
		if err != nil {
			continue
		}
		ps, err := propset.Decode(data)
		if err != nil {
			continue
		}
		e.Properties = ps
	}

	return rd, nil
}

// OpenFile opens the named file and parses it as a CFB container. The
// returned Reader's Close also closes the underlying *os.File.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cfberr.Wrap(cfberr.IOError, "opening file", err)
	}
	rd, err := Open(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	rd.closer = f
	return rd, nil
}

// Root returns the root storage entry.
func (r *Reader) Root() *Entry {
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[0]
}

// Entries returns every directory entry, in on-disk index order.
func (r *Reader) Entries() []*Entry {
	return r.entries
}

// FindStream looks up an entry by name, case-insensitively, over the full
// flat directory list, per spec.md §6. This matches a stream inside a
// nested storage as well as a direct child of the root; Entries() exposes
// the same list directly for callers that need to walk it differently.
func (r *Reader) FindStream(name string) (*Entry, bool) {
	for _, e := range r.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return nil, false
}

// Stream returns an io.Reader over e's bytes, reconstructed via the FAT or
// mini-FAT chain per spec.md §4.5. The returned reader is single-pass.
func (r *Reader) Stream(e *Entry) (io.Reader, error) {
	if e.Type != directory.Stream && e.Type != directory.Root {
		return nil, cfberr.New(cfberr.NoSuchStream, "entry is not a stream")
	}
	return newStreamReader(r.src, r.h, r.fat, r.miniFAT, &r.Root().Entry, &e.Entry), nil
}

// readAll buffers an entry's full bytes, used internally for property-set
// decode, which needs random access into the stream contents.
func (r *Reader) readAll(e *directory.Entry) ([]byte, error) {
	sr := newStreamReader(r.src, r.h, r.fat, r.miniFAT, &r.Root().Entry, e)
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, sr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close releases the underlying file handle, if Open received one via
// OpenFile. Closing a Reader built from Open(r io.ReaderAt) directly is
// a no-op.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
