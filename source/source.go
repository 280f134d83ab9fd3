// Package source adapts a random-access byte provider into the positioned
// reads the CFB parser needs, and isolates the distinction between a short
// read at end-of-file (fine) and a short read inside a region the parser
// requires to be complete (an error).
package source

import (
	"errors"
	"fmt"
	"io"
)

// ErrShortRead is wrapped into the returned error whenever ReadRequired
// gets fewer bytes than asked for.
var ErrShortRead = errors.New("source: short read")

// Source is a seekless, positioned byte provider: read(offset, length) ->
// bytes | error. There is no implicit cursor.
type Source struct {
	r io.ReaderAt
}

// New wraps an io.ReaderAt as a Source.
func New(r io.ReaderAt) *Source {
	return &Source{r: r}
}

// Read returns up to length bytes starting at offset. A short read at
// end-of-file is not an error: the returned slice is simply shorter than
// length. Any other I/O failure is returned as an error.
func (s *Source) Read(offset int64, length int) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	buf := make([]byte, length)
	n, err := s.r.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("source: read %d bytes at %d: %w", length, offset, err)
	}
	return buf[:n], nil
}

// ReadRequired reads exactly length bytes at offset. A short read of any
// kind (including at EOF) is an error, since the caller has declared the
// region mandatory.
func (s *Source) ReadRequired(offset int64, length int) ([]byte, error) {
	buf, err := s.Read(offset, length)
	if err != nil {
		return nil, err
	}
	if len(buf) != length {
		return nil, fmt.Errorf("%w: wanted %d bytes at offset %d, got %d", ErrShortRead, length, offset, len(buf))
	}
	return buf, nil
}
