package source_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/go-cfb/cfb/source"
	"github.com/stretchr/testify/require"
)

func TestReadShortAtEOF(t *testing.T) {
	s := source.New(bytes.NewReader([]byte("hello")))

	got, err := s.Read(0, 10)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestReadRequiredShortAtEOFIsError(t *testing.T) {
	s := source.New(bytes.NewReader([]byte("hello")))

	_, err := s.ReadRequired(0, 10)
	require.Error(t, err)
	require.ErrorIs(t, err, source.ErrShortRead)
}

func TestReadRequiredExact(t *testing.T) {
	s := source.New(bytes.NewReader([]byte("0123456789")))

	got, err := s.ReadRequired(3, 4)
	require.NoError(t, err)
	require.Equal(t, []byte("3456"), got)
}

type failingReaderAt struct{ err error }

func (f failingReaderAt) ReadAt(p []byte, off int64) (int, error) { return 0, f.err }

func TestReadPropagatesNonEOFError(t *testing.T) {
	s := source.New(failingReaderAt{err: io.ErrClosedPipe})

	_, err := s.Read(0, 4)
	require.Error(t, err)
}

func TestDecodeHelpers(t *testing.T) {
	buf := make([]byte, 32)
	buf[0], buf[1] = 0x34, 0x12
	buf[4], buf[5], buf[6], buf[7] = 0x78, 0x56, 0x34, 0x12

	require.Equal(t, uint16(0x1234), source.Uint16(buf, 0))
	require.Equal(t, uint32(0x12345678), source.Uint32(buf, 4))
}

func TestParseGUIDCanonicalizes(t *testing.T) {
	raw := []byte{
		0xE0, 0x85, 0x9F, 0xF2, // data1, little-endian on disk
		0xF9, 0x4F, // data2
		0x68, 0x10, // data3
		0xAB, 0x91, 0x08, 0x00, 0x2B, 0x27, 0xB3, 0xD9, // data4, byte-for-byte
	}
	g := source.ParseGUID(raw, 0)

	want := source.GUID{
		0xF2, 0x9F, 0x85, 0xE0,
		0x4F, 0xF9,
		0x10, 0x68,
		0xAB, 0x91, 0x08, 0x00, 0x2B, 0x27, 0xB3, 0xD9,
	}
	require.Equal(t, want, g)
}

func TestUTF16LEString(t *testing.T) {
	// "Hi" as UTF-16LE.
	buf := []byte{'H', 0x00, 'i', 0x00}
	require.Equal(t, "Hi", source.UTF16LEString(buf, 0, 4))
}
