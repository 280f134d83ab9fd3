package directory_test

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/go-cfb/cfb/alloc"
	"github.com/go-cfb/cfb/directory"
	"github.com/go-cfb/cfb/header"
	"github.com/go-cfb/cfb/source"
	"github.com/stretchr/testify/require"
)

func utf16Name(s string) []uint16 { return utf16.Encode([]rune(s + "\x00")) }

func putEntry(sector []byte, idx int, name string, typ directory.Type, left, right, child int32, startSect uint32, size uint64) {
	off := idx * 128
	nm := utf16Name(name)
	for i, r := range nm {
		binary.LittleEndian.PutUint16(sector[off+i*2:], r)
	}
	binary.LittleEndian.PutUint16(sector[off+64:], uint16(len(nm)*2))
	sector[off+66] = byte(typ)
	binary.LittleEndian.PutUint32(sector[off+68:], uint32(left))
	binary.LittleEndian.PutUint32(sector[off+72:], uint32(right))
	binary.LittleEndian.PutUint32(sector[off+76:], uint32(child))
	binary.LittleEndian.PutUint32(sector[off+116:], startSect)
	binary.LittleEndian.PutUint64(sector[off+120:], size)
}

// buildDirSector lays out: root (index 0, child=1) -> StreamA (index 1, right=2)
// -> StreamB (index 2, no siblings). Both streams reference sector 2 as a
// placeholder data sector; size is what matters for these tests.
func buildDirSector() []byte {
	sector := make([]byte, 512)
	putEntry(sector, 0, "Root Entry", directory.Root, -1, -1, 1, 2, 0)
	putEntry(sector, 1, "StreamA", directory.Stream, -1, 2, -1, 2, 5)
	putEntry(sector, 2, "StreamB", directory.Stream, -1, -1, -1, 2, 7)
	return sector
}

func newHeaderForDir() []byte {
	buf := make([]byte, header.Size)
	copy(buf[0:8], []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	binary.LittleEndian.PutUint16(buf[26:], 3)
	binary.LittleEndian.PutUint16(buf[30:], 9)
	binary.LittleEndian.PutUint16(buf[32:], 6)
	binary.LittleEndian.PutUint32(buf[44:], 1)
	binary.LittleEndian.PutUint32(buf[48:], 1) // SectDir = 1
	binary.LittleEndian.PutUint32(buf[56:], 4096)
	binary.LittleEndian.PutUint32(buf[60:], header.EndOfChain)
	binary.LittleEndian.PutUint32(buf[68:], header.EndOfChain)
	binary.LittleEndian.PutUint32(buf[76:], 0)
	for i := 1; i < 109; i++ {
		binary.LittleEndian.PutUint32(buf[76+i*4:], header.FreeSect)
	}
	return buf
}

func TestReadAndLiftTree(t *testing.T) {
	fatSect := make([]byte, 512)
	binary.LittleEndian.PutUint32(fatSect[0:], header.FATSect)    // sector 0: FAT
	binary.LittleEndian.PutUint32(fatSect[4:], header.EndOfChain) // sector 1: dir, single sector

	var buf bytes.Buffer
	buf.Write(newHeaderForDir())
	buf.Write(fatSect)
	buf.Write(buildDirSector())

	src := source.New(bytes.NewReader(buf.Bytes()))
	h, err := header.Read(src)
	require.NoError(t, err)

	fat, err := alloc.BuildFAT(src, h)
	require.NoError(t, err)

	entries, err := directory.Read(src, h, fat)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "Root Entry", entries[0].Name)
	require.Equal(t, "StreamA", entries[1].Name)
	require.EqualValues(t, 5, entries[1].Size)
	require.Equal(t, "StreamB", entries[2].Name)
	require.EqualValues(t, 7, entries[2].Size)

	tree, err := directory.Lift(entries)
	require.NoError(t, err)
	require.Equal(t, entries[0], tree.Root)

	children := tree.Children(tree.Root)
	require.Len(t, children, 2)
	names := []string{children[0].Name, children[1].Name}
	require.ElementsMatch(t, []string{"StreamA", "StreamB"}, names)
}

func TestLiftHandlesCyclesSafely(t *testing.T) {
	sector := make([]byte, 512)
	putEntry(sector, 0, "Root Entry", directory.Root, -1, -1, 1, 0, 0)
	putEntry(sector, 1, "Loop", directory.Stream, 1, -1, -1, 0, 0) // left points at itself

	fatSect := make([]byte, 512)
	binary.LittleEndian.PutUint32(fatSect[0:], header.FATSect)
	binary.LittleEndian.PutUint32(fatSect[4:], header.EndOfChain)

	var buf bytes.Buffer
	buf.Write(newHeaderForDir())
	buf.Write(fatSect)
	buf.Write(sector)

	src := source.New(bytes.NewReader(buf.Bytes()))
	h, err := header.Read(src)
	require.NoError(t, err)
	fat, err := alloc.BuildFAT(src, h)
	require.NoError(t, err)

	entries, err := directory.Read(src, h, fat)
	require.NoError(t, err)

	tree, err := directory.Lift(entries)
	require.NoError(t, err)
	require.NotPanics(t, func() { tree.Children(tree.Root) })
}
