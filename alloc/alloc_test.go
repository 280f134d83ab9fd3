package alloc_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/go-cfb/cfb/alloc"
	"github.com/go-cfb/cfb/header"
	"github.com/go-cfb/cfb/source"
	"github.com/stretchr/testify/require"
)

// buildImage assembles a minimal header plus the given 512-byte sectors,
// in order, starting right after the header.
func buildImage(h []byte, sectors ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write(h)
	for _, s := range sectors {
		buf.Write(s)
	}
	return buf.Bytes()
}

func newHeaderBytes(nSectFAT, sectDir, sectMiniFAT, nSectMiniFAT uint32) []byte {
	buf := make([]byte, header.Size)
	copy(buf[0:8], []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	binary.LittleEndian.PutUint16(buf[26:], 3)
	binary.LittleEndian.PutUint16(buf[30:], 9)
	binary.LittleEndian.PutUint16(buf[32:], 6)
	binary.LittleEndian.PutUint32(buf[44:], nSectFAT)
	binary.LittleEndian.PutUint32(buf[48:], sectDir)
	binary.LittleEndian.PutUint32(buf[56:], 4096)
	binary.LittleEndian.PutUint32(buf[60:], sectMiniFAT)
	binary.LittleEndian.PutUint32(buf[64:], nSectMiniFAT)
	binary.LittleEndian.PutUint32(buf[68:], header.EndOfChain)
	binary.LittleEndian.PutUint32(buf[76:], 0) // FAT occupies sector 0
	for i := 1; i < 109; i++ {
		binary.LittleEndian.PutUint32(buf[76+i*4:], header.FreeSect)
	}
	return buf
}

func sector() []byte { return make([]byte, 512) }

func TestBuildFATFromHeaderOnly(t *testing.T) {
	fatSect := sector()
	binary.LittleEndian.PutUint32(fatSect[0:], header.FATSect)
	binary.LittleEndian.PutUint32(fatSect[4:], header.EndOfChain)

	img := buildImage(newHeaderBytes(1, 1, header.EndOfChain, 0), fatSect)
	src := source.New(bytes.NewReader(img))
	h, err := header.Read(src)
	require.NoError(t, err)

	fat, err := alloc.BuildFAT(src, h)
	require.NoError(t, err)
	require.EqualValues(t, header.FATSect, fat[0])
	require.EqualValues(t, header.EndOfChain, fat[1])
}

func TestTableNextOutOfRange(t *testing.T) {
	fat := alloc.Table{1, 2}
	_, err := fat.Next(5)
	require.Error(t, err)
}

func TestBuildMiniFATAbsent(t *testing.T) {
	fatSect := sector()
	binary.LittleEndian.PutUint32(fatSect[0:], header.FATSect)

	img := buildImage(newHeaderBytes(1, 1, header.EndOfChain, 0), fatSect)
	src := source.New(bytes.NewReader(img))
	h, err := header.Read(src)
	require.NoError(t, err)

	fat, err := alloc.BuildFAT(src, h)
	require.NoError(t, err)

	mini, err := alloc.BuildMiniFAT(src, h, fat)
	require.NoError(t, err)
	require.Nil(t, mini)
}

func TestBuildMiniFATPresent(t *testing.T) {
	// sector 0: FAT. Chain: 0=FAT marker, 1=ENDOFCHAIN (mini-FAT's only sector).
	fatSect := sector()
	binary.LittleEndian.PutUint32(fatSect[0:], header.FATSect)
	binary.LittleEndian.PutUint32(fatSect[4:], header.EndOfChain)

	miniFATSect := sector()
	binary.LittleEndian.PutUint32(miniFATSect[0:], header.EndOfChain)

	img := buildImage(newHeaderBytes(1, 2, 1, 1), fatSect, miniFATSect)
	src := source.New(bytes.NewReader(img))
	h, err := header.Read(src)
	require.NoError(t, err)

	fat, err := alloc.BuildFAT(src, h)
	require.NoError(t, err)

	mini, err := alloc.BuildMiniFAT(src, h, fat)
	require.NoError(t, err)
	require.Len(t, mini, 128) // 512 bytes / 4
	require.EqualValues(t, header.EndOfChain, mini[0])
}
