//go:build linux
// +build linux

// Package fuse mounts an opened CFB container read-only, turning its
// storage/stream tree into a directory tree: storages become directories,
// streams become fixed-size read-only files.
package fuse

import (
	"context"
	"io"
	"os"
	"sort"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/go-cfb/cfb"
	cfbdir "github.com/go-cfb/cfb/directory"
)

// ContainerFS adapts a *cfb.Reader into a bazil.org/fuse filesystem.
type ContainerFS struct {
	rd *cfb.Reader
}

func (cf *ContainerFS) Root() (fs.Node, error) {
	return &Dir{rd: cf.rd, entry: cf.rd.Root()}, nil
}

// Dir implements fs.Node and fs.HandleReadDirAller for a STORAGE/ROOT entry.
type Dir struct {
	rd    *cfb.Reader
	entry *cfb.Entry
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	for _, c := range d.entry.Children() {
		if c.Name != name {
			continue
		}
		if c.Type == cfbdir.Storage {
			return &Dir{rd: d.rd, entry: c}, nil
		}
		return &File{rd: d.rd, entry: c}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	children := d.entry.Children()
	dirEntries := make([]fuse.Dirent, len(children))
	for i, c := range children {
		typ := fuse.DT_File
		if c.Type == cfbdir.Storage {
			typ = fuse.DT_Dir
		}
		dirEntries[i] = fuse.Dirent{Inode: uint64(c.Index) + 1, Name: c.Name, Type: typ}
	}
	sort.Slice(dirEntries, func(i, j int) bool { return dirEntries[i].Name < dirEntries[j].Name })
	return dirEntries, nil
}

// File implements fs.Node and fs.HandleReader for a STREAM entry. Reads are
// served by re-walking the entry's chain from the start each time, since
// cfb.Reader.Stream returns a single-pass reader; random-access reads
// re-read and discard any bytes before the requested offset.
type File struct {
	rd    *cfb.Reader
	entry *cfb.Entry
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = f.entry.Size
	a.Mtime = time.Now()
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	sr, err := f.rd.Stream(f.entry)
	if err != nil {
		return err
	}
	if req.Offset > 0 {
		if _, err := io.CopyN(io.Discard, sr, req.Offset); err != nil && err != io.EOF {
			return err
		}
	}
	buf := make([]byte, req.Size)
	n, err := io.ReadFull(sr, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}
	resp.Data = buf[:n]
	return nil
}

// Mount serves rd's tree at mountpoint until interrupted, per
// SPEC_FULL.md's domain-stack section.
func Mount(mountpoint string, rd *cfb.Reader) error {
	c, err := fuse.Mount(mountpoint)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := fs.New(c, nil)
	return srv.Serve(&ContainerFS{rd: rd})
}
