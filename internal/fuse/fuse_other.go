//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/go-cfb/cfb"
)

// Mount is unavailable outside Linux; bazil.org/fuse only implements the
// FUSE and cgofuse protocols on Linux and macOS kernel-extension targets
// this module does not carry a build for.
func Mount(mountpoint string, rd *cfb.Reader) error {
	return fmt.Errorf("fuse: mount is only supported on linux")
}
