//go:build linux || freebsd

package storage

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data before the rename publishes it.
//
// On Linux/FreeBSD, fdatasync() provides sufficient guarantees.
func syncFile(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
