//go:build !linux && !freebsd

package storage

import "os"

func syncFile(f *os.File) error {
	return f.Sync()
}
