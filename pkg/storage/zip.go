package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/joshuapare/tdatakit/pkg/types"
)

// ErrReadOnly is returned by writes to a read-only backend.
var ErrReadOnly = errors.New("storage: read-only")

// Zip serves files from a zipped tdata folder. Writes fail with ErrReadOnly.
type Zip struct {
	files  map[string]*zip.File
	closer io.Closer
}

var _ types.Storage = (*Zip)(nil)

// NewZip indexes the archive in r. root is the folder inside the archive that
// corresponds to the tdata root, e.g. "tdata"; empty means the archive root.
func NewZip(r io.ReaderAt, size int64, root string) (*Zip, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("zip storage: %w", err)
	}
	return indexZip(zr.File, root), nil
}

// OpenZip opens the archive at filename. Call Close when done.
func OpenZip(filename, root string) (*Zip, error) {
	rc, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("zip storage: %w", err)
	}
	z := indexZip(rc.File, root)
	z.closer = rc
	return z, nil
}

func indexZip(files []*zip.File, root string) *Zip {
	prefix := strings.Trim(root, "/")
	if prefix != "" {
		prefix += "/"
	}
	z := &Zip{files: make(map[string]*zip.File)}
	for _, f := range files {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		name := path.Clean(strings.TrimPrefix(f.Name, prefix))
		z.files[name] = f
	}
	return z
}

// Close releases the archive opened by OpenZip.
func (z *Zip) Close() error {
	if z.closer == nil {
		return nil
	}
	return z.closer.Close()
}

func (z *Zip) Stat(_ context.Context, name string) (types.FileInfo, bool, error) {
	f, ok := z.files[path.Clean(name)]
	if !ok {
		return types.FileInfo{}, false, nil
	}
	return types.FileInfo{ModTime: f.Modified}, true, nil
}

func (z *Zip) ReadFile(_ context.Context, name string) ([]byte, error) {
	f, ok := z.files[path.Clean(name)]
	if !ok {
		return nil, fmt.Errorf("zip storage: %s: %w", name, types.ErrNotFound)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("zip storage: open %s: %w", name, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("zip storage: read %s: %w", name, err)
	}
	return b, nil
}

func (z *Zip) WriteFile(context.Context, string, []byte, bool) error {
	return ErrReadOnly
}
