package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joshuapare/tdatakit/pkg/types"
)

// Dir serves files from a tdata directory on disk.
type Dir struct {
	Root string
}

var _ types.Storage = (*Dir)(nil)

// NewDir returns a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

func (d *Dir) path(name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("dir storage: %q escapes the storage root", name)
	}
	return filepath.Join(d.Root, local), nil
}

func (d *Dir) Stat(ctx context.Context, name string) (types.FileInfo, bool, error) {
	if err := ctx.Err(); err != nil {
		return types.FileInfo{}, false, err
	}
	p, err := d.path(name)
	if err != nil {
		return types.FileInfo{}, false, err
	}
	st, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return types.FileInfo{}, false, nil
	}
	if err != nil {
		return types.FileInfo{}, false, fmt.Errorf("dir storage: stat %s: %w", name, err)
	}
	if st.IsDir() {
		return types.FileInfo{}, false, nil
	}
	return types.FileInfo{ModTime: st.ModTime()}, true, nil
}

func (d *Dir) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("dir storage: %s: %w", name, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("dir storage: read %s: %w", name, err)
	}
	return b, nil
}

// WriteFile writes data atomically via temp file + sync + rename.
func (d *Dir) WriteFile(ctx context.Context, name string, data []byte, createParentDirs bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := d.path(name)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if createParentDirs {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("dir storage: create %s: %w", dir, err)
		}
	}

	tmpFile, err := os.CreateTemp(dir, ".tdata-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if syncErr := syncFile(tmpFile); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil // Don't clean up in defer

	if renameErr := os.Rename(tmpPath, p); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}
