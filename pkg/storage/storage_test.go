package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tdatakit/pkg/types"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m.Now = func() time.Time { return stamp }

	_, ok, err := m.Stat(ctx, "settingss")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.ReadFile(ctx, "settingss")
	require.ErrorIs(t, err, types.ErrNotFound)

	data := []byte{1, 2, 3}
	require.NoError(t, m.WriteFile(ctx, "settingss", data, false))
	data[0] = 9

	info, ok, err := m.Stat(ctx, "settingss")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stamp, info.ModTime)

	got, err := m.ReadFile(ctx, "settingss")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	m.Add("key_datas", nil, stamp)
	assert.Equal(t, []string{"key_datas", "settingss"}, m.Names())
	m.Remove("key_datas")
	assert.Equal(t, []string{"settingss"}, m.Names())
}

func TestDirRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := NewDir(root)

	err := d.WriteFile(ctx, "D877F783D5D3EF8C/maps", []byte("map"), false)
	require.Error(t, err, "parent directory does not exist yet")

	require.NoError(t, d.WriteFile(ctx, "D877F783D5D3EF8C/maps", []byte("map"), true))
	got, err := d.ReadFile(ctx, "D877F783D5D3EF8C/maps")
	require.NoError(t, err)
	assert.Equal(t, []byte("map"), got)

	info, ok, err := d.Stat(ctx, "D877F783D5D3EF8C/maps")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, info.ModTime.IsZero())

	// Overwrite replaces contents and leaves no temp files behind.
	require.NoError(t, d.WriteFile(ctx, "D877F783D5D3EF8C/maps", []byte("map2"), false))
	got, err = d.ReadFile(ctx, "D877F783D5D3EF8C/maps")
	require.NoError(t, err)
	assert.Equal(t, []byte("map2"), got)
	entries, err := os.ReadDir(filepath.Join(root, "D877F783D5D3EF8C"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "maps", entries[0].Name())
}

func TestDirMissing(t *testing.T) {
	ctx := context.Background()
	d := NewDir(t.TempDir())

	_, ok, err := d.Stat(ctx, "key_data0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = d.ReadFile(ctx, "key_data0")
	require.ErrorIs(t, err, types.ErrNotFound)

	// Directories are not files.
	require.NoError(t, os.Mkdir(filepath.Join(d.Root, "sub"), 0o700))
	_, ok, err = d.Stat(ctx, "sub")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDirRejectsEscapes(t *testing.T) {
	ctx := context.Background()
	d := NewDir(t.TempDir())

	for _, name := range []string{"../outside", "/etc/passwd", ""} {
		_, err := d.ReadFile(ctx, name)
		assert.Error(t, err, name)
		assert.Error(t, d.WriteFile(ctx, name, []byte{1}, true), name)
	}
}

func TestDirCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewDir(t.TempDir())
	_, err := d.ReadFile(ctx, "settingss")
	require.ErrorIs(t, err, context.Canceled)
}

func buildZip(t *testing.T, files map[string][]byte, modTime time.Time) []byte {
	t.Helper()
	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for name, data := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modTime})
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return out.Bytes()
}

func TestZip(t *testing.T) {
	ctx := context.Background()
	stamp := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	archive := buildZip(t, map[string][]byte{
		"tdata/key_datas":             []byte("key"),
		"tdata/D877F783D5D3EF8C/maps": []byte("map"),
		"other/settingss":             []byte("ignored"),
	}, stamp)

	z, err := NewZip(bytes.NewReader(archive), int64(len(archive)), "tdata/")
	require.NoError(t, err)
	defer z.Close()

	got, err := z.ReadFile(ctx, "key_datas")
	require.NoError(t, err)
	assert.Equal(t, []byte("key"), got)

	got, err = z.ReadFile(ctx, "D877F783D5D3EF8C/maps")
	require.NoError(t, err)
	assert.Equal(t, []byte("map"), got)

	info, ok, err := z.Stat(ctx, "key_datas")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, stamp.Equal(info.ModTime))

	_, ok, err = z.Stat(ctx, "settingss")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = z.ReadFile(ctx, "settingss")
	require.ErrorIs(t, err, types.ErrNotFound)

	require.ErrorIs(t, z.WriteFile(ctx, "key_datas", nil, false), ErrReadOnly)
}

func TestOpenZipFile(t *testing.T) {
	archive := buildZip(t, map[string][]byte{"settingss": []byte("s")}, time.Now())
	p := filepath.Join(t.TempDir(), "tdata.zip")
	require.NoError(t, os.WriteFile(p, archive, 0o600))

	z, err := OpenZip(p, "")
	require.NoError(t, err)
	got, err := z.ReadFile(context.Background(), "settingss")
	require.NoError(t, err)
	assert.Equal(t, []byte("s"), got)
	require.NoError(t, z.Close())

	_, err = OpenZip(filepath.Join(t.TempDir(), "missing.zip"), "")
	require.Error(t, err)
}
