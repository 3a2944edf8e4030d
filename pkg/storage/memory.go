package storage

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/joshuapare/tdatakit/pkg/types"
)

type memFile struct {
	data    []byte
	modTime time.Time
}

// Memory keeps files in a map. Modification times are explicit so tests can
// order legacy candidates deterministically.
type Memory struct {
	mu    sync.RWMutex
	files map[string]memFile
	// Now stamps files written through WriteFile. Defaults to time.Now.
	Now func() time.Time
}

var _ types.Storage = (*Memory)(nil)

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{files: make(map[string]memFile), Now: time.Now}
}

// Add stores a copy of data under name with the given modification time.
func (m *Memory) Add(name string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string]memFile)
	}
	m.files[name] = memFile{data: append([]byte(nil), data...), modTime: modTime}
}

// Remove deletes name if present.
func (m *Memory) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
}

// Names lists stored files in lexical order.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.files))
}

func (m *Memory) Stat(_ context.Context, name string) (types.FileInfo, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[name]
	if !ok {
		return types.FileInfo{}, false, nil
	}
	return types.FileInfo{ModTime: f.modTime}, true, nil
}

func (m *Memory) ReadFile(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("memory storage: %s: %w", name, types.ErrNotFound)
	}
	return append([]byte(nil), f.data...), nil
}

func (m *Memory) WriteFile(_ context.Context, name string, data []byte, _ bool) error {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	m.Add(name, data, now())
	return nil
}
