// Package registry implements the discriminant-dispatched record loop shared
// by the settings and local-storage schemas.
//
// Every record in a stream is a uint32 block id followed by a payload whose
// shape only the registered decoder knows. An unregistered id therefore ends
// decoding: there is no generic way to find where its payload stops.
package registry

import (
	"fmt"
	"slices"

	"github.com/joshuapare/tdatakit/internal/qt"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// Decoder reads one record payload. ok = false means the payload was consumed
// but yields no record (legacy entries kept only for stream alignment).
type Decoder[T any] func(r *qt.Reader) (rec T, ok bool, err error)

// Table maps block ids to decoders for a single schema.
type Table[T any] struct {
	schema   string
	decoders map[uint32]Decoder[T]
}

// New builds a table. The decoders map is not copied.
func New[T any](schema string, decoders map[uint32]Decoder[T]) *Table[T] {
	return &Table[T]{schema: schema, decoders: decoders}
}

// Schema returns the schema name used in errors.
func (t *Table[T]) Schema() string { return t.schema }

// Has reports whether id has a decoder.
func (t *Table[T]) Has(id uint32) bool {
	_, ok := t.decoders[id]
	return ok
}

// IDs returns the registered ids in ascending order.
func (t *Table[T]) IDs() []uint32 {
	ids := make([]uint32, 0, len(t.decoders))
	for id := range t.decoders {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ReadOne reads a block id and its payload.
func (t *Table[T]) ReadOne(r *qt.Reader) (T, bool, error) {
	var zero T
	id, err := r.Uint32()
	if err != nil {
		return zero, false, fmt.Errorf("%s block id: %w", t.schema, err)
	}
	dec, ok := t.decoders[id]
	if !ok {
		return zero, false, &types.UnknownBlockError{Schema: t.schema, ID: id}
	}
	rec, ok, err := dec(r)
	if err != nil {
		return zero, false, fmt.Errorf("%s block %d (0x%x): %w", t.schema, id, id, err)
	}
	return rec, ok, nil
}

// DecodeAll reads records until r is exhausted, preserving stream order. Any
// failure aborts the whole decode; no partial result is returned.
func (t *Table[T]) DecodeAll(r *qt.Reader) ([]T, error) {
	var out []T
	for !r.Ended() {
		rec, ok, err := t.ReadOne(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
