// Package localstorage decodes and encodes the per-account local storage map:
// the index of file keys stored in <account>/map.
package localstorage

import (
	"fmt"
	"slices"

	"github.com/joshuapare/tdatakit/internal/qt"
	"github.com/joshuapare/tdatakit/internal/registry"
)

// Schema names the local storage stream in errors.
const Schema = "local storage"

var table = registry.New(Schema, buildDecoders())

func buildDecoders() map[uint32]registry.Decoder[Field] {
	m := map[uint32]registry.Decoder[Field]{
		uint32(LskDraft):          decodeDraft,
		uint32(LskDraftPosition):  decodeDraftPosition,
		uint32(LskBackgroundOld):  decodeBackgroundOld,
		uint32(LskStickersKeys):   decodeStickersKeys,
		uint32(LskMasksKeys):      decodeMasksKeys,
		uint32(LskSelfSerialized): decodeSelfSerialized,
	}
	for _, id := range fileKeyBlocks {
		m[uint32(id)] = func(r *qt.Reader) (Field, bool, error) {
			v, err := r.Uint64()
			return FileKey{ID: id, Value: v}, true, err
		}
	}
	for _, id := range legacyBlocks {
		m[uint32(id)] = skipLegacy
	}
	return m
}

func skipLegacy(r *qt.Reader) (Field, bool, error) {
	count, err := r.Int32()
	if err != nil {
		return nil, false, err
	}
	return nil, false, r.SkipRecords(int(count), LegacyRecordSize)
}

func decodeRefs(r *qt.Reader) ([]DraftRef, error) {
	count, err := r.Int32()
	if err != nil {
		return nil, err
	}
	if count < 0 || int(count) > r.Remaining()/DraftRefSize {
		return nil, fmt.Errorf("draft count %d exceeds %d remaining bytes", count, r.Remaining())
	}
	refs := make([]DraftRef, 0, count)
	for range count {
		var ref DraftRef
		if ref.FileKey, err = r.Uint64(); err != nil {
			return nil, err
		}
		if ref.PeerID, err = r.Uint64(); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func decodeDraft(r *qt.Reader) (Field, bool, error) {
	refs, err := decodeRefs(r)
	if err != nil {
		return nil, false, err
	}
	return Draft{Drafts: refs}, true, nil
}

func decodeDraftPosition(r *qt.Reader) (Field, bool, error) {
	refs, err := decodeRefs(r)
	if err != nil {
		return nil, false, err
	}
	return DraftPosition{Cursors: refs}, true, nil
}

func readKeys(r *qt.Reader, dst ...*uint64) error {
	for _, d := range dst {
		v, err := r.Uint64()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

func decodeBackgroundOld(r *qt.Reader) (Field, bool, error) {
	var f BackgroundOld
	if err := readKeys(r, &f.Day, &f.Night); err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func decodeStickersKeys(r *qt.Reader) (Field, bool, error) {
	var f StickersKeys
	if err := readKeys(r, &f.Installed, &f.Featured, &f.Recent, &f.Archived); err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func decodeMasksKeys(r *qt.Reader) (Field, bool, error) {
	var f MasksKeys
	if err := readKeys(r, &f.Installed, &f.Recent, &f.Archived); err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func decodeSelfSerialized(r *qt.Reader) (Field, bool, error) {
	v, err := r.ByteArray()
	if err != nil {
		return nil, false, err
	}
	return SelfSerialized{Data: v}, true, nil
}

// Decode parses data as back-to-back map entries until it is exhausted.
// Legacy inline entries are consumed and dropped.
func Decode(data []byte) ([]Field, error) {
	return table.DecodeAll(qt.NewReader(data))
}

// Supported reports whether id has a decoder.
func Supported(id KeyID) bool { return table.Has(uint32(id)) }

// Encode appends each field's key id and payload to w.
func Encode(w *qt.Writer, fields ...Field) error {
	for _, f := range fields {
		if fk, ok := f.(FileKey); ok && !slices.Contains(fileKeyBlocks, fk.ID) {
			return fmt.Errorf("%s: key %s cannot be encoded as a file key", Schema, fk.ID)
		}
		w.Uint32(uint32(f.Key()))
		f.encodePayload(w)
	}
	return nil
}

// Marshal encodes fields into a fresh buffer.
func Marshal(fields []Field) ([]byte, error) {
	w := qt.NewWriter()
	if err := Encode(w, fields...); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Find returns the first field of type T.
func Find[T Field](fields []Field) (T, bool) {
	for _, f := range fields {
		if v, ok := f.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// FileKeyOf returns the file key stored under id.
func FileKeyOf(fields []Field, id KeyID) (uint64, bool) {
	for _, f := range fields {
		if fk, ok := f.(FileKey); ok && fk.ID == id {
			return fk.Value, true
		}
	}
	return 0, false
}
