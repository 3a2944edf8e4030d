// Package settings decodes and encodes the settings block schema: the record
// stream stored inside the settings file and inside per-account data files.
package settings

import (
	"fmt"
	"slices"

	"github.com/joshuapare/tdatakit/internal/qt"
	"github.com/joshuapare/tdatakit/internal/registry"
)

// Schema names the settings stream in errors.
const Schema = "settings"

var table = registry.New(Schema, buildDecoders())

func buildDecoders() map[uint32]registry.Decoder[Field] {
	m := make(map[uint32]registry.Decoder[Field])
	for _, id := range boolBlocks {
		m[uint32(id)] = func(r *qt.Reader) (Field, bool, error) {
			v, err := r.Int32()
			return Bool{ID: id, Value: v == 1}, true, err
		}
	}
	for _, id := range int32Blocks {
		m[uint32(id)] = func(r *qt.Reader) (Field, bool, error) {
			v, err := r.Int32()
			return Int32{ID: id, Value: v}, true, err
		}
	}
	for _, id := range uint64Blocks {
		m[uint32(id)] = func(r *qt.Reader) (Field, bool, error) {
			v, err := r.Uint64()
			return Uint64{ID: id, Value: v}, true, err
		}
	}
	for _, id := range stringBlocks {
		m[uint32(id)] = func(r *qt.Reader) (Field, bool, error) {
			v, err := r.QString()
			return String{ID: id, Value: v}, true, err
		}
	}
	for _, id := range bytesBlocks {
		m[uint32(id)] = func(r *qt.Reader) (Field, bool, error) {
			v, err := r.ByteArray()
			return Bytes{ID: id, Value: v}, true, err
		}
	}
	m[uint32(DbiMtpAuthorization)] = decodeMtpAuthorization
	m[uint32(DbiDcOptionOldOld)] = decodeDcOptionOldOld
	m[uint32(DbiDcOptionOld)] = decodeDcOptionOld
	m[uint32(DbiThemeKey)] = decodeThemeKey
	m[uint32(DbiBackgroundKey)] = decodeBackgroundKey
	m[uint32(DbiTileBackground)] = decodeTileBackground
	m[uint32(DbiCacheSettings)] = decodeCacheSettings
	return m
}

func decodeMtpAuthorization(r *qt.Reader) (Field, bool, error) {
	v, err := r.ByteArray()
	if err != nil {
		return nil, false, err
	}
	return MtpAuthorization{Data: v}, true, nil
}

func decodeDcOptionOldOld(r *qt.Reader) (Field, bool, error) {
	var f DcOptionOldOld
	var err error
	if f.DcID, err = r.Uint32(); err != nil {
		return nil, false, err
	}
	if f.Host, err = r.QString(); err != nil {
		return nil, false, err
	}
	if f.IP, err = r.QString(); err != nil {
		return nil, false, err
	}
	if f.Port, err = r.Uint32(); err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func decodeDcOptionOld(r *qt.Reader) (Field, bool, error) {
	var f DcOptionOld
	var err error
	if f.DcIDWithShift, err = r.Uint32(); err != nil {
		return nil, false, err
	}
	if f.Flags, err = r.Int32(); err != nil {
		return nil, false, err
	}
	if f.IP, err = r.QString(); err != nil {
		return nil, false, err
	}
	if f.Port, err = r.Uint32(); err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func decodeThemeKey(r *qt.Reader) (Field, bool, error) {
	var f ThemeKey
	var err error
	if f.Day, err = r.Uint64(); err != nil {
		return nil, false, err
	}
	if f.Night, err = r.Uint64(); err != nil {
		return nil, false, err
	}
	if f.NightMode, err = r.Int32(); err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func decodeBackgroundKey(r *qt.Reader) (Field, bool, error) {
	var f BackgroundKey
	var err error
	if f.Day, err = r.Uint64(); err != nil {
		return nil, false, err
	}
	if f.Night, err = r.Uint64(); err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func decodeTileBackground(r *qt.Reader) (Field, bool, error) {
	day, err := r.Uint32()
	if err != nil {
		return nil, false, err
	}
	night, err := r.Uint32()
	if err != nil {
		return nil, false, err
	}
	return TileBackground{Day: day, Night: night}, true, nil
}

func decodeCacheSettings(r *qt.Reader) (Field, bool, error) {
	var f CacheSettings
	var err error
	if f.Size, err = r.Int64(); err != nil {
		return nil, false, err
	}
	if f.SizeBig, err = r.Int64(); err != nil {
		return nil, false, err
	}
	if f.Time, err = r.Uint32(); err != nil {
		return nil, false, err
	}
	if f.TimeBig, err = r.Uint32(); err != nil {
		return nil, false, err
	}
	return f, true, nil
}

// Decode parses data as back-to-back settings records until it is exhausted.
func Decode(data []byte) ([]Field, error) {
	return table.DecodeAll(qt.NewReader(data))
}

// ReadField reads a single record from r.
func ReadField(r *qt.Reader) (Field, error) {
	f, _, err := table.ReadOne(r)
	return f, err
}

// Supported reports whether id has a decoder.
func Supported(id BlockID) bool { return table.Has(uint32(id)) }

// Encode appends each field's block id and payload to w.
func Encode(w *qt.Writer, fields ...Field) error {
	for _, f := range fields {
		if err := checkKind(f); err != nil {
			return err
		}
		w.Uint32(uint32(f.Block()))
		if err := f.encodePayload(w); err != nil {
			return fmt.Errorf("%s block %s: %w", Schema, f.Block(), err)
		}
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

// checkKind rejects scalar fields whose id is registered with another shape,
// which would produce a stream Decode cannot read back.
func checkKind(f Field) error {
	var allowed []BlockID
	switch f.(type) {
	case Bool:
		allowed = boolBlocks
	case Int32:
		allowed = int32Blocks
	case Uint64:
		allowed = uint64Blocks
	case String:
		allowed = stringBlocks
	case Bytes:
		allowed = bytesBlocks
	default:
		return nil
	}
	if !slices.Contains(allowed, f.Block()) {
		return fmt.Errorf("%s: block %s cannot be encoded as %T", Schema, f.Block(), f)
	}
	return nil
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

// FindBlock returns the first field with the given id.
func FindBlock(fields []Field, id BlockID) (Field, bool) {
	for _, f := range fields {
		if f.Block() == id {
			return f, true
		}
	}
	return nil, false
}
