package tdata

import (
	"encoding/binary"
	"io"
	"log/slog"

	"github.com/joshuapare/tdatakit/pkg/crypto"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// DefaultDataKey is the account base name used by a stock client.
const DefaultDataKey = "data"

// Options controls how a Session interprets the folder.
type Options struct {
	// ByteOrder of the container version, the checksum integers, and the
	// decrypted length prefix.
	// Default: little endian. Switch only when recovering data written on a
	// host with the other convention.
	ByteOrder binary.ByteOrder

	// IgnoreVersion accepts containers newer than the supported version.
	// Decoding such files is likely to fail further down.
	IgnoreVersion bool

	// OverrideVersion is stamped on written containers.
	// Default: 0, which writes the supported version.
	OverrideVersion int32

	// DataKey is the account base name (the client's -key argument).
	// Default: "data"
	DataKey string

	// Passcode is the local passcode, empty when none is set.
	Passcode string

	// Logger receives debug records for candidate fallback and info records
	// for writes. If nil, logging is discarded.
	Logger *slog.Logger

	// Crypto supplies hashing, key derivation and the message cipher.
	// If nil, crypto.Default() is used.
	Crypto types.Crypto
}

func (o Options) withDefaults() Options {
	if o.ByteOrder == nil {
		o.ByteOrder = binary.LittleEndian
	}
	if o.DataKey == "" {
		o.DataKey = DefaultDataKey
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Crypto == nil {
		o.Crypto = crypto.Default()
	}
	return o
}
