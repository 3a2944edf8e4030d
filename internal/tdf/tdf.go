// Package tdf implements the TDF$ container frame that wraps every file in a
// tdata folder, and the resolution of a logical file name to the physical
// candidates that may hold it.
//
// Frame layout:
//
//	magic(4) "TDF$" | version(4) | payload(N) | md5(16)
//
// The digest covers payload || len(payload) || version || magic, with the two
// integers in the configured byte order.
package tdf

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/tdatakit/internal/buf"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// Magic is the four-byte frame signature.
var Magic = []byte("TDF$")

const (
	// Version is the newest container version this package understands and
	// the version written by default.
	Version int32 = 3007006

	// HeaderSize covers magic and version.
	HeaderSize = 8
	// ChecksumSize is the trailing MD5 digest length.
	ChecksumSize = 16
	// Overhead is the frame size around the payload.
	Overhead = HeaderSize + ChecksumSize

	// ModernSuffix marks the single current file for a logical name.
	ModernSuffix = "s"
)

// Codec frames and unframes container files.
type Codec struct {
	Crypto types.Crypto
	// Order applies to the version field and to the integers folded into
	// the checksum. Nil means little endian.
	Order binary.ByteOrder
	// IgnoreVersion accepts versions newer than Version.
	IgnoreVersion bool
	// WriteVersion is stamped on encoded frames. Zero means Version.
	WriteVersion int32
	Logger       *slog.Logger
}

func (c *Codec) order() binary.ByteOrder {
	if c.Order == nil {
		return binary.LittleEndian
	}
	return c.Order
}

func (c *Codec) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

func (c *Codec) checksum(payload []byte, version int32) []byte {
	order := c.order()
	h := c.Crypto.NewMD5()
	h.Write(payload)
	h.Write(buf.Int32Bytes(order, int32(len(payload))))
	h.Write(buf.Int32Bytes(order, version))
	h.Write(Magic)
	return h.Sum(nil)
}

// Encode wraps payload in a frame.
func (c *Codec) Encode(payload []byte) []byte {
	version := c.WriteVersion
	if version == 0 {
		version = Version
	}
	out := make([]byte, 0, len(payload)+Overhead)
	out = append(out, Magic...)
	out = append(out, buf.Int32Bytes(c.order(), version)...)
	out = append(out, payload...)
	return append(out, c.checksum(payload, version)...)
}

// Decode validates a frame and returns its version and payload. The payload
// aliases data.
func (c *Codec) Decode(data []byte) (int32, []byte, error) {
	if len(data) < len(Magic) || !bytes.Equal(data[:len(Magic)], Magic) {
		return 0, nil, types.ErrInvalidMagic
	}
	version, ok := buf.Int32At(c.order(), data, len(Magic))
	if !ok || len(data) < Overhead {
		return 0, nil, types.NewError(types.ErrKindTruncated,
			fmt.Sprintf("frame of %d bytes is shorter than %d", len(data), Overhead), nil)
	}
	if version > Version && !c.IgnoreVersion {
		return 0, nil, types.NewError(types.ErrKindUnsupportedVersion,
			fmt.Sprintf("unsupported version: %d", version), nil)
	}

	size := len(data) - Overhead
	payload := data[HeaderSize : HeaderSize+size]
	if !bytes.Equal(c.checksum(payload, version), data[HeaderSize+size:]) {
		return 0, nil, types.ErrChecksumMismatch
	}
	return version, payload, nil
}

// Candidates lists the physical files to try for a logical name, in order.
// The modern file wins outright when present. Otherwise the two numbered
// legacy files are tried newest first. An empty result means nothing exists.
func Candidates(ctx context.Context, st types.Storage, name string) ([]string, error) {
	modern := name + ModernSuffix
	_, ok, err := st.Stat(ctx, modern)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", modern, err)
	}
	if ok {
		return []string{modern}, nil
	}

	try0, try1 := name+"0", name+"1"
	info0, ok0, err := st.Stat(ctx, try0)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", try0, err)
	}
	info1, ok1, err := st.Stat(ctx, try1)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", try1, err)
	}

	switch {
	case ok0 && ok1:
		if info0.ModTime.Before(info1.ModTime) {
			return []string{try1, try0}, nil
		}
		return []string{try0, try1}, nil
	case ok0:
		return []string{try0}, nil
	case ok1:
		return []string{try1}, nil
	}
	return nil, nil
}

// Read resolves name and returns the first candidate frame that validates.
// Validation failures fall through to the next candidate; storage errors
// other than a vanished file abort.
func (c *Codec) Read(ctx context.Context, st types.Storage, name string) (int32, []byte, error) {
	order, err := Candidates(ctx, st, name)
	if err != nil {
		return 0, nil, err
	}

	var last error = types.ErrNotFound
	log := c.logger()
	for _, file := range order {
		data, err := st.ReadFile(ctx, file)
		if err != nil {
			if !errors.Is(err, types.ErrNotFound) {
				return 0, nil, fmt.Errorf("read %s: %w", file, err)
			}
			last = err
			log.Debug("candidate vanished", "file", name, "candidate", file)
			continue
		}
		version, payload, err := c.Decode(data)
		if err != nil {
			last = err
			log.Debug("candidate rejected", "file", name, "candidate", file, "reason", err)
			continue
		}
		return version, payload, nil
	}
	return 0, nil, &types.CandidatesError{File: name, Tried: order, Last: last}
}

// Write frames payload and stores it as the modern file for name.
func (c *Codec) Write(ctx context.Context, st types.Storage, name string, payload []byte, createParentDirs bool) error {
	file := name + ModernSuffix
	if err := st.WriteFile(ctx, file, c.Encode(payload), createParentDirs); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	c.logger().Info("wrote container", "file", file, "bytes", len(payload))
	return nil
}
