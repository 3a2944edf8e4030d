package tdata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshuapare/tdatakit/internal/localenc"
	"github.com/joshuapare/tdatakit/internal/qt"
	"github.com/joshuapare/tdatakit/internal/tdf"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// Session is bound to one tdata folder.
type Session struct {
	storage types.Storage
	opts    Options
	frames  *tdf.Codec
	enc     *localenc.Codec
	log     *slog.Logger
}

// New returns a Session over st.
func New(st types.Storage, opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		storage: st,
		opts:    opts,
		frames: &tdf.Codec{
			Crypto:        opts.Crypto,
			Order:         opts.ByteOrder,
			IgnoreVersion: opts.IgnoreVersion,
			WriteVersion:  opts.OverrideVersion,
			Logger:        opts.Logger,
		},
		enc: localenc.New(opts.Crypto, opts.ByteOrder),
		log: opts.Logger,
	}
}

// Options returns the effective options, defaults applied.
func (s *Session) Options() Options { return s.opts }

// ReadFile resolves a logical container name and returns its version and
// payload.
func (s *Session) ReadFile(ctx context.Context, name string) (int32, []byte, error) {
	return s.frames.Read(ctx, s.storage, name)
}

// WriteFile stores payload as the modern container for name.
func (s *Session) WriteFile(ctx context.Context, name string, payload []byte, createParentDirs bool) error {
	return s.frames.Write(ctx, s.storage, name, payload, createParentDirs)
}

// ReadEncryptedFile reads a container whose payload is a single encrypted
// byte array and decrypts it with key.
func (s *Session) ReadEncryptedFile(ctx context.Context, name string, key []byte) (int32, []byte, error) {
	version, payload, err := s.ReadFile(ctx, name)
	if err != nil {
		return 0, nil, err
	}
	encrypted, err := qt.NewReader(payload).ByteArray()
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", name, err)
	}
	plain, err := s.enc.Decrypt(encrypted, key)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", name, err)
	}
	return version, plain, nil
}

// WriteEncryptedFile encrypts data with key and stores it as name.
func (s *Session) WriteEncryptedFile(ctx context.Context, name string, key, data []byte, createParentDirs bool) error {
	encrypted, err := s.enc.Encrypt(data, key)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	w := qt.NewWriter()
	w.ByteArray(encrypted)
	return s.WriteFile(ctx, name, w.Bytes(), createParentDirs)
}

// readArrays reads count consecutive byte arrays from a container payload.
func readArrays(name string, payload []byte, count int) ([][]byte, error) {
	r := qt.NewReader(payload)
	out := make([][]byte, count)
	for i := range out {
		b, err := r.ByteArray()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[i] = b
	}
	return out, nil
}

func writeArrays(arrays ...[]byte) []byte {
	w := qt.NewWriter()
	for _, a := range arrays {
		w.ByteArray(a)
	}
	return w.Bytes()
}
