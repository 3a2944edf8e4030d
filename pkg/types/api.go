package types

import (
	"context"
	"fmt"
	"hash"
	"time"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound             ErrKind = iota // no candidate file present
	ErrKindInvalidMagic                        // container does not start with TDF$
	ErrKindUnsupportedVersion                  // container version newer than supported
	ErrKindChecksumMismatch                    // container digest does not match payload
	ErrKindAllCandidatesFailed                 // every candidate file failed validation
	ErrKindAuthentication                      // wrong passcode or tampered ciphertext
	ErrKindLengthCorruption                    // decrypted length prefix out of bounds
	ErrKindUnknownBlock                        // unregistered block discriminant
	ErrKindMissingAuthorization                // no authorization record in the stream
	ErrKindLocalKeyMissing                     // local key neither supplied nor recoverable
	ErrKindTruncated                           // read past the end of a stream
)

var kindNames = [...]string{
	ErrKindNotFound:             "not found",
	ErrKindInvalidMagic:         "invalid magic",
	ErrKindUnsupportedVersion:   "unsupported version",
	ErrKindChecksumMismatch:     "checksum mismatch",
	ErrKindAllCandidatesFailed:  "all candidates failed",
	ErrKindAuthentication:       "authentication failure",
	ErrKindLengthCorruption:     "length corruption",
	ErrKindUnknownBlock:         "unknown block",
	ErrKindMissingAuthorization: "missing authorization record",
	ErrKindLocalKeyMissing:      "local key missing",
	ErrKindTruncated:            "truncated",
}

func (k ErrKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

// NewError builds an *Error of the given kind.
func NewError(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrChecksumMismatch)
// holds for every checksum failure regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t.Kind == e.Kind
}

// Sentinels commonly returned by implementations.
var (
	ErrNotFound             = &Error{Kind: ErrKindNotFound, Msg: "file not found"}
	ErrInvalidMagic         = &Error{Kind: ErrKindInvalidMagic, Msg: "invalid magic"}
	ErrUnsupportedVersion   = &Error{Kind: ErrKindUnsupportedVersion, Msg: "unsupported version"}
	ErrChecksumMismatch     = &Error{Kind: ErrKindChecksumMismatch, Msg: "md5 mismatch"}
	ErrAllCandidatesFailed  = &Error{Kind: ErrKindAllCandidatesFailed, Msg: "all candidates failed"}
	ErrAuthentication       = &Error{Kind: ErrKindAuthentication, Msg: "failed to decrypt, invalid password?"}
	ErrLengthCorruption     = &Error{Kind: ErrKindLengthCorruption, Msg: "failed to decrypt, invalid data length"}
	ErrUnknownBlock         = &Error{Kind: ErrKindUnknownBlock, Msg: "unknown block"}
	ErrMissingAuthorization = &Error{Kind: ErrKindMissingAuthorization, Msg: "did not find mtp authorization data"}
	ErrLocalKeyMissing      = &Error{Kind: ErrKindLocalKeyMissing, Msg: "local key not provided"}
	ErrTruncated            = &Error{Kind: ErrKindTruncated, Msg: "truncated stream"}
)

// UnknownBlockError reports a discriminant with no registered decoder. The
// payload length of such a record cannot be inferred, so decoding stops.
type UnknownBlockError struct {
	Schema string // "settings" or "local storage"
	ID     uint32
}

func (e *UnknownBlockError) Error() string {
	return fmt.Sprintf("unknown %s block %d (0x%x)", e.Schema, e.ID, e.ID)
}

// Is matches ErrUnknownBlock.
func (e *UnknownBlockError) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == ErrKindUnknownBlock
}

// CandidatesError is returned when no candidate file for a logical name
// passed validation. Last carries the most recent specific failure.
type CandidatesError struct {
	File  string
	Tried []string
	Last  error
}

func (e *CandidatesError) Error() string {
	return fmt.Sprintf("failed to read %s (tried %v), last error: %v", e.File, e.Tried, e.Last)
}

func (e *CandidatesError) Unwrap() error { return e.Last }

// Is matches ErrAllCandidatesFailed.
func (e *CandidatesError) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == ErrKindAllCandidatesFailed
}

// -----------------------------------------------------------------------------
// Storage capability
// -----------------------------------------------------------------------------

// FileInfo is the subset of file metadata the container resolver needs.
type FileInfo struct {
	ModTime time.Time
}

// Storage gives access to named blobs relative to the tdata root. Names use
// forward slashes regardless of platform.
type Storage interface {
	// Stat reports whether name exists. A missing file is not an error.
	Stat(ctx context.Context, name string) (FileInfo, bool, error)
	// ReadFile returns the contents of name, or an error matching ErrNotFound.
	ReadFile(ctx context.Context, name string) ([]byte, error)
	// WriteFile replaces name with data, creating parent directories first
	// when createParentDirs is set.
	WriteFile(ctx context.Context, name string, data []byte, createParentDirs bool) error
}

// -----------------------------------------------------------------------------
// Crypto capability
// -----------------------------------------------------------------------------

// HashAlgo selects the PRF underlying PBKDF2.
type HashAlgo int

const (
	SHA1 HashAlgo = iota
	SHA512
)

func (h HashAlgo) String() string {
	switch h {
	case SHA1:
		return "sha1"
	case SHA512:
		return "sha512"
	default:
		return fmt.Sprintf("HashAlgo(%d)", int(h))
	}
}

// MessageCipher transforms whole block-aligned buffers under a key schedule
// derived from a local key and a message tag.
type MessageCipher interface {
	Encrypt(src []byte) ([]byte, error)
	Decrypt(src []byte) ([]byte, error)
}

// Crypto supplies the primitives the codecs consume but do not implement.
type Crypto interface {
	NewMD5() hash.Hash
	SHA1(data []byte) []byte
	SHA512(data []byte) []byte
	PBKDF2(password, salt []byte, iterations, keyLen int, algo HashAlgo) []byte
	// MessageCipher derives the cipher for (key, msgKey). outgoing selects
	// the client-to-server half of the key schedule; local storage always
	// uses the incoming half.
	MessageCipher(key, msgKey []byte, outgoing bool) (MessageCipher, error)
	RandomBytes(n int) ([]byte, error)
}
