// Package types defines the public data model, capability interfaces, and
// typed errors shared by the tdata codecs.
//
// A tdata folder is the on-disk local storage of the desktop messaging
// client: checksummed container files wrapping password-encrypted,
// Qt-serialized records. This package only exposes interfaces and core
// types; the codecs live in internal packages and the orchestration in
// package tdata.
//
// Design goals:
//   - Capabilities (storage, crypto) are injected, never reached for globally.
//   - Paranoid bounds checking; never panic on malformed input.
//   - Typed errors with stable categories so callers can branch on intent.
package types
