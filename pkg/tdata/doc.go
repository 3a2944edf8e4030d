// Package tdata reads and writes the local storage folder of a Telegram
// Desktop installation.
//
// A Session binds a storage backend and a crypto capability to the folder
// conventions: the global settings file, the key_<name> account index, and
// per-account map and authorization files. Every file is a TDF$ container;
// inner payloads are encrypted with a key derived from a salt and the
// optional local passcode.
//
// Typical use:
//
//	s := tdata.New(storage.NewDir("/path/to/tdata"), tdata.Options{})
//	kd, err := s.ReadKeyData(ctx)
//	if err != nil { ... }
//	auth, err := s.ReadMtpAuthorization(ctx, kd.LocalKey, 0)
//
// Session holds no mutable state. Callers serialize concurrent writes to the
// same account themselves.
package tdata
