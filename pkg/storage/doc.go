// Package storage provides types.Storage backends for a tdata folder:
// a filesystem directory, an in-memory map, and a read-only zip archive.
package storage
