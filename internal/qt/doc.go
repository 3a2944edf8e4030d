// Package qt reads and writes the subset of the QDataStream wire format used
// by tdata files.
//
// Layout rules:
//
//	int32/uint32   4 bytes, big endian
//	int64/uint64   two big-endian 32-bit halves, high half first
//	QByteArray     uint32 byte length, then bytes; 0 and 0xFFFFFFFF are empty
//	char array     QByteArray whose last byte is a NUL terminator
//	QString        QByteArray of UTF-16 big-endian code units
//
// The length prefix of a QString counts bytes, not characters.
package qt
