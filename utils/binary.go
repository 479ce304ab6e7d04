package utils

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WriteLInt64 writes a little-endian int64 to the buffer.
func WriteLInt64(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

// WriteLFloat32 writes a little-endian float32 to the buffer.
func WriteLFloat32(buf *bytes.Buffer, v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	buf.Write(b[:])
}

// LInt64 reads a little-endian int64. b must hold at least 8 bytes.
func LInt64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

// LFloat32 reads a little-endian float32. b must hold at least 4 bytes.
func LFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
