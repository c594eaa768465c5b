// Package testutil builds TDS wire fixtures for tests.
package testutil

import (
	"encoding/binary"
	"unicode/utf16"
)

// LE16 encodes v as two little-endian bytes.
func LE16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// LE32 encodes v as four little-endian bytes.
func LE32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// LE64 encodes v as eight little-endian bytes.
func LE64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// Concat joins byte slices into a new slice.
func Concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// UCS2 encodes s as UTF-16 little-endian.
func UCS2(s string) []byte {
	runes := utf16.Encode([]rune(s))
	b := make([]byte, len(runes)*2)
	for i, r := range runes {
		binary.LittleEndian.PutUint16(b[i*2:], r)
	}
	return b
}

var (
	PLPNull          = []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	PLPUnknownLength = []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
)

// PLPChunks encodes chunks as a PLP body: each chunk prefixed with its
// four byte length, followed by the zero length terminator.
func PLPChunks(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, LE32(uint32(len(c)))...)
		out = append(out, c...)
	}
	return append(out, 0, 0, 0, 0)
}

// PLP encodes chunks as a known length PLP value whose header declares total.
func PLP(total uint64, chunks ...[]byte) []byte {
	return Concat(LE64(total), PLPChunks(chunks...))
}

// UnknownPLP encodes chunks as an unknown length PLP value.
func UnknownPLP(chunks ...[]byte) []byte {
	return Concat(PLPUnknownLength, PLPChunks(chunks...))
}

// Packetize splits payload into TDS packets no larger than packetSize,
// marking the last one as end of message.
func Packetize(packetType byte, packetSize int, payload []byte) []byte {
	const headerSize = 8
	room := packetSize - headerSize
	var out []byte
	packetNo := byte(1)
	for {
		n := len(payload)
		if n > room {
			n = room
		}
		status := byte(0)
		if n == len(payload) {
			status = 1
		}
		size := uint16(headerSize + n)
		out = append(out, packetType, status, byte(size>>8), byte(size), 0, 0, packetNo, 0)
		out = append(out, payload[:n]...)
		payload = payload[n:]
		packetNo++
		if status == 1 {
			return out
		}
	}
}
