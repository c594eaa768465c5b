package tdsvalue

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// UniqueIdentifier is a GUID in canonical (RFC 4122) byte order. On the
// wire the first three groups are little-endian.
type UniqueIdentifier [16]byte

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// UniqueIdentifierFromWire converts 16 bytes in wire order.
func UniqueIdentifierFromWire(b []byte) (UniqueIdentifier, error) {
	var u UniqueIdentifier
	if len(b) != len(u) {
		return u, errors.Errorf("invalid UniqueIdentifier length %d", len(b))
	}
	copy(u[:], b)
	reverse(u[0:4])
	reverse(u[4:6])
	reverse(u[6:8])
	return u, nil
}

// ParseUniqueIdentifier parses the hyphenated hex form, in either case.
func ParseUniqueIdentifier(s string) (UniqueIdentifier, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UniqueIdentifier{}, errors.Wrap(err, "invalid UniqueIdentifier")
	}
	return UniqueIdentifier(id), nil
}

// Wire returns the bytes in the order they are transmitted.
func (u UniqueIdentifier) Wire() []byte {
	raw := make([]byte, len(u))
	copy(raw, u[:])
	reverse(raw[0:4])
	reverse(raw[4:6])
	reverse(raw[6:8])
	return raw
}

// String returns the upper case hyphenated form SQL Server displays.
func (u UniqueIdentifier) String() string {
	return strings.ToUpper(u.LowerString())
}

func (u UniqueIdentifier) LowerString() string {
	return uuid.UUID(u).String()
}

func (u UniqueIdentifier) format(lower bool) string {
	if lower {
		return u.LowerString()
	}
	return u.String()
}

func decodeUniqueIdentifier(c *Cursor, lower bool) (Value, error) {
	buf, err := c.ReadBuffer(16)
	if err != nil {
		return Value{}, err
	}
	u, err := UniqueIdentifierFromWire(buf)
	if err != nil {
		return Value{}, err
	}
	return StringValue(u.format(lower)), nil
}
