package tdsvalue

import (
	"context"
)

const nullShortLength = 0xffff

// readVarBytes reads a short length prefixed payload, or a PLP stream when
// the declared length is MaxLength.
func (d *Decoder) readVarBytes(ctx context.Context, c *Cursor, declared uint32) ([]byte, bool, error) {
	if declared == MaxLength {
		return d.readPLP(ctx, c)
	}
	size, err := c.ReadUint16LE()
	if err != nil {
		return nil, false, err
	}
	if size == nullShortLength {
		return nil, true, nil
	}
	buf, err := c.ReadBuffer(int(size))
	if err != nil {
		return nil, false, err
	}
	return buf, false, nil
}

// readLegacyLOB reads a text, ntext or image value: a text pointer and
// timestamp that are skipped, then a 4 byte length and the payload.
func readLegacyLOB(c *Cursor) ([]byte, bool, error) {
	ptrLen, err := c.ReadUint8()
	if err != nil {
		return nil, false, err
	}
	if ptrLen == 0 {
		return nil, true, nil
	}
	// text pointer, then timestamp
	if err = c.Skip(int(ptrLen) + 8); err != nil {
		return nil, false, err
	}
	size, err := c.ReadUint32LE()
	if err != nil {
		return nil, false, err
	}
	buf, err := c.ReadBuffer(int(size))
	if err != nil {
		return nil, false, err
	}
	return buf, false, nil
}

func charsValue(buf []byte, codepage string) (Value, error) {
	s, err := decodeChars(buf, codepage)
	if err != nil {
		return Value{}, err
	}
	return StringValue(s), nil
}

func ncharsValue(buf []byte) (Value, error) {
	s, err := decodeUCS2(buf)
	if err != nil {
		return Value{}, err
	}
	return StringValue(s), nil
}

func metadataCodepage(md Metadata) string {
	if md.Collation == nil {
		return defaultCodepage
	}
	return md.Collation.Codepage()
}

func (d *Decoder) decodeChars(ctx context.Context, c *Cursor, md Metadata) (Value, error) {
	buf, isNull, err := d.readVarBytes(ctx, c, md.DataLength)
	if err != nil || isNull {
		return Value{}, err
	}
	return charsValue(buf, metadataCodepage(md))
}

func (d *Decoder) decodeNChars(ctx context.Context, c *Cursor, md Metadata) (Value, error) {
	buf, isNull, err := d.readVarBytes(ctx, c, md.DataLength)
	if err != nil || isNull {
		return Value{}, err
	}
	return ncharsValue(buf)
}

func (d *Decoder) decodeBinary(ctx context.Context, c *Cursor, md Metadata) (Value, error) {
	buf, isNull, err := d.readVarBytes(ctx, c, md.DataLength)
	if err != nil || isNull {
		return Value{}, err
	}
	return BytesValue(buf), nil
}
