package tdsvalue

import (
	"github.com/denisenkom/go-tdsvalue/internal/mstype"
)

// sql_variant
// http://msdn.microsoft.com/en-us/library/dd303302.aspx

// widths of the base types that carry no properties
var variantFixedWidths = map[mstype.ID]uint32{
	mstype.Guid:     16,
	mstype.Bit:      1,
	mstype.Int1:     1,
	mstype.Int2:     2,
	mstype.Int4:     4,
	mstype.Int8:     8,
	mstype.DateTim4: 4,
	mstype.DateTime: 8,
	mstype.Flt4:     4,
	mstype.Flt8:     8,
	mstype.Money4:   4,
	mstype.Money:    8,
	mstype.DateN:    3,
}

// decodeVariant reads a variant payload whose total length, base type tag
// and property bytes included, is total.
func (d *Decoder) decodeVariant(c *Cursor, total uint32) (Value, error) {
	tag, err := c.ReadUint8()
	if err != nil {
		return Value{}, err
	}
	info, ok := mstype.Lookup(tag)
	if !ok {
		return Value{}, streamErrorf("unsupported variant base type 0x%02x", tag)
	}
	propLen, err := c.ReadUint8()
	if err != nil {
		return Value{}, err
	}
	if uint32(propLen)+2 > total {
		return Value{}, streamErrorf("variant property length %d exceeds total length %d", propLen, total)
	}
	remaining := total - uint32(propLen) - 2

	if width, ok := variantFixedWidths[info.ID]; ok && remaining != width {
		return Value{}, streamErrorf("variant %s payload is %d bytes, expected %d", info.Name, remaining, width)
	}

	switch info.ID {
	case mstype.Guid:
		return decodeUniqueIdentifier(c, d.opts.LowerCaseGuids)
	case mstype.Bit:
		return readBit(c)
	case mstype.Int1:
		return readTinyInt(c)
	case mstype.Int2:
		return readSmallInt(c)
	case mstype.Int4:
		return readInt(c)
	case mstype.Int8:
		return readBigInt(c)
	case mstype.DateTim4:
		return decodeSmallDateTime(c, d.opts.UseUTC)
	case mstype.DateTime:
		return decodeDateTime(c, d.opts.UseUTC)
	case mstype.Flt4:
		return readReal(c)
	case mstype.Flt8:
		return readFloat(c)
	case mstype.Money4:
		return readSmallMoney(c)
	case mstype.Money:
		return readMoney(c)
	case mstype.DateN:
		return decodeDate(c, d.opts.UseUTC)
	case mstype.TimeN:
		scale, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		return decodeTime(c, int(remaining), scale, d.opts.UseUTC)
	case mstype.DateTime2N:
		scale, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		return decodeDateTime2(c, int(remaining), scale, d.opts.UseUTC)
	case mstype.DateTimeOffsetN:
		scale, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		return decodeDateTimeOffset(c, int(remaining), scale)
	case mstype.BigVarBin, mstype.BigBinary:
		// max length
		if err = c.Skip(2); err != nil {
			return Value{}, err
		}
		buf, err := c.ReadBuffer(int(remaining))
		if err != nil {
			return Value{}, err
		}
		return BytesValue(buf), nil
	case mstype.NumericN, mstype.DecimalN:
		prec, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		scale, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		return decodeNumeric(c, int(remaining), prec, scale)
	case mstype.BigVarChar, mstype.BigChar:
		if err = c.Skip(2); err != nil {
			return Value{}, err
		}
		coll, err := readCollation(c)
		if err != nil {
			return Value{}, err
		}
		buf, err := c.ReadBuffer(int(remaining))
		if err != nil {
			return Value{}, err
		}
		return charsValue(buf, coll.Codepage())
	case mstype.NVarChar, mstype.NChar:
		if err = c.Skip(2); err != nil {
			return Value{}, err
		}
		// the collation is sent but has no bearing on UTF-16 data
		if _, err = readCollation(c); err != nil {
			return Value{}, err
		}
		buf, err := c.ReadBuffer(int(remaining))
		if err != nil {
			return Value{}, err
		}
		return ncharsValue(buf)
	}
	return Value{}, streamErrorf("invalid variant base type %s", info.Name)
}
