package tdsvalue

import (
	"context"
	"fmt"

	"github.com/denisenkom/go-tdsvalue/internal/mstype"
	"github.com/denisenkom/go-tdsvalue/msdsn"
)

// MaxLength is the declared length of varchar(max), nvarchar(max) and
// varbinary(max) columns. Their values are sent as PLP streams.
const MaxLength = 0xffff

// Metadata describes the column or parameter a value belongs to, as read
// from COLMETADATA or RETURNVALUE.
type Metadata struct {
	Type       mstype.ID
	DataLength uint32
	Precision  uint8
	Scale      uint8
	// Collation of narrow character data. Nil selects UTF-8.
	Collation *Collation
}

// Options controls how values are materialized.
type Options struct {
	// UseUTC builds temporal values in UTC instead of time.Local.
	UseUTC bool
	// LowerCaseGuids formats uniqueidentifier values in lower case.
	LowerCaseGuids bool
}

// Decoder decodes single values off a Cursor. It holds no per value state
// and may be shared, but every Cursor must be used by one goroutine only.
type Decoder struct {
	opts     Options
	logger   optionalCtxLogger
	logFlags uint64
}

func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

// NewDecoderFromConfig takes options and log flags from a parsed
// connection string.
func NewDecoderFromConfig(cfg msdsn.Config) *Decoder {
	return &Decoder{
		opts: Options{
			UseUTC:         cfg.UseUTC,
			LowerCaseGuids: cfg.LowerCaseGuids,
		},
		logFlags: uint64(cfg.LogFlags),
	}
}

func (d *Decoder) Options() Options {
	return d.opts
}

// SetLogger sets a Logger that receives every enabled log category.
func (d *Decoder) SetLogger(logger Logger) {
	d.SetContextLogger(loggerAdapter{logger})
}

func (d *Decoder) SetContextLogger(ctxLogger ContextLogger) {
	d.logger = optionalCtxLogger{ctxLogger}
}

func (d *Decoder) SetLogFlags(flags msdsn.Log) {
	d.logFlags = uint64(flags)
}

// Decode reads exactly one value described by md from c.
//
// A StreamError means the stream is out of sync and the connection has to
// be closed. Other errors come from the underlying reader.
func (d *Decoder) Decode(ctx context.Context, c *Cursor, md Metadata) (Value, error) {
	start := c.Offset()
	v, err := d.decode(ctx, c, md)
	if err != nil {
		if d.logFlags&logErrors != 0 {
			d.logger.Log(ctx, msdsn.LogErrors, fmt.Sprintf("decoding %s at offset %d failed: %v", md.Type, start, err))
		}
		return Value{}, err
	}
	if d.logFlags&logDebug != 0 {
		d.logger.Log(ctx, msdsn.LogDebug, fmt.Sprintf("decoded %s (%d bytes): %s", md.Type, c.Offset()-start, v))
	}
	return v, nil
}

// Decode decodes one value with a Decoder that does not log.
func Decode(ctx context.Context, c *Cursor, md Metadata, opts Options) (Value, error) {
	return NewDecoder(opts).Decode(ctx, c, md)
}

func (d *Decoder) decode(ctx context.Context, c *Cursor, md Metadata) (Value, error) {
	switch md.Type {
	case mstype.Null:
		return Null(), nil

	case mstype.Int1:
		return readTinyInt(c)
	case mstype.Int2:
		return readSmallInt(c)
	case mstype.Int4:
		return readInt(c)
	case mstype.Int8:
		return readBigInt(c)
	case mstype.IntN:
		size, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		switch size {
		case 0:
			return Null(), nil
		case 1:
			return readTinyInt(c)
		case 2:
			return readSmallInt(c)
		case 4:
			return readInt(c)
		case 8:
			return readBigInt(c)
		}
		return Value{}, streamErrorf("unsupported dataLength %d for IntN", size)

	case mstype.Flt4:
		return readReal(c)
	case mstype.Flt8:
		return readFloat(c)
	case mstype.FltN:
		size, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		switch size {
		case 0:
			return Null(), nil
		case 4:
			return readReal(c)
		case 8:
			return readFloat(c)
		}
		return Value{}, streamErrorf("unsupported dataLength %d for FloatN", size)

	case mstype.Money4:
		return readSmallMoney(c)
	case mstype.Money:
		return readMoney(c)
	case mstype.MoneyN:
		size, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		switch size {
		case 0:
			return Null(), nil
		case 4:
			return readSmallMoney(c)
		case 8:
			return readMoney(c)
		}
		return Value{}, streamErrorf("unsupported dataLength %d for MoneyN", size)

	case mstype.Bit:
		return readBit(c)
	case mstype.BitN:
		size, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		switch size {
		case 0:
			return Null(), nil
		case 1:
			return readBit(c)
		}
		return Value{}, streamErrorf("unsupported dataLength %d for BitN", size)

	case mstype.BigVarChar, mstype.BigChar:
		return d.decodeChars(ctx, c, md)
	case mstype.NVarChar, mstype.NChar:
		return d.decodeNChars(ctx, c, md)
	case mstype.BigVarBin, mstype.BigBinary:
		return d.decodeBinary(ctx, c, md)
	case mstype.Xml:
		buf, isNull, err := d.readPLP(ctx, c)
		if err != nil || isNull {
			return Value{}, err
		}
		return ncharsValue(buf)
	case mstype.Udt:
		buf, isNull, err := d.readPLP(ctx, c)
		if err != nil || isNull {
			return Value{}, err
		}
		return BytesValue(buf), nil

	case mstype.Text:
		buf, isNull, err := readLegacyLOB(c)
		if err != nil || isNull {
			return Value{}, err
		}
		return charsValue(buf, metadataCodepage(md))
	case mstype.NText:
		buf, isNull, err := readLegacyLOB(c)
		if err != nil || isNull {
			return Value{}, err
		}
		return ncharsValue(buf)
	case mstype.Image:
		buf, isNull, err := readLegacyLOB(c)
		if err != nil || isNull {
			return Value{}, err
		}
		return BytesValue(buf), nil

	case mstype.DateTim4:
		return decodeSmallDateTime(c, d.opts.UseUTC)
	case mstype.DateTime:
		return decodeDateTime(c, d.opts.UseUTC)
	case mstype.DateTimeN:
		size, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		switch size {
		case 0:
			return Null(), nil
		case 4:
			return decodeSmallDateTime(c, d.opts.UseUTC)
		case 8:
			return decodeDateTime(c, d.opts.UseUTC)
		}
		return Value{}, streamErrorf("unsupported dataLength %d for DateTimeN", size)

	case mstype.DateN:
		size, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		switch size {
		case 0:
			return Null(), nil
		case 3:
			return decodeDate(c, d.opts.UseUTC)
		}
		return Value{}, streamErrorf("unsupported dataLength %d for Date", size)
	case mstype.TimeN:
		size, err := c.ReadUint8()
		if err != nil || size == 0 {
			return Value{}, err
		}
		return decodeTime(c, int(size), md.Scale, d.opts.UseUTC)
	case mstype.DateTime2N:
		size, err := c.ReadUint8()
		if err != nil || size == 0 {
			return Value{}, err
		}
		return decodeDateTime2(c, int(size), md.Scale, d.opts.UseUTC)
	case mstype.DateTimeOffsetN:
		size, err := c.ReadUint8()
		if err != nil || size == 0 {
			return Value{}, err
		}
		return decodeDateTimeOffset(c, int(size), md.Scale)

	case mstype.DecimalN, mstype.NumericN:
		size, err := c.ReadUint8()
		if err != nil || size == 0 {
			return Value{}, err
		}
		return decodeNumeric(c, int(size), md.Precision, md.Scale)

	case mstype.Guid:
		size, err := c.ReadUint8()
		if err != nil {
			return Value{}, err
		}
		switch size {
		case 0:
			return Null(), nil
		case 16:
			return decodeUniqueIdentifier(c, d.opts.LowerCaseGuids)
		}
		return Value{}, streamErrorf("unsupported guid size %d", size)

	case mstype.Variant:
		total, err := c.ReadUint32LE()
		if err != nil || total == 0 {
			return Value{}, err
		}
		return d.decodeVariant(c, total)
	}
	return Value{}, streamErrorf("unsupported type %s", md.Type)
}
