package tdsvalue

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which field of a Value is set.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindBytes
	KindString
	KindTime
)

var kindNames = [...]string{
	KindNull:    "null",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindDecimal: "decimal",
	KindBytes:   "bytes",
	KindString:  "string",
	KindTime:    "time",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is one decoded column or parameter value. The zero Value is NULL.
type Value struct {
	kind Kind
	i    int64
	f    float64
	dec  Decimal
	b    []byte
	s    string
	t    Temporal
}

func Null() Value { return Value{} }
func BoolValue(v bool) Value {
	var i int64
	if v {
		i = 1
	}
	return Value{kind: KindBool, i: i}
}
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }
func DecimalValue(v Decimal) Value { return Value{kind: KindDecimal, dec: v} }
func BytesValue(v []byte) Value { return Value{kind: KindBytes, b: v} }
func StringValue(v string) Value { return Value{kind: KindString, s: v} }
func TimeValue(v Temporal) Value { return Value{kind: KindTime, t: v} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool { return v.kind == KindBool && v.i != 0 }
func (v Value) Int64() int64 { return v.i }
func (v Value) Float64() float64 { return v.f }
func (v Value) Decimal() Decimal { return v.dec }
func (v Value) Bytes() []byte { return v.b }
func (v Value) Text() string { return v.s }
func (v Value) Temporal() Temporal { return v.t }

// Interface returns the value as nil, bool, int64, float64, Decimal,
// []byte, string or Temporal.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindDecimal:
		return v.dec
	case KindBytes:
		return v.b
	case KindString:
		return v.s
	case KindTime:
		return v.t
	}
	return nil
}

// String formats the value for display. 64-bit integers are printed exactly.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDecimal:
		return v.dec.String()
	case KindBytes:
		return "0x" + strings.ToUpper(hex.EncodeToString(v.b))
	case KindString:
		return v.s
	case KindTime:
		return v.t.Precise().Format(time.RFC3339Nano)
	}
	return "NULL"
}
