package mstype

import (
	"fmt"
	"strings"
)

type ID uint8

// fixed-length data types
// http://msdn.microsoft.com/en-us/library/dd341171.aspx
const (
	Null     ID = 0x1f
	Int1     ID = 0x30
	Bit      ID = 0x32
	Int2     ID = 0x34
	Int4     ID = 0x38
	DateTim4 ID = 0x3a
	Flt4     ID = 0x3b
	Money    ID = 0x3c
	DateTime ID = 0x3d
	Flt8     ID = 0x3e
	Money4   ID = 0x7a
	Int8     ID = 0x7f
)

// variable-length data types
// http://msdn.microsoft.com/en-us/library/dd358341.aspx
const (
	// byte len types
	Guid            ID = 0x24
	IntN            ID = 0x26
	Decimal         ID = 0x37 // legacy
	Numeric         ID = 0x3f // legacy
	BitN            ID = 0x68
	DecimalN        ID = 0x6a
	NumericN        ID = 0x6c
	FltN            ID = 0x6d
	MoneyN          ID = 0x6e
	DateTimeN       ID = 0x6f
	DateN           ID = 0x28
	TimeN           ID = 0x29
	DateTime2N      ID = 0x2a
	DateTimeOffsetN ID = 0x2b
	Char            ID = 0x2f // legacy
	VarChar         ID = 0x27 // legacy
	Binary          ID = 0x2d // legacy
	VarBinary       ID = 0x25 // legacy

	// short length types
	BigVarBin  ID = 0xa5
	BigVarChar ID = 0xa7
	BigBinary  ID = 0xad
	BigChar    ID = 0xaf
	NVarChar   ID = 0xe7
	NChar      ID = 0xef
	Xml        ID = 0xf1
	Udt        ID = 0xf0

	// long length types
	Text    ID = 0x23
	Image   ID = 0x22
	NText   ID = 0x63
	Variant ID = 0x62
)

// Info describes a type tag known to the value decoder.
type Info struct {
	ID   ID
	Name string
}

// registry holds every type the decoder can produce a value for. Legacy
// byte-length types are deliberately absent: servers speaking TDS 7.2 and
// later never send them in row data.
var registry = map[ID]Info{
	Null:            {Null, "Null"},
	Int1:            {Int1, "TinyInt"},
	Bit:             {Bit, "Bit"},
	Int2:            {Int2, "SmallInt"},
	Int4:            {Int4, "Int"},
	DateTim4:        {DateTim4, "SmallDateTime"},
	Flt4:            {Flt4, "Real"},
	Money:           {Money, "Money"},
	DateTime:        {DateTime, "DateTime"},
	Flt8:            {Flt8, "Float"},
	Money4:          {Money4, "SmallMoney"},
	Int8:            {Int8, "BigInt"},
	Guid:            {Guid, "UniqueIdentifier"},
	IntN:            {IntN, "IntN"},
	BitN:            {BitN, "BitN"},
	DecimalN:        {DecimalN, "DecimalN"},
	NumericN:        {NumericN, "NumericN"},
	FltN:            {FltN, "FloatN"},
	MoneyN:          {MoneyN, "MoneyN"},
	DateTimeN:       {DateTimeN, "DateTimeN"},
	DateN:           {DateN, "Date"},
	TimeN:           {TimeN, "Time"},
	DateTime2N:      {DateTime2N, "DateTime2"},
	DateTimeOffsetN: {DateTimeOffsetN, "DateTimeOffset"},
	BigVarBin:       {BigVarBin, "VarBinary"},
	BigVarChar:      {BigVarChar, "VarChar"},
	BigBinary:       {BigBinary, "Binary"},
	BigChar:         {BigChar, "Char"},
	NVarChar:        {NVarChar, "NVarChar"},
	NChar:           {NChar, "NChar"},
	Xml:             {Xml, "Xml"},
	Udt:             {Udt, "UDT"},
	Text:            {Text, "Text"},
	Image:           {Image, "Image"},
	NText:           {NText, "NText"},
	Variant:         {Variant, "Variant"},
}

var byName = func() map[string]ID {
	m := make(map[string]ID, len(registry))
	for id, info := range registry {
		m[strings.ToLower(info.Name)] = id
	}
	return m
}()

// Lookup returns the registry entry for a one byte wire type tag.
func Lookup(tag uint8) (Info, bool) {
	info, ok := registry[ID(tag)]
	return info, ok
}

// ParseName resolves a type name such as "IntN" or "nvarchar", case
// insensitively, to its type tag.
func ParseName(name string) (ID, bool) {
	id, ok := byName[strings.ToLower(name)]
	return id, ok
}

// All returns the tags of every registered type.
func All() []ID {
	ids := make([]ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

func (id ID) String() string {
	if info, ok := registry[id]; ok {
		return info.Name
	}
	return fmt.Sprintf("0x%02x", uint8(id))
}
