package tdsvalue

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// http://msdn.microsoft.com/en-us/library/ee780893.aspx

// Decimal is an exact numeric/decimal value: a sign, an unscaled magnitude
// of up to 128 bits and a power of ten scale.
type Decimal struct {
	Positive  bool
	Magnitude *big.Int
	Precision uint8
	Scale     uint8
}

// Unscaled returns the signed unscaled integer.
func (d Decimal) Unscaled() *big.Int {
	v := new(big.Int)
	if d.Magnitude != nil {
		v.Set(d.Magnitude)
	}
	if !d.Positive {
		v.Neg(v)
	}
	return v
}

// Decimal converts d to a shopspring decimal without loss.
func (d Decimal) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(d.Unscaled(), -int32(d.Scale))
}

// Rat returns d as an exact rational.
func (d Decimal) Rat() *big.Rat {
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Scale)), nil)
	return new(big.Rat).SetFrac(d.Unscaled(), den)
}

func (d Decimal) ToFloat64() float64 {
	f, _ := d.Rat().Float64()
	return f
}

// String formats d with exactly Scale fractional digits.
func (d Decimal) String() string {
	return d.Decimal().StringFixed(int32(d.Scale))
}

var decimalMagnitudeWidths = map[uint8]int{
	5:  4,
	9:  8,
	13: 12,
	17: 16,
}

// decodeNumeric reads the sign byte and magnitude of a numeric value whose
// data length, sign byte included, is dataLength.
func decodeNumeric(c *Cursor, dataLength int, precision, scale uint8) (Value, error) {
	width, ok := decimalMagnitudeWidths[uint8(dataLength)]
	if !ok || dataLength > 0xff {
		return Value{}, streamErrorf("unsupported numeric dataLength %d", dataLength)
	}
	sign, err := c.ReadUint8()
	if err != nil {
		return Value{}, err
	}
	mag, err := c.ReadUnsignedLE(width)
	if err != nil {
		return Value{}, err
	}
	return DecimalValue(Decimal{
		Positive:  sign == 1,
		Magnitude: mag,
		Precision: precision,
		Scale:     scale,
	}), nil
}
