package tdsvalue

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisenkom/go-tdsvalue/internal/mstype"
	"github.com/denisenkom/go-tdsvalue/internal/testutil"
)

func TestToFloat64(t *testing.T) {
	values := []struct {
		dec Decimal
		flt float64
	}{
		{Decimal{Positive: true, Precision: 1}, 0.0},
		{Decimal{Positive: true, Precision: 1, Magnitude: big.NewInt(1)}, 1.0},
		{Decimal{Positive: false, Precision: 1, Magnitude: big.NewInt(1)}, -1.0},
		{Decimal{Positive: true, Precision: 1, Scale: 1, Magnitude: big.NewInt(5)}, 0.5},
	}
	for _, v := range values {
		if v.dec.ToFloat64() != v.flt {
			t.Error("values don't match ", v.dec.ToFloat64(), v.flt)
		}
	}
}

func numeric(sign byte, magnitude []byte) []byte {
	return testutil.Concat([]byte{byte(len(magnitude) + 1), sign}, magnitude)
}

func TestNumeric(t *testing.T) {
	md := Metadata{Type: mstype.NumericN, Precision: 10, Scale: 2}

	v := decodeAll(t, md, Options{}, numeric(1, testutil.LE32(12345)))
	require.Equal(t, KindDecimal, v.Kind())
	assert.Equal(t, "123.45", v.String())
	assert.True(t, v.Decimal().Decimal().Equal(decimal.RequireFromString("123.45")))

	v = decodeAll(t, md, Options{}, numeric(0, testutil.LE32(12345)))
	assert.Equal(t, "-123.45", v.String())
	assert.Equal(t, -123.45, v.Decimal().ToFloat64())

	// any sign byte other than 1 is negative
	v = decodeAll(t, md, Options{}, numeric(7, testutil.LE32(1)))
	assert.Equal(t, "-0.01", v.String())
}

func TestNumericWidths(t *testing.T) {
	max128, _ := new(big.Int).SetString("99999999999999999999999999999999999999", 10)
	mag128 := make([]byte, 16)
	be := max128.Bytes()
	for i := range be {
		mag128[i] = be[len(be)-1-i]
	}
	mag96 := []byte{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0}

	cases := []struct {
		name      string
		scale     uint8
		magnitude []byte
		want      string
	}{
		{"32 bit", 0, testutil.LE32(0xffffffff), "4294967295"},
		{"64 bit", 4, testutil.LE64(0xffffffffffffffff), "1844674407370955.1615"},
		{"96 bit", 0, mag96, "18446744073709551616"},
		{"128 bit", 0, mag128, "99999999999999999999999999999999999999"},
		{"128 bit scaled", 38, mag128, "0.99999999999999999999999999999999999999"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			md := Metadata{Type: mstype.DecimalN, Precision: 38, Scale: c.scale}
			v := decodeAll(t, md, Options{}, numeric(1, c.magnitude))
			assert.Equal(t, c.want, v.String())
			assert.Equal(t, c.want, v.Decimal().Decimal().StringFixed(int32(c.scale)))
		})
	}
}

func TestNumericRat(t *testing.T) {
	d := Decimal{Positive: false, Magnitude: big.NewInt(314159), Scale: 5}
	assert.Zero(t, d.Rat().Cmp(big.NewRat(-314159, 100000)))
	assert.Equal(t, "-314159", d.Unscaled().String())
}

func TestNumericUnsupportedLength(t *testing.T) {
	for _, n := range []byte{1, 4, 6, 8, 10, 16, 18} {
		payload := append([]byte{n}, make([]byte, n)...)
		err := decodeErr(Metadata{Type: mstype.NumericN, Precision: 10}, payload)
		assert.True(t, IsStreamError(err), "length %d: %v", n, err)
	}
}
