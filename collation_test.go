package tdsvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollationFields(t *testing.T) {
	c := Collation{LcidAndFlags: 0x10d00409}
	assert.Equal(t, uint32(0x0409), c.LCID())
	assert.Equal(t, uint32(0x0d), c.Flags())
	assert.Equal(t, uint32(1), c.Version())
}

func TestCollationCodepage(t *testing.T) {
	cases := []struct {
		name string
		c    Collation
		want string
	}{
		{"SQL_Latin1_General_CP1_CI_AS", Collation{0x00d00409, 52}, "CP1252"},
		{"SQL_Latin1_General_CP437_BIN", Collation{0x00000409, 30}, "CP437"},
		{"SQL_Latin1_General_CP850_BIN", Collation{0x00000409, 40}, "CP850"},
		{"SQL_Czech_CP1250_CI_AS", Collation{0x00000405, 82}, "CP1250"},
		{"Latin1_General_CI_AS", Collation{0x00d00409, 0}, "CP1252"},
		{"Cyrillic_General_CI_AS", Collation{0x00d00419, 0}, "CP1251"},
		{"Greek_CI_AS", Collation{0x00d00408, 0}, "CP1253"},
		{"Turkish_CI_AS", Collation{0x00d0041f, 0}, "CP1254"},
		{"Hebrew_CI_AS", Collation{0x00d0040d, 0}, "CP1255"},
		{"Arabic_CI_AS", Collation{0x00d00401, 0}, "CP1256"},
		{"Estonian_CI_AS", Collation{0x00d00425, 0}, "CP1257"},
		{"Vietnamese_CI_AS", Collation{0x00d0042a, 0}, "CP1258"},
		{"Thai_CI_AS", Collation{0x00d0041e, 0}, "CP874"},
		{"Japanese_CI_AS", Collation{0x00d00411, 0}, "CP932"},
		{"Chinese_PRC_CI_AS", Collation{0x00d00804, 0}, "CP936"},
		{"Korean_Wansung_CI_AS", Collation{0x00d00412, 0}, "CP949"},
		{"Chinese_Taiwan_Stroke_CI_AS", Collation{0x00d00404, 0}, "CP950"},
		{"Latin1_General_100_CI_AS_SC_UTF8", Collation{0x04d00409, 0}, "UTF-8"},
		{"Indic_General_90_CI_AS", Collation{0x00d00439, 0}, "UTF-8"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.c.Codepage(), c.name)
		assert.True(t, supportedCodepage(c.c.Codepage()), c.name)
	}
}

func TestReadCollation(t *testing.T) {
	c := newTestCursor([]byte{0x09, 0x04, 0xd0, 0x00, 0x34})
	coll, err := readCollation(c)
	require.NoError(t, err)
	assert.Equal(t, Collation{LcidAndFlags: 0x00d00409, SortID: 0x34}, coll)

	_, err = readCollation(newTestCursor([]byte{0x09, 0x04}))
	assert.Error(t, err)
}
