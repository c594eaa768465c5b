package tdsvalue

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/denisenkom/go-tdsvalue/internal/mstype"
	"github.com/denisenkom/go-tdsvalue/internal/testutil"
)

var latin1General = &Collation{LcidAndFlags: 0x00d00409, SortID: 52}

func TestShortLengthNull(t *testing.T) {
	for _, id := range []mstype.ID{mstype.BigVarChar, mstype.BigChar, mstype.NVarChar, mstype.NChar, mstype.BigVarBin, mstype.BigBinary} {
		v := decodeAll(t, Metadata{Type: id, DataLength: 100}, Options{}, []byte{0xff, 0xff})
		assert.True(t, v.IsNull(), id.String())
	}
}

func TestShortLengthValues(t *testing.T) {
	cases := []struct {
		name    string
		md      Metadata
		payload []byte
		want    interface{}
	}{
		{
			name:    "varchar utf8 default",
			md:      Metadata{Type: mstype.BigVarChar, DataLength: 50},
			payload: testutil.Concat(testutil.LE16(6), []byte("héllo")),
			want:    "héllo",
		},
		{
			name:    "varchar cp1252",
			md:      Metadata{Type: mstype.BigVarChar, DataLength: 50, Collation: latin1General},
			payload: testutil.Concat(testutil.LE16(5), []byte{'h', 0xe9, 'l', 'l', 'o'}),
			want:    "héllo",
		},
		{
			name:    "char cyrillic",
			md:      Metadata{Type: mstype.BigChar, DataLength: 3, Collation: &Collation{LcidAndFlags: 0x0419}},
			payload: testutil.Concat(testutil.LE16(3), []byte{0xc4, 0xe0, 0x21}),
			want:    "Да!",
		},
		{
			name:    "nvarchar",
			md:      Metadata{Type: mstype.NVarChar, DataLength: 100, Collation: latin1General},
			payload: testutil.Concat(testutil.LE16(10), testutil.UCS2("日本語😀")),
			want:    "日本語😀",
		},
		{
			name:    "nchar empty",
			md:      Metadata{Type: mstype.NChar, DataLength: 20},
			payload: testutil.LE16(0),
			want:    "",
		},
		{
			name:    "varbinary",
			md:      Metadata{Type: mstype.BigVarBin, DataLength: 8},
			payload: testutil.Concat(testutil.LE16(3), []byte{1, 2, 3}),
			want:    []byte{1, 2, 3},
		},
		{
			name:    "binary empty",
			md:      Metadata{Type: mstype.BigBinary, DataLength: 8},
			payload: testutil.LE16(0),
			want:    []byte{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := decodeAll(t, c.md, Options{}, c.payload)
			assert.Equal(t, c.want, v.Interface())
		})
	}
}

func TestMaxTypes(t *testing.T) {
	v := decodeAll(t, Metadata{Type: mstype.BigVarChar, DataLength: MaxLength, Collation: latin1General}, Options{},
		testutil.UnknownPLP([]byte{'c', 'a', 'f', 0xe9}))
	assert.Equal(t, "café", v.Text())

	doc := testutil.UCS2("<a>b</a>")
	v = decodeAll(t, Metadata{Type: mstype.Xml}, Options{}, testutil.PLP(uint64(len(doc)), doc[:6], doc[6:]))
	assert.Equal(t, "<a>b</a>", v.Text())

	v = decodeAll(t, Metadata{Type: mstype.Udt}, Options{}, testutil.PLP(2, []byte{0xca, 0xfe}))
	assert.Equal(t, []byte{0xca, 0xfe}, v.Bytes())
}

func legacyLOB(data []byte) []byte {
	ptr := make([]byte, 16)
	timestamp := make([]byte, 8)
	return testutil.Concat([]byte{16}, ptr, timestamp, testutil.LE32(uint32(len(data))), data)
}

func TestLegacyLOB(t *testing.T) {
	for _, id := range []mstype.ID{mstype.Text, mstype.NText, mstype.Image} {
		v := decodeAll(t, Metadata{Type: id}, Options{}, []byte{0})
		assert.True(t, v.IsNull(), id.String())
	}

	v := decodeAll(t, Metadata{Type: mstype.Text, Collation: latin1General}, Options{}, legacyLOB([]byte{'n', 0xe4, 'h'}))
	assert.Equal(t, "näh", v.Text())

	v = decodeAll(t, Metadata{Type: mstype.NText}, Options{}, legacyLOB(testutil.UCS2("wide")))
	assert.Equal(t, "wide", v.Text())

	v = decodeAll(t, Metadata{Type: mstype.Image}, Options{}, legacyLOB([]byte{0x89, 'P', 'N', 'G'}))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, v.Bytes())
}

func TestLegacyLOBHugeLength(t *testing.T) {
	ptr := make([]byte, 16)
	timestamp := make([]byte, 8)
	payload := testutil.Concat([]byte{16}, ptr, timestamp, testutil.LE32(0x40000000), []byte{1, 2, 3})
	var err error
	allocated := allocatedBytes(func() {
		_, err = Decode(context.Background(), newTestCursor(payload), Metadata{Type: mstype.Image}, Options{})
	})
	assert.Equal(t, io.ErrUnexpectedEOF, errors.Cause(err))
	assert.Less(t, allocated, uint64(4*maxReadStep))
}
