package tdsvalue

import (
	"context"
	"testing"

	"github.com/denisenkom/go-tdsvalue/internal/mstype"
)

func TestNullUniqueIdentifier(t *testing.T) {
	dbUUID := UniqueIdentifier{0x67, 0x45, 0x23, 0x01,
		0xAB, 0x89,
		0xEF, 0xCD,
		0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF,
	}

	uuid := UniqueIdentifier{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF, 0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}

	t.Run("Scan", func(t *testing.T) {
		t.Run("bytes", func(t *testing.T) {
			var nui NullUniqueIdentifier
			if err := nui.Scan(BytesValue(dbUUID[:])); err != nil {
				t.Fatal(err)
			}
			if nui.UniqueIdentifier != uuid {
				t.Errorf("bytes not swapped correctly: got %q; want %q", nui.UniqueIdentifier[:], uuid[:])
			}
		})

		t.Run("decoded", func(t *testing.T) {
			for _, lower := range []bool{false, true} {
				payload := append([]byte{16}, dbUUID[:]...)
				v, err := Decode(context.Background(), newTestCursor(payload), Metadata{Type: mstype.Guid}, Options{LowerCaseGuids: lower})
				if err != nil {
					t.Fatal(err)
				}
				var nui NullUniqueIdentifier
				if err := nui.Scan(v); err != nil {
					t.Fatal(err)
				}
				if !nui.Valid || nui.UniqueIdentifier != uuid {
					t.Errorf("got %v; want %v", nui, uuid)
				}
			}
		})

		t.Run("null", func(t *testing.T) {
			nui := NullUniqueIdentifier{UniqueIdentifier: uuid, Valid: true}
			if err := nui.Scan(Null()); err != nil {
				t.Fatal(err)
			}
			if nui.Valid {
				t.Error("expected Valid to be false")
			}
		})

		t.Run("wrong kind", func(t *testing.T) {
			var nui NullUniqueIdentifier
			if err := nui.Scan(IntValue(1)); err == nil {
				t.Error("expected an error for an int value")
			}
			if err := nui.Scan(StringValue("zz")); err == nil {
				t.Error("expected an error for malformed text")
			}
		})
	})

	t.Run("String", func(t *testing.T) {
		valid := NullUniqueIdentifier{UniqueIdentifier: uuid, Valid: true}
		if got := valid.String(); got != "01234567-89AB-CDEF-0123-456789ABCDEF" {
			t.Errorf("got %s", got)
		}
		if got := (NullUniqueIdentifier{}).String(); got != "NULL" {
			t.Errorf("got %s", got)
		}
	})
}
