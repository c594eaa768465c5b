package tdsvalue

import (
	"github.com/pkg/errors"
)

// NullUniqueIdentifier represents a GUID that may be null.
type NullUniqueIdentifier struct {
	UniqueIdentifier UniqueIdentifier
	Valid            bool
}

// Scan sets nui from a decoded uniqueidentifier value, which is either
// NULL or the formatted GUID text in any letter case.
func (nui *NullUniqueIdentifier) Scan(v Value) error {
	switch v.Kind() {
	case KindNull:
		*nui = NullUniqueIdentifier{}
		return nil
	case KindString:
		u, err := ParseUniqueIdentifier(v.Text())
		if err != nil {
			nui.Valid = false
			return err
		}
		*nui = NullUniqueIdentifier{UniqueIdentifier: u, Valid: true}
		return nil
	case KindBytes:
		u, err := UniqueIdentifierFromWire(v.Bytes())
		if err != nil {
			nui.Valid = false
			return err
		}
		*nui = NullUniqueIdentifier{UniqueIdentifier: u, Valid: true}
		return nil
	}
	nui.Valid = false
	return errors.Errorf("cannot convert %s value to UniqueIdentifier", v.Kind())
}

// String returns the UniqueIdentifier value
func (nui NullUniqueIdentifier) String() string {
	if !nui.Valid {
		return "NULL"
	}
	return nui.UniqueIdentifier.String()
}
