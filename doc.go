// Package tdsvalue decodes single column and parameter values from a TDS
// (Tabular Data Stream) byte stream, given the column metadata already read
// from the stream.
//
// A Cursor wraps the connection reader. NewPacketCursor strips TDS packet
// headers, NewCursor reads an unframed stream:
//
//	c := tdsvalue.NewPacketCursor(conn, 4096)
//	d := tdsvalue.NewDecoder(tdsvalue.Options{UseUTC: true})
//	v, err := d.Decode(ctx, c, tdsvalue.Metadata{Type: mstype.IntN})
//
// Reads block until the transport delivers the bytes a value needs. A value
// is never decoded partially: on error the stream position is undefined, and
// when the error is a StreamError the connection must be closed.
package tdsvalue
