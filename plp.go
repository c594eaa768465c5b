package tdsvalue

import (
	"context"
	"fmt"

	"github.com/denisenkom/go-tdsvalue/msdsn"
)

// partially length-prefixed stream
// http://msdn.microsoft.com/en-us/library/dd340469.aspx

const (
	plpNull          = 0xffffffffffffffff
	plpUnknownLength = 0xfffffffffffffffe

	// totals above this cannot be held exactly by a float64
	plpExactLimit = 1 << 53

	// upper bound of the up front allocation for a declared total, larger
	// values grow as chunks arrive
	plpMaxPrealloc = 1 << 20
)

// readPLP reads a whole PLP stream. isNull is true when the header marks a
// NULL value.
func (d *Decoder) readPLP(ctx context.Context, c *Cursor) (buf []byte, isNull bool, err error) {
	total, err := c.ReadUint64LE()
	if err != nil {
		return nil, false, err
	}
	switch total {
	case plpNull:
		return nil, true, nil
	case plpUnknownLength:
		buf, err = readPLPChunks(c, make([]byte, 0, 4096), 0, false)
		return buf, false, err
	}
	if total > plpExactLimit && d.logFlags&logErrors != 0 {
		d.logger.Log(ctx, msdsn.LogErrors, fmt.Sprintf("PLP declared length %d exceeds 2^53, chunk accounting may be imprecise", total))
	}
	prealloc := total
	if prealloc > plpMaxPrealloc {
		prealloc = plpMaxPrealloc
	}
	buf, err = readPLPChunks(c, make([]byte, 0, int(prealloc)), total, true)
	if err != nil {
		return nil, false, err
	}
	return buf, false, nil
}

// readPLPChunks appends chunks to buf until the zero length terminator.
// When known is set the chunks must add up to exactly total bytes.
func readPLPChunks(c *Cursor, buf []byte, total uint64, known bool) ([]byte, error) {
	for {
		chunk, err := c.ReadUint32LE()
		if err != nil {
			return nil, err
		}
		if chunk == 0 {
			break
		}
		if known && uint64(len(buf))+uint64(chunk) > total {
			return nil, streamErrorf("PLP chunks exceed declared length %d", total)
		}
		buf, err = c.AppendBuffer(buf, int(chunk))
		if err != nil {
			return nil, err
		}
	}
	if known && uint64(len(buf)) != total {
		return nil, streamErrorf("PLP length mismatch, declared %d, received %d", total, len(buf))
	}
	return buf, nil
}
