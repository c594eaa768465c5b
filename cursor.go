package tdsvalue

import (
	"encoding/binary"
	"io"
	"math"
	"math/big"
	"slices"

	"github.com/pkg/errors"
)

// maxReadStep bounds how much buffer is reserved ahead of the bytes
// actually received, so a corrupt length cannot force a huge allocation.
const maxReadStep = 1 << 20

// Cursor reads little-endian primitives from a TDS byte stream. Every read
// consumes exactly the bytes it decodes, nothing is read ahead, so a Cursor
// can be handed between value decodes without losing stream position.
//
// A read blocks until the underlying reader has delivered enough bytes.
// A Cursor must only be used by one goroutine at a time.
type Cursor struct {
	r       io.Reader
	offset  int64
	scratch [16]byte
}

// NewCursor returns a Cursor reading from r. Use NewPacketCursor when r
// carries whole TDS packets including their headers.
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: r}
}

// NewPacketCursor returns a Cursor over the payload of the TDS packets read
// from transport. packetSize is the negotiated packet size.
func NewPacketCursor(transport io.Reader, packetSize uint16) *Cursor {
	return NewCursor(newTdsBuffer(packetSize, transport))
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int64 {
	return c.offset
}

func (c *Cursor) fill(n int) ([]byte, error) {
	buf := c.scratch[:n]
	if _, err := io.ReadFull(c.r, buf); err != nil {
		return nil, errors.Wrapf(err, "reading %d bytes at offset %d", n, c.offset)
	}
	c.offset += int64(n)
	return buf, nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	if br, ok := c.r.(io.ByteReader); ok {
		b, err := br.ReadByte()
		if err != nil {
			return 0, errors.Wrapf(err, "reading 1 bytes at offset %d", c.offset)
		}
		c.offset++
		return b, nil
	}
	b, err := c.fill(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadInt16LE() (int16, error) {
	v, err := c.ReadUint16LE()
	return int16(v), err
}

func (c *Cursor) ReadUint16LE() (uint16, error) {
	b, err := c.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) ReadUint24LE() (uint32, error) {
	b, err := c.fill(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

func (c *Cursor) ReadInt32LE() (int32, error) {
	v, err := c.ReadUint32LE()
	return int32(v), err
}

func (c *Cursor) ReadUint32LE() (uint32, error) {
	b, err := c.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) ReadUint40LE() (uint64, error) {
	b, err := c.fill(5)
	if err != nil {
		return 0, err
	}
	return uint64(binary.LittleEndian.Uint32(b)) | uint64(b[4])<<32, nil
}

func (c *Cursor) ReadInt64LE() (int64, error) {
	v, err := c.ReadUint64LE()
	return int64(v), err
}

func (c *Cursor) ReadUint64LE() (uint64, error) {
	b, err := c.fill(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *Cursor) ReadFloatLE() (float32, error) {
	v, err := c.ReadUint32LE()
	return math.Float32frombits(v), err
}

func (c *Cursor) ReadDoubleLE() (float64, error) {
	v, err := c.ReadUint64LE()
	return math.Float64frombits(v), err
}

// ReadUnsignedLE reads an unsigned little-endian integer of width bytes,
// up to 16, without truncating it to a machine word.
func (c *Cursor) ReadUnsignedLE(width int) (*big.Int, error) {
	if width < 0 || width > len(c.scratch) {
		return nil, errors.Errorf("unsupported integer width %d", width)
	}
	b, err := c.fill(width)
	if err != nil {
		return nil, err
	}
	// big.Int wants big-endian bytes
	be := make([]byte, width)
	for i := range b {
		be[width-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be), nil
}

// ReadBuffer reads the next n bytes into a newly allocated slice.
func (c *Cursor) ReadBuffer(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("negative read length %d", n)
	}
	size := n
	if size > maxReadStep {
		size = maxReadStep
	}
	return c.AppendBuffer(make([]byte, 0, size), n)
}

// AppendBuffer reads the next n bytes and appends them to dst. The buffer
// grows as bytes arrive, at most maxReadStep ahead of them.
func (c *Cursor) AppendBuffer(dst []byte, n int) ([]byte, error) {
	if n < 0 {
		return dst, errors.Errorf("negative read length %d", n)
	}
	start, offset := len(dst), c.offset
	for remaining := n; remaining > 0; {
		step := remaining
		if step > maxReadStep {
			step = maxReadStep
		}
		dst = slices.Grow(dst, step)
		pos := len(dst)
		read, err := io.ReadFull(c.r, dst[pos:pos+step])
		dst = dst[:pos+read]
		c.offset += int64(read)
		if err != nil {
			if err == io.EOF && pos > start {
				err = io.ErrUnexpectedEOF
			}
			return dst[:start], errors.Wrapf(err, "reading %d bytes at offset %d", n, offset)
		}
		remaining -= step
	}
	return dst, nil
}

// Skip discards the next n bytes.
func (c *Cursor) Skip(n int) error {
	if n < 0 {
		return errors.Errorf("negative skip length %d", n)
	}
	copied, err := io.CopyN(io.Discard, c.r, int64(n))
	c.offset += copied
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return errors.Wrapf(err, "skipping %d bytes at offset %d", n, c.offset)
	}
	return nil
}
