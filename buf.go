package tdsvalue

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

type header struct {
	PacketType uint8
	Status     uint8
	Size       uint16
	Spid       uint16
	PacketNo   uint8
	Pad        uint8
}

const headerSize = 8

// tdsBuffer reads the payload of a sequence of TDS packets as one
// continuous stream. Packet headers are consumed transparently; a read that
// spans a packet boundary pulls the next packet from the transport.
type tdsBuffer struct {
	transport io.Reader

	// read buffer and position inside it
	rbuf  []byte
	rpos  int
	rsize int
	// final is set when the last packet of the message has been read
	final bool
}

func newTdsBuffer(bufsize uint16, transport io.Reader) *tdsBuffer {
	if bufsize < headerSize {
		bufsize = headerSize
	}
	return &tdsBuffer{
		rbuf:      make([]byte, bufsize),
		transport: transport,
	}
}

func (r *tdsBuffer) readNextPacket() error {
	h := header{}
	var err error
	err = binary.Read(r.transport, binary.BigEndian, &h)
	if err != nil {
		return err
	}
	if int(h.Size) > len(r.rbuf) {
		return errors.New("invalid packet size, it is longer than buffer size")
	}
	if headerSize > int(h.Size) {
		return errors.New("invalid packet size, it is shorter than header size")
	}
	_, err = io.ReadFull(r.transport, r.rbuf[headerSize:h.Size])
	if err != nil {
		return err
	}
	r.rpos = headerSize
	r.rsize = int(h.Size)
	r.final = h.Status != 0
	return nil
}

// ReadByte implements io.ByteReader, Cursor uses it for single byte reads.
func (r *tdsBuffer) ReadByte() (res byte, err error) {
	if r.rpos == r.rsize {
		if r.final {
			return 0, io.EOF
		}
		err = r.readNextPacket()
		if err != nil {
			return 0, err
		}
	}
	res = r.rbuf[r.rpos]
	r.rpos++
	return res, nil
}

// Read implements io.Reader. Empty packets are skipped.
func (r *tdsBuffer) Read(buf []byte) (n int, err error) {
	for r.rpos == r.rsize {
		if r.final {
			return 0, io.EOF
		}
		err = r.readNextPacket()
		if err != nil {
			return 0, err
		}
	}
	copied := copy(buf, r.rbuf[r.rpos:r.rsize])
	r.rpos += copied
	return copied, nil
}
