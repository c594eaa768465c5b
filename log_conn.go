package tdsvalue

import (
	"encoding/hex"
	"io"
	"strings"
)

// readLogger hex dumps everything read through it.
type readLogger struct {
	r         io.Reader
	kind      string
	readCount int
	logger    Logger
}

// NewReadLogger returns a reader that passes reads through to r and logs a
// hex dump of every chunk together with its stream offset. Wrap the
// transport with it before handing it to a Cursor to trace raw input.
func NewReadLogger(r io.Reader, kind string, logger Logger) io.Reader {
	if len(kind) > 0 && !strings.HasPrefix(kind, " ") {
		kind = " " + kind
	}
	return &readLogger{
		r:      r,
		kind:   "R" + kind,
		logger: logger,
	}
}

func (rl *readLogger) Read(p []byte) (n int, err error) {
	n, err = rl.r.Read(p)

	if n > 0 {
		dump := hex.Dump(p[:n])
		rl.logger.Printf("%s %d\n%s", rl.kind, rl.readCount, dump)
		rl.readCount += n
	}

	return
}
