package tdsvalue

import (
	"fmt"

	"github.com/pkg/errors"
)

// StreamError reports a framing problem in the TDS byte stream. The stream
// position cannot be trusted after one is returned, so the connection that
// produced it has to be torn down.
type StreamError struct {
	Message string
}

func (e StreamError) Error() string {
	return e.Message
}

func streamErrorf(format string, v ...interface{}) StreamError {
	return StreamError{"Invalid TDS stream: " + fmt.Sprintf(format, v...)}
}

// IsStreamError reports whether err, or any error it wraps, is a StreamError.
func IsStreamError(err error) bool {
	var se StreamError
	return errors.As(err, &se)
}
