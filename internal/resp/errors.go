/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/resp/errors.go
*/
package resp

import (
	"errors"
	"fmt"
)

// Parse errors. ErrIncomplete is the only non-fatal one: the caller
// waits for more bytes and the buffer is untouched. Every other error
// is a protocol violation and the caller must drop the connection.
var (
	ErrIncomplete          = errors.New("incomplete frame")
	ErrMalformedLength     = errors.New("malformed length")
	ErrMalformedInteger    = errors.New("malformed integer")
	ErrMalformedTerminator = errors.New("malformed terminator")
)

// InvalidFirstByteError reports a frame whose first byte selects no
// RESP type and is not an inline-command letter. The byte is kept so
// the error reply can name it.
type InvalidFirstByteError struct {
	Byte byte
}

func (e *InvalidFirstByteError) Error() string {
	return fmt.Sprintf("invalid first byte: %d", e.Byte)
}
