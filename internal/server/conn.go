/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/server/conn.go
*/
package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	"go.uber.org/zap"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/resp"
	"github.com/akashmaji946/go-shardis/internal/router"
)

// readChunkSize is the size of one socket read.
const readChunkSize = 4096

// readLoop is the per-connection reader task.
//
// It reads chunks from the socket into the connection's grow-only
// buffer and repeatedly invokes the parser until the buffer holds no
// complete frame. Every parsed frame gets the next per-connection
// sequence number (starting at 1) and goes to the router.
//
// Termination:
//   - A fatal parse error (invalid first byte or malformed frame)
//     produces one synthetic error reply under the next sequence, the
//     final sequence is announced, and the loop returns; the writer
//     emits everything through that sequence and closes the socket.
//   - EOF terminates the connection cleanly: the final sequence is
//     announced so the writer can finish flushing in-flight replies.
//   - Read errors behave like EOF; ConnectionReset is silent by design.
func readLoop(conn net.Conn, replies *common.ReplyQueue, rt *router.Router, bufSize int, log *zap.SugaredLogger) {
	buf := resp.NewBuffer(bufSize)
	chunk := make([]byte, readChunkSize)
	var seq uint64

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf.Append(chunk[:n])
			for {
				v, perr := resp.Parse(buf)
				if perr != nil {
					if errors.Is(perr, resp.ErrIncomplete) {
						break
					}
					// fatal protocol error: one error reply, then the
					// connection is done
					seq++
					replies.Push(seq, protocolErrorValue(perr))
					replies.Announce(seq)
					log.Debugf("protocol error, dropping connection: %v", perr)
					return
				}
				seq++
				rt.Route(common.Request{Seq: seq, Value: v, Replies: replies})
			}
		}
		if err != nil {
			replies.Announce(seq)
			if err != io.EOF && !errors.Is(err, syscall.ECONNRESET) && !errors.Is(err, net.ErrClosed) {
				log.Debugf("read error: %v", err)
			}
			return
		}
	}
}

// protocolErrorValue builds the error reply for a fatal parse error.
func protocolErrorValue(err error) *common.Value {
	var ifb *resp.InvalidFirstByteError
	if errors.As(err, &ifb) {
		return common.NewErrorValue(fmt.Sprintf("ERR invalid first byte: %d", ifb.Byte))
	}
	return common.NewErrorValue(fmt.Sprintf("ERR protocol error: %v", err))
}
