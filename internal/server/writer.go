/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/server/writer.go
*/
package server

import (
	"errors"
	"net"
	"syscall"

	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/resp"
)

// writeLoop is the per-connection reorder/writer task.
//
// Requests from one connection may hash to different shards and
// complete out of order, but replies must leave the socket in exactly
// the order the requests arrived. The writer restores that order:
// every arriving reply is parked in pending under its sequence, then
// everything contiguous from lastSeq+1 upward is serialized into the
// write buffer and the whole batch goes out in a single socket write.
//
// Between a blocking receive and the emit step the loop opportunistically
// drains whatever else is already sitting in the channel, so a burst of
// pipelined replies becomes one write.
//
// Guarantees:
//   - At most one outstanding socket write per connection.
//   - Strict ordering: replies are written in request sequence order.
//   - Pending grows only with the connection's in-flight requests.
//
// The loop exits once the reader has announced the final sequence and
// everything up to it has been written, or on a write error. Either
// way it closes the queue (making late shard pushes harmless no-ops)
// and the socket.
func writeLoop(conn net.Conn, replies *common.ReplyQueue, log *zap.SugaredLogger) {
	defer func() {
		replies.Close()
		conn.Close()
	}()

	pending := make(map[uint64]*common.Value)
	wbuf := bytebufferpool.Get()
	defer bytebufferpool.Put(wbuf)

	var lastSeq, finalSeq uint64
	finalKnown := false

	for {
		select {
		case rep := <-replies.Chan():
			pending[rep.Seq] = rep.Value
		drain:
			for {
				select {
				case more := <-replies.Chan():
					pending[more.Seq] = more.Value
				default:
					break drain
				}
			}
		case finalSeq = <-replies.Final():
			finalKnown = true
		}

		for {
			v, ok := pending[lastSeq+1]
			if !ok {
				break
			}
			delete(pending, lastSeq+1)
			resp.Serialize(v, wbuf)
			lastSeq++
		}

		if wbuf.Len() > 0 {
			if _, err := conn.Write(wbuf.B); err != nil {
				if !errors.Is(err, syscall.ECONNRESET) && !errors.Is(err, net.ErrClosed) {
					log.Debugf("write error: %v", err)
				}
				return
			}
			wbuf.Reset()
		}

		if finalKnown && lastSeq >= finalSeq {
			return
		}
	}
}
