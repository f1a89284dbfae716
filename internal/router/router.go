/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/router/router.go
*/
package router

import (
	"github.com/cespare/xxhash/v2"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/info"
)

// Router maps every parsed request to exactly one shard mailbox via a
// stable hash of the request key, and answers connection-scoped
// commands itself without contacting any shard.
//
// The mailbox table is immutable after construction, so one Router is
// shared read-only by every connection reader.
type Router struct {
	mailboxes []chan<- common.Request
}

// New creates a router over the given shard mailboxes.
func New(mailboxes []chan<- common.Request) *Router {
	return &Router{
		mailboxes: mailboxes,
	}
}

// Shards returns the number of shards routed over.
func (r *Router) Shards() int {
	return len(r.mailboxes)
}

// Route delivers one request.
//
// Flow:
//  1. Validate the request shape (non-empty array whose command name is
//     a bulk string).
//  2. Intercept PING, CONFIG and INFO: they are connection-scoped, so
//     the reply is produced here and pushed straight onto the reply
//     queue, tagged with the request's sequence.
//  3. Extract the key (second array element) and hash it onto a shard:
//     shard = xxhash(key) mod N. The hash is deterministic for the
//     process lifetime, so a key always reaches the same shard.
//  4. Send the request into the shard mailbox. A full mailbox blocks
//     the calling reader (back-pressure); if the connection is gone
//     the request is dropped instead of blocking forever.
//
// Shape and key failures are answered with an error reply on the spot;
// none of them is fatal to the connection.
func (r *Router) Route(req common.Request) {
	v := req.Value
	if v.Typ != common.ARRAY {
		req.Replies.Push(req.Seq, common.NewErrorValue(common.ERR_NOT_ARRAY))
		return
	}
	if len(v.Arr) == 0 {
		req.Replies.Push(req.Seq, common.NewErrorValue(common.ERR_EMPTY_REQUEST))
		return
	}
	if !v.Arr[0].IsBulk() {
		req.Replies.Push(req.Seq, common.NewErrorValue(common.ERR_CMD_NOT_BULK))
		return
	}

	if reply, intercepted := r.intercept(v); intercepted {
		req.Replies.Push(req.Seq, reply)
		return
	}

	key, ok := extractKey(v)
	if !ok {
		req.Replies.Push(req.Seq, common.NewErrorValue(common.ERR_KEY_PARSE))
		return
	}

	shard := xxhash.Sum64(key) % uint64(len(r.mailboxes))
	select {
	case r.mailboxes[shard] <- req:
	case <-req.Replies.Done():
		// connection already torn down, drop
	}
}

// intercept answers the connection-scoped commands that never reach a
// shard. The executor implements the same commands with the same
// replies for symmetry.
func (r *Router) intercept(v *common.Value) (*common.Value, bool) {
	cmd := v.Arr[0].Blk
	switch {
	case equalFold(cmd, "PING"):
		switch len(v.Arr) {
		case 1:
			return common.NewStringValue(common.REPLY_PONG), true
		case 2:
			if !v.Arr[1].IsBulk() {
				return common.NewErrorValue(common.ERR_ARG_NOT_BULK), true
			}
			return common.NewBulkValue(v.Arr[1].Blk), true
		default:
			return common.NewErrorValue("ERR wrong number of arguments for 'ping' command"), true
		}
	case equalFold(cmd, "CONFIG"):
		return common.NewNullArrayValue(), true
	case equalFold(cmd, "INFO"):
		return common.NewBulkString(info.NewServerInfo().Print()), true
	}
	return nil, false
}

// extractKey pulls the primary key out of a keyed request: the second
// array element, which must be a bulk string.
func extractKey(v *common.Value) ([]byte, bool) {
	if len(v.Arr) < 2 || !v.Arr[1].IsBulk() {
		return nil, false
	}
	return v.Arr[1].Blk, true
}

// equalFold compares a raw command name against an upper-case ASCII
// reference without allocating.
func equalFold(cmd []byte, ref string) bool {
	if len(cmd) != len(ref) {
		return false
	}
	for i := 0; i < len(cmd); i++ {
		c := cmd[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != ref[i] {
			return false
		}
	}
	return true
}
