/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/worker/worker_test.go
*/
package worker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/worker"
)

func makeCmd(args ...string) *common.Value {
	arr := make([]common.Value, 0, len(args))
	for _, a := range args {
		arr = append(arr, *common.NewBulkString(a))
	}
	return common.NewArrayValue(arr)
}

func recvReply(t *testing.T, q *common.ReplyQueue) common.Reply {
	t.Helper()
	select {
	case rep := <-q.Chan():
		return rep
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a reply")
		return common.Reply{}
	}
}

// A worker drains its mailbox in FIFO order against its own store and
// tags every reply with the request's sequence.
func TestWorkerExecutesInOrder(t *testing.T) {
	workers, done := worker.SpawnAll(1, 16)
	w := workers[0]
	defer func() {
		w.Stop()
		done.Wait()
	}()

	q := common.NewReplyQueue(16)

	w.Mailbox() <- common.Request{Seq: 1, Value: makeCmd("SET", "k", "v"), Replies: q}
	w.Mailbox() <- common.Request{Seq: 2, Value: makeCmd("GET", "k"), Replies: q}
	w.Mailbox() <- common.Request{Seq: 3, Value: makeCmd("GET", "missing"), Replies: q}

	rep := recvReply(t, q)
	require.Equal(t, uint64(1), rep.Seq)
	require.Equal(t, "OK", rep.Value.Str)

	rep = recvReply(t, q)
	require.Equal(t, uint64(2), rep.Seq)
	require.Equal(t, []byte("v"), rep.Value.Blk)

	rep = recvReply(t, q)
	require.Equal(t, uint64(3), rep.Seq)
	require.Equal(t, common.NULL, rep.Value.Typ)
}

// Each worker owns its own store: the same key on two workers is two
// independent entries.
func TestWorkersAreIsolated(t *testing.T) {
	workers, done := worker.SpawnAll(2, 16)
	defer func() {
		for _, w := range workers {
			w.Stop()
		}
		done.Wait()
	}()

	q := common.NewReplyQueue(16)

	workers[0].Mailbox() <- common.Request{Seq: 1, Value: makeCmd("SET", "k", "zero"), Replies: q}
	rep := recvReply(t, q)
	require.Equal(t, "OK", rep.Value.Str)

	workers[1].Mailbox() <- common.Request{Seq: 2, Value: makeCmd("GET", "k"), Replies: q}
	rep = recvReply(t, q)
	require.Equal(t, common.NULL, rep.Value.Typ)
}
