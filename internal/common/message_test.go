/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/common/message_test.go
*/
package common_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/go-shardis/internal/common"
)

func TestReplyQueuePushAndReceive(t *testing.T) {
	q := common.NewReplyQueue(4)

	q.Push(1, common.NewStringValue("OK"))

	select {
	case rep := <-q.Chan():
		require.Equal(t, uint64(1), rep.Seq)
		require.Equal(t, "OK", rep.Value.Str)
	default:
		t.Fatal("expected a buffered reply")
	}
}

func TestReplyQueueAnnounce(t *testing.T) {
	q := common.NewReplyQueue(4)
	q.Announce(7)

	select {
	case final := <-q.Final():
		require.Equal(t, uint64(7), final)
	default:
		t.Fatal("expected the final sequence")
	}
}

func TestReplyQueueDropsAfterClose(t *testing.T) {
	q := common.NewReplyQueue(1)
	q.Close()

	// once closed, the queue never blocks producers, even when full
	done := make(chan struct{})
	go func() {
		q.Push(1, common.NewStringValue("late"))
		q.Push(2, common.NewStringValue("later"))
		q.Announce(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("push blocked on a closed queue")
	}
}
