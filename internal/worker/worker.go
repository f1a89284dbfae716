/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/worker/worker.go
*/
package worker

import (
	"sync"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/handlers"
	"github.com/akashmaji946/go-shardis/internal/store"
)

// Worker is one shard: a dedicated goroutine that exclusively owns one
// store and drains its mailbox in FIFO order.
//
// Scheduling inside a shard is strictly sequential, so requests from
// different connections that target the same shard serialize naturally
// and the store needs no locks. Workers live for the whole process;
// they stop only when the mailbox is closed at shutdown.
type Worker struct {
	ID      int
	db      *store.Store
	mailbox chan common.Request
}

// New creates a worker with its own empty store and a mailbox buffering
// up to mailboxSize requests.
func New(id, mailboxSize int) *Worker {
	return &Worker{
		ID:      id,
		db:      store.NewStore(),
		mailbox: make(chan common.Request, mailboxSize),
	}
}

// Mailbox returns the send side of the worker's queue. The router keeps
// one of these per shard.
func (w *Worker) Mailbox() chan<- common.Request {
	return w.mailbox
}

// Run drains the mailbox until it is closed, executing each request
// against the shard store and pushing the reply, tagged with the
// request's sequence, onto the originating connection's reply queue.
func (w *Worker) Run() {
	common.Log().Debugf("shard %d running", w.ID)
	for req := range w.mailbox {
		reply := handlers.Execute(w.db, req.Value)
		req.Replies.Push(req.Seq, reply)
	}
	common.Log().Debugf("shard %d stopped", w.ID)
}

// Stop closes the mailbox; Run returns once the backlog is drained.
func (w *Worker) Stop() {
	close(w.mailbox)
}

// SpawnAll creates and starts n workers and returns them together with
// a WaitGroup that is done when every worker has stopped.
func SpawnAll(n, mailboxSize int) ([]*Worker, *sync.WaitGroup) {
	workers := make([]*Worker, 0, n)
	var wg sync.WaitGroup
	for id := 0; id < n; id++ {
		w := New(id, mailboxSize)
		workers = append(workers, w)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run()
		}()
	}
	common.Log().Infof("spawned %d shard workers", n)
	return workers, &wg
}
