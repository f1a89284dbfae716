/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/server/server.go
*/
package server

import (
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/config"
	"github.com/akashmaji946/go-shardis/internal/router"
)

// Server owns the TCP listener and the per-connection task pairs.
//
// Each accepted connection gets a reader goroutine and a writer
// goroutine joined by a ReplyQueue; the shared router (immutable after
// startup) is the only thing connections have in common. One bad
// connection never affects another: protocol and I/O errors are fatal
// to their own connection only.
type Server struct {
	conf   *config.Config
	router *router.Router
	log    *zap.SugaredLogger

	ln net.Listener

	mu    sync.Mutex
	conns map[net.Conn]struct{}

	wg sync.WaitGroup
}

// New creates a server over an already-constructed router.
func New(conf *config.Config, rt *router.Router) *Server {
	return &Server{
		conf:   conf,
		router: rt,
		log:    common.Log(),
		conns:  make(map[net.Conn]struct{}),
	}
}

// Listen binds the configured TCP port. Kept separate from Serve so
// callers (and tests) can learn the bound address before serving.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.conf.Port))
	if err != nil {
		return errors.Wrapf(err, "cannot listen on port %d", s.conf.Port)
	}
	s.ln = ln
	s.log.Infof("listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound listener address. Valid after Listen.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			s.log.Infof("listener closed, stopping accept loop")
			return
		}
		if s.conf.TCPNoDelay {
			if tc, ok := conn.(*net.TCPConn); ok {
				tc.SetNoDelay(true)
			}
		}

		s.track(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.handleConn(conn)
		}()
	}
}

// ListenAndServe binds and serves.
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.Serve()
	return nil
}

// Shutdown stops accepting and closes every live connection. Call Wait
// afterwards to let the connection tasks drain.
func (s *Server) Shutdown() {
	if s.ln != nil {
		s.ln.Close()
	}
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
}

// Wait blocks until every connection task has finished.
func (s *Server) Wait() {
	s.wg.Wait()
	s.log.Infof("all connections closed")
}

// handleConn runs one connection for its lifetime: it spawns the
// reorder/writer task and runs the reader task inline.
func (s *Server) handleConn(conn net.Conn) {
	id := uuid.NewString()
	log := s.log.With("conn", id)
	log.Infof("accepted connection from %s", conn.RemoteAddr())

	replies := common.NewReplyQueue(s.conf.ReplyQueueSize)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		writeLoop(conn, replies, log)
	}()

	readLoop(conn, replies, s.router, s.conf.ReadBufferSize, log)
	wg.Wait()

	log.Infof("closed connection from %s", conn.RemoteAddr())
}

// track registers a live connection for shutdown.
func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

// untrack forgets a finished connection.
func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}
