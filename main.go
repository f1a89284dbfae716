/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/main.go
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/config"
	"github.com/akashmaji946/go-shardis/internal/info"
	"github.com/akashmaji946/go-shardis/internal/router"
	"github.com/akashmaji946/go-shardis/internal/server"
	"github.com/akashmaji946/go-shardis/internal/worker"
)

// Entry point of the go-shardis server.
//
// Server Startup Sequence:
//  1. Print the banner
//  2. Read configuration (optional --config file, positional port override)
//  3. Initialize the logger at the configured level
//  4. Spawn the shard workers, each owning its partition of the key space
//  5. Build the router over the worker mailboxes
//  6. Bind the TCP listener (non-zero exit on bind failure)
//  7. Accept and handle client connections until terminated
//
// Connection Handling:
//   - Each accepted connection gets a reader and a writer goroutine
//   - Replies leave a connection in exactly the order requests arrived,
//     regardless of which shard served each request
//
// Shutdown:
//   - SIGINT/SIGTERM stops the accept loop, closes live connections,
//     waits for connection tasks, then stops the shard workers
func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "go-shardis [port]",
		Short: "key-sharded in-memory RESP2 server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, args)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string, args []string) error {
	fmt.Println(common.ASCII_ART)

	conf := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		conf = loaded
	}

	// positional port overrides the file
	if len(args) == 1 {
		port, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid port %q", args[0])
		}
		conf.Port = port
		if err := conf.Validate(); err != nil {
			return err
		}
	}

	if err := common.InitLogger(conf.LogLevel); err != nil {
		return err
	}
	log := common.Log()
	info.SetServerFacts(conf.Port, conf.Shards)

	// spawn the shard workers and build the router over their mailboxes
	workers, workersDone := worker.SpawnAll(conf.Shards, conf.MailboxSize)
	mailboxes := make([]chan<- common.Request, 0, len(workers))
	for _, w := range workers {
		mailboxes = append(mailboxes, w.Mailbox())
	}
	rt := router.New(mailboxes)

	srv := server.New(conf, rt)
	if err := srv.Listen(); err != nil {
		log.Errorf("%v", err)
		return err
	}

	// signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Infof("signal received, starting graceful shutdown")
		srv.Shutdown()
	}()

	srv.Serve()
	srv.Wait()

	// connections are drained; stop the shards
	for _, w := range workers {
		w.Stop()
	}
	workersDone.Wait()

	log.Infof("graceful shutdown complete, goodbye")
	return nil
}
