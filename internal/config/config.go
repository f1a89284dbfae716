/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/config/config.go
*/
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all settings for the go-shardis server.
//
// Fields:
//   - Port: TCP port the listener binds (default 6379). The CLI
//     positional argument overrides the file value.
//   - Shards: Number of shard workers (default: number of CPU cores).
//   - MailboxSize: Buffered capacity of each shard mailbox.
//   - ReplyQueueSize: Buffered capacity of each connection reply queue.
//   - ReadBufferSize: Initial capacity of a connection's read buffer.
//   - LogLevel: zap level name ("debug", "info", "warn", "error").
//   - TCPNoDelay: Disable Nagle on accepted connections.
type Config struct {
	Port           int    `yaml:"port"`
	Shards         int    `yaml:"shards"`
	MailboxSize    int    `yaml:"mailbox_size"`
	ReplyQueueSize int    `yaml:"reply_queue_size"`
	ReadBufferSize int    `yaml:"read_buffer_size"`
	LogLevel       string `yaml:"log_level"`
	TCPNoDelay     bool   `yaml:"tcp_nodelay"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Port:           6379,
		Shards:         runtime.NumCPU(),
		MailboxSize:    1024,
		ReplyQueueSize: 1024,
		ReadBufferSize: 64 * 1024,
		LogLevel:       "info",
		TCPNoDelay:     true,
	}
}

// Load reads a YAML config file over the defaults: fields absent from
// the file keep their default values.
func Load(path string) (*Config, error) {
	conf := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return conf, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Shards <= 0 {
		return fmt.Errorf("shards must be positive, got %d", c.Shards)
	}
	if c.MailboxSize <= 0 {
		return fmt.Errorf("mailbox_size must be positive, got %d", c.MailboxSize)
	}
	if c.ReplyQueueSize <= 0 {
		return fmt.Errorf("reply_queue_size must be positive, got %d", c.ReplyQueueSize)
	}
	if c.ReadBufferSize <= 0 {
		return fmt.Errorf("read_buffer_size must be positive, got %d", c.ReadBufferSize)
	}
	return nil
}
