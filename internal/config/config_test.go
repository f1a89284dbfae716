/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/config/config_test.go
*/
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/go-shardis/internal/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shardis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	conf := config.Default()
	require.Equal(t, 6379, conf.Port)
	require.Positive(t, conf.Shards)
	require.Positive(t, conf.MailboxSize)
	require.Positive(t, conf.ReplyQueueSize)
	require.Positive(t, conf.ReadBufferSize)
	require.Equal(t, "info", conf.LogLevel)
	require.True(t, conf.TCPNoDelay)
	require.NoError(t, conf.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, "port: 7000\nshards: 2\nlog_level: debug\n")

	conf, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 7000, conf.Port)
	require.Equal(t, 2, conf.Shards)
	require.Equal(t, "debug", conf.LogLevel)

	// untouched fields keep their defaults
	require.Equal(t, config.Default().MailboxSize, conf.MailboxSize)
	require.Equal(t, config.Default().ReadBufferSize, conf.ReadBufferSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "port: [not a number\n")
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	for _, mutate := range []func(*config.Config){
		func(c *config.Config) { c.Port = -1 },
		func(c *config.Config) { c.Port = 70000 },
		func(c *config.Config) { c.Shards = 0 },
		func(c *config.Config) { c.MailboxSize = 0 },
		func(c *config.Config) { c.ReplyQueueSize = -5 },
		func(c *config.Config) { c.ReadBufferSize = 0 },
	} {
		conf := config.Default()
		mutate(conf)
		require.Error(t, conf.Validate())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, "shards: -3\n")
	_, err := config.Load(path)
	require.Error(t, err)
}
