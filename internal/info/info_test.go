/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/info/info_test.go
*/
package info

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintSections(t *testing.T) {
	SetServerFacts(6379, 8)

	out := NewServerInfo().Print()
	require.True(t, strings.HasPrefix(out, "# Server\r\n"))
	require.Contains(t, out, "# Memory\r\n")
	require.Contains(t, out, "tcp_port:6379\r\n")
	require.Contains(t, out, "shards:8\r\n")
	require.Contains(t, out, "heap_alloc:")
}
