/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/info/info.go
*/
package info

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
)

// ServerInfo holds server information organized into categories for the
// INFO command. Each category is a map of key-value pairs that will be
// formatted and displayed.
type ServerInfo struct {
	server map[string]string
	memory map[string]string
}

var (
	startTime = time.Now()

	// facts registered once at startup
	serverPort   int
	serverShards int
)

// SetServerFacts registers the startup facts INFO reports. Called once
// from main before the listener comes up.
func SetServerFacts(port, shards int) {
	serverPort = port
	serverShards = shards
}

// NewServerInfo creates and returns a new ServerInfo instance.
func NewServerInfo() *ServerInfo {
	return &ServerInfo{}
}

// Build populates the ServerInfo structure with current process and
// system statistics.
//
// Categories populated:
//   - server: version, PID, port, uptime, shard count, Go version
//   - memory: process heap figures and total/used system memory
func (info *ServerInfo) Build() {
	info.server = map[string]string{
		"server_version": "1.0",
		"process_id":     strconv.Itoa(os.Getpid()),
		"tcp_port":       strconv.Itoa(serverPort),
		"shards":         strconv.Itoa(serverShards),
		"go_version":     runtime.Version(),
		"server_uptime":  fmt.Sprint(int64(time.Since(startTime).Seconds())),
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	virtualMemory, err := mem.VirtualMemory()
	var memoryTotal, memoryUsed uint64
	if err == nil {
		memoryTotal = virtualMemory.Total
		memoryUsed = virtualMemory.Used
	}
	info.memory = map[string]string{
		"heap_alloc":          fmt.Sprintf("%d B", ms.HeapAlloc),
		"heap_sys":            fmt.Sprintf("%d B", ms.HeapSys),
		"total_memory_system": fmt.Sprintf("%d B", memoryTotal),
		"used_memory_system":  fmt.Sprintf("%d B", memoryUsed),
	}
}

// PrintCategory formats a category header and its key-value pairs,
// keys sorted so the output is stable.
func (info *ServerInfo) PrintCategory(header string, m map[string]string) string {
	s := fmt.Sprintf("# %s\r\n", header)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s += fmt.Sprintf("%s:%s\r\n", k, m[k])
	}
	return s
}

// Print generates the complete INFO command output by building and
// formatting all categories.
func (info *ServerInfo) Print() string {
	info.Build()

	var msg string
	msg += info.PrintCategory("Server", info.server)
	msg += info.PrintCategory("Memory", info.memory)
	return msg
}
