/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/handlers/handlers.go
*/
package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/store"
)

// Handler is a function type that processes one command against the
// shard-local store. Handlers are pure: reply out, no I/O.
type Handler func(db *store.Store, v *common.Value) *common.Value

// Handlers maps command names (upper case) to their handler functions.
var Handlers = map[string]Handler{

	// health check / connection scoped
	"PING":   Ping,
	"CONFIG": Config,
	"INFO":   Info,

	// string commands
	"GET": Get,
	"SET": Set,

	// key commands
	"DEL":    Del,
	"EXISTS": Exists,
	"TYPE":   Type,

	// list commands
	"LPUSH":  Lpush,
	"RPUSH":  Rpush,
	"LPOP":   Lpop,
	"RPOP":   Rpop,
	"LRANGE": Lrange,

	// set commands
	"SADD":     Sadd,
	"SPOP":     Spop,
	"SMEMBERS": Smembers,
}

// Execute is the main command dispatcher run on a shard worker.
//
// Responsibilities:
//  1. Validate the request shape (array of bulk strings, non-empty)
//  2. Extract the command name from the first array element
//  3. Lookup the command handler in Handlers, case-insensitively
//  4. Run the handler against the shard's store and return its reply
//
// Error cases:
//   - Request not an array → ERR request must be array
//   - Empty array → ERR empty request
//   - First element not a bulk string → ERR command must be bulk string
//   - Unknown command → ERR unknown command '<name>'
//
// Argument and type failures inside a handler come back as error
// replies too; none of them is fatal to the connection.
func Execute(db *store.Store, v *common.Value) *common.Value {
	if v.Typ != common.ARRAY {
		return common.NewErrorValue(common.ERR_NOT_ARRAY)
	}
	if len(v.Arr) == 0 {
		return common.NewErrorValue(common.ERR_EMPTY_REQUEST)
	}
	if !v.Arr[0].IsBulk() {
		return common.NewErrorValue(common.ERR_CMD_NOT_BULK)
	}

	cmd := strings.ToUpper(string(v.Arr[0].Blk))
	handler, ok := Handlers[cmd]
	if !ok {
		return common.NewErrorValue(fmt.Sprintf("ERR unknown command '%s'", cmd))
	}
	return handler(db, v)
}

// errWrongArity builds the canonical arity error for a command.
func errWrongArity(cmd string) *common.Value {
	return common.NewErrorValue(
		fmt.Sprintf("ERR wrong number of arguments for '%s' command", strings.ToLower(cmd)))
}

// bulkArg extracts the raw bytes of one argument, failing when the
// argument is not a bulk string.
func bulkArg(v *common.Value) ([]byte, bool) {
	if !v.IsBulk() {
		return nil, false
	}
	return v.Blk, true
}

// bulkArgs extracts the raw bytes of every argument in args, failing
// when any of them is not a bulk string.
func bulkArgs(args []common.Value) ([][]byte, bool) {
	out := make([][]byte, 0, len(args))
	for i := range args {
		b, ok := bulkArg(&args[i])
		if !ok {
			return nil, false
		}
		out = append(out, b)
	}
	return out, true
}

// parseCount parses an optional COUNT argument. Counts must be
// non-negative base-10 signed 64-bit integers.
func parseCount(arg *common.Value) (int64, bool) {
	b, ok := bulkArg(arg)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// wrongTypeReply maps the store's sentinel onto the canonical error
// reply; any other store error surfaces as an internal error.
func wrongTypeReply(err error) *common.Value {
	if err == store.ErrWrongType {
		return common.NewErrorValue(common.ERR_WRONGTYPE)
	}
	return common.NewErrorValue(common.ERR_INTERNAL)
}
