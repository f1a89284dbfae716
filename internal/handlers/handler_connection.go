/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/handlers/handler_connection.go
*/
package handlers

import (
	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/info"
	"github.com/akashmaji946/go-shardis/internal/store"
)

// The connection-scoped commands never touch a key, so the router
// answers them without contacting any shard. They are still present in
// the executor table so a request that does reach a shard gets the
// identical reply.

// Ping handles the PING command.
//
// Syntax:
//
//	PING [<message>]
//
// Returns:
//
//	Simple String PONG, or the message echoed back as a Bulk String.
func Ping(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	switch len(args) {
	case 0:
		return common.NewStringValue(common.REPLY_PONG)
	case 1:
		msg, ok := bulkArg(&args[0])
		if !ok {
			return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
		}
		return common.NewBulkValue(msg)
	default:
		return errWrongArity("ping")
	}
}

// Config handles the CONFIG command.
// Always a stub: any subcommand and argument list is accepted and
// answered with a null array, and the store is never consulted.
//
// Syntax:
//
//	CONFIG [<subcommand> [<arg> ...]]
//
// Returns:
//
//	Null Array.
func Config(db *store.Store, v *common.Value) *common.Value {
	return common.NewNullArrayValue()
}

// Info handles the INFO command.
// Reports server and memory statistics.
//
// Syntax:
//
//	INFO
//
// Returns:
//
//	Bulk String: the formatted info sections.
func Info(db *store.Store, v *common.Value) *common.Value {
	return common.NewBulkString(info.NewServerInfo().Print())
}
