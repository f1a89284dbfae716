/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/handlers/handler_string.go
*/
package handlers

import (
	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/store"
)

// Get handles the GET command.
// Retrieves the string value bound to a key.
//
// Syntax:
//
//	GET <key>
//
// Returns:
//
//	Bulk String: The value of the key, or null if the key does not exist.
//	Error: WRONGTYPE if the key holds a list or a set.
func Get(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) != 1 {
		return errWrongArity("get")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	entry, found := db.Get(key)
	if !found {
		return common.NewNullValue()
	}
	if entry.Kind != store.STRING_KIND {
		return common.NewErrorValue(common.ERR_WRONGTYPE)
	}
	return common.NewBulkValue(entry.Str)
}

// Set handles the SET command.
// Binds a key to a string value, replacing any existing value of any kind.
//
// Syntax:
//
//	SET <key> <value>
//
// Returns:
//
//	Simple String: OK.
func Set(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) != 2 {
		return errWrongArity("set")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}
	value, ok := bulkArg(&args[1])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	db.Set(key, value)
	return common.NewStringValue(common.REPLY_OK)
}
