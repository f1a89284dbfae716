/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/handlers/handler_key.go
*/
package handlers

import (
	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/store"
)

// Del handles the DEL command.
// Removes a key of any kind.
//
// Syntax:
//
//	DEL <key>
//
// A single key only: every operation stays on one shard, so the
// multi-key form is rejected as wrong arity rather than partially
// applied.
//
// Returns:
//
//	Integer: 1 if the key existed, 0 otherwise.
func Del(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) != 1 {
		return errWrongArity("del")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	if db.Del(key) {
		return common.NewIntegerValue(1)
	}
	return common.NewIntegerValue(0)
}

// Exists handles the EXISTS command.
// Reports whether a key is bound, regardless of kind.
//
// Syntax:
//
//	EXISTS <key>
//
// Returns:
//
//	Integer: 1 if the key exists, 0 otherwise.
func Exists(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) != 1 {
		return errWrongArity("exists")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	if _, found := db.Get(key); found {
		return common.NewIntegerValue(1)
	}
	return common.NewIntegerValue(0)
}

// Type handles the TYPE command.
// Names the kind of value a key holds.
//
// Syntax:
//
//	TYPE <key>
//
// Returns:
//
//	Simple String: "string", "list" or "set", or "none" for a missing key.
func Type(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) != 1 {
		return errWrongArity("type")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	entry, found := db.Get(key)
	if !found {
		return common.NewStringValue("none")
	}
	return common.NewStringValue(entry.Kind)
}
