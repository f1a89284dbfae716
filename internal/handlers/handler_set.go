/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/handlers/handler_set.go
*/
package handlers

import (
	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/store"
)

// Sadd handles the SADD command.
// Adds one or more members to a set.
//
// Syntax:
//
//	SADD <key> <member> [<member> ...]
//
// Returns:
//
//	Integer: The number of elements that were added to the set, not
//	including members already present.
func Sadd(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) < 2 {
		return errWrongArity("sadd")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}
	members, ok := bulkArgs(args[1:])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	added, err := db.SAdd(key, members...)
	if err != nil {
		return wrongTypeReply(err)
	}
	return common.NewIntegerValue(added)
}

// Spop handles the SPOP command.
// Removes and returns random members of a set.
//
// Syntax:
//
//	SPOP <key> [<count>]
//
// Returns:
//
//	Array of Bulk Strings: the removed members, possibly empty. The
//	selection order within the set is unspecified; no member appears
//	twice in one reply.
func Spop(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) < 1 || len(args) > 2 {
		return errWrongArity("spop")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	count := int64(1)
	if len(args) == 2 {
		n, ok := parseCount(&args[1])
		if !ok {
			return common.NewErrorValue(common.ERR_NOT_INTEGER)
		}
		count = n
	}

	popped, err := db.SPop(key, count)
	if err != nil {
		return wrongTypeReply(err)
	}
	return common.NewBulkArrayValue(popped)
}

// Smembers handles the SMEMBERS command.
// Returns every member of a set.
//
// Syntax:
//
//	SMEMBERS <key>
//
// Returns:
//
//	Array of Bulk Strings: all members in unspecified order; empty for
//	a missing key.
func Smembers(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) != 1 {
		return errWrongArity("smembers")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	members, err := db.SMembers(key)
	if err != nil {
		return wrongTypeReply(err)
	}
	return common.NewBulkArrayValue(members)
}
