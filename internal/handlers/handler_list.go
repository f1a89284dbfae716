/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/handlers/handler_list.go
*/
package handlers

import (
	"strconv"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/store"
)

// Lpush handles the LPUSH command.
// Prepends one or more values to a list.
//
// Syntax:
//
//	LPUSH <key> <value> [<value> ...]
//
// Returns:
//
//	Integer: The length of the list after the push operations.
//	LPUSH k a b c yields the list [c, b, a].
func Lpush(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) < 2 {
		return errWrongArity("lpush")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}
	values, ok := bulkArgs(args[1:])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	length, err := db.LPush(key, values...)
	if err != nil {
		return wrongTypeReply(err)
	}
	return common.NewIntegerValue(length)
}

// Rpush handles the RPUSH command.
// Appends one or more values to a list.
//
// Syntax:
//
//	RPUSH <key> <value> [<value> ...]
//
// Returns:
//
//	Integer: The length of the list after the push operations.
//	RPUSH k a b c yields the list [a, b, c].
func Rpush(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) < 2 {
		return errWrongArity("rpush")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}
	values, ok := bulkArgs(args[1:])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}

	length, err := db.RPush(key, values...)
	if err != nil {
		return wrongTypeReply(err)
	}
	return common.NewIntegerValue(length)
}

// Lpop handles the LPOP command.
// Removes and returns elements from the head of a list.
//
// Syntax:
//
//	LPOP <key> [<count>]
//
// Returns:
//
//	Bulk String: when count resolves to 1 (no count given, or an
//	explicit 1) and exactly one element was popped.
//	Array of Bulk Strings: in every other case, possibly empty.
func Lpop(db *store.Store, v *common.Value) *common.Value {
	return popN(db, v, "lpop", db.LPop)
}

// Rpop handles the RPOP command.
// Removes and returns elements from the tail of a list, tail first.
//
// Syntax:
//
//	RPOP <key> [<count>]
//
// Returns:
//
//	Same reply shape as LPOP.
func Rpop(db *store.Store, v *common.Value) *common.Value {
	return popN(db, v, "rpop", db.RPop)
}

// popN implements the shared LPOP/RPOP argument handling and the
// codified reply shape: a lone bulk string only when count resolves to
// 1 and exactly one element came back, an array otherwise.
func popN(db *store.Store, v *common.Value, name string, op func([]byte, int64) ([][]byte, error)) *common.Value {
	args := v.Arr[1:]
	if len(args) < 1 || len(args) > 2 {
		return errWrongArity(name)
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

	popped, err := op(key, count)
	if err != nil {
		return wrongTypeReply(err)
	}

	if count == 1 && len(popped) == 1 {
		return common.NewBulkValue(popped[0])
	}
	return common.NewBulkArrayValue(popped)
}

// Lrange handles the LRANGE command.
// Returns a contiguous slice of a list.
//
// Syntax:
//
//	LRANGE <key> <start> <stop>
//
// Both indices are inclusive and may be negative to count from the
// tail; out-of-bounds indices are clamped.
//
// Returns:
//
//	Array of Bulk Strings: the selected elements in list order,
//	possibly empty.
func Lrange(db *store.Store, v *common.Value) *common.Value {
	args := v.Arr[1:]
	if len(args) != 3 {
		return errWrongArity("lrange")
	}

	key, ok := bulkArg(&args[0])
	if !ok {
		return common.NewErrorValue(common.ERR_ARG_NOT_BULK)
	}
	start, ok := parseIndex(&args[1])
	if !ok {
		return common.NewErrorValue(common.ERR_NOT_INTEGER)
	}
	stop, ok := parseIndex(&args[2])
	if !ok {
		return common.NewErrorValue(common.ERR_NOT_INTEGER)
	}

	items, err := db.LRange(key, start, stop)
	if err != nil {
		return wrongTypeReply(err)
	}
	return common.NewBulkArrayValue(items)
}

// parseIndex parses a signed LRANGE index argument.
func parseIndex(arg *common.Value) (int64, bool) {
	b, ok := bulkArg(arg)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
