/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/handlers/handlers_test.go
*/
package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/go-shardis/internal/common"
	"github.com/akashmaji946/go-shardis/internal/handlers"
	"github.com/akashmaji946/go-shardis/internal/store"
)

// makeCmd constructs a command request the way the parser would: an
// array of bulk strings.
func makeCmd(args ...string) *common.Value {
	arr := make([]common.Value, 0, len(args))
	for _, a := range args {
		arr = append(arr, *common.NewBulkString(a))
	}
	return common.NewArrayValue(arr)
}

func TestPing(t *testing.T) {
	db := store.NewStore()

	res := handlers.Execute(db, makeCmd("PING"))
	require.Equal(t, common.STRING, res.Typ)
	require.Equal(t, "PONG", res.Str)

	// lower case works too
	res = handlers.Execute(db, makeCmd("ping"))
	require.Equal(t, "PONG", res.Str)

	// with a message, the message is echoed as a bulk string
	res = handlers.Execute(db, makeCmd("PING", "hello"))
	require.Equal(t, common.BULK, res.Typ)
	require.Equal(t, []byte("hello"), res.Blk)
}

func TestConfigIsAStub(t *testing.T) {
	db := store.NewStore()

	res := handlers.Execute(db, makeCmd("CONFIG", "GET", "maxmemory"))
	require.Equal(t, common.NULL_ARRAY, res.Typ)

	res = handlers.Execute(db, makeCmd("CONFIG"))
	require.Equal(t, common.NULL_ARRAY, res.Typ)

	// the stub never touched the store
	require.Equal(t, 0, db.Len())
}

func TestSetGet(t *testing.T) {
	db := store.NewStore()

	res := handlers.Execute(db, makeCmd("SET", "mykey", "hello"))
	require.Equal(t, common.STRING, res.Typ)
	require.Equal(t, "OK", res.Str)

	res = handlers.Execute(db, makeCmd("GET", "mykey"))
	require.Equal(t, common.BULK, res.Typ)
	require.Equal(t, []byte("hello"), res.Blk)

	// missing key is a null bulk string
	res = handlers.Execute(db, makeCmd("GET", "missing"))
	require.Equal(t, common.NULL, res.Typ)
}

func TestListIntegration(t *testing.T) {
	db := store.NewStore()

	res := handlers.Execute(db, makeCmd("LPUSH", "mylist", "a"))
	require.Equal(t, int64(1), res.Num)

	res = handlers.Execute(db, makeCmd("RPUSH", "mylist", "b"))
	require.Equal(t, int64(2), res.Num)

	res = handlers.Execute(db, makeCmd("LRANGE", "mylist", "0", "-1"))
	require.Equal(t, common.ARRAY, res.Typ)
	require.Len(t, res.Arr, 2)
	require.Equal(t, []byte("a"), res.Arr[0].Blk)
	require.Equal(t, []byte("b"), res.Arr[1].Blk)

	// LPOP without count pops one element as a bulk string
	res = handlers.Execute(db, makeCmd("LPOP", "mylist"))
	require.Equal(t, common.BULK, res.Typ)
	require.Equal(t, []byte("a"), res.Blk)
}

func TestPopReplyShapes(t *testing.T) {
	db := store.NewStore()
	handlers.Execute(db, makeCmd("RPUSH", "l", "a", "b", "c"))

	// an explicit count above 1 yields an array
	res := handlers.Execute(db, makeCmd("LPOP", "l", "2"))
	require.Equal(t, common.ARRAY, res.Typ)
	require.Len(t, res.Arr, 2)
	require.Equal(t, []byte("a"), res.Arr[0].Blk)
	require.Equal(t, []byte("b"), res.Arr[1].Blk)

	// count 1 with exactly one popped element is a bulk string
	res = handlers.Execute(db, makeCmd("RPOP", "l", "1"))
	require.Equal(t, common.BULK, res.Typ)
	require.Equal(t, []byte("c"), res.Blk)

	// popping a missing key with default count is an empty array
	res = handlers.Execute(db, makeCmd("LPOP", "gone"))
	require.Equal(t, common.ARRAY, res.Typ)
	require.Len(t, res.Arr, 0)
}

func TestPopCountValidation(t *testing.T) {
	db := store.NewStore()
	handlers.Execute(db, makeCmd("RPUSH", "l", "a"))

	for _, count := range []string{"abc", "-1", "1.5", ""} {
		res := handlers.Execute(db, makeCmd("LPOP", "l", count))
		require.Equal(t, common.ERROR, res.Typ, "count %q", count)
		require.Equal(t, common.ERR_NOT_INTEGER, res.Err)
	}
}

func TestSetCommands(t *testing.T) {
	db := store.NewStore()

	res := handlers.Execute(db, makeCmd("SADD", "myset", "a", "b", "a"))
	require.Equal(t, int64(2), res.Num)

	res = handlers.Execute(db, makeCmd("SMEMBERS", "myset"))
	require.Equal(t, common.ARRAY, res.Typ)
	require.Len(t, res.Arr, 2)

	// SPOP always replies with an array
	res = handlers.Execute(db, makeCmd("SPOP", "myset"))
	require.Equal(t, common.ARRAY, res.Typ)
	require.Len(t, res.Arr, 1)

	res = handlers.Execute(db, makeCmd("SPOP", "myset", "5"))
	require.Equal(t, common.ARRAY, res.Typ)
	require.Len(t, res.Arr, 1)

	// the drained set is gone
	res = handlers.Execute(db, makeCmd("EXISTS", "myset"))
	require.Equal(t, int64(0), res.Num)
}

func TestKeyCommands(t *testing.T) {
	db := store.NewStore()
	handlers.Execute(db, makeCmd("SET", "k", "v"))

	res := handlers.Execute(db, makeCmd("EXISTS", "k"))
	require.Equal(t, int64(1), res.Num)

	res = handlers.Execute(db, makeCmd("TYPE", "k"))
	require.Equal(t, "string", res.Str)

	handlers.Execute(db, makeCmd("LPUSH", "l", "x"))
	res = handlers.Execute(db, makeCmd("TYPE", "l"))
	require.Equal(t, "list", res.Str)

	res = handlers.Execute(db, makeCmd("TYPE", "missing"))
	require.Equal(t, "none", res.Str)

	res = handlers.Execute(db, makeCmd("DEL", "k"))
	require.Equal(t, int64(1), res.Num)
	res = handlers.Execute(db, makeCmd("DEL", "k"))
	require.Equal(t, int64(0), res.Num)
	res = handlers.Execute(db, makeCmd("GET", "k"))
	require.Equal(t, common.NULL, res.Typ)
}

func TestWrongType(t *testing.T) {
	db := store.NewStore()
	handlers.Execute(db, makeCmd("SET", "k", "v"))

	for _, cmd := range [][]string{
		{"LPUSH", "k", "x"},
		{"RPUSH", "k", "x"},
		{"LPOP", "k"},
		{"RPOP", "k"},
		{"LRANGE", "k", "0", "-1"},
		{"SADD", "k", "x"},
		{"SPOP", "k"},
		{"SMEMBERS", "k"},
		{"GET", "k2"}, // set up below
	} {
		if cmd[0] == "GET" {
			handlers.Execute(db, makeCmd("LPUSH", "k2", "x"))
		}
		res := handlers.Execute(db, makeCmd(cmd...))
		require.Equal(t, common.ERROR, res.Typ, "cmd %v", cmd)
		require.Equal(t, common.ERR_WRONGTYPE, res.Err, "cmd %v", cmd)
	}
}

func TestArityErrors(t *testing.T) {
	db := store.NewStore()

	for _, cmd := range [][]string{
		{"GET"},
		{"GET", "a", "b"},
		{"SET", "a"},
		{"LPUSH", "k"},
		{"RPUSH", "k"},
		{"LRANGE", "k", "0"},
		{"SADD", "k"},
		{"SMEMBERS"},
		{"DEL"},
		{"DEL", "a", "b"},
		{"LPOP"},
		{"LPOP", "k", "1", "x"},
	} {
		res := handlers.Execute(db, makeCmd(cmd...))
		require.Equal(t, common.ERROR, res.Typ, "cmd %v", cmd)
		require.Contains(t, res.Err, "wrong number of arguments", "cmd %v", cmd)
	}
}

func TestUnknownCommand(t *testing.T) {
	db := store.NewStore()
	res := handlers.Execute(db, makeCmd("FOOBAR"))
	require.Equal(t, common.ERROR, res.Typ)
	require.Contains(t, res.Err, "unknown command 'FOOBAR'")
}

func TestRequestShapeValidation(t *testing.T) {
	db := store.NewStore()

	// not an array
	res := handlers.Execute(db, common.NewStringValue("GET"))
	require.Equal(t, common.ERROR, res.Typ)
	require.Equal(t, common.ERR_NOT_ARRAY, res.Err)

	// empty array
	res = handlers.Execute(db, common.NewArrayValue(nil))
	require.Equal(t, common.ERROR, res.Typ)
	require.Equal(t, common.ERR_EMPTY_REQUEST, res.Err)

	// command not a bulk string
	res = handlers.Execute(db, common.NewArrayValue([]common.Value{*common.NewIntegerValue(1)}))
	require.Equal(t, common.ERROR, res.Typ)
	require.Equal(t, common.ERR_CMD_NOT_BULK, res.Err)

	// argument not a bulk string
	res = handlers.Execute(db, common.NewArrayValue([]common.Value{
		*common.NewBulkString("GET"),
		*common.NewIntegerValue(1),
	}))
	require.Equal(t, common.ERROR, res.Typ)
	require.Equal(t, common.ERR_ARG_NOT_BULK, res.Err)
}

func TestInfoReply(t *testing.T) {
	db := store.NewStore()
	res := handlers.Execute(db, makeCmd("INFO"))
	require.Equal(t, common.BULK, res.Typ)
	require.Contains(t, string(res.Blk), "# Server")
	require.Contains(t, string(res.Blk), "# Memory")
}
