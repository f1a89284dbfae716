/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/common/constants.go
*/
package common

// Server identity.
const (
	SERVER_NAME    = "go-shardis"
	SERVER_VERSION = "1.0"
)

// Canonical reply strings.
const (
	REPLY_OK   = "OK"
	REPLY_PONG = "PONG"
)

// Canonical error reply strings. Handlers and the router share these so
// every layer surfaces the same text for the same failure.
const (
	ERR_WRONGTYPE     = "WRONGTYPE Operation against a key holding the wrong kind of value"
	ERR_NOT_INTEGER   = "ERR value is not an integer or out of range"
	ERR_INTERNAL      = "ERR internal server error"
	ERR_CMD_NOT_BULK  = "ERR command must be bulk string"
	ERR_KEY_PARSE     = "ERR error while parsing key"
	ERR_NOT_ARRAY     = "ERR request must be array"
	ERR_EMPTY_REQUEST = "ERR empty request"
	ERR_ARG_NOT_BULK  = "ERR arguments must be bulk strings"
)

var ASCII_ART = `
   >>> go-shardis ` + SERVER_VERSION + ` <<<
   key-sharded in-memory RESP2 server
`
