/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/resp/serialize.go
*/
package resp

import (
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/akashmaji946/go-shardis/internal/common"
)

// Serialize appends the RESP2 wire form of v to dst.
//
// No intermediate allocation: integers are appended in place with
// strconv.AppendInt, bulk payloads with a single slice copy, arrays by
// recursion. dst is typically a pooled per-connection write buffer that
// collects a whole batch of replies before one socket write.
//
// Format conversion:
//   - STRING:     "+<data>\r\n"
//   - ERROR:      "-<error message>\r\n"
//   - INTEGER:    ":<number>\r\n"
//   - BULK:       "$<length>\r\n<data>\r\n"
//   - NULL:       "$-1\r\n"
//   - NULL_ARRAY: "*-1\r\n"
//   - ARRAY:      "*<count>\r\n<element1><element2>..."
func Serialize(v *common.Value, dst *bytebufferpool.ByteBuffer) {
	switch v.Typ {
	case common.STRING:
		dst.WriteByte('+')
		dst.WriteString(v.Str)
		dst.WriteString(common.EOD)

	case common.ERROR:
		dst.WriteByte('-')
		dst.WriteString(v.Err)
		dst.WriteString(common.EOD)

	case common.INTEGER:
		dst.WriteByte(':')
		dst.B = strconv.AppendInt(dst.B, v.Num, 10)
		dst.WriteString(common.EOD)

	case common.BULK:
		dst.WriteByte('$')
		dst.B = strconv.AppendInt(dst.B, int64(len(v.Blk)), 10)
		dst.WriteString(common.EOD)
		dst.Write(v.Blk)
		dst.WriteString(common.EOD)

	case common.NULL:
		dst.WriteString("$-1\r\n")

	case common.NULL_ARRAY:
		dst.WriteString("*-1\r\n")

	case common.ARRAY:
		dst.WriteByte('*')
		dst.B = strconv.AppendInt(dst.B, int64(len(v.Arr)), 10)
		dst.WriteString(common.EOD)
		for i := range v.Arr {
			Serialize(&v.Arr[i], dst)
		}
	}
}

// SerializeToBytes is a convenience for callers that need a standalone
// byte slice (tests, synthetic one-off replies).
func SerializeToBytes(v *common.Value) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	Serialize(v, buf)
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out
}
