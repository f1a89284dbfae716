/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/resp/parser.go
*/
package resp

import (
	"bytes"
	"strconv"

	"github.com/akashmaji946/go-shardis/internal/common"
)

// Parse consumes the next complete RESP2 frame from the buffer head and
// returns it as a Value.
//
// Contract:
//   - Returns ErrIncomplete when the buffer does not yet hold a full
//     frame; the buffer is left unchanged.
//   - Returns *InvalidFirstByteError on an unknown leading byte, and
//     ErrMalformedLength / ErrMalformedInteger / ErrMalformedTerminator
//     on protocol violations. The caller must drop the connection.
//   - On success exactly the bytes of the consumed frame are removed
//     from the buffer head, and bulk-string payloads in the returned
//     value are views into the buffer's backing memory (zero-copy).
//
// Strategy (two-phase): a read-only peek pass computes the byte length
// of the next complete frame and validates its structure, including
// nested array elements. Only then is the frame detached from the
// buffer and decoded, so a short or malformed buffer is never half
// consumed.
//
// Wire grammar:
//
//	+<line>\r\n                 simple string
//	-<line>\r\n                 error
//	:<int>\r\n                  integer
//	$<len>\r\n<payload>\r\n     bulk string ($-1\r\n is null)
//	*<len>\r\n<elements>        array (*-1\r\n is null)
//	<letter>...\r\n             inline command, split on whitespace
func Parse(buf *Buffer) (*common.Value, error) {
	n, err := frameLen(buf.Bytes())
	if err != nil {
		return nil, err
	}
	v, _ := decode(buf.Next(n))
	return v, nil
}

var crlf = []byte(common.EOD)

// frameLen is the peek pass: it measures the next frame without
// consuming anything, validating structure as it goes.
func frameLen(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrIncomplete
	}
	switch c := data[0]; {
	case c == '+' || c == '-':
		return lineEnd(data, 1)

	case c == ':':
		end, err := lineEnd(data, 1)
		if err != nil {
			return 0, err
		}
		if _, perr := strconv.ParseInt(string(data[1:end-2]), 10, 64); perr != nil {
			return 0, ErrMalformedInteger
		}
		return end, nil

	case c == '$':
		end, err := lineEnd(data, 1)
		if err != nil {
			return 0, err
		}
		n, perr := strconv.ParseInt(string(data[1:end-2]), 10, 64)
		if perr != nil {
			return 0, ErrMalformedLength
		}
		if n < 0 {
			// null bulk string, header only
			return end, nil
		}
		total := end + int(n) + 2
		if len(data) < total {
			return 0, ErrIncomplete
		}
		// trailing CRLF is verified literally; payload bytes may be anything
		if data[total-2] != common.CARRIAGE_RETURN || data[total-1] != common.NEW_LINE {
			return 0, ErrMalformedTerminator
		}
		return total, nil

	case c == '*':
		end, err := lineEnd(data, 1)
		if err != nil {
			return 0, err
		}
		m, perr := strconv.ParseInt(string(data[1:end-2]), 10, 64)
		if perr != nil {
			return 0, ErrMalformedLength
		}
		if m < 0 {
			// null array, header only
			return end, nil
		}
		pos := end
		for i := int64(0); i < m; i++ {
			n, err := frameLen(data[pos:])
			if err != nil {
				return 0, err
			}
			pos += n
		}
		return pos, nil

	case isInlineStart(c):
		return lineEnd(data, 0)

	default:
		return 0, &InvalidFirstByteError{Byte: c}
	}
}

// lineEnd scans from start for the CRLF terminator and returns the
// index just past it. A bare CR or LF inside the line is a protocol
// violation.
func lineEnd(data []byte, start int) (int, error) {
	for i := start; i < len(data); i++ {
		switch data[i] {
		case common.CARRIAGE_RETURN:
			if i+1 >= len(data) {
				return 0, ErrIncomplete
			}
			if data[i+1] != common.NEW_LINE {
				return 0, ErrMalformedTerminator
			}
			return i + 2, nil
		case common.NEW_LINE:
			return 0, ErrMalformedTerminator
		}
	}
	return 0, ErrIncomplete
}

// decode builds a Value from a detached frame the peek pass already
// validated. Returns the value and the number of bytes it occupied.
// Bulk payloads are sub-slices of frame, never copies.
func decode(frame []byte) (*common.Value, int) {
	switch c := frame[0]; {
	case c == '+':
		end := lineEndUnchecked(frame, 1)
		return common.NewStringValue(string(frame[1 : end-2])), end

	case c == '-':
		end := lineEndUnchecked(frame, 1)
		return common.NewErrorValue(string(frame[1 : end-2])), end

	case c == ':':
		end := lineEndUnchecked(frame, 1)
		n, _ := strconv.ParseInt(string(frame[1:end-2]), 10, 64)
		return common.NewIntegerValue(n), end

	case c == '$':
		end := lineEndUnchecked(frame, 1)
		n, _ := strconv.ParseInt(string(frame[1:end-2]), 10, 64)
		if n < 0 {
			return common.NewNullValue(), end
		}
		payload := frame[end : end+int(n)]
		return common.NewBulkValue(payload), end + int(n) + 2

	case c == '*':
		end := lineEndUnchecked(frame, 1)
		m, _ := strconv.ParseInt(string(frame[1:end-2]), 10, 64)
		if m < 0 {
			return common.NewNullArrayValue(), end
		}
		arr := make([]common.Value, 0, m)
		pos := end
		for i := int64(0); i < m; i++ {
			elem, used := decode(frame[pos:])
			arr = append(arr, *elem)
			pos += used
		}
		return common.NewArrayValue(arr), pos

	default:
		// inline command: one line, whitespace-separated words, each
		// yielded as a bulk string wrapped in an array
		end := lineEndUnchecked(frame, 0)
		words := bytes.Fields(frame[:end-2])
		arr := make([]common.Value, 0, len(words))
		for _, w := range words {
			arr = append(arr, common.Value{Typ: common.BULK, Blk: w})
		}
		return common.NewArrayValue(arr), end
	}
}

// lineEndUnchecked is decode's CRLF scan; the peek pass guarantees the
// terminator exists.
func lineEndUnchecked(data []byte, start int) int {
	i := bytes.Index(data[start:], crlf)
	return start + i + 2
}

// isInlineStart reports whether the byte can begin an inline command.
func isInlineStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
