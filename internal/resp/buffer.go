/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/resp/buffer.go
*/
package resp

// Buffer is the grow-only byte container backing a connection reader.
// Socket reads append to the tail; the parser detaches complete frames
// from the head with Next.
//
// Zero-copy contract: Next returns a window into the same backing
// array, it never copies. Parsed bulk-string payloads are sub-slices of
// that window, so they share the arena with the buffer. The garbage
// collector keeps an arena alive for as long as any detached frame (or
// any stored value sliced from it) still references it; once append
// outgrows the arena a fresh one is allocated and the old one is freed
// when the last view dies.
//
// Aliasing invariant: after Next(n) the buffer's window starts past the
// detached bytes, and appends only ever write at the tail of the
// window, which lies beyond every previously detached frame. Detached
// frames are therefore never overwritten.
type Buffer struct {
	data []byte
}

// NewBuffer creates a buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		data: make([]byte, 0, capacity),
	}
}

// Append adds the bytes of one socket read to the tail of the buffer.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Len returns the number of unparsed bytes currently buffered.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the unparsed window for read-only inspection.
// The parser's peek pass runs over this slice without consuming.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Next detaches the first n bytes from the buffer head and returns
// them. The detached slice stays valid forever; see the zero-copy
// contract above.
func (b *Buffer) Next(n int) []byte {
	frame := b.data[:n:n]
	b.data = b.data[n:]
	return frame
}
