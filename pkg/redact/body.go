package redact

// BodyBuffer accumulates response body chunks until end of stream so the
// scan runs once over the complete body. The buffer enforces the scan cap
// incrementally: the first chunk that pushes the total past the cap drops
// all retained bytes and marks the buffer overflowed, so an oversized
// stream costs no further memory.
//
// A BodyBuffer is request-scoped and not safe for concurrent use. Dropping
// a partially filled buffer (host tearing down the stream) requires no
// cleanup.
type BodyBuffer struct {
	max        int
	buf        []byte
	total      int
	overflowed bool
}

// NewBodyBuffer creates a buffer that retains at most max bytes. A
// non-positive max selects DefaultMaxBodySize.
func NewBodyBuffer(max int) *BodyBuffer {
	if max <= 0 {
		max = DefaultMaxBodySize
	}
	return &BodyBuffer{max: max}
}

// Write appends a chunk. It returns false once the accumulated size exceeds
// the cap; from then on chunks are counted but not retained.
func (b *BodyBuffer) Write(chunk []byte) bool {
	b.total += len(chunk)
	if b.overflowed {
		return false
	}
	if b.total > b.max {
		b.overflowed = true
		b.buf = nil
		return false
	}
	b.buf = append(b.buf, chunk...)
	return true
}

// Overflowed reports whether the stream exceeded the cap.
func (b *BodyBuffer) Overflowed() bool {
	return b.overflowed
}

// Bytes returns the accumulated body, or nil after an overflow.
func (b *BodyBuffer) Bytes() []byte {
	return b.buf
}

// Size returns the total number of bytes observed, including bytes dropped
// after an overflow.
func (b *BodyBuffer) Size() int {
	return b.total
}

// Reset returns the buffer to its empty state, keeping the cap.
func (b *BodyBuffer) Reset() {
	b.buf = nil
	b.total = 0
	b.overflowed = false
}
