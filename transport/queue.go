package transport

import "errors"

// ErrWouldBlock means insufficient data or space is currently available.
// It is a normal, high-frequency outcome of polling, not a fault: retry
// once more bytes arrive or more space frees up. It must never be wrapped
// into a protocol error kind or logged as a failure.
var ErrWouldBlock = errors.New("transport: would block")

// ReceiveQueue is the incoming byte stream contract. Reads are
// non-destructive through PeekAt; bytes are consumed only through Flush,
// after a decision on them is finalised.
type ReceiveQueue interface {
	// BytesAvailable is the count of readable bytes.
	BytesAvailable() int
	// PeekAt reads the byte at a logical offset from the current read
	// cursor without consuming it. The second result is false when no byte
	// is present at that offset.
	PeekAt(offset int) (byte, bool)
	// Flush advances the read cursor by n, discarding those bytes.
	Flush(n int)
}

// TransmitQueue is the outgoing byte stream contract. SpaceAvailable must
// be a trustworthy upper bound: the transmitter checks it once before a
// multi-byte burst, and a WriteByte failure mid-burst is an overflow fault,
// not a recoverable condition.
type TransmitQueue interface {
	SpaceAvailable() int
	WriteByte(b byte) error
}
