package transport

import "github.com/danmuck/serframe/protocol"

// ByteQueue is a fixed-capacity ring buffer implementing both queue
// contracts. Links use it as the staging buffer between an I/O endpoint and
// the framing core; tests use it as an in-memory transport. It performs no
// locking: one owner per queue.
type ByteQueue struct {
	buf  []byte
	head int
	size int
}

func NewByteQueue(capacity int) *ByteQueue {
	return &ByteQueue{buf: make([]byte, capacity)}
}

func (q *ByteQueue) Capacity() int {
	return len(q.buf)
}

func (q *ByteQueue) BytesAvailable() int {
	return q.size
}

func (q *ByteQueue) SpaceAvailable() int {
	return len(q.buf) - q.size
}

func (q *ByteQueue) PeekAt(offset int) (byte, bool) {
	if offset < 0 || offset >= q.size {
		return 0, false
	}
	return q.buf[(q.head+offset)%len(q.buf)], true
}

func (q *ByteQueue) Flush(n int) {
	if n > q.size {
		n = q.size
	}
	if n <= 0 {
		return
	}
	q.head = (q.head + n) % len(q.buf)
	q.size -= n
}

func (q *ByteQueue) WriteByte(b byte) error {
	if q.size == len(q.buf) {
		return protocol.ErrQueueOverflow
	}
	q.buf[(q.head+q.size)%len(q.buf)] = b
	q.size++
	return nil
}

// Fill copies as much of p as fits into the queue and reports how many
// bytes were taken.
func (q *ByteQueue) Fill(p []byte) int {
	n := 0
	for _, b := range p {
		if q.WriteByte(b) != nil {
			break
		}
		n++
	}
	return n
}

// Drain pops up to len(p) bytes from the front of the queue into p and
// reports how many were moved.
func (q *ByteQueue) Drain(p []byte) int {
	n := q.size
	if n > len(p) {
		n = len(p)
	}
	for i := 0; i < n; i++ {
		p[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.Flush(n)
	return n
}
