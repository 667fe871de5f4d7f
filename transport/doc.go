// Package transport owns the poll-based frame exchange over byte queues.
//
// Ownership boundary:
// - queue contracts (peekable receive side, writable transmit side)
// - Transmitter: streaming serialisation onto a transmit queue
// - Receiver: resynchronising frame scan over a receive queue
// - ByteQueue: fixed-capacity reference queue for links and tests
//
// Everything here is single-threaded and non-blocking: operations either
// complete synchronously or return ErrWouldBlock. Callers own the polling
// loop and any backoff policy.
package transport
