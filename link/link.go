package link

import "github.com/danmuck/serframe/transport"

// pumpBufSize bounds one direction's move per Pump call.
const pumpBufSize = 256

// Link is a pumped byte endpoint bridged to framing queues. The receiver
// owns RxQueue, the transmitter owns TxQueue; the link only fills and
// drains them from the endpoint side.
type Link interface {
	RxQueue() *transport.ByteQueue
	TxQueue() *transport.ByteQueue
	// Pump moves pending bytes endpoint->rx and tx->endpoint once.
	// A Pump error is an endpoint fault (unplug, peer close), not a
	// framing condition.
	Pump() error
	Close() error
	// Describe names the endpoint for logs and status reporting.
	Describe() string
}
