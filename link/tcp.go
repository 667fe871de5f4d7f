package link

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/serframe/transport"
)

// TCP pumps bytes between a stream socket and the framing queues. Useful
// for bridging a remote serial endpoint or for loopback testing.
type TCP struct {
	conn net.Conn
	rxq  *transport.ByteQueue
	txq  *transport.ByteQueue
	buf  []byte
	log  zerolog.Logger
}

var _ Link = (*TCP)(nil)

// DialTCP connects to addr and wraps the connection as a link.
func DialTCP(addr string, queueSize int, logger zerolog.Logger) (*TCP, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("link: dial %s: %w", addr, err)
	}
	logger.Info().Str("addr", addr).Msg("tcp link connected")
	return NewTCP(conn, queueSize, logger), nil
}

// NewTCP wraps an established connection as a link.
func NewTCP(conn net.Conn, queueSize int, logger zerolog.Logger) *TCP {
	return &TCP{
		conn: conn,
		rxq:  transport.NewByteQueue(queueSize),
		txq:  transport.NewByteQueue(queueSize),
		buf:  make([]byte, pumpBufSize),
		log:  logger,
	}
}

func (l *TCP) RxQueue() *transport.ByteQueue { return l.rxq }
func (l *TCP) TxQueue() *transport.ByteQueue { return l.txq }

func (l *TCP) Pump() error {
	for l.txq.BytesAvailable() > 0 {
		n := l.txq.Drain(l.buf)
		if _, err := l.conn.Write(l.buf[:n]); err != nil {
			return fmt.Errorf("link: write %s: %w", l.conn.RemoteAddr(), err)
		}
	}

	if space := l.rxq.SpaceAvailable(); space > 0 {
		limit := min(space, len(l.buf))
		if err := l.conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
			return fmt.Errorf("link: set deadline: %w", err)
		}
		n, err := l.conn.Read(l.buf[:limit])
		if n > 0 {
			l.rxq.Fill(l.buf[:n])
		}
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return nil
			}
			return fmt.Errorf("link: read %s: %w", l.conn.RemoteAddr(), err)
		}
	}
	return nil
}

func (l *TCP) Close() error {
	l.log.Info().Msg("tcp link closed")
	return l.conn.Close()
}

func (l *TCP) Describe() string {
	return "tcp:" + l.conn.RemoteAddr().String()
}
