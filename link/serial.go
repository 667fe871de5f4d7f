package link

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial"

	"github.com/danmuck/serframe/transport"
)

// Serial pumps bytes between a UART and the framing queues.
type Serial struct {
	device string
	port   serial.Port
	rxq    *transport.ByteQueue
	txq    *transport.ByteQueue
	buf    []byte
	log    zerolog.Logger
}

var _ Link = (*Serial)(nil)

// OpenSerial opens the UART at device with the given baud rate. The read
// timeout is kept short so Pump never stalls the poll loop waiting for
// bytes that have not arrived.
func OpenSerial(device string, baud, queueSize int, logger zerolog.Logger) (*Serial, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("link: open %s: %w", device, err)
	}
	if err := port.SetReadTimeout(time.Millisecond); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("link: set read timeout on %s: %w", device, err)
	}
	logger.Info().Str("device", device).Int("baud", baud).Msg("serial link open")
	return &Serial{
		device: device,
		port:   port,
		rxq:    transport.NewByteQueue(queueSize),
		txq:    transport.NewByteQueue(queueSize),
		buf:    make([]byte, pumpBufSize),
		log:    logger,
	}, nil
}

func (l *Serial) RxQueue() *transport.ByteQueue { return l.rxq }
func (l *Serial) TxQueue() *transport.ByteQueue { return l.txq }

func (l *Serial) Pump() error {
	for l.txq.BytesAvailable() > 0 {
		n := l.txq.Drain(l.buf)
		if _, err := l.port.Write(l.buf[:n]); err != nil {
			return fmt.Errorf("link: write %s: %w", l.device, err)
		}
	}

	if space := l.rxq.SpaceAvailable(); space > 0 {
		limit := min(space, len(l.buf))
		n, err := l.port.Read(l.buf[:limit])
		if n > 0 {
			l.rxq.Fill(l.buf[:n])
		}
		if err != nil {
			return fmt.Errorf("link: read %s: %w", l.device, err)
		}
	}
	return nil
}

func (l *Serial) Close() error {
	l.log.Info().Str("device", l.device).Msg("serial link closed")
	return l.port.Close()
}

func (l *Serial) Describe() string {
	return "serial:" + l.device
}
