package transport

import "github.com/danmuck/serframe/protocol"

// Transmitter serialises (id, payload) pairs onto a transmit queue. It
// exclusively owns the queue handle given at construction.
type Transmitter struct {
	tx TransmitQueue
}

func NewTransmitter(tx TransmitQueue) *Transmitter {
	return &Transmitter{tx: tx}
}

// Transmit writes one complete frame for (id, payload) to the queue.
//
// Returns ErrWouldBlock, with no bytes written, when the queue's free space
// is smaller than the total packet length; the caller retries later. This
// is a precondition check, not a partial-write guard: if a WriteByte call
// fails after the burst has started, the queue's advertised space was wrong
// and ErrQueueOverflow surfaces as a transport contract fault, with no
// rollback of bytes already written.
func (t *Transmitter) Transmit(id uint16, payload []byte) error {
	header, err := protocol.NewFrameHeader(id, len(payload))
	if err != nil {
		return err
	}
	if t.tx.SpaceAvailable() < header.TotalPacketLen() {
		return ErrWouldBlock
	}

	var hdr [protocol.HeaderLen]byte
	for _, b := range header.AppendBytes(hdr[:0]) {
		if err := t.write(b); err != nil {
			return err
		}
	}

	// Zero-length payload: header only, no encoded section, no CRC.
	return protocol.EncodeBlocks(payload, func(block []byte) error {
		for _, b := range block {
			if err := t.write(b); err != nil {
				return err
			}
		}
		return nil
	})
}

// TransmitFrame re-serialises an already-validated frame.
func (t *Transmitter) TransmitFrame(f *protocol.Frame) error {
	return t.Transmit(f.ID(), f.Bytes())
}

func (t *Transmitter) write(b byte) error {
	if err := t.tx.WriteByte(b); err != nil {
		return protocol.ErrQueueOverflow
	}
	return nil
}
