package transport

import "github.com/danmuck/serframe/protocol"

// Receiver scans a receive queue for valid frames, recovering byte
// alignment after corruption. All resynchronisation state is re-derived
// from queue contents on each call; the only persisted state is the skip
// counter. The receiver exclusively owns its queue handle.
type Receiver struct {
	rx           ReceiveQueue
	capacity     int
	staging      []byte
	bytesSkipped uint32
}

// NewReceiver builds a receiver with a fixed payload capacity bound. The
// staging buffer for encoded bytes is sized once here, to the largest
// encoded section that can pass the capacity check; no per-call allocation
// happens after construction.
func NewReceiver(rx ReceiveQueue, capacity int) *Receiver {
	return &Receiver{
		rx:       rx,
		capacity: capacity,
		staging:  make([]byte, protocol.MaxDataLen(capacity)),
	}
}

// BytesSkipped is the running count of bytes discarded while hunting for a
// valid frame: recovery after connection loss, corruption, or hotplug. A
// substantial count indicates bad link quality, like a packet-loss counter.
// Wraps at the uint32 boundary.
func (r *Receiver) BytesSkipped() uint32 {
	return r.bytesSkipped
}

// Receive makes one attempt to produce one frame. Poll it repeatedly:
// ErrWouldBlock means not enough bytes have arrived yet and nothing was
// consumed (beyond junk already skipped while hunting for a start marker).
// Any protocol error means exactly one byte was discarded to break a false
// or corrupt frame; the caller just calls again. A caller can poll through
// an arbitrarily long garbage run and will resynchronise once a valid
// frame appears.
func (r *Receiver) Receive() (*protocol.Frame, error) {
	header, err := r.header()
	if err != nil {
		return nil, err
	}

	// Frame cannot fit the capacity bound: abandon it. Resynchronisation
	// proceeds byte by byte on subsequent calls.
	if header.PayloadLen() > r.capacity {
		r.skipByte()
		return nil, protocol.ErrTooManyBytes
	}

	total := header.TotalPacketLen()
	if r.rx.BytesAvailable() < total {
		return nil, ErrWouldBlock
	}

	staging := r.staging[:header.DataLen()]
	if err := r.peekBytes(protocol.HeaderLen, staging); err != nil {
		return nil, err
	}
	frame, err := protocol.DecodeFrame(header, staging, r.capacity)
	if err != nil {
		// Minimal one-byte backoff: a single corrupted byte inside an
		// otherwise-valid stream must not cost more than strictly needed.
		r.skipByte()
		return nil, err
	}
	r.rx.Flush(total)
	return frame, nil
}

func (r *Receiver) header() (protocol.FrameHeader, error) {
	// Hunt for the start marker, discarding junk in front of it.
	for {
		b, ok := r.rx.PeekAt(0)
		if !ok {
			return protocol.FrameHeader{}, ErrWouldBlock
		}
		if b == protocol.StartOfFrame {
			break
		}
		r.skipByte()
	}

	if r.rx.BytesAvailable() < protocol.HeaderLen {
		return protocol.FrameHeader{}, ErrWouldBlock
	}

	var hdr [protocol.HeaderLen]byte
	if err := r.peekBytes(0, hdr[:]); err != nil {
		return protocol.FrameHeader{}, err
	}
	header, err := protocol.ParseFrameHeader(hdr[:])
	if err != nil {
		// False start marker: break it and retry on the next call.
		r.skipByte()
		return protocol.FrameHeader{}, err
	}
	return header, nil
}

// peekBytes fills dst from the queue without consuming. The caller has
// already checked availability, so a missing byte here is a queue contract
// violation, not a would-block condition.
func (r *Receiver) peekBytes(offset int, dst []byte) error {
	for i := range dst {
		b, ok := r.rx.PeekAt(offset + i)
		if !ok {
			return protocol.ErrQueueUnderflow
		}
		dst[i] = b
	}
	return nil
}

func (r *Receiver) skipByte() {
	r.rx.Flush(1)
	r.bytesSkipped++
}
