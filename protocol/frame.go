package protocol

import (
	"encoding/base64"
	"encoding/binary"
)

// wireEncoding is the on-wire codec: standard alphabet, no padding.
// Strict decoding rejects non-zero trailing bits in the final character,
// so a corrupted last character can never alias a clean decode.
var wireEncoding = base64.RawStdEncoding.Strict()

// Frame is one complete, integrity-verified packet: a header plus a
// fixed-capacity payload buffer. The capacity bound is set at construction
// and never resized; only the first PayloadLen bytes of the buffer are
// meaningful. A Frame that exists has already passed CRC verification (or
// was built from a raw payload, which needs none).
type Frame struct {
	header FrameHeader
	data   []byte
}

// NewFrame builds a frame from an id and raw payload, for transmission or
// host-side use. The payload must fit the capacity bound.
func NewFrame(id uint16, payload []byte, capacity int) (*Frame, error) {
	h, err := NewFrameHeader(id, len(payload))
	if err != nil {
		return nil, err
	}
	if len(payload) > capacity {
		return nil, ErrTooManyBytes
	}
	f := &Frame{header: h, data: make([]byte, capacity)}
	copy(f.data, payload)
	return f, nil
}

// ParseFrame decodes one complete in-memory wire frame (header plus encoded
// section), verifying the CRC.
func ParseFrame(raw []byte, capacity int) (*Frame, error) {
	if len(raw) < HeaderLen {
		return nil, ErrTooFewBytes
	}
	h, err := ParseFrameHeader(raw[:HeaderLen])
	if err != nil {
		return nil, err
	}
	return DecodeFrame(h, raw[HeaderLen:], capacity)
}

// DecodeFrame builds a frame from a validated header and exactly
// h.DataLen() encoded bytes, verifying the CRC trailer.
//
// The encoded section is decoded in two stages: everything before the split
// offset is whole 4-character base64 groups and decodes carry-free straight
// into the payload buffer; the bounded tail decodes into a small scratch
// holding the final payload bytes together with the CRC trailer, since the
// CRC was encoded jointly with the last payload chunk. Decoding therefore
// never needs more destination capacity than PayloadLen and never buffers
// the whole encoded section.
func DecodeFrame(h FrameHeader, encoded []byte, capacity int) (*Frame, error) {
	if h.PayloadLen() > capacity {
		return nil, ErrTooManyBytes
	}
	if len(encoded) < h.DataLen() {
		return nil, ErrTooFewBytes
	}
	if len(encoded) > h.DataLen() {
		return nil, ErrTooManyBytes
	}

	f := &Frame{header: h, data: make([]byte, capacity)}
	if h.DataLen() == 0 {
		// Empty frame: no encoded section, no CRC to check.
		return f, nil
	}

	split := 0
	if h.DataLen() >= 8 {
		// Boundary at a multiple of 4: 4 characters decode into exactly
		// 3 bytes, leaving a tail of at most 7 characters.
		split = (h.DataLen() - 4) &^ 3
	}

	bulkLen, err := wireEncoding.Decode(f.data, encoded[:split])
	if err != nil {
		return nil, ErrInvalidBase64
	}

	var tail [8]byte
	tailLen, err := wireEncoding.Decode(tail[:], encoded[split:])
	if err != nil {
		return nil, ErrInvalidBase64
	}
	if tailLen < crcLen {
		// No room for a CRC trailer: malformed.
		return nil, ErrTooFewBytes
	}

	tailData := tailLen - crcLen
	if bulkLen+tailData != h.PayloadLen() {
		return nil, ErrInvalidLength
	}
	copy(f.data[bulkLen:], tail[:tailData])

	wantCRC := binary.LittleEndian.Uint16(tail[tailData:tailLen])
	if wantCRC != Checksum(f.data[:h.PayloadLen()]) {
		return nil, ErrInvalidCRC
	}
	return f, nil
}

// EncodeBlocks streams the encoded section for payload (base64 of
// payload ‖ crc16 LE) through emit in bounded chunks. Every chunk except
// the last is a whole number of base64 groups; the CRC trailer is appended
// to the final chunk's raw bytes before encoding, so the trailer lands
// inside the last encoded block. A zero-length payload emits nothing.
//
// The scratch buffers are fixed-size and local: no allocation, regardless
// of payload length.
func EncodeBlocks(payload []byte, emit func(block []byte) error) error {
	if len(payload) == 0 {
		return nil
	}
	sum := Checksum(payload)

	var raw [encodeBlockMax]byte
	var enc [(encodeBlockMax*8 + 5) / 6]byte
	for off := 0; off < len(payload); off += encodeBlockSize {
		end := off + encodeBlockSize
		last := end >= len(payload)
		if last {
			end = len(payload)
		}
		n := copy(raw[:], payload[off:end])
		if last {
			binary.LittleEndian.PutUint16(raw[n:n+crcLen], sum)
			n += crcLen
		}
		encLen := wireEncoding.EncodedLen(n)
		wireEncoding.Encode(enc[:encLen], raw[:n])
		if err := emit(enc[:encLen]); err != nil {
			return err
		}
	}
	return nil
}

func (f *Frame) ID() uint16 {
	return f.header.ID()
}

func (f *Frame) Header() FrameHeader {
	return f.header
}

// Bytes is the raw payload: the first PayloadLen bytes of the buffer. The
// rest of the buffer is unspecified padding and never exposed.
func (f *Frame) Bytes() []byte {
	return f.data[:f.header.PayloadLen()]
}

// Capacity is the fixed buffer bound chosen at construction.
func (f *Frame) Capacity() int {
	return len(f.data)
}

// AppendWire appends the complete wire form of f (header plus encoded
// section) to dst. Host-side serialisation; the streaming transmit path
// writes to a queue instead.
func (f *Frame) AppendWire(dst []byte) []byte {
	dst = f.header.AppendBytes(dst)
	_ = EncodeBlocks(f.Bytes(), func(block []byte) error {
		dst = append(dst, block...)
		return nil
	})
	return dst
}
