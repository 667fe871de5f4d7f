package protocol

import "encoding/binary"

// FrameHeader is the fixed 6-byte wire prefix. The length field counts
// base64 characters in the encoded section, not raw payload bytes.
type FrameHeader struct {
	id     uint16
	length uint16
}

// NewFrameHeader builds a header for a raw payload of payloadLen bytes,
// computing the encoded length field.
func NewFrameHeader(id uint16, payloadLen int) (FrameHeader, error) {
	length, err := encodedLength(payloadLen)
	if err != nil {
		return FrameHeader{}, err
	}
	return headerFromRaw(id, length)
}

// ParseFrameHeader decodes exactly the 6 header bytes.
func ParseFrameHeader(b []byte) (FrameHeader, error) {
	if len(b) < HeaderLen {
		return FrameHeader{}, ErrTooFewBytes
	}
	if len(b) > HeaderLen {
		return FrameHeader{}, ErrTooManyBytes
	}
	if b[0] != StartOfFrame || b[5] != EndOfHeader {
		return FrameHeader{}, ErrInvalidHeader
	}
	id := binary.LittleEndian.Uint16(b[1:3])
	length := binary.LittleEndian.Uint16(b[3:5])
	return headerFromRaw(id, length)
}

func headerFromRaw(id, length uint16) (FrameHeader, error) {
	if id > IDMax {
		return FrameHeader{}, ErrInvalidID
	}
	if length > LengthMax {
		return FrameHeader{}, ErrInvalidLength
	}
	return FrameHeader{id: id, length: length}, nil
}

// encodedLength is the base64 character count needed for payloadLen bytes
// plus the CRC trailer: 6-bit packing of payloadLen+2 bytes. A zero-length
// payload has no encoded section at all.
func encodedLength(payloadLen int) (uint16, error) {
	if payloadLen == 0 {
		return 0, nil
	}
	if payloadLen < 0 || payloadLen >= maxInt/8-crcLen {
		return 0, ErrInvalidLength
	}
	chars := ((payloadLen+crcLen)*8 + 5) / 6
	if chars > int(LengthMax) {
		return 0, ErrInvalidLength
	}
	return uint16(chars), nil
}

// MaxDataLen is the largest encoded-section character count whose decoded
// payload still fits a buffer of capacity bytes: the largest dl with
// floor(dl*6/8) <= capacity + 2. Receivers size their staging buffers with
// it so peeking a capacity-accepted frame can never overrun.
func MaxDataLen(capacity int) int {
	if capacity < 0 {
		return 0
	}
	return (8*(capacity+crcLen) + 7) / 6
}

func (h FrameHeader) ID() uint16 {
	return h.id
}

// DataLen is the count of base64 characters in the encoded section.
func (h FrameHeader) DataLen() int {
	return int(h.length)
}

// TotalPacketLen is the complete on-wire frame size, header included.
func (h FrameHeader) TotalPacketLen() int {
	return HeaderLen + h.DataLen()
}

// PayloadLen inverts encodedLength: the raw payload byte count, excluding
// the CRC trailer.
func (h FrameHeader) PayloadLen() int {
	binaryLen := h.DataLen() * 6 / 8
	if binaryLen < crcLen {
		return 0
	}
	return binaryLen - crcLen
}

// AppendBytes appends the 6-byte wire form of h to dst.
func (h FrameHeader) AppendBytes(dst []byte) []byte {
	dst = append(dst, StartOfFrame)
	dst = binary.LittleEndian.AppendUint16(dst, h.id)
	dst = binary.LittleEndian.AppendUint16(dst, h.length)
	return append(dst, EndOfHeader)
}
