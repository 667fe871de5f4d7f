package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func validHeaderBytes() []byte {
	// id 0x1337, length 7 (3-byte payload + 2-byte CRC in base64)
	return []byte{0xF1, 0x37, 0x13, 0x07, 0x00, 0xFF}
}

func TestNewFrameHeaderComputesEncodedLength(t *testing.T) {
	h, err := NewFrameHeader(0x1337, 3)
	if err != nil {
		t.Fatalf("new header: %v", err)
	}
	if h.ID() != 0x1337 {
		t.Fatalf("id mismatch: got=%#x want=0x1337", h.ID())
	}
	if h.DataLen() != 7 {
		t.Fatalf("data len mismatch: got=%d want=7", h.DataLen())
	}
	if h.TotalPacketLen() != 13 {
		t.Fatalf("total packet len mismatch: got=%d want=13", h.TotalPacketLen())
	}
	if !bytes.Equal(h.AppendBytes(nil), validHeaderBytes()) {
		t.Fatalf("wire bytes mismatch: got=%x", h.AppendBytes(nil))
	}
}

func TestPayloadLenInvertsEncodedLength(t *testing.T) {
	for payloadLen := 0; payloadLen <= 4096; payloadLen++ {
		h, err := NewFrameHeader(0, payloadLen)
		if err != nil {
			t.Fatalf("payload len %d: %v", payloadLen, err)
		}
		if got := h.PayloadLen(); got != payloadLen {
			t.Fatalf("round trip broken at %d: got=%d", payloadLen, got)
		}
	}
}

func TestNewFrameHeaderZeroPayloadHasNoEncodedSection(t *testing.T) {
	h, err := NewFrameHeader(1, 0)
	if err != nil {
		t.Fatalf("new header: %v", err)
	}
	if h.DataLen() != 0 || h.TotalPacketLen() != HeaderLen {
		t.Fatalf("zero payload frame must be header only: data=%d total=%d", h.DataLen(), h.TotalPacketLen())
	}
	if h.PayloadLen() != 0 {
		t.Fatalf("payload len mismatch: got=%d want=0", h.PayloadLen())
	}
}

func TestNewFrameHeaderRejectsIDOutOfRange(t *testing.T) {
	if _, err := NewFrameHeader(IDMax+1, 3); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestNewFrameHeaderRejectsOversizedPayload(t *testing.T) {
	// Largest valid encoded length is LengthMax characters.
	tooLarge := int(LengthMax)*6/8 - 1
	if _, err := NewFrameHeader(0, tooLarge); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := NewFrameHeader(0, maxInt/8); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength on overflow guard, got %v", err)
	}
}

func TestParseFrameHeaderValid(t *testing.T) {
	h, err := ParseFrameHeader(validHeaderBytes())
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if h.ID() != 0x1337 || h.DataLen() != 7 {
		t.Fatalf("field mismatch: id=%#x data=%d", h.ID(), h.DataLen())
	}
	if h.PayloadLen() != 3 {
		t.Fatalf("payload len mismatch: got=%d want=3", h.PayloadLen())
	}
}

func TestParseFrameHeaderSizeMismatch(t *testing.T) {
	if _, err := ParseFrameHeader(validHeaderBytes()[:5]); !errors.Is(err, ErrTooFewBytes) {
		t.Fatalf("expected ErrTooFewBytes, got %v", err)
	}
	if _, err := ParseFrameHeader(append(validHeaderBytes(), 0x41)); !errors.Is(err, ErrTooManyBytes) {
		t.Fatalf("expected ErrTooManyBytes, got %v", err)
	}
}

func TestParseFrameHeaderBadMarkers(t *testing.T) {
	b := validHeaderBytes()
	b[0] = 0xF2
	if _, err := ParseFrameHeader(b); !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("expected ErrInvalidHeader for start marker, got %v", err)
	}
	b = validHeaderBytes()
	b[5] = 0xF1
	if _, err := ParseFrameHeader(b); !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("expected ErrInvalidHeader for end marker, got %v", err)
	}
}

func TestParseFrameHeaderFieldRange(t *testing.T) {
	b := validHeaderBytes()
	b[2] = 0xF1 // id high byte above IDMax
	if _, err := ParseFrameHeader(b); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	b = validHeaderBytes()
	b[4] = 0xF1 // length high byte above LengthMax
	if _, err := ParseFrameHeader(b); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestMaxDataLenCoversCapacityAcceptedFrames(t *testing.T) {
	for capacity := 0; capacity <= 256; capacity++ {
		limit := MaxDataLen(capacity)
		// Every length that passes the receiver capacity check must fit.
		for dl := 0; dl <= limit+8; dl++ {
			h := FrameHeader{length: uint16(dl)}
			if h.PayloadLen() <= capacity && dl > limit {
				t.Fatalf("capacity %d: data len %d accepted but over staging bound %d", capacity, dl, limit)
			}
		}
	}
}
