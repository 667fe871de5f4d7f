package protocol

import "errors"

var (
	ErrInvalidHeader  = errors.New("protocol: invalid header marker")
	ErrInvalidID      = errors.New("protocol: id out of range")
	ErrInvalidLength  = errors.New("protocol: length out of range")
	ErrInvalidCRC     = errors.New("protocol: crc mismatch")
	ErrInvalidBase64  = errors.New("protocol: malformed base64 data")
	ErrTooFewBytes    = errors.New("protocol: too few bytes")
	ErrTooManyBytes   = errors.New("protocol: too many bytes")
	ErrQueueOverflow  = errors.New("protocol: transmit queue overflow")
	ErrQueueUnderflow = errors.New("protocol: receive queue underflow")
)
