package protocol

// Wire layout, fixed regardless of the frame capacity bound:
//
//	byte 0:          StartOfFrame
//	bytes 1-2:       id, little-endian
//	bytes 3-4:       length, little-endian (count of base64 characters)
//	byte 5:          EndOfHeader
//	bytes 6..6+len:  base64 characters encoding (payload ‖ crc16 LE)
//
// A zero-length payload frame is exactly the 6 header bytes: no encoded
// section and no CRC.
const (
	StartOfFrame byte = 0xF1
	EndOfHeader  byte = 0xFF

	// HeaderLen is the fixed wire header size.
	HeaderLen = 6

	// IDMax and LengthMax keep the high nibble of the top byte clear, so a
	// valid field byte can never alias the start-of-frame marker.
	IDMax     uint16 = 0xF0FF
	LengthMax uint16 = 0xF0FF

	// crcLen is the little-endian CRC-16 trailer inside the encoded section.
	crcLen = 2

	// encodeBlockSize is the streaming encode chunk. A multiple of 3, so
	// every chunk except the last maps to whole 4-character base64 groups
	// with no carry between chunks.
	encodeBlockSize = 30

	// encodeBlockMax bounds one encode scratch: a full chunk plus the CRC
	// trailer appended to the final chunk.
	encodeBlockMax = encodeBlockSize + crcLen

	maxInt = int(^uint(0) >> 1)
)
