package protocol

import "github.com/sigurn/crc16"

var crcTable = crc16.MakeTable(crc16.CRC16_USB)

// Checksum computes the CRC-16/USB over raw payload bytes. The checksum is
// always calculated before base64 encoding and is independent of how the
// encoding is chunked.
func Checksum(payload []byte) uint16 {
	return crc16.Checksum(payload, crcTable)
}
