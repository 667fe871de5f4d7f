// Package protocol owns the wire contract for framed packets.
//
// Ownership boundary:
// - frame header layout, length arithmetic, and field validation
// - capacity-bound frame construction and decoding
// - base64 payload codec with the CRC trailer folded into the tail
// - CRC-16/USB checksum over raw payload bytes
package protocol
