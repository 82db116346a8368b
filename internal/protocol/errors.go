package protocol

import "errors"

var (
	// ErrMalformedVarInt is returned when a VarInt does not terminate
	// within 5 bytes or the stream ends mid-value.
	ErrMalformedVarInt = errors.New("malformed varint")

	// ErrTruncatedPacket is returned when the connection closes before the
	// declared packet length has been read.
	ErrTruncatedPacket = errors.New("truncated packet")

	// ErrOversizedPacket is returned when a declared packet length exceeds
	// MaxPacketSize.
	ErrOversizedPacket = errors.New("packet size exceeds maximum allowed")

	// ErrInvalidPacket is returned for frames that cannot carry a packet,
	// such as a zero or negative declared length.
	ErrInvalidPacket = errors.New("invalid packet structure")
)
