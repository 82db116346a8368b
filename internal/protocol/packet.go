package protocol

import (
	"bytes"
	"fmt"
	"io"
)

// MaxPacketSize caps the declared length of an inbound frame. Status
// responses fit comfortably under 2 MiB; anything larger is treated as a
// hostile or broken peer rather than allocated.
const MaxPacketSize = 2 * 1024 * 1024

// Packet is one framed protocol unit: a VarInt ID followed by its payload.
type Packet struct {
	ID      int32
	Payload []byte
}

// WritePacket frames pk as [length][id][payload] and writes it to w in a
// single Write call, so a packet is never interleaved with other writers
// on the same connection.
func WritePacket(w io.Writer, pk Packet) error {
	var body bytes.Buffer
	body.Grow(VarIntLen(pk.ID) + len(pk.Payload))
	if err := WriteVarInt(&body, pk.ID); err != nil {
		return err
	}
	body.Write(pk.Payload)

	var frame bytes.Buffer
	frame.Grow(maxVarIntBytes + body.Len())
	if err := WriteVarInt(&frame, int32(body.Len())); err != nil {
		return err
	}
	body.WriteTo(&frame)

	_, err := w.Write(frame.Bytes())
	return err
}

// ReadPacket reads one frame from r: the length VarInt, then exactly that
// many bytes, of which the leading VarInt is the packet ID and the rest is
// the payload.
func ReadPacket(r Reader) (Packet, error) {
	length, _, err := ReadVarInt(r)
	if err != nil {
		return Packet{}, err
	}
	if length <= 0 {
		return Packet{}, fmt.Errorf("%w: declared length %d", ErrInvalidPacket, length)
	}
	if length > MaxPacketSize {
		return Packet{}, fmt.Errorf("%w: declared length %d", ErrOversizedPacket, length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return Packet{}, fmt.Errorf("%w: %w", ErrTruncatedPacket, err)
	}

	br := bytes.NewReader(data)
	id, n, err := ReadVarInt(br)
	if err != nil {
		return Packet{}, err
	}
	return Packet{ID: id, Payload: data[n:]}, nil
}
