// Package protocol implements the byte-level encoding of the Minecraft
// protocol: VarInts, length-prefixed strings and the packet framing used
// by the server list ping exchange.
package protocol

import (
	"errors"
	"io"
)

const (
	segmentBits = 0x7F
	continueBit = 0x80

	// A VarInt never spans more than 5 bytes; a continuation bit on the
	// 5th byte would push the value past 32 bits.
	maxVarIntBytes = 5
)

// WriteVarInt encodes value in groups of 7 bits, least significant first,
// setting the high bit of every byte except the last.
func WriteVarInt(w io.Writer, value int32) error {
	uv := uint32(value)
	for {
		b := byte(uv & segmentBits)
		uv >>= 7
		if uv != 0 {
			b |= continueBit
		}
		if _, err := w.Write([]byte{b}); err != nil {
			return err
		}
		if uv == 0 {
			return nil
		}
	}
}

// ReadVarInt decodes a VarInt from r, returning the value and the number
// of bytes consumed. It fails with ErrMalformedVarInt when the 5th byte
// still carries a continuation bit or the stream ends before the value
// terminates.
func ReadVarInt(r io.ByteReader) (int32, int, error) {
	var value int32
	for n := 0; n < maxVarIntBytes; n++ {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				err = ErrMalformedVarInt
			}
			return 0, n, err
		}
		value |= int32(b&segmentBits) << (7 * n)
		if b&continueBit == 0 {
			return value, n + 1, nil
		}
	}
	return 0, maxVarIntBytes, ErrMalformedVarInt
}

// VarIntLen reports how many bytes WriteVarInt produces for value.
func VarIntLen(value int32) int {
	uv := uint32(value)
	n := 1
	for uv >= continueBit {
		uv >>= 7
		n++
	}
	return n
}
