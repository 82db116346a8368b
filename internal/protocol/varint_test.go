package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestWriteVarInt(t *testing.T) {
	tests := []struct {
		name     string
		input    int32
		expected []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"single byte max", 127, []byte{0x7F}},
		{"two bytes", 128, []byte{0x80, 0x01}},
		{"255", 255, []byte{0xFF, 0x01}},
		{"300", 300, []byte{0xAC, 0x02}},
		{"three byte max", 2097151, []byte{0xFF, 0xFF, 0x7F}},
		{"int32 max", 2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{"negative one", -1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteVarInt(&buf, tt.input); err != nil {
				t.Fatalf("WriteVarInt(%d) error: %v", tt.input, err)
			}
			if !bytes.Equal(buf.Bytes(), tt.expected) {
				t.Errorf("WriteVarInt(%d) = %#v, want %#v", tt.input, buf.Bytes(), tt.expected)
			}
			if got := VarIntLen(tt.input); got != len(tt.expected) {
				t.Errorf("VarIntLen(%d) = %d, want %d", tt.input, got, len(tt.expected))
			}
		})
	}
}

func TestReadVarInt(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected int32
		wantErr  error
	}{
		{"zero", []byte{0x00}, 0, nil},
		{"two bytes", []byte{0x80, 0x01}, 128, nil},
		{"300", []byte{0xAC, 0x02}, 300, nil},
		{"trailing garbage ignored", []byte{0x7F, 0xFF}, 127, nil},
		{"empty stream", nil, 0, ErrMalformedVarInt},
		{"unterminated", []byte{0x80}, 0, ErrMalformedVarInt},
		{"too long", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, 0, ErrMalformedVarInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := ReadVarInt(bytes.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadVarInt() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadVarInt() error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ReadVarInt() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	values := []int32{0, 1, 127, 128, 255, 256, 300, 25565, 2097151, 2147483647, -1, -2147483648}

	for _, value := range values {
		t.Run(fmt.Sprintf("%d", value), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteVarInt(&buf, value); err != nil {
				t.Fatalf("WriteVarInt(%d) error: %v", value, err)
			}
			encoded := buf.Len()

			got, n, err := ReadVarInt(&buf)
			if err != nil {
				t.Fatalf("ReadVarInt() error: %v", err)
			}
			if got != value {
				t.Errorf("round trip: wrote %d, read %d", value, got)
			}
			if n != encoded {
				t.Errorf("round trip: wrote %d bytes, consumed %d", encoded, n)
			}
		})
	}
}
