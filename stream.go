package lookupdest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Stream provides I2CP message serialization for the lookup messages.
// It wraps bytes.Buffer and adds big-endian integer and I2CP string helpers.
type Stream struct {
	*bytes.Buffer
}

// NewStream creates a new Stream from a byte slice.
func NewStream(buf []byte) *Stream {
	return &Stream{bytes.NewBuffer(buf)}
}

// ReadN reads exactly n bytes or fails with io.ErrUnexpectedEOF.
func (s *Stream) ReadN(n int) ([]byte, error) {
	bts := make([]byte, n)
	if _, err := io.ReadFull(s, bts); err != nil {
		return nil, err
	}
	return bts, nil
}

// ReadUint16 reads a big-endian uint16 from the stream.
// This is used for I2CP session IDs and length prefixes.
func (s *Stream) ReadUint16() (uint16, error) {
	bts, err := s.ReadN(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(bts), nil
}

// ReadUint32 reads a big-endian uint32 from the stream.
// This is used for I2CP request IDs, timeouts and message sizes.
func (s *Stream) ReadUint32() (uint32, error) {
	bts, err := s.ReadN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(bts), nil
}

// WriteUint16 writes a big-endian uint16 to the stream.
func (s *Stream) WriteUint16(i uint16) error {
	bts := make([]byte, 2)
	binary.BigEndian.PutUint16(bts, i)
	_, err := s.Write(bts)
	return err
}

// WriteUint32 writes a big-endian uint32 to the stream.
func (s *Stream) WriteUint32(i uint32) error {
	bts := make([]byte, 4)
	binary.BigEndian.PutUint32(bts, i)
	_, err := s.Write(bts)
	return err
}

// WriteLenPrefixedString writes a string prefixed by its length as a single byte.
// Format: [length:1 byte][string data]
func (stream *Stream) WriteLenPrefixedString(s string) error {
	if len(s) > 255 {
		return fmt.Errorf("string too long: %d bytes (max 255)", len(s))
	}
	if err := stream.WriteByte(uint8(len(s))); err != nil {
		return err
	}
	_, err := stream.WriteString(s)
	return err
}

// ReadLenPrefixedString reads an I2CP String: [length:1 byte][string data].
func (stream *Stream) ReadLenPrefixedString() (string, error) {
	n, err := stream.ReadByte()
	if err != nil {
		return "", err
	}
	bts, err := stream.ReadN(int(n))
	if err != nil {
		return "", err
	}
	return string(bts), nil
}
