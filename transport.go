package lookupdest

import (
	"fmt"
	"io"
	"sync"
)

// Sender delivers a reply message to the client connection.
type Sender interface {
	SendMessage(msg Message) error
}

// StreamSender writes framed I2CP messages to a client connection.
//
// Frame format: [length:4][type:1][payload:length]
type StreamSender struct {
	w       io.Writer
	lock    sync.Mutex
	metrics MetricsCollector
}

// NewStreamSender creates a sender over w. metrics may be nil.
func NewStreamSender(w io.Writer, metrics MetricsCollector) *StreamSender {
	return &StreamSender{w: w, metrics: metrics}
}

// SendMessage serializes msg and writes it as a single frame. Concurrent
// calls never interleave frames.
func (s *StreamSender) SendMessage(msg Message) error {
	payload := NewStream(make([]byte, 0, 512))
	if err := msg.WriteToMessage(payload); err != nil {
		return NewMessageError(msg.Type(), "encoding", err)
	}
	if payload.Len() > I2CP_MESSAGE_SIZE {
		return NewMessageError(msg.Type(), "encoding", fmt.Errorf("payload of %d bytes exceeds %d", payload.Len(), I2CP_MESSAGE_SIZE))
	}

	send := NewStream(make([]byte, 0, payload.Len()+4+1))
	if err := send.WriteUint32(uint32(payload.Len())); err != nil {
		return err
	}
	if err := send.WriteByte(msg.Type()); err != nil {
		return err
	}
	if _, err := send.Write(payload.Bytes()); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	n, err := s.w.Write(send.Bytes())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransportSend, err)
	}
	if s.metrics != nil {
		s.metrics.AddBytesSent(uint64(n))
	}
	return nil
}

// ReadFrame reads one framed message and returns its type and payload.
func ReadFrame(r io.Reader) (uint8, *Stream, error) {
	header := make([]byte, 5)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, err
	}
	hs := NewStream(header)
	length, _ := hs.ReadUint32()
	typ, _ := hs.ReadByte()
	if length > I2CP_MESSAGE_SIZE {
		return typ, nil, NewMessageError(typ, "framing", fmt.Errorf("length %d exceeds %d", length, I2CP_MESSAGE_SIZE))
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return typ, nil, err
	}
	return typ, NewStream(payload), nil
}
