package lookupdest

import (
	"fmt"
)

// Message is an I2CP message the router sends to a client.
type Message interface {
	Type() uint8
	WriteToMessage(stream *Stream) error
}

// HostReplyMessage answers a HostLookupMessage (type 39, since 0.9.11).
//
// Format: [sessionId:2][requestId:4][result:1][Destination if result == 0]
type HostReplyMessage struct {
	SessionID   SessionID
	RequestID   uint32
	Result      uint8
	Destination *Destination
}

// NewHostReplySuccess builds a successful tagged reply.
func NewHostReplySuccess(sessionID SessionID, requestID uint32, dest *Destination) *HostReplyMessage {
	return &HostReplyMessage{SessionID: sessionID, RequestID: requestID, Result: HOST_REPLY_SUCCESS, Destination: dest}
}

// NewHostReplyFailure builds a failed tagged reply with the given result code.
func NewHostReplyFailure(sessionID SessionID, requestID uint32, result uint8) *HostReplyMessage {
	return &HostReplyMessage{SessionID: sessionID, RequestID: requestID, Result: result}
}

func (m *HostReplyMessage) Type() uint8 { return I2CP_MSG_HOST_REPLY }

func (m *HostReplyMessage) WriteToMessage(stream *Stream) error {
	if m.Result == HOST_REPLY_SUCCESS && m.Destination == nil {
		return fmt.Errorf("host reply success without destination")
	}
	if err := stream.WriteUint16(uint16(m.SessionID)); err != nil {
		return err
	}
	if err := stream.WriteUint32(m.RequestID); err != nil {
		return err
	}
	if err := stream.WriteByte(m.Result); err != nil {
		return err
	}
	if m.Result == HOST_REPLY_SUCCESS {
		return m.Destination.WriteToMessage(stream)
	}
	return nil
}

// ReadHostReplyMessage parses a HostReplyMessage payload.
func ReadHostReplyMessage(stream *Stream) (*HostReplyMessage, error) {
	m := &HostReplyMessage{}

	sessionID, err := stream.ReadUint16()
	if err != nil {
		return nil, NewMessageError(I2CP_MSG_HOST_REPLY, "reading session id", err)
	}
	m.SessionID = SessionID(sessionID)
	if m.RequestID, err = stream.ReadUint32(); err != nil {
		return nil, NewMessageError(I2CP_MSG_HOST_REPLY, "reading request id", err)
	}
	if m.Result, err = stream.ReadByte(); err != nil {
		return nil, NewMessageError(I2CP_MSG_HOST_REPLY, "reading result code", err)
	}
	if m.Result == HOST_REPLY_SUCCESS {
		if m.Destination, err = NewDestinationFromMessage(stream); err != nil {
			return nil, NewMessageError(I2CP_MSG_HOST_REPLY, "reading destination", err)
		}
	}
	return m, nil
}

// DestReplyMessage answers a DestLookupMessage (type 35). On success it
// carries the Destination; on failure only the 32-byte hash that was asked
// for, so the client can match the reply to its request.
type DestReplyMessage struct {
	Destination *Destination
	Hash        *Hash
}

func (m *DestReplyMessage) Type() uint8 { return I2CP_MSG_DEST_REPLY }

func (m *DestReplyMessage) WriteToMessage(stream *Stream) error {
	if m.Destination != nil {
		return m.Destination.WriteToMessage(stream)
	}
	if m.Hash == nil {
		return fmt.Errorf("dest reply without destination or hash")
	}
	_, err := stream.Write(m.Hash[:])
	return err
}

// ReadDestReplyMessage parses a DestReplyMessage payload. A payload of
// exactly HASH_LENGTH bytes is a failure reply.
func ReadDestReplyMessage(stream *Stream) (*DestReplyMessage, error) {
	if stream.Len() == HASH_LENGTH {
		h, err := HashFromBytes(stream.Next(HASH_LENGTH))
		if err != nil {
			return nil, NewMessageError(I2CP_MSG_DEST_REPLY, "reading hash", err)
		}
		return &DestReplyMessage{Hash: &h}, nil
	}
	dest, err := NewDestinationFromMessage(stream)
	if err != nil {
		return nil, NewMessageError(I2CP_MSG_DEST_REPLY, "reading destination", err)
	}
	return &DestReplyMessage{Destination: dest}, nil
}
