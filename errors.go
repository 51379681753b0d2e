package lookupdest

import (
	"errors"
	"fmt"
)

// Lookup Error Types
//
// Only ErrInvalidArgument is a failure of request handling itself. The other
// conditions are expected outcomes: decode failures fall back to hostname
// resolution, misses become failure replies, and send failures are dropped.
var (
	// ErrInvalidArgument indicates a lookup request violated its construction
	// invariants (neither or both of hash and name, or a request id without
	// a session id). It is never reported to the remote peer.
	ErrInvalidArgument = errors.New("i2cp: invalid lookup argument")

	// ErrAddressDecode indicates a base32 or blinded address could not be
	// decoded. The normalizer recovers by treating the input as a hostname.
	ErrAddressDecode = errors.New("i2cp: address decode failed")

	// ErrNotFound indicates a hostname or hash did not resolve.
	// HostReplyMessage result code 1 (Failure)
	ErrNotFound = errors.New("i2cp: destination not found")

	// ErrTransportSend indicates a reply could not be written to the client.
	ErrTransportSend = errors.New("i2cp: reply send failed")

	// ErrMessageParsing indicates a failure to parse an incoming I2CP message.
	ErrMessageParsing = errors.New("i2cp: message parsing failed")

	// ErrUnsupportedLookupType indicates a HostLookup type this router does not serve.
	// HostReplyMessage result code 7 (since 0.9.66)
	ErrUnsupportedLookupType = errors.New("i2cp: lookup type unsupported")

	ErrQueueFull   = errors.New("i2cp: job queue full")
	ErrQueueClosed = errors.New("i2cp: job queue closed")
)

// MessageError represents an error related to I2CP message processing.
// It includes the message type and additional context about what failed.
type MessageError struct {
	MessageType uint8  // I2CP message type constant
	Operation   string // What operation failed (e.g., "parsing", "sending")
	Err         error  // Underlying error
}

func (e *MessageError) Error() string {
	return fmt.Sprintf("i2cp: message type %d %s failed: %v", e.MessageType, e.Operation, e.Err)
}

func (e *MessageError) Unwrap() error {
	return e.Err
}

// NewMessageError creates a MessageError with the given parameters.
//
// Example:
//
//	if err := parseHostLookup(stream); err != nil {
//	    return NewMessageError(I2CP_MSG_HOST_LOOKUP, "parsing", err)
//	}
func NewMessageError(messageType uint8, operation string, err error) error {
	return &MessageError{
		MessageType: messageType,
		Operation:   operation,
		Err:         err,
	}
}

// invalidArgument wraps ErrInvalidArgument with the violated condition.
func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// addressDecodeError wraps ErrAddressDecode with the underlying cause.
func addressDecodeError(reason string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", reason, ErrAddressDecode)
	}
	return fmt.Errorf("%s: %w: %v", reason, ErrAddressDecode, err)
}
