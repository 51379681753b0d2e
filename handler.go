package lookupdest

import (
	"errors"
	"fmt"
	"time"
)

// ScopeResolver maps a client session to the local destination whose
// tunnels its lookups should use. It returns nil for exploratory tunnels.
type ScopeResolver func(SessionID) *Hash

// LookupHandler is the router-side entry point for client lookup messages.
// It decodes HostLookupMessage and DestLookupMessage payloads, builds a
// LookupDestJob and schedules it.
type LookupHandler struct {
	rc      *RouterContext
	queue   *JobQueue
	timeout time.Duration
	scopes  ScopeResolver
}

// NewLookupHandler creates a handler scheduling onto queue. timeout is
// used for HostLookups that ask for zero and for DestLookups; zero selects
// DEFAULT_LOOKUP_TIMEOUT. scopes may be nil.
func NewLookupHandler(rc *RouterContext, queue *JobQueue, timeout time.Duration, scopes ScopeResolver) *LookupHandler {
	if timeout <= 0 {
		timeout = DEFAULT_LOOKUP_TIMEOUT
	}
	return &LookupHandler{rc: rc, queue: queue, timeout: timeout, scopes: scopes}
}

// HandleMessage processes one client message. Replies are written to sender.
// Malformed messages and invalid requests return an error and are never
// answered; lookup failures are answered with a failure reply.
func (h *LookupHandler) HandleMessage(msgType uint8, stream *Stream, sender Sender) error {
	if h.rc.Metrics != nil {
		h.rc.Metrics.IncrementMessageReceived(msgType)
	}
	var err error
	switch msgType {
	case I2CP_MSG_HOST_LOOKUP:
		err = h.onMsgHostLookup(stream, sender)
	case I2CP_MSG_DEST_LOOKUP:
		err = h.onMsgDestLookup(stream, sender)
	default:
		err = NewMessageError(msgType, "dispatch", fmt.Errorf("not a lookup message: %w", ErrMessageParsing))
	}
	if err != nil {
		h.rc.getLog().Debugf("Rejected %s: %v", MessageTypeName(msgType), err)
	}
	if err != nil && h.rc.Metrics != nil {
		switch {
		case errors.Is(err, ErrInvalidArgument):
			// Counted by NewLookupDestJob.
		case errors.Is(err, ErrQueueFull), errors.Is(err, ErrQueueClosed):
			// Counted by the queue.
		default:
			h.rc.Metrics.IncrementError("parse")
		}
	}
	return err
}

// onMsgHostLookup handles HostLookupMessage (type 38, since 0.9.11).
//
// Format: [sessionId:2][requestId:4][timeout:4][type:1][hash:32 | hostname:String]
func (h *LookupHandler) onMsgHostLookup(stream *Stream, sender Sender) error {
	sessionID, err := stream.ReadUint16()
	if err != nil {
		return NewMessageError(I2CP_MSG_HOST_LOOKUP, "reading session id", err)
	}
	requestID, err := stream.ReadUint32()
	if err != nil {
		return NewMessageError(I2CP_MSG_HOST_LOOKUP, "reading request id", err)
	}
	timeoutMs, err := stream.ReadUint32()
	if err != nil {
		return NewMessageError(I2CP_MSG_HOST_LOOKUP, "reading timeout", err)
	}
	lookupType, err := stream.ReadByte()
	if err != nil {
		return NewMessageError(I2CP_MSG_HOST_LOOKUP, "reading lookup type", err)
	}

	sid := SessionID(sessionID)
	params := LookupParams{
		RequestID: int64(requestID),
		SessionID: &sid,
		Timeout:   time.Duration(timeoutMs) * time.Millisecond,
	}
	if params.Timeout == 0 {
		params.Timeout = h.timeout
	}
	if h.scopes != nil {
		params.FromLocalDest = h.scopes(sid)
	}

	switch lookupType {
	case HOST_LOOKUP_TYPE_HASH:
		raw, err := stream.ReadN(HASH_LENGTH)
		if err != nil {
			return NewMessageError(I2CP_MSG_HOST_LOOKUP, "reading hash", err)
		}
		hash, _ := HashFromBytes(raw)
		params.Hash = &hash
	case HOST_LOOKUP_TYPE_HOSTNAME:
		name, err := stream.ReadLenPrefixedString()
		if err != nil {
			return NewMessageError(I2CP_MSG_HOST_LOOKUP, "reading hostname", err)
		}
		params.Name = name
	default:
		h.rc.getLog().Warnf("HostLookup type %d unsupported for request %d", lookupType, requestID)
		reply := NewHostReplyFailure(sid, requestID, HOST_REPLY_LOOKUP_TYPE_UNSUPPORTED)
		if err := sender.SendMessage(reply); err != nil {
			h.rc.getLog().Debugf("Failed to send unsupported-type reply: %v", err)
		}
		return NewMessageError(I2CP_MSG_HOST_LOOKUP, "dispatch", fmt.Errorf("type %d: %w", lookupType, ErrUnsupportedLookupType))
	}

	return h.schedule(params, sender)
}

// onMsgDestLookup handles the legacy DestLookupMessage (type 34).
//
// Format: [hash:32]
func (h *LookupHandler) onMsgDestLookup(stream *Stream, sender Sender) error {
	raw, err := stream.ReadN(HASH_LENGTH)
	if err != nil {
		return NewMessageError(I2CP_MSG_DEST_LOOKUP, "reading hash", err)
	}
	hash, _ := HashFromBytes(raw)
	return h.schedule(LookupParams{
		Hash:      &hash,
		RequestID: NoRequestID,
		Timeout:   h.timeout,
	}, sender)
}

func (h *LookupHandler) schedule(params LookupParams, sender Sender) error {
	job, err := NewLookupDestJob(h.rc, sender, params)
	if err != nil {
		return err
	}
	if err := h.queue.Add(job); err != nil {
		h.rc.getLog().Warnf("Dropping %s for %s: %v", job.Name(), job.Request(), err)
		return err
	}
	return nil
}
