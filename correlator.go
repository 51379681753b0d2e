package lookupdest

import (
	"sync/atomic"

	"github.com/go-i2p/logger"
)

// replyTarget decides the shape of the reply. It is chosen once, when the
// correlator is built.
type replyTarget interface {
	success(dest *Destination) Message
	failure() Message
}

// taggedTarget answers HostLookups: both outcomes echo the session and request ids.
type taggedTarget struct {
	sessionID SessionID
	requestID uint32
}

func (t taggedTarget) success(dest *Destination) Message {
	return NewHostReplySuccess(t.sessionID, t.requestID, dest)
}

func (t taggedTarget) failure() Message {
	return NewHostReplyFailure(t.sessionID, t.requestID, HOST_REPLY_FAILURE)
}

// untaggedTarget answers DestLookups: a failure echoes the hash instead.
type untaggedTarget struct {
	hash Hash
}

func (t untaggedTarget) success(dest *Destination) Message {
	return &DestReplyMessage{Destination: dest}
}

func (t untaggedTarget) failure() Message {
	h := t.hash
	return &DestReplyMessage{Hash: &h}
}

// Correlator turns the outcome of one request into exactly one reply and
// hands it to the sender. Send errors are counted and logged but never
// returned: delivery to the client is at most once.
//
// Deliver may be called from any goroutine.
type Correlator struct {
	target  replyTarget
	sender  Sender
	metrics MetricsCollector
	log     *logger.Logger
	subject string
	sent    atomic.Bool
}

// NewCorrelator builds the correlator for req.
func NewCorrelator(req *LookupRequest, sender Sender, metrics MetricsCollector, lg *logger.Logger) *Correlator {
	if lg == nil {
		lg = log
	}
	c := &Correlator{sender: sender, metrics: metrics, log: lg, subject: req.String()}
	if req.HasRequestID() {
		c.target = taggedTarget{sessionID: *req.SessionID(), requestID: uint32(req.RequestID())}
	} else {
		// Untagged requests are always hash lookups.
		c.target = untaggedTarget{hash: *req.Hash()}
	}
	return c
}

// Deliver sends the reply for outcome. Only the first call has any effect.
func (c *Correlator) Deliver(outcome LookupOutcome) {
	if !c.sent.CompareAndSwap(false, true) {
		c.log.Warnf("Dropping duplicate %s outcome for %s", outcome.Status, c.subject)
		return
	}

	var msg Message
	if outcome.IsResolved() {
		msg = c.target.success(outcome.Destination)
	} else {
		msg = c.target.failure()
	}

	if err := c.sender.SendMessage(msg); err != nil {
		c.log.Debugf("Failed to send %s for %s: %v", MessageTypeName(msg.Type()), c.subject, err)
		if c.metrics != nil {
			c.metrics.IncrementError("transport_send")
		}
		return
	}
	if c.metrics != nil {
		c.metrics.IncrementMessageSent(msg.Type())
	}
}

// Delivered reports whether Deliver has been called.
func (c *Correlator) Delivered() bool {
	return c.sent.Load()
}
