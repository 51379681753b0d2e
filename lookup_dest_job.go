package lookupdest

import (
	"github.com/go-i2p/logger"
)

// RouterContext carries the router services a lookup needs. It is passed
// explicitly to every job.
type RouterContext struct {
	Naming   NamingService
	NetDb    NetworkDatabase
	Blinding BlindingDecoder
	Metrics  MetricsCollector
	// Log defaults to the package logger when nil.
	Log *logger.Logger
}

func (rc *RouterContext) getLog() *logger.Logger {
	if rc.Log == nil {
		return log
	}
	return rc.Log
}

// LookupDestJob resolves a hash or hostname for a client and sends the
// matching HostReply or DestReply back over the client's connection.
//
// For hashes and b32 names the destination is returned whenever its
// LeaseSet can be found, even if it uses crypto this router cannot speak.
type LookupDestJob struct {
	req        *LookupRequest
	dispatcher *Dispatcher
	correlator *Correlator
}

// NewLookupDestJob validates and normalizes params and prepares the job.
// It fails with ErrInvalidArgument before anything is scheduled.
func NewLookupDestJob(rc *RouterContext, sender Sender, params LookupParams) (*LookupDestJob, error) {
	lg := rc.getLog()
	req, err := newLookupRequest(params, rc.Blinding, lg)
	if err != nil {
		if rc.Metrics != nil {
			rc.Metrics.IncrementError("invalid_argument")
		}
		return nil, err
	}
	return &LookupDestJob{
		req:        req,
		dispatcher: NewDispatcher(rc.Naming, rc.NetDb, rc.Metrics, lg),
		correlator: NewCorrelator(req, sender, rc.Metrics, lg),
	}, nil
}

// NewHashLookupDestJob prepares an untagged hash lookup with the default
// timeout, as requested by a DestLookupMessage.
func NewHashLookupDestJob(rc *RouterContext, sender Sender, hash Hash, fromLocalDest *Hash) (*LookupDestJob, error) {
	return NewLookupDestJob(rc, sender, LookupParams{
		Hash:          &hash,
		RequestID:     NoRequestID,
		FromLocalDest: fromLocalDest,
	})
}

func (j *LookupDestJob) Name() string {
	if j.req.Name() != "" {
		return "HostName Lookup for Client"
	}
	return "LeaseSet Lookup for Client"
}

// RunJob dispatches the lookup. Hostname lookups reply before RunJob
// returns; hash lookups reply from the network database completion job.
func (j *LookupDestJob) RunJob() {
	j.dispatcher.Dispatch(j.req, j.correlator.Deliver)
}

// Request returns the normalized request.
func (j *LookupDestJob) Request() *LookupRequest {
	return j.req
}
