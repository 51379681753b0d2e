package lookupdest

import (
	"time"

	"github.com/go-i2p/logger"
)

// NamingService resolves hostnames synchronously, typically from the
// router's address books. It returns nil when the name is unknown.
type NamingService interface {
	Lookup(name string) *Destination
}

// NetworkDatabase is the router's view of the distributed database.
type NetworkDatabase interface {
	// LookupDestination searches the network for the LeaseSet stored under
	// hash and schedules onComplete exactly once, whether the search
	// succeeded or timed out. fromLocalDest selects the client tunnels to
	// search through; nil means exploratory tunnels.
	LookupDestination(hash Hash, onComplete Job, timeout time.Duration, fromLocalDest *Hash)

	// LookupDestinationLocally returns the destination for hash if it is
	// already stored locally. It never touches the network.
	LookupDestinationLocally(hash Hash) *Destination
}

// OutcomeStatus tags a LookupOutcome.
type OutcomeStatus uint8

const (
	OutcomeFailed OutcomeStatus = iota
	OutcomeResolved
)

func (s OutcomeStatus) String() string {
	if s == OutcomeResolved {
		return "resolved"
	}
	return "failed"
}

// LookupOutcome is the single result of a dispatched lookup.
type LookupOutcome struct {
	Status      OutcomeStatus
	Destination *Destination
}

// Resolved returns a successful outcome. A nil destination is a failure.
func Resolved(dest *Destination) LookupOutcome {
	if dest == nil {
		return Failed()
	}
	return LookupOutcome{Status: OutcomeResolved, Destination: dest}
}

// Failed returns a not-found outcome.
func Failed() LookupOutcome {
	return LookupOutcome{Status: OutcomeFailed}
}

// IsResolved reports whether the outcome carries a destination.
func (o LookupOutcome) IsResolved() bool {
	return o.Status == OutcomeResolved && o.Destination != nil
}

// Dispatcher executes normalized lookups. Hostnames are resolved inline
// against the naming service with no timeout; hashes go to the network
// database and complete through a scheduled job.
type Dispatcher struct {
	naming  NamingService
	netDb   NetworkDatabase
	metrics MetricsCollector
	log     *logger.Logger
}

// NewDispatcher creates a dispatcher over the router's naming service and
// network database. metrics may be nil.
func NewDispatcher(naming NamingService, netDb NetworkDatabase, metrics MetricsCollector, lg *logger.Logger) *Dispatcher {
	if lg == nil {
		lg = log
	}
	return &Dispatcher{naming: naming, netDb: netDb, metrics: metrics, log: lg}
}

// Dispatch resolves req and calls deliver exactly once with the outcome.
// For hostnames deliver runs before Dispatch returns. For hashes Dispatch
// returns immediately and deliver runs later from the completion job, which
// may be on another goroutine.
func (d *Dispatcher) Dispatch(req *LookupRequest, deliver func(LookupOutcome)) {
	if d.metrics != nil {
		d.metrics.IncrementLookup(string(req.Kind()))
	}
	start := time.Now()

	if name := req.Name(); name != "" {
		// Inline; the request timeout does not apply to the naming service.
		dest := d.naming.Lookup(name)
		if dest != nil {
			d.log.Debugf("Found name lookup %s to %s", name, dest.Base32())
		} else {
			d.log.Debugf("Failed name lookup %s", name)
		}
		d.finish(req, Resolved(dest), start, deliver)
		return
	}

	hash := *req.Hash()
	done := NewJob("LeaseSet Lookup Reply to Client", func() {
		// The answer always comes from local state, whatever the search reported.
		dest := d.netDb.LookupDestinationLocally(hash)
		if dest != nil {
			d.log.Debugf("Found hash lookup %s to %s", hash, dest.Base32())
		} else {
			d.log.Debugf("Failed hash lookup %s", hash)
		}
		d.finish(req, Resolved(dest), start, deliver)
	})
	d.netDb.LookupDestination(hash, done, req.Timeout(), req.FromLocalDest())
}

func (d *Dispatcher) finish(req *LookupRequest, outcome LookupOutcome, start time.Time, deliver func(LookupOutcome)) {
	if d.metrics != nil {
		d.metrics.RecordLookupLatency(string(req.Kind()), time.Since(start))
		d.metrics.IncrementOutcome(string(req.Kind()), outcome.IsResolved())
		if !outcome.IsResolved() {
			d.metrics.IncrementError("not_found")
		}
	}
	deliver(outcome)
}
