package lookupdest

// mocks_test.go - Shared test helpers, fakes, and stubs used across multiple test files.

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-i2p/common/base32"
)

// fakeNaming is a NamingService backed by a map.
type fakeNaming struct {
	mu      sync.Mutex
	entries map[string]*Destination
	queries []string
}

func newFakeNaming() *fakeNaming {
	return &fakeNaming{entries: make(map[string]*Destination)}
}

func (n *fakeNaming) Lookup(name string) *Destination {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queries = append(n.queries, name)
	return n.entries[name]
}

func (n *fakeNaming) Queries() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.queries...)
}

// netDbLookup records one LookupDestination call.
type netDbLookup struct {
	hash          Hash
	onComplete    Job
	timeout       time.Duration
	fromLocalDest *Hash
}

// fakeNetDb records searches. Tests complete them explicitly with complete(),
// optionally storing a destination first to simulate a successful search.
type fakeNetDb struct {
	mu      sync.Mutex
	local   map[Hash]*Destination
	lookups []netDbLookup
}

func newFakeNetDb() *fakeNetDb {
	return &fakeNetDb{local: make(map[Hash]*Destination)}
}

func (db *fakeNetDb) LookupDestination(hash Hash, onComplete Job, timeout time.Duration, fromLocalDest *Hash) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.lookups = append(db.lookups, netDbLookup{hash: hash, onComplete: onComplete, timeout: timeout, fromLocalDest: fromLocalDest})
}

func (db *fakeNetDb) LookupDestinationLocally(hash Hash) *Destination {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.local[hash]
}

func (db *fakeNetDb) store(hash Hash, dest *Destination) {
	db.mu.Lock()
	db.local[hash] = dest
	db.mu.Unlock()
}

func (db *fakeNetDb) pending() []netDbLookup {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]netDbLookup(nil), db.lookups...)
}

// complete runs the completion job of the i-th search, as the network
// database does on success or timeout.
func (db *fakeNetDb) complete(t *testing.T, i int) {
	t.Helper()
	lookups := db.pending()
	if i >= len(lookups) {
		t.Fatalf("no pending network lookup %d (have %d)", i, len(lookups))
	}
	lookups[i].onComplete.RunJob()
}

// recordingSender collects sent messages, optionally failing every send.
type recordingSender struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (s *recordingSender) SendMessage(msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return s.err
}

func (s *recordingSender) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.msgs...)
}

// stubBlinding returns a fixed result for every input.
type stubBlinding struct {
	data  *BlindData
	err   error
	calls int
}

func (b *stubBlinding) DecodeBlinded(encoded []byte) (*BlindData, error) {
	b.calls++
	return b.data, b.err
}

var errStubBlinding = errors.New("stub blinding failure")

var fixedBlindingDate = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedBlindingDate }

func newTestDestination(t *testing.T) *Destination {
	t.Helper()
	dest, err := NewDestination()
	if err != nil {
		t.Fatalf("Failed to create test destination: %v", err)
	}
	return dest
}

// b32Name encodes raw bytes as a b32 hostname, without padding.
func b32Name(raw []byte) string {
	return strings.TrimRight(base32.EncodeToString(raw), "=") + B32_SUFFIX
}

func testHash(seed byte) Hash {
	var h Hash
	for i := range h {
		h[i] = seed + byte(i)
	}
	return h
}

func sessionPtr(id SessionID) *SessionID { return &id }

func newTestRouterContext() (*RouterContext, *fakeNaming, *fakeNetDb, *InMemoryMetrics) {
	naming := newFakeNaming()
	netDb := newFakeNetDb()
	metrics := NewInMemoryMetrics()
	rc := &RouterContext{
		Naming:   naming,
		NetDb:    netDb,
		Blinding: NewBlindingDecoder(WithClock(fixedClock)),
		Metrics:  metrics,
	}
	return rc, naming, netDb, metrics
}
