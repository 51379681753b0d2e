package lookupdest

import (
	"math"
	"strings"
	"time"

	"github.com/go-i2p/logger"
)

// LookupKind classifies how a request will be resolved.
type LookupKind string

const (
	LookupKindHostname LookupKind = "hostname"
	LookupKindHash     LookupKind = "hash"
	LookupKindBlinded  LookupKind = "blinded"
)

// LookupParams are the raw inputs of a destination lookup as received from
// the client. Exactly one of Hash and Name must be set.
type LookupParams struct {
	Hash *Hash
	Name string

	// RequestID is NoRequestID when the reply is not tagged. It must be
	// present for hostname lookups.
	RequestID int64
	// SessionID is required exactly when RequestID is present.
	SessionID *SessionID

	// Timeout bounds the network database lookup. Zero selects
	// DEFAULT_LOOKUP_TIMEOUT.
	Timeout time.Duration

	// FromLocalDest selects the client tunnels the lookup is sent through.
	// Nil uses exploratory tunnels.
	FromLocalDest *Hash
}

// LookupRequest is a validated and normalized lookup. It is immutable.
type LookupRequest struct {
	hash          *Hash
	name          string
	requestID     int64
	sessionID     *SessionID
	timeout       time.Duration
	fromLocalDest *Hash
	kind          LookupKind
	blindData     *BlindData
}

// NewLookupRequest validates params and converts b32 and blinded hostnames
// into hash lookups. It fails with ErrInvalidArgument when:
//   - neither or both of Hash and Name are set
//   - RequestID does not fit the 32-bit wire field
//   - RequestID is present without SessionID, or SessionID without RequestID
//   - Name is set without a RequestID
//   - Timeout is negative
//
// blinding may be nil, in which case blinded addresses are looked up as
// hostnames and will normally fail.
func NewLookupRequest(params LookupParams, blinding BlindingDecoder) (*LookupRequest, error) {
	return newLookupRequest(params, blinding, log)
}

func newLookupRequest(params LookupParams, blinding BlindingDecoder, lg *logger.Logger) (*LookupRequest, error) {
	if err := validateLookupParams(params); err != nil {
		lg.Warnf("bad lookup args: %v", err)
		return nil, err
	}

	// Copies, so the caller cannot mutate the request afterwards.
	req := &LookupRequest{
		hash:          copyHash(params.Hash),
		name:          params.Name,
		requestID:     params.RequestID,
		timeout:       params.Timeout,
		fromLocalDest: copyHash(params.FromLocalDest),
		kind:          LookupKindHash,
	}
	if params.SessionID != nil {
		sid := *params.SessionID
		req.sessionID = &sid
	}
	if req.requestID < 0 {
		req.requestID = NoRequestID
	}
	if req.timeout == 0 {
		req.timeout = DEFAULT_LOOKUP_TIMEOUT
	}
	if req.name != "" {
		req.kind = LookupKindHostname
		req.normalizeName(blinding, lg)
	}
	return req, nil
}

func validateLookupParams(p LookupParams) error {
	switch {
	case p.Hash == nil && p.Name == "":
		return invalidArgument("one of hash or name is required")
	case p.Hash != nil && p.Name != "":
		return invalidArgument("hash and name are mutually exclusive")
	case p.RequestID > math.MaxUint32:
		return invalidArgument("request id %d does not fit in 32 bits", p.RequestID)
	case p.RequestID >= 0 && p.SessionID == nil:
		return invalidArgument("request id %d requires a session id", p.RequestID)
	case p.RequestID < 0 && p.SessionID != nil:
		return invalidArgument("session id %d given without a request id", *p.SessionID)
	case p.RequestID < 0 && p.Name != "":
		return invalidArgument("hostname lookup of %q requires a request id", p.Name)
	case p.Timeout < 0:
		return invalidArgument("negative timeout %v", p.Timeout)
	}
	return nil
}

// normalizeName converts a b32 name to a hash lookup. Anything that does
// not decode cleanly is left as a hostname.
func (req *LookupRequest) normalizeName(blinding BlindingDecoder, lg *logger.Logger) {
	if len(req.name) < MIN_B32_NAME_LENGTH {
		return
	}
	decoded, ok := decodeB32Name(strings.ToLower(req.name))
	if !ok {
		return
	}

	switch {
	case len(decoded) == HASH_LENGTH:
		h, _ := HashFromBytes(decoded)
		lg.Debugf("Converting name lookup %s to %s", req.name, h)
		req.hash = &h
		req.name = ""
		req.kind = LookupKindHash
	case len(decoded) >= MIN_BLINDED_ADDRESS_LENGTH:
		if blinding == nil {
			lg.Debugf("No blinding decoder, looking up %s as a hostname", req.name)
			return
		}
		bd, err := blinding.DecodeBlinded(decoded)
		if err != nil {
			// Looked up as a hostname, which will normally fail.
			lg.Debugf("Failed blinding conversion of %s: %v", req.name, err)
			return
		}
		h := bd.BlindedHash
		lg.Debugf("Converting name lookup %s to blinded %s", req.name, h)
		req.hash = &h
		req.name = ""
		req.kind = LookupKindBlinded
		req.blindData = bd
	}
}

func copyHash(h *Hash) *Hash {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

// Hash returns the lookup hash, or nil for a hostname lookup.
func (req *LookupRequest) Hash() *Hash { return copyHash(req.hash) }

// Name returns the hostname, or "" for a hash lookup.
func (req *LookupRequest) Name() string { return req.name }

// RequestID returns the correlation id, or NoRequestID.
func (req *LookupRequest) RequestID() int64 { return req.requestID }

// HasRequestID reports whether the reply must be tagged.
func (req *LookupRequest) HasRequestID() bool { return req.requestID >= 0 }

// SessionID returns the session token, or nil when there is no request id.
func (req *LookupRequest) SessionID() *SessionID {
	if req.sessionID == nil {
		return nil
	}
	s := *req.sessionID
	return &s
}

func (req *LookupRequest) Timeout() time.Duration { return req.timeout }

func (req *LookupRequest) FromLocalDest() *Hash { return copyHash(req.fromLocalDest) }

// Kind reports whether the request resolves by hostname, hash or blinded hash.
func (req *LookupRequest) Kind() LookupKind { return req.kind }

// BlindData returns the decoded blinded address, or nil.
func (req *LookupRequest) BlindData() *BlindData { return req.blindData }

// String identifies the request in logs.
func (req *LookupRequest) String() string {
	if req.name != "" {
		return req.name
	}
	return req.hash.String()
}
