package lookupdest

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

// TestNewLookupRequestValidation covers the construction rules for hash,
// name, request id and session id.
func TestNewLookupRequestValidation(t *testing.T) {
	h := testHash(1)
	sid := sessionPtr(3)

	tests := []struct {
		name    string
		params  LookupParams
		wantErr bool
	}{
		{
			name:    "neither hash nor name",
			params:  LookupParams{RequestID: 1, SessionID: sid},
			wantErr: true,
		},
		{
			name:    "both hash and name",
			params:  LookupParams{Hash: &h, Name: "x.i2p", RequestID: 1, SessionID: sid},
			wantErr: true,
		},
		{
			name:    "request id without session",
			params:  LookupParams{Name: "x.i2p", RequestID: 1},
			wantErr: true,
		},
		{
			name:    "session without request id",
			params:  LookupParams{Hash: &h, RequestID: NoRequestID, SessionID: sid},
			wantErr: true,
		},
		{
			name:    "name without request id",
			params:  LookupParams{Name: "x.i2p", RequestID: NoRequestID},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			params:  LookupParams{Hash: &h, RequestID: NoRequestID, Timeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "request id wider than 32 bits",
			params:  LookupParams{Hash: &h, RequestID: 1<<32 + 5, SessionID: sid},
			wantErr: true,
		},
		{
			name:   "largest request id",
			params: LookupParams{Hash: &h, RequestID: math.MaxUint32, SessionID: sid},
		},
		{
			name:   "untagged hash",
			params: LookupParams{Hash: &h, RequestID: NoRequestID},
		},
		{
			name:   "tagged hash",
			params: LookupParams{Hash: &h, RequestID: 5, SessionID: sid},
		},
		{
			name:   "tagged name",
			params: LookupParams{Name: "x.i2p", RequestID: 0, SessionID: sid},
		},
		{
			name:   "session id none is still a session",
			params: LookupParams{Name: "x.i2p", RequestID: 2, SessionID: sessionPtr(I2CP_SESSION_ID_NONE)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewLookupRequest(tt.params, nil)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("Expected ErrInvalidArgument, got %v", err)
				}
				if req != nil {
					t.Error("Expected nil request on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if (req.Hash() == nil) == (req.Name() == "") {
				t.Errorf("Expected exactly one of hash and name, got hash=%v name=%q", req.Hash(), req.Name())
			}
			if req.HasRequestID() != (req.SessionID() != nil) {
				t.Errorf("Request id presence %v does not match session presence %v", req.HasRequestID(), req.SessionID() != nil)
			}
		})
	}
}

func TestNewLookupRequestDefaultTimeout(t *testing.T) {
	h := testHash(2)
	req, err := NewLookupRequest(LookupParams{Hash: &h, RequestID: NoRequestID}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Timeout() != DEFAULT_LOOKUP_TIMEOUT {
		t.Errorf("Expected timeout %v, got %v", DEFAULT_LOOKUP_TIMEOUT, req.Timeout())
	}

	req, err = NewLookupRequest(LookupParams{Hash: &h, RequestID: NoRequestID, Timeout: 3 * time.Second}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Timeout() != 3*time.Second {
		t.Errorf("Expected timeout 3s, got %v", req.Timeout())
	}
}

func TestNewLookupRequestCopiesInputs(t *testing.T) {
	h := testHash(3)
	scope := testHash(4)
	sid := SessionID(9)
	req, err := NewLookupRequest(LookupParams{Hash: &h, RequestID: 1, SessionID: &sid, FromLocalDest: &scope}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	h[0] ^= 0xff
	scope[0] ^= 0xff
	sid = 10

	if *req.Hash() != testHash(3) {
		t.Error("Request hash changed after caller mutation")
	}
	if *req.FromLocalDest() != testHash(4) {
		t.Error("Request scope changed after caller mutation")
	}
	if *req.SessionID() != 9 {
		t.Errorf("Expected session 9, got %d", *req.SessionID())
	}

	got := req.Hash()
	got[0] ^= 0xff
	if *req.Hash() != testHash(3) {
		t.Error("Mutating the returned hash changed the request")
	}
}

func TestNormalizeB32Name(t *testing.T) {
	h := testHash(5)
	for _, name := range []string{b32Name(h[:]), strings.ToUpper(b32Name(h[:]))} {
		req, err := NewLookupRequest(LookupParams{Name: name, RequestID: 7, SessionID: sessionPtr(1)}, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if req.Kind() != LookupKindHash {
			t.Errorf("Expected kind %s, got %s", LookupKindHash, req.Kind())
		}
		if req.Name() != "" {
			t.Errorf("Expected name to be cleared, got %q", req.Name())
		}
		if req.Hash() == nil || *req.Hash() != h {
			t.Errorf("Expected hash %s, got %v", h, req.Hash())
		}
		if req.RequestID() != 7 {
			t.Errorf("Expected request id 7, got %d", req.RequestID())
		}
	}
}

func TestNormalizeLeavesOrdinaryNames(t *testing.T) {
	names := []string{
		"stats.i2p",
		// long but not a b32 address
		strings.Repeat("a", 60) + ".i2p",
		// b32 suffix but not base32
		strings.Repeat("1", 52) + B32_SUFFIX,
	}
	for _, name := range names {
		req, err := NewLookupRequest(LookupParams{Name: name, RequestID: 1, SessionID: sessionPtr(1)}, nil)
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", name, err)
		}
		if req.Kind() != LookupKindHostname || req.Name() != name || req.Hash() != nil {
			t.Errorf("Expected %q to stay a hostname lookup, got kind=%s name=%q", name, req.Kind(), req.Name())
		}
	}
}

func TestNormalizeShortB32NameIsNotDecoded(t *testing.T) {
	// Decodes to 30 bytes but is under the minimum b32 name length.
	name := b32Name(make([]byte, 30))
	if len(name) >= MIN_B32_NAME_LENGTH {
		t.Fatalf("Test name too long: %d", len(name))
	}
	decoder := &stubBlinding{err: errStubBlinding}
	req, err := NewLookupRequest(LookupParams{Name: name, RequestID: 1, SessionID: sessionPtr(1)}, decoder)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Kind() != LookupKindHostname {
		t.Errorf("Expected hostname lookup, got %s", req.Kind())
	}
	if decoder.calls != 0 {
		t.Errorf("Expected no blinding attempt, got %d", decoder.calls)
	}
}

func TestNormalizeBlindedName(t *testing.T) {
	dest := newTestDestination(t)
	addr, err := EncodeBlindedAddress(dest.SigningPublicKey(), SIG_TYPE_ED25519, 0)
	if err != nil {
		t.Fatalf("Failed to encode blinded address: %v", err)
	}

	decoder := NewBlindingDecoder(WithClock(fixedClock))
	req, err := NewLookupRequest(LookupParams{Name: addr, RequestID: 3, SessionID: sessionPtr(2)}, decoder)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Kind() != LookupKindBlinded {
		t.Fatalf("Expected kind %s, got %s", LookupKindBlinded, req.Kind())
	}
	bd := req.BlindData()
	if bd == nil {
		t.Fatal("Expected blind data")
	}
	if *req.Hash() != bd.BlindedHash {
		t.Errorf("Expected lookup hash to be the blinded hash")
	}
	if *req.Hash() == dest.Hash() {
		t.Error("Blinded lookup must not use the destination hash")
	}
	if req.Name() != "" {
		t.Errorf("Expected name to be cleared, got %q", req.Name())
	}
}

func TestNormalizeBlindingFailureFallsBackToHostname(t *testing.T) {
	// 40 decoded bytes: not a hash, long enough to be tried as blinded.
	name := b32Name(make([]byte, 40))
	decoder := &stubBlinding{err: errStubBlinding}

	req, err := NewLookupRequest(LookupParams{Name: name, RequestID: 1, SessionID: sessionPtr(1)}, decoder)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if decoder.calls != 1 {
		t.Errorf("Expected one blinding attempt, got %d", decoder.calls)
	}
	if req.Kind() != LookupKindHostname || req.Name() != name {
		t.Errorf("Expected fallback to hostname %q, got kind=%s name=%q", name, req.Kind(), req.Name())
	}

	// The real decoder rejects the same input and the request still stands.
	req, err = NewLookupRequest(LookupParams{Name: name, RequestID: 1, SessionID: sessionPtr(1)}, NewBlindingDecoder())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Kind() != LookupKindHostname {
		t.Errorf("Expected hostname lookup, got %s", req.Kind())
	}
}

func TestNormalizeWithoutBlindingDecoder(t *testing.T) {
	dest := newTestDestination(t)
	addr, err := EncodeBlindedAddress(dest.SigningPublicKey(), SIG_TYPE_ED25519, 0)
	if err != nil {
		t.Fatalf("Failed to encode blinded address: %v", err)
	}
	req, err := NewLookupRequest(LookupParams{Name: addr, RequestID: 1, SessionID: sessionPtr(1)}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Kind() != LookupKindHostname {
		t.Errorf("Expected hostname lookup without a decoder, got %s", req.Kind())
	}
}

func TestLookupRequestString(t *testing.T) {
	h := testHash(6)
	req, _ := NewLookupRequest(LookupParams{Hash: &h, RequestID: NoRequestID}, nil)
	if req.String() != h.Base32Address() {
		t.Errorf("Expected %s, got %s", h.Base32Address(), req.String())
	}
	req, _ = NewLookupRequest(LookupParams{Name: "x.i2p", RequestID: 1, SessionID: sessionPtr(1)}, nil)
	if req.String() != "x.i2p" {
		t.Errorf("Expected x.i2p, got %s", req.String())
	}
}
