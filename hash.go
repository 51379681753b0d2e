package lookupdest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/go-i2p/common/base32"
)

// Hash is the 32-byte SHA-256 identifier of a destination or blinded key.
type Hash [HASH_LENGTH]byte

// SessionID is the 2-byte I2CP session identifier assigned by the router.
type SessionID uint16

// HashFromBytes copies b into a Hash. b must be exactly HASH_LENGTH bytes.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HASH_LENGTH {
		return h, fmt.Errorf("hash must be %d bytes, got %d", HASH_LENGTH, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// HashData returns the SHA-256 of data.
func HashData(data []byte) Hash {
	return Hash(sha256.Sum256(data))
}

// Base32Address returns the "<base32>.b32.i2p" form of the hash, without padding.
func (h Hash) Base32Address() string {
	return strings.TrimRight(base32.EncodeToString(h[:]), "=") + B32_SUFFIX
}

// String returns the b32 address, which is how the hash appears in logs.
func (h Hash) String() string {
	return h.Base32Address()
}

// Hex returns the lowercase hex form of the hash.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// decodeB32Name strips the b32 suffix from a lowercased name and decodes the
// rest. ok is false when the name has no suffix or does not decode to any bytes.
func decodeB32Name(lower string) (decoded []byte, ok bool) {
	if !strings.HasSuffix(lower, B32_SUFFIX) {
		return nil, false
	}
	encoded := strings.TrimSuffix(lower, B32_SUFFIX)
	decoded, err := base32.DecodeString(encoded)
	if err != nil && len(encoded)%8 != 0 {
		// Addresses are published without padding.
		decoded, err = base32.DecodeString(encoded + strings.Repeat("=", 8-len(encoded)%8))
	}
	if err != nil || len(decoded) == 0 {
		return nil, false
	}
	return decoded, true
}

// ParseBase32Address decodes the b32 address of a plain (unblinded) destination.
func ParseBase32Address(addr string) (Hash, error) {
	decoded, ok := decodeB32Name(strings.ToLower(addr))
	if !ok {
		return Hash{}, addressDecodeError(fmt.Sprintf("not a b32 address: %q", addr), nil)
	}
	if len(decoded) != HASH_LENGTH {
		return Hash{}, addressDecodeError(fmt.Sprintf("%q decodes to %d bytes, not a hash", addr, len(decoded)), nil)
	}
	return HashFromBytes(decoded)
}
