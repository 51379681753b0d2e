package lookupdest

import (
	"crypto/rand"
	"fmt"

	"github.com/go-i2p/common/base64"
	cryptoed25519 "github.com/go-i2p/crypto/ed25519"
	"go.step.sm/crypto/x25519"
)

// Destination is the resolved, routable record returned by a lookup.
// The lookup core treats it as opaque; only its wire form and hash are used.
//
// Wire format: encryption key (256 bytes), signing key (128 bytes, Ed25519
// right-aligned), certificate.
type Destination struct {
	pubKey     [PUB_KEY_SIZE]byte
	signingKey [SIGNING_KEY_SIZE]byte
	cert       *Certificate
	hash       Hash
	b64        string
}

// NewDestination generates a destination with a fresh Ed25519 signing key
// and X25519 encryption key under a KEY certificate.
func NewDestination() (*Destination, error) {
	dest := &Destination{}

	cert, err := NewKeyCertificate()
	if err != nil {
		return nil, err
	}
	dest.cert = cert

	signingPub, _, err := cryptoed25519.GenerateEd25519KeyPair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate Ed25519 signing key: %w", err)
	}
	copy(dest.signingKey[SIGNING_KEY_SIZE-32:], *signingPub)

	encPriv := make([]byte, 32)
	if _, err := rand.Read(encPriv); err != nil {
		return nil, fmt.Errorf("failed to generate X25519 private key: %w", err)
	}
	encPub, ok := x25519.PrivateKey(encPriv).Public().(x25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("failed to derive X25519 public key")
	}
	copy(dest.pubKey[:32], encPub)

	if err := dest.finalize(); err != nil {
		return nil, err
	}
	return dest, nil
}

// NewDestinationFromMessage reads a destination from an I2CP message stream.
func NewDestinationFromMessage(stream *Stream) (*Destination, error) {
	dest := &Destination{}

	pubKey, err := stream.ReadN(PUB_KEY_SIZE)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}
	copy(dest.pubKey[:], pubKey)

	signingKey, err := stream.ReadN(SIGNING_KEY_SIZE)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}
	copy(dest.signingKey[:], signingKey)

	dest.cert, err = ReadCertificateFromMessage(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}

	if err := dest.finalize(); err != nil {
		return nil, err
	}
	return dest, nil
}

// NewDestinationFromBase64 parses the I2P base64 form of a destination.
func NewDestinationFromBase64(b64 string) (*Destination, error) {
	raw, err := base64.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 destination: %w", err)
	}
	return NewDestinationFromMessage(NewStream(raw))
}

// WriteToMessage writes the destination in I2CP wire format.
func (dest *Destination) WriteToMessage(stream *Stream) error {
	if _, err := stream.Write(dest.pubKey[:]); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	if _, err := stream.Write(dest.signingKey[:]); err != nil {
		return fmt.Errorf("failed to write signing public key: %w", err)
	}
	if err := WriteCertificateToMessage(dest.cert, stream); err != nil {
		return fmt.Errorf("failed to write certificate: %w", err)
	}
	return nil
}

func (dest *Destination) finalize() error {
	stream := NewStream(make([]byte, 0, DEST_SIZE))
	if err := dest.WriteToMessage(stream); err != nil {
		return err
	}
	dest.hash = HashData(stream.Bytes())
	dest.b64 = base64.EncodeToString(stream.Bytes())
	return nil
}

// Hash returns the SHA-256 of the destination's wire form.
func (dest *Destination) Hash() Hash {
	return dest.hash
}

// Base32 returns the b32 address of the destination (e.g. "abc....xyz.b32.i2p").
func (dest *Destination) Base32() string {
	return dest.hash.Base32Address()
}

// Base64 returns the I2P base64 form of the destination.
func (dest *Destination) Base64() string {
	return dest.b64
}

// SigningPublicKey returns the Ed25519 signing key, right-aligned in the
// 128-byte signing key field.
func (dest *Destination) SigningPublicKey() [32]byte {
	var key [32]byte
	copy(key[:], dest.signingKey[SIGNING_KEY_SIZE-32:])
	return key
}

// Equal reports whether both destinations have the same wire form.
func (dest *Destination) Equal(other *Destination) bool {
	if dest == nil || other == nil {
		return dest == other
	}
	return dest.hash == other.hash
}
