// Blinded Address Decoding
//
// A blinded ("b33") address names an encrypted LeaseSet without revealing
// the destination. The router cannot use it as a lookup key directly: it
// must recover the destination's signing key from the address, blind it
// with the current day's factor, and hash the result. That hash is what the
// network database stores the encrypted LeaseSet under.
//
// Encoded layout before base32:
//
//	[flags:1][sigtype:1][blinded sigtype:1][signing public key:32]
//
// The first three bytes are XORed with the little-endian CRC-32 of the key.
//
// The blinding seed is HKDF-SHA256(key, salt=lookup secret, "i2pblinding1")
// fed to the go-i2p kdf daily factor. Hashes derived here match LeaseSets
// published with the go-i2p kdf scheme; they have not been checked against
// Java router test vectors.
//
// Reference: I2P Proposal 149 - B32 for Encrypted LS2
package lookupdest

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"strings"
	"time"

	"github.com/go-i2p/common/base32"
	cryptoed25519 "github.com/go-i2p/crypto/ed25519"
	"github.com/go-i2p/crypto/kdf"
	"golang.org/x/crypto/hkdf"
)

const blindingSeedInfo = "i2pblinding1"

// BlindData is the result of decoding a blinded address.
type BlindData struct {
	SigType          uint16
	BlindedSigType   uint16
	PublicKey        [32]byte
	BlindedPublicKey [32]byte
	// BlindedHash is the network database key of the encrypted LeaseSet.
	BlindedHash    Hash
	SecretRequired bool
	PerClientAuth  bool
	// Date is the UTC day the blinding factor was derived for (YYYY-MM-DD).
	Date string
}

// BlindingDecoder derives a lookup hash from the decoded bytes of a blinded address.
type BlindingDecoder interface {
	DecodeBlinded(encoded []byte) (*BlindData, error)
}

// Ed25519BlindingDecoder decodes blinded addresses for Ed25519 and RedDSA
// destinations. It performs no I/O and is safe for concurrent use.
type Ed25519BlindingDecoder struct {
	secret []byte
	now    func() time.Time
}

// BlindingOption configures an Ed25519BlindingDecoder.
type BlindingOption func(*Ed25519BlindingDecoder)

// WithLookupSecret mixes a lookup password into the blinding factor, for
// addresses published with the secret-required flag.
func WithLookupSecret(secret string) BlindingOption {
	return func(d *Ed25519BlindingDecoder) {
		d.secret = []byte(secret)
	}
}

// WithClock overrides the clock used to pick the blinding date.
func WithClock(now func() time.Time) BlindingOption {
	return func(d *Ed25519BlindingDecoder) {
		d.now = now
	}
}

// NewBlindingDecoder creates a decoder using today's UTC date.
func NewBlindingDecoder(opts ...BlindingOption) *Ed25519BlindingDecoder {
	d := &Ed25519BlindingDecoder{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DecodeBlinded unscrambles the header, validates the flags and sig types,
// and derives the blinded hash. All failures wrap ErrAddressDecode.
func (d *Ed25519BlindingDecoder) DecodeBlinded(encoded []byte) (*BlindData, error) {
	if len(encoded) < MIN_BLINDED_ADDRESS_LENGTH {
		return nil, addressDecodeError(fmt.Sprintf("blinded address too short: %d bytes", len(encoded)), nil)
	}

	b := make([]byte, len(encoded))
	copy(b, encoded)
	check := crc32.ChecksumIEEE(b[3:])
	b[0] ^= byte(check)
	b[1] ^= byte(check >> 8)
	b[2] ^= byte(check >> 16)

	flags := b[0]
	if flags&BLINDED_FLAG_RESERVED_MASK != 0 {
		return nil, addressDecodeError(fmt.Sprintf("unknown blinded address flags 0x%02x", flags), nil)
	}
	if flags&BLINDED_FLAG_TWO_BYTE_SIGTYPES != 0 {
		return nil, addressDecodeError("two-byte sig types unsupported", nil)
	}

	bd := &BlindData{
		SigType:        uint16(b[1]),
		BlindedSigType: uint16(b[2]),
		SecretRequired: flags&BLINDED_FLAG_SECRET != 0,
		PerClientAuth:  flags&BLINDED_FLAG_PER_CLIENT_AUTH != 0,
	}
	if bd.SigType != SIG_TYPE_ED25519 && bd.SigType != SIG_TYPE_REDDSA_ED25519 {
		return nil, addressDecodeError(fmt.Sprintf("unsupported sig type %d", bd.SigType), nil)
	}
	if bd.BlindedSigType != SIG_TYPE_REDDSA_ED25519 {
		return nil, addressDecodeError(fmt.Sprintf("unsupported blinded sig type %d", bd.BlindedSigType), nil)
	}
	if len(b) != 3+len(bd.PublicKey) {
		return nil, addressDecodeError(fmt.Sprintf("blinded address length %d does not match sig type %d", len(b), bd.SigType), nil)
	}
	copy(bd.PublicKey[:], b[3:])

	if err := d.blind(bd); err != nil {
		return nil, addressDecodeError("blinding failed", err)
	}
	return bd, nil
}

func (d *Ed25519BlindingDecoder) blind(bd *BlindData) error {
	var seed [32]byte
	reader := hkdf.New(sha256.New, bd.PublicKey[:], d.secret, []byte(blindingSeedInfo))
	if _, err := io.ReadFull(reader, seed[:]); err != nil {
		return fmt.Errorf("HKDF derivation failed: %w", err)
	}

	bd.Date = kdf.FormatDateForBlinding(d.now().UTC())
	alpha, err := kdf.DeriveBlindingFactor(seed[:], bd.Date)
	if err != nil {
		return fmt.Errorf("failed to derive blinding factor: %w", err)
	}

	bd.BlindedPublicKey, err = cryptoed25519.BlindPublicKey(bd.PublicKey, alpha)
	if err != nil {
		return fmt.Errorf("failed to blind public key: %w", err)
	}

	keyData := make([]byte, 2+len(bd.BlindedPublicKey))
	binary.BigEndian.PutUint16(keyData, bd.BlindedSigType)
	copy(keyData[2:], bd.BlindedPublicKey[:])
	bd.BlindedHash = HashData(keyData)
	return nil
}

// EncodeBlindedAddress returns the ".b32.i2p" blinded address for an Ed25519
// signing key. flags may combine BLINDED_FLAG_SECRET and BLINDED_FLAG_PER_CLIENT_AUTH.
func EncodeBlindedAddress(publicKey [32]byte, sigType uint16, flags uint8) (string, error) {
	if sigType != SIG_TYPE_ED25519 && sigType != SIG_TYPE_REDDSA_ED25519 {
		return "", fmt.Errorf("unsupported sig type %d", sigType)
	}
	if flags&(BLINDED_FLAG_RESERVED_MASK|BLINDED_FLAG_TWO_BYTE_SIGTYPES) != 0 {
		return "", fmt.Errorf("unsupported blinded address flags 0x%02x", flags)
	}

	b := make([]byte, 3+len(publicKey))
	b[0] = flags
	b[1] = byte(sigType)
	b[2] = byte(SIG_TYPE_REDDSA_ED25519)
	copy(b[3:], publicKey[:])

	check := crc32.ChecksumIEEE(b[3:])
	b[0] ^= byte(check)
	b[1] ^= byte(check >> 8)
	b[2] ^= byte(check >> 16)
	return strings.TrimRight(base32.EncodeToString(b), "=") + B32_SUFFIX, nil
}
