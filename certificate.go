package lookupdest

import (
	"fmt"

	"github.com/go-i2p/common/certificate"
)

// Certificate is a type alias for certificate.Certificate from the common package.
type Certificate = certificate.Certificate

// NewKeyCertificate builds the KEY certificate for an Ed25519 signing key
// and an X25519 encryption key.
func NewKeyCertificate() (*Certificate, error) {
	payload := []byte{
		byte(SIG_TYPE_ED25519 >> 8), byte(SIG_TYPE_ED25519),
		byte(ENC_TYPE_X25519 >> 8), byte(ENC_TYPE_X25519),
	}
	cert, err := certificate.NewCertificateWithType(CERTIFICATE_KEY, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create KEY certificate: %w", err)
	}
	return cert, nil
}

// ReadCertificateFromMessage reads a Certificate from an I2CP message stream.
// Certificate format: [type:1][length:2][data:length]
func ReadCertificateFromMessage(stream *Stream) (*Certificate, error) {
	certType, err := stream.ReadByte()
	if err != nil {
		return nil, err
	}
	length, err := stream.ReadUint16()
	if err != nil {
		return nil, err
	}
	if certType != CERTIFICATE_NULL && length == 0 {
		return nil, fmt.Errorf("non-null certificate with zero length: %w", ErrMessageParsing)
	}

	certBytes := make([]byte, 3, 3+int(length))
	certBytes[0] = certType
	certBytes[1] = byte(length >> 8)
	certBytes[2] = byte(length)
	if length > 0 {
		data, err := stream.ReadN(int(length))
		if err != nil {
			return nil, err
		}
		certBytes = append(certBytes, data...)
	}

	cert, _, err := certificate.ReadCertificate(certBytes)
	if err != nil {
		return nil, err
	}
	return cert, nil
}

// WriteCertificateToMessage writes a Certificate to an I2CP message stream.
// A nil certificate is written as the NULL certificate.
func WriteCertificateToMessage(cert *Certificate, stream *Stream) error {
	if cert == nil {
		if err := stream.WriteByte(CERTIFICATE_NULL); err != nil {
			return err
		}
		return stream.WriteUint16(0)
	}
	_, err := stream.Write(cert.Bytes())
	return err
}
