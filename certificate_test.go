package lookupdest

import (
	"bytes"
	"errors"
	"testing"
)

func TestKeyCertificateWireFormat(t *testing.T) {
	cert, err := NewKeyCertificate()
	if err != nil {
		t.Fatalf("NewKeyCertificate failed: %v", err)
	}
	stream := NewStream(nil)
	if err := WriteCertificateToMessage(cert, stream); err != nil {
		t.Fatalf("WriteCertificateToMessage failed: %v", err)
	}
	want := []byte{CERTIFICATE_KEY, 0, 4, 0, byte(SIG_TYPE_ED25519), 0, byte(ENC_TYPE_X25519)}
	if !bytes.Equal(stream.Bytes(), want) {
		t.Errorf("Expected % x, got % x", want, stream.Bytes())
	}

	parsed, err := ReadCertificateFromMessage(stream)
	if err != nil {
		t.Fatalf("ReadCertificateFromMessage failed: %v", err)
	}
	if !bytes.Equal(parsed.Bytes(), want) {
		t.Errorf("Certificate changed in round trip: % x", parsed.Bytes())
	}
}

func TestNilCertificateIsNull(t *testing.T) {
	stream := NewStream(nil)
	if err := WriteCertificateToMessage(nil, stream); err != nil {
		t.Fatalf("WriteCertificateToMessage failed: %v", err)
	}
	if !bytes.Equal(stream.Bytes(), []byte{CERTIFICATE_NULL, 0, 0}) {
		t.Errorf("Unexpected NULL certificate % x", stream.Bytes())
	}
}

func TestReadCertificateMalformed(t *testing.T) {
	_, err := ReadCertificateFromMessage(NewStream([]byte{CERTIFICATE_KEY, 0, 0}))
	if !errors.Is(err, ErrMessageParsing) {
		t.Errorf("Expected ErrMessageParsing for empty KEY certificate, got %v", err)
	}
	if _, err := ReadCertificateFromMessage(NewStream([]byte{CERTIFICATE_KEY, 0, 4, 0})); err == nil {
		t.Error("Expected error for truncated certificate")
	}
}
