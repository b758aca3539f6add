package tlsutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shoenig/test/must"
)

// writeSelfSigned writes a throwaway self-signed certificate and key to dir
// and returns their paths along with the certificate PEM.
func writeSelfSigned(t *testing.T, dir string) (certFile, keyFile string, certPEM []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	must.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "node.test"},
		DNSNames:              []string{"node.test"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	must.NoError(t, err)

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyDER, err := x509.MarshalECPrivateKey(key)
	must.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})

	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	must.NoError(t, os.WriteFile(certFile, certPEM, 0o600))
	must.NoError(t, os.WriteFile(keyFile, keyPEM, 0o600))
	return certFile, keyFile, certPEM
}

func TestConfig_OutgoingTLSConfig(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile, certPEM := writeSelfSigned(t, dir)

	c := &Config{
		CAFile:     certFile,
		CertFile:   certFile,
		KeyFile:    keyFile,
		ServerName: "node.test",
	}

	tlsConfig, err := c.OutgoingTLSConfig()
	must.NoError(t, err)
	must.Eq(t, uint16(tls.VersionTLS12), tlsConfig.MinVersion)
	must.False(t, tlsConfig.InsecureSkipVerify)
	must.Eq(t, "node.test", tlsConfig.ServerName)
	must.Len(t, 1, tlsConfig.Certificates)
	must.Nil(t, tlsConfig.VerifyPeerCertificate)

	c.PinnedCertPEM = certPEM
	tlsConfig, err = c.OutgoingTLSConfig()
	must.NoError(t, err)
	must.NotNil(t, tlsConfig.VerifyPeerCertificate)
}

func TestConfig_OutgoingTLSConfig_MissingCA(t *testing.T) {
	c := &Config{}
	_, err := c.OutgoingTLSConfig()
	must.ErrorContains(t, err, "CA certificate")
}

func TestConfig_IncomingTLSConfig(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile, _ := writeSelfSigned(t, dir)

	c := &Config{
		CAFile:   certFile,
		CertFile: certFile,
		KeyFile:  keyFile,
	}

	tlsConfig, err := c.IncomingTLSConfig()
	must.NoError(t, err)
	must.Eq(t, tls.RequireAndVerifyClientCert, tlsConfig.ClientAuth)
	must.Eq(t, uint16(tls.VersionTLS12), tlsConfig.MinVersion)

	// A listener without a key pair is refused.
	c.CertFile = ""
	_, err = c.IncomingTLSConfig()
	must.ErrorContains(t, err, "cert/key pair")
}

func TestConfig_PinVerification(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile, certPEM := writeSelfSigned(t, dir)

	c := &Config{
		CAFile:        certFile,
		CertFile:      certFile,
		KeyFile:       keyFile,
		PinnedCertPEM: append([]byte("# pinned for node 1\n"), certPEM...),
	}
	tlsConfig, err := c.OutgoingTLSConfig()
	must.NoError(t, err)

	block, _ := pem.Decode(certPEM)
	must.NoError(t, tlsConfig.VerifyPeerCertificate([][]byte{block.Bytes}, nil))

	// A different certificate must be rejected.
	otherDir := t.TempDir()
	_, _, otherPEM := writeSelfSigned(t, otherDir)
	otherBlock, _ := pem.Decode(otherPEM)
	err = tlsConfig.VerifyPeerCertificate([][]byte{otherBlock.Bytes}, nil)
	must.ErrorContains(t, err, "pinned")

	// No certificate at all must be rejected.
	err = tlsConfig.VerifyPeerCertificate(nil, nil)
	must.Error(t, err)
}

func TestNormalizePEM(t *testing.T) {
	dir := t.TempDir()
	_, _, certPEM := writeSelfSigned(t, dir)

	clean, err := NormalizePEM(certPEM)
	must.NoError(t, err)

	// Leading comments and trailing whitespace do not affect the result.
	dirty := append([]byte("subject=/CN=node.test\n\n"), certPEM...)
	dirty = append(dirty, '\n', '\n')
	clean2, err := NormalizePEM(dirty)
	must.NoError(t, err)
	must.Eq(t, clean, clean2)

	_, err = NormalizePEM([]byte("not a pem"))
	must.Error(t, err)
}
