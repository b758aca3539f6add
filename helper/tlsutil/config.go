// Package tlsutil builds the strict TLS configurations used on both sides of
// the panel/node link: mutual authentication, TLS 1.2 minimum, and optional
// byte-exact pinning of the node's leaf certificate.
package tlsutil

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"strings"
)

// Config carries the certificate material for one side of the link.
type Config struct {
	// CAFile is a path to a certificate authority bundle used to verify the
	// remote peer.
	CAFile string

	// CertFile and KeyFile are the local certificate and private key.
	CertFile string
	KeyFile  string

	// PinnedCertPEM optionally holds the expected peer leaf certificate in
	// PEM form. When set, the established peer certificate must match it
	// byte-for-byte after PEM normalization.
	PinnedCertPEM []byte

	// ServerName overrides the hostname used for verification on outgoing
	// connections.
	ServerName string
}

// appendCA opens and parses the CA file and adds the certificates to the
// provided pool.
func (c *Config) appendCA(pool *x509.CertPool) error {
	if c.CAFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.CAFile)
	if err != nil {
		return fmt.Errorf("failed to read CA file: %w", err)
	}

	if !pool.AppendCertsFromPEM(data) {
		return fmt.Errorf("failed to parse any CA certificates in %q", c.CAFile)
	}

	return nil
}

// loadKeyPair opens and parses the certificate and key files.
func (c *Config) loadKeyPair() (*tls.Certificate, error) {
	if c.CertFile == "" || c.KeyFile == "" {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load cert/key pair: %w", err)
	}
	return &cert, nil
}

// OutgoingTLSConfig generates a TLS configuration for dialing a node.
// Certificate and hostname verification are always on, the client certificate
// is always presented, and a pinned leaf is enforced when configured.
func (c *Config) OutgoingTLSConfig() (*tls.Config, error) {
	if c.CAFile == "" {
		return nil, fmt.Errorf("outgoing TLS requires a CA certificate")
	}

	tlsConfig := &tls.Config{
		RootCAs:    x509.NewCertPool(),
		MinVersion: tls.VersionTLS12,
		ServerName: c.ServerName,
	}

	if err := c.appendCA(tlsConfig.RootCAs); err != nil {
		return nil, err
	}

	cert, err := c.loadKeyPair()
	if err != nil {
		return nil, err
	}
	if cert != nil {
		tlsConfig.Certificates = []tls.Certificate{*cert}
	}

	if len(c.PinnedCertPEM) > 0 {
		pinned, err := NormalizePEM(c.PinnedCertPEM)
		if err != nil {
			return nil, fmt.Errorf("invalid pinned certificate: %w", err)
		}
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if len(rawCerts) == 0 {
				return fmt.Errorf("no peer certificate presented")
			}
			presented := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: rawCerts[0]})
			if !bytes.Equal(presented, pinned) {
				return fmt.Errorf("peer certificate does not match pinned certificate")
			}
			return nil
		}
	}

	return tlsConfig, nil
}

// IncomingTLSConfig generates a TLS configuration for the node's listener.
// Client certificates are required and verified against the CA bundle.
func (c *Config) IncomingTLSConfig() (*tls.Config, error) {
	tlsConfig := &tls.Config{
		ClientCAs:  x509.NewCertPool(),
		ClientAuth: tls.RequireAndVerifyClientCert,
		MinVersion: tls.VersionTLS12,
	}

	if c.CAFile == "" {
		return nil, fmt.Errorf("incoming TLS requires a CA certificate for client verification")
	}
	if err := c.appendCA(tlsConfig.ClientCAs); err != nil {
		return nil, err
	}

	cert, err := c.loadKeyPair()
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, fmt.Errorf("incoming TLS requires a cert/key pair")
	}
	tlsConfig.Certificates = []tls.Certificate{*cert}

	return tlsConfig, nil
}

// NormalizePEM re-encodes the first CERTIFICATE block of the input so that
// comparisons are insensitive to whitespace, headers and trailing data.
func NormalizePEM(in []byte) ([]byte, error) {
	rest := bytes.TrimSpace(in)
	for len(rest) > 0 {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if strings.EqualFold(block.Type, "CERTIFICATE") {
			return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: block.Bytes}), nil
		}
	}
	return nil, fmt.Errorf("no CERTIFICATE block found")
}
