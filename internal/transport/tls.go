package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"

	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// PEMBundle is the TLS material for one channel. Empty fields are unset.
type PEMBundle struct {
	CertChain  []byte
	PrivateKey []byte
	RootCerts  []byte
}

// Empty reports whether no material is present.
func (b PEMBundle) Empty() bool {
	return len(b.CertChain) == 0 && len(b.PrivateKey) == 0 && len(b.RootCerts) == 0
}

// TLSConfig builds a client TLS configuration. Without roots the system
// pool is used. The chain and key must be given together.
func (b PEMBundle) TLSConfig() (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if len(b.RootCerts) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(b.RootCerts) {
			return nil, fmt.Errorf("root certificates contain no valid PEM certificate")
		}
		cfg.RootCAs = pool
	}

	switch {
	case len(b.CertChain) > 0 && len(b.PrivateKey) > 0:
		cert, err := tls.X509KeyPair(b.CertChain, b.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("invalid client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	case len(b.CertChain) > 0 || len(b.PrivateKey) > 0:
		return nil, fmt.Errorf("certificate chain and private key must be given together")
	}

	return cfg, nil
}

// TransportCredentials returns TLS credentials when any material is present
// and insecure credentials otherwise.
func (b PEMBundle) TransportCredentials() (credentials.TransportCredentials, error) {
	if b.Empty() {
		return insecure.NewCredentials(), nil
	}
	cfg, err := b.TLSConfig()
	if err != nil {
		return nil, err
	}
	return credentials.NewTLS(cfg), nil
}
