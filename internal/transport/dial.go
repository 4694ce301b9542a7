// Package transport builds the long-lived gRPC channel to a PacioFS service:
// optional TLS from PEM sources, caller identity metadata on every call and
// an optional circuit breaker.
package transport

import (
	"context"

	"google.golang.org/grpc"

	"github.com/objectfs/posixfs/internal/circuit"
	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/pkg/errors"
	"github.com/objectfs/posixfs/pkg/utils"
	"github.com/objectfs/posixfs/pkg/wire"
)

type dialOptions struct {
	loader       *PEMLoader
	identity     Identity
	breaker      *circuit.Breaker
	logger       *utils.StructuredLogger
	interceptors []grpc.UnaryClientInterceptor
	extra        []grpc.DialOption
}

// Option configures Dial.
type Option func(*dialOptions)

// WithPEMLoader sets where PEM sources are read from.
func WithPEMLoader(l *PEMLoader) Option {
	return func(o *dialOptions) { o.loader = l }
}

// WithIdentity overrides the process identity sent as x-user/x-group.
func WithIdentity(id Identity) Option {
	return func(o *dialOptions) { o.identity = id }
}

// WithCircuitBreaker guards unary calls with b.
func WithCircuitBreaker(b *circuit.Breaker) Option {
	return func(o *dialOptions) { o.breaker = b }
}

// WithLogger sets the logger.
func WithLogger(l *utils.StructuredLogger) Option {
	return func(o *dialOptions) { o.logger = l }
}

// WithUnaryInterceptor adds an interceptor that runs before the breaker and
// the identity interceptor.
func WithUnaryInterceptor(i grpc.UnaryClientInterceptor) Option {
	return func(o *dialOptions) { o.interceptors = append(o.interceptors, i) }
}

// WithDialOptions appends raw gRPC dial options, for example a bufconn
// dialer in tests.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *dialOptions) { o.extra = append(o.extra, opts...) }
}

// Dial creates the channel for svc. Credential problems fail here, before
// any call is made. The connection itself is established lazily.
func Dial(ctx context.Context, svc config.ServiceConfig, opts ...Option) (*grpc.ClientConn, error) {
	o := dialOptions{identity: ProcessIdentity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = utils.DefaultLogger()
	}
	if o.loader == nil {
		o.loader = NewPEMLoader(config.S3Config{})
	}
	log := o.logger.WithComponent("transport").WithField("address", svc.Address)

	if svc.Address == "" {
		return nil, errors.NewError(errors.ErrCodeMissingConfig, "service address is required").
			WithComponent("transport").WithOperation("dial")
	}

	bundle, err := loadBundle(ctx, o.loader, svc)
	if err != nil {
		return nil, err
	}
	creds, err := bundle.TransportCredentials()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCredentialsLoad, "invalid TLS material").
			WithComponent("transport").WithOperation("dial")
	}

	interceptors := append([]grpc.UnaryClientInterceptor{}, o.interceptors...)
	if o.breaker != nil {
		interceptors = append(interceptors, circuit.UnaryClientInterceptor(o.breaker))
	}
	interceptors = append(interceptors, o.identity.UnaryClientInterceptor())

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(wire.Codec{})),
		grpc.WithChainUnaryInterceptor(interceptors...),
		grpc.WithChainStreamInterceptor(o.identity.StreamClientInterceptor()),
	}
	dialOpts = append(dialOpts, o.extra...)

	conn, err := grpc.NewClient(svc.Address, dialOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConnectionFailed, "failed to create channel").
			WithComponent("transport").WithOperation("dial").
			WithContext("address", svc.Address)
	}

	log.Info("channel created", map[string]interface{}{
		"tls":             !bundle.Empty(),
		"circuit_breaker": o.breaker != nil,
	})
	return conn, nil
}

func loadBundle(ctx context.Context, loader *PEMLoader, svc config.ServiceConfig) (PEMBundle, error) {
	var bundle PEMBundle
	sources := []struct {
		name   string
		source string
		dst    *[]byte
	}{
		{"cert_chain", svc.CertChain, &bundle.CertChain},
		{"private_key", svc.PrivateKey, &bundle.PrivateKey},
		{"root_certs", svc.RootCerts, &bundle.RootCerts},
	}

	for _, s := range sources {
		data, err := loader.Load(ctx, s.source)
		if err != nil {
			return PEMBundle{}, errors.Wrap(err, errors.ErrCodeCredentialsLoad, "failed to load "+s.name).
				WithComponent("transport").WithOperation("dial").
				WithContext("source", s.source)
		}
		*s.dst = data
	}
	return bundle, nil
}
