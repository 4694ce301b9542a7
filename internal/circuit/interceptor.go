package circuit

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsEndpointFailure reports whether a gRPC error says the endpoint itself is
// unhealthy. Errors the server deliberately returned for a request do not
// count.
func IsEndpointFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	}
	return false
}

// UnaryClientInterceptor guards every unary call with b. Rejected calls fail
// with codes.Unavailable.
func UnaryClientInterceptor(b *Breaker) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{},
		cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := b.Execute(ctx, func(ctx context.Context) error {
			return invoker(ctx, method, req, reply, cc, opts...)
		})
		if errors.Is(err, ErrOpenState) || errors.Is(err, ErrTooManyRequests) {
			return status.Errorf(codes.Unavailable, "%s %s: %v", b.Name(), method, err)
		}
		return err
	}
}

// GRPCConfig is Config with IsSuccessful set for gRPC use.
func GRPCConfig(failureThreshold uint32, config Config) Config {
	config.FailureThreshold = failureThreshold
	config.IsSuccessful = func(err error) bool { return !IsEndpointFailure(err) }
	return config
}
