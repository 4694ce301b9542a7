package transport

import (
	"context"
	"strconv"

	"golang.org/x/sys/unix"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Metadata keys carrying the caller's identity.
const (
	UserKey  = "x-user"
	GroupKey = "x-group"
)

// Identity returns the uid and gid to present to the service.
type Identity func() (uid, gid int)

// ProcessIdentity is the effective uid and gid of this process.
func ProcessIdentity() (int, int) {
	return unix.Geteuid(), unix.Getegid()
}

func (id Identity) outgoing(ctx context.Context) context.Context {
	uid, gid := id()
	return metadata.AppendToOutgoingContext(ctx,
		UserKey, strconv.Itoa(uid),
		GroupKey, strconv.Itoa(gid),
	)
}

// UnaryClientInterceptor attaches the identity to every unary call.
func (id Identity) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{},
		cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(id.outgoing(ctx), method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor attaches the identity to every stream.
func (id Identity) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn,
		method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(id.outgoing(ctx), desc, cc, method, opts...)
	}
}
