package client

import (
	"errors"

	"github.com/objectfs/posixfs/pkg/wire"
)

var (
	// ErrShutdown is returned for writes dispatched after Close.
	ErrShutdown = errors.New("completion queue shut down")

	// ErrNoEvent means the queue was shut down before the completion for a
	// dispatched write arrived.
	ErrNoEvent = errors.New("no completion event")

	// ErrUnexpectedTag means a completion carried a tag that no pending
	// write owns.
	ErrUnexpectedTag = errors.New("completion for unknown tag")

	// ErrResponseTooLarge means the service reported more bytes than were
	// requested.
	ErrResponseTooLarge = errors.New("response larger than requested size")
)

// TransportError is a failure to complete an RPC round trip. It never
// carries a remote errno and always reports as wire.EIO.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, wire.EIO) hold for every transport failure.
func (e *TransportError) Is(target error) bool {
	errno, ok := target.(wire.Errno)
	return ok && errno == wire.EIO
}

// ErrnoOf reduces err to the errno reported to the filesystem host. A nil
// error is ESUCCESS; anything that is not a remote errno is EIO.
func ErrnoOf(err error) wire.Errno {
	if err == nil {
		return wire.ESUCCESS
	}
	var te *TransportError
	if errors.As(err, &te) {
		return wire.EIO
	}
	var errno wire.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return wire.EIO
}

// IsTransportFailure reports whether err came from the transport rather
// than the remote filesystem.
func IsTransportFailure(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func remote(errno wire.Errno) error {
	if errno == wire.ESUCCESS {
		return nil
	}
	return errno
}
