package posix

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/objectfs/posixfs/pkg/wire"
)

// nativeErrnos is indexed by wire.Errno.
var nativeErrnos = [...]syscall.Errno{
	wire.ESUCCESS:        0,
	wire.EPERM:           unix.EPERM,
	wire.ENOENT:          unix.ENOENT,
	wire.ESRCH:           unix.ESRCH,
	wire.EINTR:           unix.EINTR,
	wire.EIO:             unix.EIO,
	wire.ENXIO:           unix.ENXIO,
	wire.E2BIG:           unix.E2BIG,
	wire.ENOEXEC:         unix.ENOEXEC,
	wire.EBADF:           unix.EBADF,
	wire.ECHILD:          unix.ECHILD,
	wire.EDEADLK:         unix.EDEADLK,
	wire.ENOMEM:          unix.ENOMEM,
	wire.EACCES:          unix.EACCES,
	wire.EFAULT:          unix.EFAULT,
	wire.EBUSY:           unix.EBUSY,
	wire.EEXIST:          unix.EEXIST,
	wire.EXDEV:           unix.EXDEV,
	wire.ENODEV:          unix.ENODEV,
	wire.ENOTDIR:         unix.ENOTDIR,
	wire.EISDIR:          unix.EISDIR,
	wire.EINVAL:          unix.EINVAL,
	wire.ENFILE:          unix.ENFILE,
	wire.EMFILE:          unix.EMFILE,
	wire.ENOTTY:          unix.ENOTTY,
	wire.ETXTBSY:         unix.ETXTBSY,
	wire.EFBIG:           unix.EFBIG,
	wire.ENOSPC:          unix.ENOSPC,
	wire.ESPIPE:          unix.ESPIPE,
	wire.EROFS:           unix.EROFS,
	wire.EMLINK:          unix.EMLINK,
	wire.EPIPE:           unix.EPIPE,
	wire.EDOM:            unix.EDOM,
	wire.ERANGE:          unix.ERANGE,
	wire.EAGAIN:          unix.EAGAIN,
	wire.EINPROGRESS:     unix.EINPROGRESS,
	wire.EALREADY:        unix.EALREADY,
	wire.ENOTSOCK:        unix.ENOTSOCK,
	wire.EDESTADDRREQ:    unix.EDESTADDRREQ,
	wire.EMSGSIZE:        unix.EMSGSIZE,
	wire.EPROTOTYPE:      unix.EPROTOTYPE,
	wire.ENOPROTOOPT:     unix.ENOPROTOOPT,
	wire.EPROTONOSUPPORT: unix.EPROTONOSUPPORT,
	wire.ENOTSUP:         unix.ENOTSUP,
	wire.EAFNOSUPPORT:    unix.EAFNOSUPPORT,
	wire.EADDRINUSE:      unix.EADDRINUSE,
	wire.EADDRNOTAVAIL:   unix.EADDRNOTAVAIL,
	wire.ENETDOWN:        unix.ENETDOWN,
	wire.ENETUNREACH:     unix.ENETUNREACH,
	wire.ENETRESET:       unix.ENETRESET,
	wire.ECONNABORTED:    unix.ECONNABORTED,
	wire.ECONNRESET:      unix.ECONNRESET,
	wire.ENOBUFS:         unix.ENOBUFS,
	wire.EISCONN:         unix.EISCONN,
	wire.ENOTCONN:        unix.ENOTCONN,
	wire.ETIMEDOUT:       unix.ETIMEDOUT,
	wire.ECONNREFUSED:    unix.ECONNREFUSED,
	wire.ELOOP:           unix.ELOOP,
	wire.ENAMETOOLONG:    unix.ENAMETOOLONG,
	wire.EHOSTUNREACH:    unix.EHOSTUNREACH,
	wire.ENOTEMPTY:       unix.ENOTEMPTY,
	wire.EDQUOT:          unix.EDQUOT,
	wire.ESTALE:          unix.ESTALE,
	wire.ENOLCK:          unix.ENOLCK,
	wire.ENOSYS:          unix.ENOSYS,
	wire.EOVERFLOW:       unix.EOVERFLOW,
	wire.ECANCELED:       unix.ECANCELED,
	wire.EIDRM:           unix.EIDRM,
	wire.ENOMSG:          unix.ENOMSG,
	wire.EILSEQ:          unix.EILSEQ,
	wire.EBADMSG:         unix.EBADMSG,
	wire.EMULTIHOP:       unix.EMULTIHOP,
	wire.ENODATA:         unix.ENODATA,
	wire.ENOLINK:         unix.ENOLINK,
	wire.ENOSR:           unix.ENOSR,
	wire.ENOSTR:          unix.ENOSTR,
	wire.EPROTO:          unix.EPROTO,
	wire.ETIME:           unix.ETIME,
	wire.ENOTRECOVERABLE: unix.ENOTRECOVERABLE,
	wire.EOWNERDEAD:      unix.EOWNERDEAD,
}

var wireErrnos = func() map[syscall.Errno]wire.Errno {
	m := make(map[syscall.Errno]wire.Errno, len(nativeErrnos))
	for w, n := range nativeErrnos {
		// aliases such as EWOULDBLOCK share a number; the first listed wins
		if _, dup := m[n]; !dup {
			m[n] = wire.Errno(w)
		}
	}
	return m
}()

// ErrUnknownErrno is wrapped by every translation failure.
var ErrUnknownErrno = errors.New("unknown errno")

// ToNativeErrno maps a wire errno to the host value. ESUCCESS maps to 0.
// Values outside the enumeration are rejected, never coerced.
func ToNativeErrno(e wire.Errno) (syscall.Errno, error) {
	if !e.Valid() || int(e) >= len(nativeErrnos) {
		return unix.EIO, fmt.Errorf("%w: wire value %d", ErrUnknownErrno, int32(e))
	}
	return nativeErrnos[e], nil
}

// ToWireErrno maps a host errno to the wire. Host values with no wire member
// come back as EIO together with an error.
func ToWireErrno(n syscall.Errno) (wire.Errno, error) {
	if w, ok := wireErrnos[n]; ok {
		return w, nil
	}
	return wire.EIO, fmt.Errorf("%w: native value %d", ErrUnknownErrno, int(n))
}

// NegErrno is the FUSE return convention for e: 0 on success, otherwise the
// negated native errno. Unknown values become -EIO.
func NegErrno(e wire.Errno) int {
	n, err := ToNativeErrno(e)
	if err != nil {
		return -int(unix.EIO)
	}
	return -int(n)
}
