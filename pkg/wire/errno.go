package wire

import "fmt"

// Errno is the platform-independent error enumeration carried in every
// response. ESUCCESS is the only non-error member.
type Errno int32

// Errno members. The numeric values are part of the wire contract and must
// never be reordered.
const (
	ESUCCESS Errno = iota
	EPERM
	ENOENT
	ESRCH
	EINTR
	EIO
	ENXIO
	E2BIG
	ENOEXEC
	EBADF
	ECHILD
	EDEADLK
	ENOMEM
	EACCES
	EFAULT
	EBUSY
	EEXIST
	EXDEV
	ENODEV
	ENOTDIR
	EISDIR
	EINVAL
	ENFILE
	EMFILE
	ENOTTY
	ETXTBSY
	EFBIG
	ENOSPC
	ESPIPE
	EROFS
	EMLINK
	EPIPE
	EDOM
	ERANGE
	EAGAIN
	EINPROGRESS
	EALREADY
	ENOTSOCK
	EDESTADDRREQ
	EMSGSIZE
	EPROTOTYPE
	ENOPROTOOPT
	EPROTONOSUPPORT
	ENOTSUP
	EAFNOSUPPORT
	EADDRINUSE
	EADDRNOTAVAIL
	ENETDOWN
	ENETUNREACH
	ENETRESET
	ECONNABORTED
	ECONNRESET
	ENOBUFS
	EISCONN
	ENOTCONN
	ETIMEDOUT
	ECONNREFUSED
	ELOOP
	ENAMETOOLONG
	EHOSTUNREACH
	ENOTEMPTY
	EDQUOT
	ESTALE
	ENOLCK
	ENOSYS
	EOVERFLOW
	ECANCELED
	EIDRM
	ENOMSG
	EILSEQ
	EBADMSG
	EMULTIHOP
	ENODATA
	ENOLINK
	ENOSR
	ENOSTR
	EPROTO
	ETIME
	ENOTRECOVERABLE
	EOWNERDEAD

	errnoCount
)

var errnoNames = [errnoCount]string{
	"ESUCCESS", "EPERM", "ENOENT", "ESRCH", "EINTR", "EIO", "ENXIO", "E2BIG",
	"ENOEXEC", "EBADF", "ECHILD", "EDEADLK", "ENOMEM", "EACCES", "EFAULT", "EBUSY",
	"EEXIST", "EXDEV", "ENODEV", "ENOTDIR", "EISDIR", "EINVAL", "ENFILE", "EMFILE",
	"ENOTTY", "ETXTBSY", "EFBIG", "ENOSPC", "ESPIPE", "EROFS", "EMLINK", "EPIPE",
	"EDOM", "ERANGE", "EAGAIN", "EINPROGRESS", "EALREADY", "ENOTSOCK", "EDESTADDRREQ",
	"EMSGSIZE", "EPROTOTYPE", "ENOPROTOOPT", "EPROTONOSUPPORT", "ENOTSUP",
	"EAFNOSUPPORT", "EADDRINUSE", "EADDRNOTAVAIL", "ENETDOWN", "ENETUNREACH",
	"ENETRESET", "ECONNABORTED", "ECONNRESET", "ENOBUFS", "EISCONN", "ENOTCONN",
	"ETIMEDOUT", "ECONNREFUSED", "ELOOP", "ENAMETOOLONG", "EHOSTUNREACH", "ENOTEMPTY",
	"EDQUOT", "ESTALE", "ENOLCK", "ENOSYS", "EOVERFLOW", "ECANCELED", "EIDRM", "ENOMSG",
	"EILSEQ", "EBADMSG", "EMULTIHOP", "ENODATA", "ENOLINK", "ENOSR", "ENOSTR", "EPROTO",
	"ETIME", "ENOTRECOVERABLE", "EOWNERDEAD",
}

// Errnos returns every defined member, ESUCCESS first.
func Errnos() []Errno {
	out := make([]Errno, errnoCount)
	for i := range out {
		out[i] = Errno(i)
	}
	return out
}

// Valid reports whether e is a defined member.
func (e Errno) Valid() bool {
	return e >= 0 && e < errnoCount
}

// OK reports whether e is ESUCCESS.
func (e Errno) OK() bool {
	return e == ESUCCESS
}

func (e Errno) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Errno(%d)", int32(e))
	}
	return errnoNames[e]
}

// Error lets a non-success Errno travel as a Go error.
func (e Errno) Error() string {
	return "remote error " + e.String()
}

// ParseErrno validates a raw enumeration value received from the wire.
func ParseErrno(v int32) (Errno, error) {
	e := Errno(v)
	if !e.Valid() {
		return EIO, fmt.Errorf("unknown errno value %d", v)
	}
	return e, nil
}
