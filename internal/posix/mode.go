// Package posix translates between the host's native mode_t and errno
// values and their platform-independent wire enumerations.
package posix

import (
	"golang.org/x/sys/unix"

	"github.com/objectfs/posixfs/pkg/wire"
)

type modeBit struct {
	native uint32
	wire   wire.Mode
}

// fileTypes is ordered: when a wire mode carries more than one type bit the
// first match wins.
var fileTypes = []modeBit{
	{unix.S_IFREG, wire.IFREG},
	{unix.S_IFDIR, wire.IFDIR},
	{unix.S_IFLNK, wire.IFLNK},
	{unix.S_IFIFO, wire.IFIFO},
	{unix.S_IFCHR, wire.IFCHR},
	{unix.S_IFBLK, wire.IFBLK},
}

var permBits = []modeBit{
	{unix.S_IRUSR, wire.IRUSR},
	{unix.S_IWUSR, wire.IWUSR},
	{unix.S_IXUSR, wire.IXUSR},
	{unix.S_IRGRP, wire.IRGRP},
	{unix.S_IWGRP, wire.IWGRP},
	{unix.S_IXGRP, wire.IXGRP},
	{unix.S_IROTH, wire.IROTH},
	{unix.S_IWOTH, wire.IWOTH},
	{unix.S_IXOTH, wire.IXOTH},
	{unix.S_ISUID, wire.ISUID},
	{unix.S_ISGID, wire.ISGID},
	{unix.S_ISVTX, wire.ISVTX},
}

// ToWireMode converts a native mode. The native file type is a multi-bit
// field and is matched as a whole; permission bits map one to one. Anything
// without a wire equivalent (sockets, unknown bits) is dropped.
func ToWireMode(native uint32) wire.Mode {
	var m wire.Mode

	typ := native & unix.S_IFMT
	for _, b := range fileTypes {
		if typ == b.native {
			m |= b.wire
			break
		}
	}

	for _, b := range permBits {
		if native&b.native != 0 {
			m |= b.wire
		}
	}
	return m
}

// ToNativeMode converts a wire mode to the host layout.
func ToNativeMode(m wire.Mode) uint32 {
	var native uint32

	for _, b := range fileTypes {
		if m&b.wire != 0 {
			native |= b.native
			break
		}
	}

	for _, b := range permBits {
		if m&b.wire != 0 {
			native |= b.native
		}
	}
	return native
}
