package posix

import (
	"errors"
	"syscall"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/objectfs/posixfs/pkg/wire"
)

func TestModeRoundTrip(t *testing.T) {
	t.Parallel()

	types := []uint32{0, unix.S_IFREG, unix.S_IFDIR, unix.S_IFLNK, unix.S_IFIFO, unix.S_IFCHR, unix.S_IFBLK}

	// every combination of the twelve permission and special bits
	for _, typ := range types {
		for perm := uint32(0); perm <= 0o7777; perm++ {
			m := typ | perm
			if got := ToNativeMode(ToWireMode(m)); got != m {
				t.Fatalf("ToNativeMode(ToWireMode(%#o)) = %#o", m, got)
			}
		}
	}
}

func TestToWireMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		native uint32
		want   wire.Mode
	}{
		{"regular 0644", unix.S_IFREG | 0o644, wire.IFREG | wire.IRUSR | wire.IWUSR | wire.IRGRP | wire.IROTH},
		{"directory 0755", unix.S_IFDIR | 0o755, wire.IFDIR | wire.IRWXU | wire.IRGRP | wire.IXGRP | wire.IROTH | wire.IXOTH},
		{"block device", unix.S_IFBLK | 0o600, wire.IFBLK | wire.IRUSR | wire.IWUSR},
		{"char device", unix.S_IFCHR, wire.IFCHR},
		{"setuid setgid sticky", 0o7000, wire.ISUID | wire.ISGID | wire.ISVTX},
		{"socket type dropped", unix.S_IFSOCK | 0o700, wire.IRWXU},
		{"unknown bits dropped", unix.S_IFREG | 0o400 | 1<<24, wire.IFREG | wire.IRUSR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToWireMode(tt.native); got != tt.want {
				t.Errorf("ToWireMode(%#o) = %#x, want %#x", tt.native, got, tt.want)
			}
		})
	}
}

func TestToNativeMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   wire.Mode
		want uint32
	}{
		{"directory rwx user", wire.IFDIR | wire.IRWXU, unix.S_IFDIR | 0o700},
		{"fifo", wire.IFIFO | wire.IRUSR, unix.S_IFIFO | 0o400},
		{"first type wins", wire.IFDIR | wire.IFBLK, unix.S_IFDIR},
		{"unknown wire bits dropped", wire.IFREG | wire.Mode(1<<25), unix.S_IFREG},
		{"no type", wire.IRWXO, 0o007},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNativeMode(tt.in); got != tt.want {
				t.Errorf("ToNativeMode(%#x) = %#o, want %#o", tt.in, got, tt.want)
			}
		})
	}
}

func TestToNativeErrno_Distinct(t *testing.T) {
	t.Parallel()

	seen := make(map[syscall.Errno]wire.Errno)
	for _, e := range wire.Errnos() {
		n, err := ToNativeErrno(e)
		if err != nil {
			t.Fatalf("ToNativeErrno(%v) error = %v", e, err)
		}
		if e == wire.ESUCCESS {
			if n != 0 {
				t.Errorf("ToNativeErrno(ESUCCESS) = %d, want 0", n)
			}
			continue
		}
		if n == 0 {
			t.Errorf("ToNativeErrno(%v) = 0", e)
		}
		if prev, dup := seen[n]; dup {
			t.Errorf("ToNativeErrno(%v) = %d, same as %v", e, n, prev)
		}
		seen[n] = e

		back, err := ToWireErrno(n)
		if err != nil || back != e {
			t.Errorf("ToWireErrno(%d) = %v, %v, want %v", n, back, err, e)
		}
	}
}

func TestToNativeErrno_Unknown(t *testing.T) {
	t.Parallel()

	for _, e := range []wire.Errno{-1, 80, 1000} {
		n, err := ToNativeErrno(e)
		if !errors.Is(err, ErrUnknownErrno) {
			t.Errorf("ToNativeErrno(%d) error = %v, want ErrUnknownErrno", e, err)
		}
		if n == 0 {
			t.Errorf("ToNativeErrno(%d) coerced to success", e)
		}
	}
}

func TestToWireErrno(t *testing.T) {
	t.Parallel()

	if got, err := ToWireErrno(unix.ENOENT); err != nil || got != wire.ENOENT {
		t.Errorf("ToWireErrno(ENOENT) = %v, %v", got, err)
	}
	if got, err := ToWireErrno(0); err != nil || got != wire.ESUCCESS {
		t.Errorf("ToWireErrno(0) = %v, %v", got, err)
	}
	got, err := ToWireErrno(syscall.Errno(9999))
	if !errors.Is(err, ErrUnknownErrno) || got != wire.EIO {
		t.Errorf("ToWireErrno(9999) = %v, %v, want EIO and ErrUnknownErrno", got, err)
	}
}

func TestNegErrno(t *testing.T) {
	t.Parallel()

	if got := NegErrno(wire.ESUCCESS); got != 0 {
		t.Errorf("NegErrno(ESUCCESS) = %d", got)
	}
	if got := NegErrno(wire.EACCES); got != -int(unix.EACCES) {
		t.Errorf("NegErrno(EACCES) = %d", got)
	}
	if got := NegErrno(wire.Errno(123)); got != -int(unix.EIO) {
		t.Errorf("NegErrno(123) = %d, want -EIO", got)
	}
}
