package wire

// Mode is the wire layout of a file mode: one bit per POSIX semantic,
// independent of any platform's mode_t.
type Mode uint32

const (
	IXOTH Mode = 1 << iota
	IWOTH
	IROTH
	IXGRP
	IWGRP
	IRGRP
	IXUSR
	IWUSR
	IRUSR
	ISVTX
	ISGID
	ISUID
	IFREG
	IFDIR
	IFLNK
	IFIFO
	IFCHR
	IFBLK
)

const (
	IRWXO = IROTH | IWOTH | IXOTH
	IRWXG = IRGRP | IWGRP | IXGRP
	IRWXU = IRUSR | IWUSR | IXUSR

	// IFMT covers every file type bit.
	IFMT = IFREG | IFDIR | IFLNK | IFIFO | IFCHR | IFBLK

	modeMask = IRWXO | IRWXG | IRWXU | ISVTX | ISGID | ISUID | IFMT
)

// Known drops bits that have no meaning on the wire.
func (m Mode) Known() Mode {
	return m & modeMask
}

// Type returns only the file type bits of m.
func (m Mode) Type() Mode {
	return m & IFMT
}

// Perm returns the permission and special bits of m.
func (m Mode) Perm() Mode {
	return m & (IRWXO | IRWXG | IRWXU | ISVTX | ISGID | ISUID)
}

func (m Mode) IsDir() bool {
	return m&IFDIR != 0
}

func (m Mode) IsRegular() bool {
	return m&IFREG != 0
}
