package fuse

import (
	"context"
	"math"

	"github.com/objectfs/posixfs/internal/client"
	"github.com/objectfs/posixfs/internal/posix"
	"github.com/objectfs/posixfs/pkg/wire"
)

// Client is the RPC surface the adapter needs. *client.PosixClient
// satisfies it.
type Client interface {
	Stat(ctx context.Context, path string) (*wire.Stat, error)
	MkNod(ctx context.Context, path string, mode wire.Mode, dev int32) error
	MkDir(ctx context.Context, path string, mode wire.Mode) error
	ChMod(ctx context.Context, path string, mode wire.Mode) error
	ChOwn(ctx context.Context, path string, uid, gid uint32) error
	Open(ctx context.Context, path string, flags int32) (uint64, error)
	Read(ctx context.Context, path string, buf []byte, offset int64, fh uint64) (int, error)
	Write(ctx context.Context, path string, buf []byte, offset int64, fh uint64) (int, error)
	ReadDir(ctx context.Context, path string) ([]string, error)
	Create(ctx context.Context, path string, mode wire.Mode, flags int32) (uint64, error)
}

// Timespec is a seconds and nanoseconds timestamp.
type Timespec struct {
	Sec  int64
	Nsec int64
}

// Attr is a stat record in host layout.
type Attr struct {
	Dev     uint64
	Ino     uint64
	Mode    uint32
	Nlink   uint32
	Uid     uint32
	Gid     uint32
	Rdev    uint64
	Size    int64
	Blksize int64
	Blocks  int64
	Atim    Timespec
	Mtim    Timespec
	Ctim    Timespec
}

func attrFromStat(st *wire.Stat) Attr {
	return Attr{
		Dev:     st.Dev,
		Ino:     st.Ino,
		Mode:    posix.ToNativeMode(st.Mode),
		Nlink:   st.Nlink,
		Uid:     st.Uid,
		Gid:     st.Gid,
		Rdev:    st.Rdev,
		Size:    st.Size,
		Blksize: int64(st.Blksize),
		Blocks:  st.Blocks,
		Atim:    Timespec{Sec: st.Atim.Sec, Nsec: st.Atim.Nsec},
		Mtim:    Timespec{Sec: st.Mtim.Sec, Nsec: st.Mtim.Nsec},
		Ctim:    Timespec{Sec: st.Ctim.Sec, Nsec: st.Ctim.Nsec},
	}
}

// Operations translates host filesystem callbacks into client calls. Every
// method returns 0 or a byte count on success and a negated host errno on
// failure. Outputs are written only on success.
type Operations struct {
	client Client
}

// NewOperations binds the adapter to c.
func NewOperations(c Client) *Operations {
	return &Operations{client: c}
}

func status(err error) int {
	return posix.NegErrno(client.ErrnoOf(err))
}

// Getattr fills attr for path.
func (o *Operations) Getattr(ctx context.Context, path string, attr *Attr) int {
	st, err := o.client.Stat(ctx, path)
	if err != nil {
		return status(err)
	}
	*attr = attrFromStat(st)
	return 0
}

// Mknod creates a node; mode carries the host file type and permissions.
// The wire device field is 32 bits, so larger device ids fail with EINVAL.
func (o *Operations) Mknod(ctx context.Context, path string, mode uint32, dev uint64) int {
	if dev > math.MaxInt32 {
		return posix.NegErrno(wire.EINVAL)
	}
	return status(o.client.MkNod(ctx, path, posix.ToWireMode(mode), int32(dev)))
}

func (o *Operations) Mkdir(ctx context.Context, path string, mode uint32) int {
	return status(o.client.MkDir(ctx, path, posix.ToWireMode(mode)))
}

func (o *Operations) Chmod(ctx context.Context, path string, mode uint32) int {
	return status(o.client.ChMod(ctx, path, posix.ToWireMode(mode)))
}

func (o *Operations) Chown(ctx context.Context, path string, uid, gid uint32) int {
	return status(o.client.ChOwn(ctx, path, uid, gid))
}

// Open returns the service file handle for path.
func (o *Operations) Open(ctx context.Context, path string, flags int) (int, uint64) {
	fh, err := o.client.Open(ctx, path, int32(flags))
	if err != nil {
		return status(err), 0
	}
	return 0, fh
}

// Create creates and opens a regular file.
func (o *Operations) Create(ctx context.Context, path string, flags int, mode uint32) (int, uint64) {
	fh, err := o.client.Create(ctx, path, posix.ToWireMode(mode), int32(flags))
	if err != nil {
		return status(err), 0
	}
	return 0, fh
}

// Read fills buf from offset and returns the byte count, 0 at end of file.
func (o *Operations) Read(ctx context.Context, path string, buf []byte, offset int64, fh uint64) int {
	n, err := o.client.Read(ctx, path, buf, offset, fh)
	if err != nil {
		return status(err)
	}
	return n
}

// Write returns the byte count the service accepted.
func (o *Operations) Write(ctx context.Context, path string, buf []byte, offset int64, fh uint64) int {
	n, err := o.client.Write(ctx, path, buf, offset, fh)
	if err != nil {
		return status(err)
	}
	return n
}

// Readdir passes each entry name to fill in service order and stops early
// when fill returns false.
func (o *Operations) Readdir(ctx context.Context, path string, fill func(name string) bool) int {
	names, err := o.client.ReadDir(ctx, path)
	if err != nil {
		return status(err)
	}
	for _, name := range names {
		if !fill(name) {
			break
		}
	}
	return 0
}
