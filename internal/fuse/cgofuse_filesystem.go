//go:build cgofuse

package fuse

import (
	"context"
	"sync"

	"github.com/winfsp/cgofuse/fuse"
)

// cgoFS is the cgofuse path API front end over Operations.
type cgoFS struct {
	fuse.FileSystemBase
	ops *Operations

	ready     chan struct{}
	readyOnce sync.Once
}

var _ fuse.FileSystemInterface = (*cgoFS)(nil)

func newCgoFS(ops *Operations) *cgoFS {
	return &cgoFS{ops: ops, ready: make(chan struct{})}
}

// Init is called by the host once the mount is live.
func (c *cgoFS) Init() {
	c.readyOnce.Do(func() { close(c.ready) })
}

func fillStat(stat *fuse.Stat_t, a *Attr) {
	stat.Dev = a.Dev
	stat.Ino = a.Ino
	stat.Mode = a.Mode
	stat.Nlink = a.Nlink
	stat.Uid = a.Uid
	stat.Gid = a.Gid
	stat.Rdev = a.Rdev
	stat.Size = a.Size
	stat.Blksize = a.Blksize
	stat.Blocks = a.Blocks
	stat.Atim = fuse.Timespec{Sec: a.Atim.Sec, Nsec: a.Atim.Nsec}
	stat.Mtim = fuse.Timespec{Sec: a.Mtim.Sec, Nsec: a.Mtim.Nsec}
	stat.Ctim = fuse.Timespec{Sec: a.Ctim.Sec, Nsec: a.Ctim.Nsec}
}

func (c *cgoFS) Getattr(path string, stat *fuse.Stat_t, _ uint64) int {
	var a Attr
	if rc := c.ops.Getattr(context.Background(), path, &a); rc != 0 {
		return rc
	}
	fillStat(stat, &a)
	return 0
}

func (c *cgoFS) Mknod(path string, mode uint32, dev uint64) int {
	return c.ops.Mknod(context.Background(), path, mode, dev)
}

func (c *cgoFS) Mkdir(path string, mode uint32) int {
	return c.ops.Mkdir(context.Background(), path, mode|fuse.S_IFDIR)
}

func (c *cgoFS) Chmod(path string, mode uint32) int {
	return c.ops.Chmod(context.Background(), path, mode)
}

func (c *cgoFS) Chown(path string, uid, gid uint32) int {
	return c.ops.Chown(context.Background(), path, uid, gid)
}

func (c *cgoFS) Open(path string, flags int) (int, uint64) {
	return c.ops.Open(context.Background(), path, flags)
}

func (c *cgoFS) Create(path string, flags int, mode uint32) (int, uint64) {
	return c.ops.Create(context.Background(), path, flags, mode|fuse.S_IFREG)
}

func (c *cgoFS) Read(path string, buff []byte, ofst int64, fh uint64) int {
	return c.ops.Read(context.Background(), path, buff, ofst, fh)
}

func (c *cgoFS) Write(path string, buff []byte, ofst int64, fh uint64) int {
	return c.ops.Write(context.Background(), path, buff, ofst, fh)
}

// Readdir passes names only; the host stats entries on demand.
func (c *cgoFS) Readdir(path string, fill func(name string, stat *fuse.Stat_t, ofst int64) bool, _ int64, _ uint64) int {
	return c.ops.Readdir(context.Background(), path, func(name string) bool {
		return fill(name, nil, 0)
	})
}
