//go:build !cgofuse

package fuse

import (
	"context"
	"path"
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// node is a go-fuse inode that resolves its path on every call and
// delegates to Operations.
type node struct {
	fs.Inode
	ops          *Operations
	attrTimeout  time.Duration
	entryTimeout time.Duration
}

// handle carries the service file handle between open and I/O callbacks.
type handle struct {
	fh uint64
}

var (
	_ fs.NodeGetattrer = (*node)(nil)
	_ fs.NodeSetattrer = (*node)(nil)
	_ fs.NodeLookuper  = (*node)(nil)
	_ fs.NodeReaddirer = (*node)(nil)
	_ fs.NodeMkdirer   = (*node)(nil)
	_ fs.NodeMknoder   = (*node)(nil)
	_ fs.NodeOpener    = (*node)(nil)
	_ fs.NodeCreater   = (*node)(nil)
	_ fs.NodeReader    = (*node)(nil)
	_ fs.NodeWriter    = (*node)(nil)
)

func newRoot(ops *Operations, attrTimeout, entryTimeout time.Duration) *node {
	return &node{ops: ops, attrTimeout: attrTimeout, entryTimeout: entryTimeout}
}

func (n *node) path() string {
	return "/" + n.Path(nil)
}

func (n *node) child(name string) string {
	return path.Join(n.path(), name)
}

func errno(rc int) syscall.Errno {
	if rc >= 0 {
		return 0
	}
	return syscall.Errno(-rc)
}

func fillAttr(out *fuse.Attr, a *Attr) {
	out.Ino = a.Ino
	out.Size = uint64(a.Size)
	out.Blocks = uint64(a.Blocks)
	out.Blksize = uint32(a.Blksize)
	out.Mode = a.Mode
	out.Nlink = a.Nlink
	out.Uid = a.Uid
	out.Gid = a.Gid
	out.Rdev = uint32(a.Rdev)
	out.Atime, out.Atimensec = uint64(a.Atim.Sec), uint32(a.Atim.Nsec)
	out.Mtime, out.Mtimensec = uint64(a.Mtim.Sec), uint32(a.Mtim.Nsec)
	out.Ctime, out.Ctimensec = uint64(a.Ctim.Sec), uint32(a.Ctim.Nsec)
}

func fileHandle(f fs.FileHandle) uint64 {
	if h, ok := f.(*handle); ok {
		return h.fh
	}
	return 0
}

// entry stats name and wraps it in a child inode.
func (n *node) entry(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	var a Attr
	if rc := n.ops.Getattr(ctx, n.child(name), &a); rc != 0 {
		return nil, errno(rc)
	}
	fillAttr(&out.Attr, &a)
	out.SetAttrTimeout(n.attrTimeout)
	out.SetEntryTimeout(n.entryTimeout)

	child := &node{ops: n.ops, attrTimeout: n.attrTimeout, entryTimeout: n.entryTimeout}
	return n.NewInode(ctx, child, fs.StableAttr{Mode: a.Mode & syscall.S_IFMT, Ino: a.Ino}), 0
}

func (n *node) Getattr(ctx context.Context, _ fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	var a Attr
	if rc := n.ops.Getattr(ctx, n.path(), &a); rc != 0 {
		return errno(rc)
	}
	fillAttr(&out.Attr, &a)
	out.SetTimeout(n.attrTimeout)
	return 0
}

// Setattr maps mode and ownership changes to chmod and chown. Size changes
// are not supported; time changes are accepted and ignored.
func (n *node) Setattr(ctx context.Context, f fs.FileHandle, in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	p := n.path()

	if _, ok := in.GetSize(); ok {
		return syscall.ENOSYS
	}
	if mode, ok := in.GetMode(); ok {
		if rc := n.ops.Chmod(ctx, p, mode); rc != 0 {
			return errno(rc)
		}
	}

	uid, uidOK := in.GetUID()
	gid, gidOK := in.GetGID()
	if uidOK || gidOK {
		if !uidOK || !gidOK {
			var cur Attr
			if rc := n.ops.Getattr(ctx, p, &cur); rc != 0 {
				return errno(rc)
			}
			if !uidOK {
				uid = cur.Uid
			}
			if !gidOK {
				gid = cur.Gid
			}
		}
		if rc := n.ops.Chown(ctx, p, uid, gid); rc != 0 {
			return errno(rc)
		}
	}

	return n.Getattr(ctx, f, out)
}

func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	return n.entry(ctx, name, out)
}

// Readdir lists the directory. go-fuse supplies "." and ".." itself.
func (n *node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	var entries []fuse.DirEntry
	rc := n.ops.Readdir(ctx, n.path(), func(name string) bool {
		if name != "." && name != ".." {
			entries = append(entries, fuse.DirEntry{Name: name})
		}
		return true
	})
	if rc != 0 {
		return nil, errno(rc)
	}
	return fs.NewListDirStream(entries), 0
}

func (n *node) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	if rc := n.ops.Mkdir(ctx, n.child(name), mode|syscall.S_IFDIR); rc != 0 {
		return nil, errno(rc)
	}
	return n.entry(ctx, name, out)
}

func (n *node) Mknod(ctx context.Context, name string, mode, dev uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	if rc := n.ops.Mknod(ctx, n.child(name), mode, uint64(dev)); rc != 0 {
		return nil, errno(rc)
	}
	return n.entry(ctx, name, out)
}

func (n *node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	rc, fh := n.ops.Open(ctx, n.path(), int(flags))
	if rc != 0 {
		return nil, 0, errno(rc)
	}
	return &handle{fh: fh}, 0, 0
}

func (n *node) Create(ctx context.Context, name string, flags, mode uint32, out *fuse.EntryOut) (*fs.Inode, fs.FileHandle, uint32, syscall.Errno) {
	rc, fh := n.ops.Create(ctx, n.child(name), int(flags), mode|syscall.S_IFREG)
	if rc != 0 {
		return nil, nil, 0, errno(rc)
	}
	inode, e := n.entry(ctx, name, out)
	if e != 0 {
		return nil, nil, 0, e
	}
	return inode, &handle{fh: fh}, 0, 0
}

func (n *node) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	rc := n.ops.Read(ctx, n.path(), dest, off, fileHandle(f))
	if rc < 0 {
		return nil, errno(rc)
	}
	return fuse.ReadResultData(dest[:rc]), 0
}

func (n *node) Write(ctx context.Context, f fs.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	rc := n.ops.Write(ctx, n.path(), data, off, fileHandle(f))
	if rc < 0 {
		return 0, errno(rc)
	}
	return uint32(rc), 0
}
