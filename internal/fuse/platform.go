//go:build !cgofuse

package fuse

import (
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/pkg/utils"
)

// Backend names the host binding compiled in.
const Backend = "go-fuse"

type gofuseMounter struct {
	ops    *Operations
	opts   config.FuseOptions
	log    *utils.StructuredLogger
	server *fuse.Server
}

func newMounter(ops *Operations, opts config.FuseOptions, log *utils.StructuredLogger) mounter {
	return &gofuseMounter{ops: ops, opts: opts, log: log}
}

// buildMountOptions maps the settings onto go-fuse. Settings go-fuse
// negotiates itself become fields; kernel mount options stay in Options.
// big_writes has no go-fuse equivalent and is implied by MaxWrite.
func buildMountOptions(o config.FuseOptions) *fs.Options {
	attrTimeout := o.AttrTimeout
	entryTimeout := o.EntryTimeout

	opts := &fs.Options{
		MountOptions: fuse.MountOptions{
			AllowOther:   o.AllowOther,
			FsName:       o.FSName,
			Name:         "posixfs",
			MaxWrite:     o.MaxWrite,
			MaxReadAhead: o.MaxReadahead,
			Debug:        o.Debug,
		},
		AttrTimeout:  &attrTimeout,
		EntryTimeout: &entryTimeout,
	}

	if o.DefaultPermissions {
		opts.Options = append(opts.Options, "default_permissions")
	}
	if o.NoAtime {
		opts.Options = append(opts.Options, "noatime")
	}
	opts.Options = append(opts.Options, o.Extra...)
	return opts
}

func (m *gofuseMounter) mount(mountPoint string) error {
	opts := buildMountOptions(m.opts)
	root := newRoot(m.ops, m.opts.AttrTimeout, m.opts.EntryTimeout)

	server, err := fs.Mount(mountPoint, root, opts)
	if err != nil {
		return err
	}
	m.server = server
	m.log.Debug("go-fuse server started", map[string]interface{}{"kernel_options": opts.Options})
	return nil
}

func (m *gofuseMounter) unmount() error {
	return m.server.Unmount()
}

func (m *gofuseMounter) wait() {
	m.server.Wait()
}
