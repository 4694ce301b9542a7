//go:build cgofuse

package fuse

import (
	"fmt"

	"github.com/winfsp/cgofuse/fuse"

	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/pkg/utils"
)

// Backend names the host binding compiled in.
const Backend = "cgofuse"

type cgofuseMounter struct {
	fs   *cgoFS
	opts config.FuseOptions
	log  *utils.StructuredLogger
	host *fuse.FileSystemHost
	done chan struct{}
}

func newMounter(ops *Operations, opts config.FuseOptions, log *utils.StructuredLogger) mounter {
	return &cgofuseMounter{fs: newCgoFS(ops), opts: opts, log: log, done: make(chan struct{})}
}

// mountArgs renders the settings as libfuse "-o" arguments.
func mountArgs(o config.FuseOptions) []string {
	var args []string
	for _, opt := range o.Options() {
		args = append(args, "-o", opt)
	}
	if o.Debug {
		args = append(args, "-o", "debug")
	}
	return args
}

func (m *cgofuseMounter) mount(mountPoint string) error {
	m.host = fuse.NewFileSystemHost(m.fs)
	args := mountArgs(m.opts)

	go func() {
		defer close(m.done)
		if !m.host.Mount(mountPoint, args) {
			m.log.Error("cgofuse host exited with failure", map[string]interface{}{"args": args})
		}
	}()

	select {
	case <-m.fs.ready:
		return nil
	case <-m.done:
		return fmt.Errorf("cgofuse mount of %s failed", mountPoint)
	}
}

func (m *cgofuseMounter) unmount() error {
	if !m.host.Unmount() {
		return fmt.Errorf("cgofuse unmount failed")
	}
	return nil
}

func (m *cgofuseMounter) wait() {
	<-m.done
}
