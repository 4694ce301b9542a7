package fuse

import (
	"context"
	"os"
	"sync"

	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/pkg/errors"
	"github.com/objectfs/posixfs/pkg/utils"
)

// mounter is the host binding: go-fuse by default, cgofuse with the
// cgofuse build tag.
type mounter interface {
	mount(mountPoint string) error
	unmount() error
	wait()
}

// MountManager mounts one Operations value at a mount point.
type MountManager struct {
	mountPoint string
	options    config.FuseOptions
	ops        *Operations
	log        *utils.StructuredLogger

	mu      sync.Mutex
	host    mounter
	mounted bool
}

// NewMountManager prepares a mount of ops at cfg.MountPoint.
func NewMountManager(ops *Operations, cfg config.MountConfig, logger *utils.StructuredLogger) *MountManager {
	if logger == nil {
		logger = utils.DefaultLogger()
	}
	return &MountManager{
		mountPoint: cfg.MountPoint,
		options:    cfg.Fuse,
		ops:        ops,
		log:        logger.WithComponent("fuse").WithField("mount_point", cfg.MountPoint),
	}
}

// ValidateMountPoint requires path to be an existing, empty directory.
func ValidateMountPoint(path string) error {
	if path == "" {
		return errors.NewError(errors.ErrCodeMountPointInval, "mount point cannot be empty").
			WithComponent("fuse").WithOperation("validate")
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMountPointInval, "cannot access mount point").
			WithComponent("fuse").WithOperation("validate").WithContext("mount_point", path)
	}
	if !info.IsDir() {
		return errors.NewError(errors.ErrCodeMountPointInval, "mount point is not a directory").
			WithComponent("fuse").WithOperation("validate").WithContext("mount_point", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMountPointInval, "cannot read mount point").
			WithComponent("fuse").WithOperation("validate").WithContext("mount_point", path)
	}
	if len(entries) > 0 {
		return errors.NewError(errors.ErrCodeMountPointBusy, "mount point is not empty").
			WithComponent("fuse").WithOperation("validate").
			WithContext("mount_point", path).
			WithDetail("entries", len(entries))
	}
	return nil
}

// Mount validates the mount point and starts serving. It returns once the
// host accepted the mount.
func (m *MountManager) Mount(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mounted {
		return errors.NewError(errors.ErrCodeAlreadyStarted, "filesystem is already mounted").
			WithComponent("fuse").WithOperation("mount")
	}
	if err := ValidateMountPoint(m.mountPoint); err != nil {
		return err
	}

	host := newMounter(m.ops, m.options, m.log)
	if err := host.mount(m.mountPoint); err != nil {
		return errors.Wrap(err, errors.ErrCodeMountFailed, "failed to mount filesystem").
			WithComponent("fuse").WithOperation("mount").WithContext("mount_point", m.mountPoint)
	}

	m.host = host
	m.mounted = true
	m.log.Info("filesystem mounted", map[string]interface{}{"options": m.options.Options()})
	return nil
}

// Unmount detaches the filesystem.
func (m *MountManager) Unmount() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.mounted {
		return errors.NewError(errors.ErrCodeNotInitialized, "filesystem is not mounted").
			WithComponent("fuse").WithOperation("unmount")
	}
	if err := m.host.unmount(); err != nil {
		return errors.Wrap(err, errors.ErrCodeUnmountFailed, "failed to unmount filesystem").
			WithComponent("fuse").WithOperation("unmount").WithContext("mount_point", m.mountPoint)
	}

	m.mounted = false
	m.log.Info("filesystem unmounted")
	return nil
}

// Wait blocks until the host stops serving.
func (m *MountManager) Wait() {
	m.mu.Lock()
	host := m.host
	m.mu.Unlock()
	if host != nil {
		host.wait()
	}
}

// IsMounted reports whether Mount succeeded and Unmount has not run.
func (m *MountManager) IsMounted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mounted
}

// MountPoint returns the configured mount point.
func (m *MountManager) MountPoint() string { return m.mountPoint }
