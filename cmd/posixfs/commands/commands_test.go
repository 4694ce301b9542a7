package commands

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectfs/posixfs/internal/paciotest"
	"github.com/objectfs/posixfs/internal/transport"
	"github.com/objectfs/posixfs/pkg/errors"
)

// execute runs the root command with args against srv and returns stdout.
func execute(t *testing.T, srv *paciotest.Server, args ...string) (string, error) {
	t.Helper()

	if srv != nil {
		extraDialOptions = []transport.Option{transport.WithDialOptions(srv.Listen(t))}
		t.Cleanup(func() { extraDialOptions = nil })
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "ERROR", "--log-file", "stderr"))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	Version, Commit, Date = "1.2.3", "abc123", "2026-01-01"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "posixfs 1.2.3 (commit: abc123, built: 2026-01-01"), out)
}

func TestPing(t *testing.T) {
	srv := paciotest.NewServer("vol1")

	out, err := execute(t, srv, "ping", paciotest.Address)
	require.NoError(t, err)
	assert.Contains(t, out, "is reachable")
}

func TestPing_Unreachable(t *testing.T) {
	srv := paciotest.NewServer("vol1")
	srv.Hooks.Ping = func(context.Context) error { return stderrors.New("down") }

	_, err := execute(t, srv, "ping", paciotest.Address, "--timeout", "2s")
	var fsErr *errors.FSError
	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, errors.ErrCodeServiceUnreach, fsErr.Code)
}

func TestMkfs(t *testing.T) {
	srv := paciotest.NewServer()

	out, err := execute(t, srv, "mkfs", paciotest.Address, "volume1")
	require.NoError(t, err)
	assert.Equal(t, "volume1\n", out)
	assert.Contains(t, srv.Volumes(), "volume1")
}

func TestMkfs_InvalidName(t *testing.T) {
	srv := paciotest.NewServer()

	_, err := execute(t, srv, "mkfs", paciotest.Address, "bad:name")
	var fsErr *errors.FSError
	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, errors.ErrCodeVolumeName, fsErr.Code)
	assert.Empty(t, srv.Volumes())
}

func TestMountConfig(t *testing.T) {
	t.Cleanup(func() {
		mountVolume, mountOptions, mountAsyncWrites = "", nil, false
		mountCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	})

	dir := t.TempDir()
	require.NoError(t, mountCmd.Flags().Parse([]string{
		"--volume", "vol1",
		"-o", "max_write=65536",
		"-o", "allow_other=false",
		"-o", "ro",
		"--async-writes",
		"--timeout", "3s",
	}))

	cfg, err := mountConfig(mountCmd, []string{"localhost:8080", dir})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Service.Address)
	assert.Equal(t, "vol1", cfg.Service.Volume)
	assert.Equal(t, dir, cfg.Mount.MountPoint)
	assert.True(t, cfg.Service.AsyncWrites)
	assert.Equal(t, 3*time.Second, cfg.Service.Timeout)
	assert.Equal(t, 65536, cfg.Mount.Fuse.MaxWrite)
	assert.False(t, cfg.Mount.Fuse.AllowOther)
	assert.Equal(t, []string{"ro"}, cfg.Mount.Fuse.Extra)
	assert.Equal(t, "paciofs", cfg.Mount.Fuse.FSName)
}

func TestMountConfig_RequiresVolume(t *testing.T) {
	t.Setenv("POSIXFS_VOLUME", "")

	_, err := mountConfig(mountCmd, []string{"localhost:8080", t.TempDir()})
	var fsErr *errors.FSError
	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, errors.ErrCodeInvalidConfig, fsErr.Code)
}
