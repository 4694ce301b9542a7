package fuse

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/pkg/errors"
	"github.com/objectfs/posixfs/pkg/utils"
)

func errorCode(t *testing.T, err error) errors.ErrorCode {
	t.Helper()
	fsErr, ok := err.(*errors.FSError)
	if !ok {
		t.Fatalf("expected *errors.FSError, got %T: %v", err, err)
	}
	return fsErr.Code
}

func TestValidateMountPoint(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	busy := filepath.Join(dir, "busy")
	if err := os.Mkdir(busy, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(busy, "file"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want errors.ErrorCode
	}{
		{"empty path", "", errors.ErrCodeMountPointInval},
		{"missing", filepath.Join(dir, "missing"), errors.ErrCodeMountPointInval},
		{"regular file", file, errors.ErrCodeMountPointInval},
		{"not empty", busy, errors.ErrCodeMountPointBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMountPoint(tt.path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errorCode(t, err); got != tt.want {
				t.Errorf("code = %s, want %s", got, tt.want)
			}
		})
	}

	if err := ValidateMountPoint(empty); err != nil {
		t.Errorf("empty directory rejected: %v", err)
	}
}

func TestMountManager_RejectsBadMountPoint(t *testing.T) {
	mm := NewMountManager(NewOperations(&fakeClient{}), config.MountConfig{
		MountPoint: filepath.Join(t.TempDir(), "missing"),
	}, utils.NewNopLogger())

	err := mm.Mount(context.Background())
	if err == nil {
		t.Fatal("expected mount to fail")
	}
	if got := errorCode(t, err); got != errors.ErrCodeMountPointInval {
		t.Errorf("code = %s, want %s", got, errors.ErrCodeMountPointInval)
	}
	if mm.IsMounted() {
		t.Error("manager reports mounted after failure")
	}
}

func TestMountManager_UnmountWithoutMount(t *testing.T) {
	mm := NewMountManager(NewOperations(&fakeClient{}), config.MountConfig{MountPoint: t.TempDir()}, nil)

	err := mm.Unmount()
	if err == nil {
		t.Fatal("expected unmount to fail")
	}
	if got := errorCode(t, err); got != errors.ErrCodeNotInitialized {
		t.Errorf("code = %s, want %s", got, errors.ErrCodeNotInitialized)
	}

	// Wait returns immediately when nothing is mounted.
	mm.Wait()
}
