package errors

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewError(t *testing.T) {
	t.Parallel()

	t.Run("creates error with all defaults", func(t *testing.T) {
		err := NewError(ErrCodeInvalidConfig, "configuration is invalid")
		if err.Code != ErrCodeInvalidConfig {
			t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
		}
		if err.Message != "configuration is invalid" {
			t.Errorf("Message = %q, want %q", err.Message, "configuration is invalid")
		}
		if err.Category != CategoryConfiguration {
			t.Errorf("Category = %v, want %v", err.Category, CategoryConfiguration)
		}
		if err.Details == nil || err.Context == nil {
			t.Error("Details or Context map is nil")
		}
		if err.Timestamp.IsZero() {
			t.Error("Timestamp not set")
		}
	})

	t.Run("sets user-facing defaults", func(t *testing.T) {
		if !NewError(ErrCodeMountPointBusy, "busy").UserFacing {
			t.Error("MountPointBusy should be user-facing by default")
		}
		if NewError(ErrCodeInternalError, "internal").UserFacing {
			t.Error("InternalError should not be user-facing by default")
		}
	})
}

func TestGetCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     ErrorCode
		expected ErrorCategory
	}{
		{ErrCodeInvalidConfig, CategoryConfiguration},
		{ErrCodeConfigLoad, CategoryConfiguration},
		{ErrCodeConnectionFailed, CategoryConnection},
		{ErrCodeCredentialsLoad, CategoryConnection},
		{ErrCodeMountFailed, CategoryFilesystem},
		{ErrCodeUnmountFailed, CategoryFilesystem},
		{ErrCodeVolumeCreate, CategoryVolume},
		{ErrCodeProtocol, CategoryProtocol},
		{ErrCodeAlreadyStarted, CategoryState},
		{ErrCodeShutdown, CategoryState},
		{ErrCodeInternalError, CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := GetCategory(tt.code); got != tt.expected {
				t.Errorf("GetCategory(%v) = %v, want %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestFSError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *FSError
		want string
	}{
		{
			name: "code only",
			err:  NewError(ErrCodeMountFailed, "mount failed"),
			want: "MOUNT_FAILED: mount failed",
		},
		{
			name: "with component",
			err:  NewError(ErrCodeMountFailed, "mount failed").WithComponent("fuse"),
			want: "[fuse] MOUNT_FAILED: mount failed",
		},
		{
			name: "with component and operation",
			err:  NewError(ErrCodeCredentialsLoad, "bad key").WithComponent("transport").WithOperation("dial"),
			want: "[transport:dial] CONNECTION_CREDENTIALS: bad key",
		},
		{
			name: "with cause",
			err:  Wrap(errors.New("no such file"), ErrCodeConfigLoad, "read config"),
			want: "CONFIG_LOAD: read config: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFSError_IsAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeServiceUnreach, "ping failed")

	if !errors.Is(err, NewError(ErrCodeServiceUnreach, "other message")) {
		t.Error("errors.Is should match by code")
	}
	if errors.Is(err, NewError(ErrCodeMountFailed, "ping failed")) {
		t.Error("errors.Is matched a different code")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}

	var fsErr *FSError
	if !errors.As(error(err), &fsErr) || fsErr.Code != ErrCodeServiceUnreach {
		t.Errorf("errors.As() = %v", fsErr)
	}
}

func TestFSError_ContextAndJSON(t *testing.T) {
	t.Parallel()

	err := NewError(ErrCodeVolumeCreate, "create volume").
		WithContext("volume", "vol1").
		WithDetail("attempt", 1)

	var decoded map[string]interface{}
	if jerr := json.Unmarshal([]byte(err.JSON()), &decoded); jerr != nil {
		t.Fatalf("JSON() is not valid JSON: %v", jerr)
	}
	if decoded["code"] != string(ErrCodeVolumeCreate) {
		t.Errorf("code = %v", decoded["code"])
	}

	s := err.String()
	for _, want := range []string{"Code=VOLUME_CREATE", `"volume":"vol1"`, `"attempt":1`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestFSError_UserFacingMessage(t *testing.T) {
	t.Parallel()

	msg := NewError(ErrCodeMountPointBusy, "mount point /mnt is not empty").UserFacingMessage()
	if !strings.HasPrefix(msg, "mount point /mnt is not empty. ") {
		t.Errorf("UserFacingMessage() = %q", msg)
	}
	if got := NewError(ErrCodeInternalError, "boom").UserFacingMessage(); got != "boom" {
		t.Errorf("UserFacingMessage() = %q, want %q", got, "boom")
	}
}
