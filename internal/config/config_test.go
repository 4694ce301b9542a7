package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// Test Constants
const (
	TestDebugLevel = "DEBUG"
	TestVolume     = "vol1"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	// Test global defaults
	if cfg.Global.LogLevel != "INFO" {
		t.Errorf("Expected LogLevel to be INFO, got %s", cfg.Global.LogLevel)
	}
	if cfg.Global.LogFile != "stdout" {
		t.Errorf("Expected LogFile to be stdout, got %s", cfg.Global.LogFile)
	}

	// Test service defaults
	if cfg.Service.Timeout != 0 {
		t.Errorf("Expected no call timeout by default, got %v", cfg.Service.Timeout)
	}
	if cfg.Service.AsyncWrites {
		t.Error("Expected AsyncWrites to be disabled by default")
	}
	if cfg.Service.TLSEnabled() {
		t.Error("Expected TLS to be disabled without PEM sources")
	}

	// Test fuse defaults
	fuse := cfg.Mount.Fuse
	if fuse.FSName != "paciofs" {
		t.Errorf("Expected FSName to be paciofs, got %s", fuse.FSName)
	}
	if fuse.MaxWrite != 131072 || fuse.MaxReadahead != 1048576 {
		t.Errorf("Expected max_write 131072 and max_readahead 1048576, got %d and %d",
			fuse.MaxWrite, fuse.MaxReadahead)
	}

	// Test monitoring defaults
	if cfg.Monitoring.Metrics.Enabled || cfg.Monitoring.Tracing.Enabled {
		t.Error("Expected metrics and tracing to be disabled by default")
	}
	if cfg.Network.CircuitBreaker.Enabled {
		t.Error("Expected circuit breaker to be disabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration does not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  func() *Configuration
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			config: func() *Configuration {
				return NewDefault()
			},
			wantErr: false,
		},
		{
			name: "lower case log level",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Global.LogLevel = "trace"
				return cfg
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Global.LogLevel = "INVALID"
				return cfg
			},
			wantErr: true,
			errMsg:  "invalid log_level",
		},
		{
			name: "invalid log format",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Global.LogFormat = "xml"
				return cfg
			},
			wantErr: true,
			errMsg:  "invalid log_format",
		},
		{
			name: "cert chain without key",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Service.CertChain = "/etc/posixfs/client.pem"
				return cfg
			},
			wantErr: true,
			errMsg:  "cert_chain and private_key must be set together",
		},
		{
			name: "root certs alone",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Service.RootCerts = "s3://certs/ca.pem"
				return cfg
			},
			wantErr: false,
		},
		{
			name: "volume with colon",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Service.Volume = "vol:1"
				return cfg
			},
			wantErr: true,
			errMsg:  "must not contain",
		},
		{
			name: "negative timeout",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Service.Timeout = -time.Second
				return cfg
			},
			wantErr: true,
			errMsg:  "timeout cannot be negative",
		},
		{
			name: "circuit breaker without threshold",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Network.CircuitBreaker.Enabled = true
				cfg.Network.CircuitBreaker.FailureThreshold = 0
				return cfg
			},
			wantErr: true,
			errMsg:  "failure_threshold",
		},
		{
			name: "metrics path without slash",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Monitoring.Metrics.Enabled = true
				cfg.Monitoring.Metrics.Path = "metrics"
				return cfg
			},
			wantErr: true,
			errMsg:  "metrics path must start with /",
		},
		{
			name: "sample rate out of range",
			config: func() *Configuration {
				cfg := NewDefault()
				cfg.Monitoring.Tracing.SampleRate = 1.5
				return cfg
			},
			wantErr: true,
			errMsg:  "sample_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config()
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %v, want error containing %v", err, tt.errMsg)
			}
		})
	}
}

func TestValidateForMount(t *testing.T) {
	cfg := NewDefault()
	if err := cfg.ValidateForMount(); err == nil || !strings.Contains(err.Error(), "address") {
		t.Errorf("ValidateForMount() error = %v, want missing address", err)
	}

	cfg.Service.Address = "localhost:8080"
	if err := cfg.ValidateForMount(); err == nil || !strings.Contains(err.Error(), "volume") {
		t.Errorf("ValidateForMount() error = %v, want missing volume", err)
	}

	cfg.Service.Volume = TestVolume
	if err := cfg.ValidateForMount(); err == nil || !strings.Contains(err.Error(), "mount point") {
		t.Errorf("ValidateForMount() error = %v, want missing mount point", err)
	}

	cfg.Mount.MountPoint = "/mnt/paciofs"
	if err := cfg.ValidateForMount(); err != nil {
		t.Errorf("ValidateForMount() error = %v", err)
	}
}

func TestValidateVolumeName(t *testing.T) {
	for _, name := range []string{"vol1", "my-volume", "v.2"} {
		if err := ValidateVolumeName(name); err != nil {
			t.Errorf("ValidateVolumeName(%q) error = %v", name, err)
		}
	}
	for _, name := range []string{"", "a:b", "a/b", ":"} {
		if err := ValidateVolumeName(name); err == nil {
			t.Errorf("ValidateVolumeName(%q) should fail", name)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
global:
  log_level: DEBUG
  log_format: json

service:
  address: paciofs.example.com:8443
  volume: vol1
  root_certs: s3://certs/ca.pem
  timeout: 5s
  async_writes: true

mount:
  mount_point: /mnt/paciofs
  fuse:
    allow_other: false
    extra: ["ro"]
`

	err := os.WriteFile(configFile, []byte(configContent), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg := NewDefault()
	err = cfg.LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	// Verify loaded values
	if cfg.Global.LogLevel != TestDebugLevel {
		t.Errorf("Expected LogLevel to be DEBUG, got %s", cfg.Global.LogLevel)
	}
	if cfg.Service.Address != "paciofs.example.com:8443" || cfg.Service.Volume != TestVolume {
		t.Errorf("unexpected service section: %+v", cfg.Service)
	}
	if cfg.Service.Timeout != 5*time.Second {
		t.Errorf("Expected Timeout to be 5s, got %v", cfg.Service.Timeout)
	}
	if !cfg.Service.AsyncWrites || !cfg.Service.TLSEnabled() {
		t.Errorf("Expected async writes and TLS, got %+v", cfg.Service)
	}
	if cfg.Mount.Fuse.AllowOther {
		t.Error("Expected AllowOther to be overridden to false")
	}
	// untouched keys keep their defaults
	if cfg.Mount.Fuse.FSName != "paciofs" || !cfg.Mount.Fuse.BigWrites {
		t.Errorf("defaults lost: %+v", cfg.Mount.Fuse)
	}
	if !reflect.DeepEqual(cfg.Mount.Fuse.Extra, []string{"ro"}) {
		t.Errorf("Extra = %v", cfg.Mount.Fuse.Extra)
	}
}

func TestLoadFromFileNonExistent(t *testing.T) {
	cfg := NewDefault()
	err := cfg.LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error when loading non-existent config file")
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configFile, []byte("service: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}

	err := NewDefault().LoadFromFile(configFile)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("LoadFromFile() error = %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	// Set up environment variables
	testEnvVars := map[string]string{
		"POSIXFS_LOG_LEVEL":       "ERROR",
		"POSIXFS_ADDRESS":         "localhost:9000",
		"POSIXFS_VOLUME":          TestVolume,
		"POSIXFS_ROOT_CERTS":      "/etc/ssl/ca.pem",
		"POSIXFS_TIMEOUT":         "250ms",
		"POSIXFS_ASYNC_WRITES":    "TRUE",
		"POSIXFS_MOUNT_POINT":     "/mnt/x",
		"POSIXFS_METRICS_ENABLED": "true",
		"POSIXFS_METRICS_PORT":    "9100",
		"POSIXFS_S3_REGION":       "eu-central-1",
	}

	// Set environment variables
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	cfg := NewDefault()
	err := cfg.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	// Verify loaded values
	if cfg.Global.LogLevel != "ERROR" {
		t.Errorf("Expected LogLevel to be ERROR, got %s", cfg.Global.LogLevel)
	}
	if cfg.Service.Address != "localhost:9000" || cfg.Service.Volume != TestVolume {
		t.Errorf("unexpected service section: %+v", cfg.Service)
	}
	if cfg.Service.RootCerts != "/etc/ssl/ca.pem" {
		t.Errorf("Expected RootCerts from env, got %s", cfg.Service.RootCerts)
	}
	if cfg.Service.Timeout != 250*time.Millisecond {
		t.Errorf("Expected Timeout to be 250ms, got %v", cfg.Service.Timeout)
	}
	if !cfg.Service.AsyncWrites {
		t.Error("Expected AsyncWrites to be true")
	}
	if cfg.Mount.MountPoint != "/mnt/x" {
		t.Errorf("Expected MountPoint /mnt/x, got %s", cfg.Mount.MountPoint)
	}
	if !cfg.Monitoring.Metrics.Enabled || cfg.Monitoring.Metrics.Port != 9100 {
		t.Errorf("unexpected metrics section: %+v", cfg.Monitoring.Metrics)
	}
	if cfg.Storage.S3.Region != "eu-central-1" {
		t.Errorf("Expected S3 region eu-central-1, got %s", cfg.Storage.S3.Region)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("POSIXFS_TIMEOUT", "soon")
	if err := NewDefault().LoadFromEnv(); err == nil {
		t.Error("Expected error for an unparsable timeout")
	}
}

func TestSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "subdir", "saved_config.yaml")

	cfg := NewDefault()
	cfg.Global.LogLevel = TestDebugLevel
	cfg.Service.Volume = TestVolume
	cfg.Mount.Fuse.Extra = []string{"ro"}

	err := cfg.SaveToFile(configFile)
	if err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	info, err := os.Stat(configFile)
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Config file mode = %o, want 600", perm)
	}

	// Load the saved config and verify
	newCfg := NewDefault()
	if err := newCfg.LoadFromFile(configFile); err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if !reflect.DeepEqual(cfg, newCfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", newCfg, cfg)
	}
}

func TestFuseOptions(t *testing.T) {
	opts := NewDefault().Mount.Fuse.Options()
	want := []string{
		"allow_other",
		"big_writes",
		"default_permissions",
		"fsname=paciofs",
		"max_readahead=1048576",
		"max_write=131072",
		"noatime",
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("Options() = %v, want %v", opts, want)
	}
}

func TestApplyOption(t *testing.T) {
	tests := []struct {
		opt     string
		check   func(FuseOptions) bool
		wantErr bool
	}{
		{"fsname=pacio2", func(f FuseOptions) bool { return f.FSName == "pacio2" }, false},
		{"max_write=65536", func(f FuseOptions) bool { return f.MaxWrite == 65536 }, false},
		{"max_readahead=0", func(f FuseOptions) bool { return f.MaxReadahead == 0 }, false},
		{"debug", func(f FuseOptions) bool { return f.Debug }, false},
		{"allow_other=false", func(f FuseOptions) bool { return !f.AllowOther && len(f.Extra) == 0 }, false},
		{"noatime=0", func(f FuseOptions) bool { return !f.NoAtime }, false},
		{"big_writes=true", func(f FuseOptions) bool { return f.BigWrites }, false},
		{"noatime=bogus", nil, true},
		{"default_permissions=", nil, true},
		{"uid=1000", func(f FuseOptions) bool { return len(f.Extra) == 1 && f.Extra[0] == "uid=1000" }, false},
		{"max_write=big", nil, true},
		{"fsname", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.opt, func(t *testing.T) {
			f := NewDefault().Mount.Fuse
			err := f.ApplyOption(tt.opt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyOption(%q) error = %v, wantErr %v", tt.opt, err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(f) {
				t.Errorf("ApplyOption(%q) produced %+v", tt.opt, f)
			}
		})
	}
}
