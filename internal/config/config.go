package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Configuration represents the complete application configuration
type Configuration struct {
	Global     GlobalConfig     `yaml:"global"`
	Service    ServiceConfig    `yaml:"service"`
	Network    NetworkConfig    `yaml:"network"`
	Storage    StorageConfig    `yaml:"storage"`
	Mount      MountConfig      `yaml:"mount"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// GlobalConfig represents global application settings
type GlobalConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	LogFormat string `yaml:"log_format"`
}

// ServiceConfig describes the PacioFS endpoint and the volume to use.
// CertChain, PrivateKey and RootCerts are PEM sources: a file path or an
// s3://bucket/key URI. Any of them set enables TLS.
type ServiceConfig struct {
	Address     string        `yaml:"address"`
	Volume      string        `yaml:"volume"`
	CertChain   string        `yaml:"cert_chain"`
	PrivateKey  string        `yaml:"private_key"`
	RootCerts   string        `yaml:"root_certs"`
	Timeout     time.Duration `yaml:"timeout"`
	AsyncWrites bool          `yaml:"async_writes"`
}

// TLSEnabled reports whether any PEM source is configured.
func (s ServiceConfig) TLSEnabled() bool {
	return s.CertChain != "" || s.PrivateKey != "" || s.RootCerts != ""
}

// NetworkConfig represents network configuration
type NetworkConfig struct {
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// CircuitBreakerConfig represents circuit breaker settings
type CircuitBreakerConfig struct {
	Enabled          bool          `yaml:"enabled"`
	FailureThreshold int           `yaml:"failure_threshold"`
	Timeout          time.Duration `yaml:"timeout"`
}

// StorageConfig holds object storage settings used to fetch s3:// PEM
// sources.
type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

// S3Config represents S3 client settings. Static keys are optional; the
// default AWS credential chain is used without them.
type S3Config struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// MountConfig represents mount settings
type MountConfig struct {
	MountPoint string      `yaml:"mount_point"`
	Fuse       FuseOptions `yaml:"fuse"`
}

// FuseOptions are the options handed to the kernel on mount.
type FuseOptions struct {
	FSName             string        `yaml:"fsname"`
	AllowOther         bool          `yaml:"allow_other"`
	BigWrites          bool          `yaml:"big_writes"`
	DefaultPermissions bool          `yaml:"default_permissions"`
	NoAtime            bool          `yaml:"noatime"`
	MaxReadahead       int           `yaml:"max_readahead"`
	MaxWrite           int           `yaml:"max_write"`
	Debug              bool          `yaml:"debug"`
	AttrTimeout        time.Duration `yaml:"attr_timeout"`
	EntryTimeout       time.Duration `yaml:"entry_timeout"`
	Extra              []string      `yaml:"extra"`
}

// MonitoringConfig represents monitoring settings
type MonitoringConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// MetricsConfig represents metrics settings
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Port      int    `yaml:"port"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// TracingConfig represents OTLP tracing settings
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Endpoint   string  `yaml:"endpoint"`
	Insecure   bool    `yaml:"insecure"`
	SampleRate float64 `yaml:"sample_rate"`
}

// NewDefault returns a configuration with sensible defaults
func NewDefault() *Configuration {
	return &Configuration{
		Global: GlobalConfig{
			LogLevel:  "INFO",
			LogFile:   "stdout",
			LogFormat: "text",
		},
		Network: NetworkConfig{
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:          false,
				FailureThreshold: 5,
				Timeout:          30 * time.Second,
			},
		},
		Storage: StorageConfig{
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Mount: MountConfig{
			Fuse: FuseOptions{
				FSName:             "paciofs",
				AllowOther:         true,
				BigWrites:          true,
				DefaultPermissions: true,
				NoAtime:            true,
				MaxReadahead:       1048576,
				MaxWrite:           131072,
			},
		},
		Monitoring: MonitoringConfig{
			Metrics: MetricsConfig{
				Enabled:   false,
				Port:      9464,
				Path:      "/metrics",
				Namespace: "posixfs",
			},
			Tracing: TracingConfig{
				Enabled:    false,
				Endpoint:   "localhost:4317",
				Insecure:   true,
				SampleRate: 1.0,
			},
		},
	}
}

// LoadFromFile loads configuration from a YAML file
func (c *Configuration) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// LoadFromEnv loads configuration from environment variables
func (c *Configuration) LoadFromEnv() error {
	// Global settings
	if val := os.Getenv("POSIXFS_LOG_LEVEL"); val != "" {
		c.Global.LogLevel = val
	}
	if val := os.Getenv("POSIXFS_LOG_FILE"); val != "" {
		c.Global.LogFile = val
	}
	if val := os.Getenv("POSIXFS_LOG_FORMAT"); val != "" {
		c.Global.LogFormat = val
	}

	// Service settings
	if val := os.Getenv("POSIXFS_ADDRESS"); val != "" {
		c.Service.Address = val
	}
	if val := os.Getenv("POSIXFS_VOLUME"); val != "" {
		c.Service.Volume = val
	}
	if val := os.Getenv("POSIXFS_CERT_CHAIN"); val != "" {
		c.Service.CertChain = val
	}
	if val := os.Getenv("POSIXFS_PRIVATE_KEY"); val != "" {
		c.Service.PrivateKey = val
	}
	if val := os.Getenv("POSIXFS_ROOT_CERTS"); val != "" {
		c.Service.RootCerts = val
	}
	if val := os.Getenv("POSIXFS_TIMEOUT"); val != "" {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid POSIXFS_TIMEOUT: %w", err)
		}
		c.Service.Timeout = duration
	}
	if val := os.Getenv("POSIXFS_ASYNC_WRITES"); val != "" {
		c.Service.AsyncWrites = strings.ToLower(val) == "true"
	}

	// Storage settings
	if val := os.Getenv("POSIXFS_S3_REGION"); val != "" {
		c.Storage.S3.Region = val
	}
	if val := os.Getenv("POSIXFS_S3_ENDPOINT"); val != "" {
		c.Storage.S3.Endpoint = val
	}
	if val := os.Getenv("POSIXFS_S3_ACCESS_KEY_ID"); val != "" {
		c.Storage.S3.AccessKeyID = val
	}
	if val := os.Getenv("POSIXFS_S3_SECRET_ACCESS_KEY"); val != "" {
		c.Storage.S3.SecretAccessKey = val
	}

	// Mount settings
	if val := os.Getenv("POSIXFS_MOUNT_POINT"); val != "" {
		c.Mount.MountPoint = val
	}

	// Monitoring settings
	if val := os.Getenv("POSIXFS_METRICS_ENABLED"); val != "" {
		c.Monitoring.Metrics.Enabled = strings.ToLower(val) == "true"
	}
	if val := os.Getenv("POSIXFS_METRICS_PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid POSIXFS_METRICS_PORT: %w", err)
		}
		c.Monitoring.Metrics.Port = port
	}
	if val := os.Getenv("POSIXFS_TRACING_ENABLED"); val != "" {
		c.Monitoring.Tracing.Enabled = strings.ToLower(val) == "true"
	}
	if val := os.Getenv("POSIXFS_TRACING_ENDPOINT"); val != "" {
		c.Monitoring.Tracing.Endpoint = val
	}

	return nil
}

// SaveToFile saves the configuration to a YAML file
func (c *Configuration) SaveToFile(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks settings shared by every command.
func (c *Configuration) Validate() error {
	validLogLevels := []string{"TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR", "FATAL"}
	logLevelValid := false
	for _, level := range validLogLevels {
		if strings.EqualFold(c.Global.LogLevel, level) {
			logLevelValid = true
			break
		}
	}
	if !logLevelValid {
		return fmt.Errorf("invalid log_level: %s (must be one of: %s)",
			c.Global.LogLevel, strings.Join(validLogLevels, ", "))
	}

	switch strings.ToLower(c.Global.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log_format: %s (must be text or json)", c.Global.LogFormat)
	}

	if (c.Service.CertChain == "") != (c.Service.PrivateKey == "") {
		return fmt.Errorf("cert_chain and private_key must be set together")
	}

	if (c.Storage.S3.AccessKeyID == "") != (c.Storage.S3.SecretAccessKey == "") {
		return fmt.Errorf("s3 access_key_id and secret_access_key must be set together")
	}

	if c.Service.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	if c.Service.Volume != "" {
		if err := ValidateVolumeName(c.Service.Volume); err != nil {
			return err
		}
	}

	if cb := c.Network.CircuitBreaker; cb.Enabled {
		if cb.FailureThreshold <= 0 {
			return fmt.Errorf("circuit_breaker.failure_threshold must be greater than 0")
		}
		if cb.Timeout <= 0 {
			return fmt.Errorf("circuit_breaker.timeout must be greater than 0")
		}
	}

	if c.Monitoring.Metrics.Enabled {
		if c.Monitoring.Metrics.Port <= 0 || c.Monitoring.Metrics.Port > 65535 {
			return fmt.Errorf("invalid metrics port: %d", c.Monitoring.Metrics.Port)
		}
		if !strings.HasPrefix(c.Monitoring.Metrics.Path, "/") {
			return fmt.Errorf("metrics path must start with /: %q", c.Monitoring.Metrics.Path)
		}
	}

	if rate := c.Monitoring.Tracing.SampleRate; rate < 0 || rate > 1 {
		return fmt.Errorf("tracing sample_rate must be within [0, 1], got %v", rate)
	}

	return nil
}

// ValidateForMount additionally requires everything a mount needs.
func (c *Configuration) ValidateForMount() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Service.Address == "" {
		return fmt.Errorf("service address is required")
	}
	if c.Service.Volume == "" {
		return fmt.Errorf("volume name is required")
	}
	if c.Mount.MountPoint == "" {
		return fmt.Errorf("mount point is required")
	}
	if c.Mount.Fuse.MaxWrite < 0 || c.Mount.Fuse.MaxReadahead < 0 {
		return fmt.Errorf("max_write and max_readahead cannot be negative")
	}
	return nil
}

// ValidateVolumeName rejects names that would corrupt the "<volume>:<path>"
// addressing.
func ValidateVolumeName(name string) error {
	if name == "" {
		return fmt.Errorf("volume name cannot be empty")
	}
	if strings.ContainsAny(name, ":/") {
		return fmt.Errorf("volume name %q must not contain ':' or '/'", name)
	}
	return nil
}

// Options renders the fuse settings as "-o" style options in a stable
// order, followed by Extra.
func (f FuseOptions) Options() []string {
	var opts []string
	if f.AllowOther {
		opts = append(opts, "allow_other")
	}
	if f.BigWrites {
		opts = append(opts, "big_writes")
	}
	if f.DefaultPermissions {
		opts = append(opts, "default_permissions")
	}
	if f.FSName != "" {
		opts = append(opts, "fsname="+f.FSName)
	}
	if f.MaxReadahead > 0 {
		opts = append(opts, "max_readahead="+strconv.Itoa(f.MaxReadahead))
	}
	if f.MaxWrite > 0 {
		opts = append(opts, "max_write="+strconv.Itoa(f.MaxWrite))
	}
	if f.NoAtime {
		opts = append(opts, "noatime")
	}
	return append(opts, f.Extra...)
}

// ApplyOption folds one "key[=value]" option into the typed fields. Boolean
// options given without a value are switched on. Options the typed fields do
// not cover are appended to Extra.
func (f *FuseOptions) ApplyOption(opt string) error {
	key, value, hasValue := strings.Cut(strings.TrimSpace(opt), "=")
	switch key {
	case "":
		return fmt.Errorf("empty fuse option")
	case "allow_other", "big_writes", "default_permissions", "noatime", "debug":
		on := true
		if hasValue {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid value for fuse option %s: %q", key, value)
			}
			on = b
		}
		switch key {
		case "allow_other":
			f.AllowOther = on
		case "big_writes":
			f.BigWrites = on
		case "default_permissions":
			f.DefaultPermissions = on
		case "noatime":
			f.NoAtime = on
		case "debug":
			f.Debug = on
		}
	case "fsname":
		if !hasValue || value == "" {
			return fmt.Errorf("fuse option fsname needs a value")
		}
		f.FSName = value
	case "max_readahead", "max_write":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid value for fuse option %s: %q", key, value)
		}
		if key == "max_write" {
			f.MaxWrite = n
		} else {
			f.MaxReadahead = n
		}
	default:
		f.Extra = append(f.Extra, opt)
	}
	return nil
}
