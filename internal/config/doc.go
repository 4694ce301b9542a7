/*
Package config provides configuration management for posixfs.

Settings come from three sources, later ones overriding earlier ones:

  - compiled-in defaults (NewDefault)
  - a YAML file (LoadFromFile)
  - POSIXFS_* environment variables (LoadFromEnv)

Command-line flags are applied on top by the commands themselves.

# Configuration Structure

Global Settings:
- Log level (TRACE..FATAL), log file ("stdout", "stderr" or a path) and format

Service Settings:
  - PacioFS endpoint address and volume name
  - PEM sources for the client certificate chain, private key and root bundle;
    each may be a local path or an s3://bucket/key URI
  - Optional per-call deadline and the async-writes switch

Network, Storage, Mount and Monitoring:
- Optional circuit breaker around the RPC channel
- S3 client settings used when a PEM source lives in object storage
- Mount point and FUSE options
- Prometheus metrics endpoint and OTLP tracing

# Usage Examples

	cfg := config.NewDefault()
	if err := cfg.LoadFromFile("/etc/posixfs/config.yaml"); err != nil {
		return err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return err
	}
	cfg.Service.Volume = "vol1"
	if err := cfg.ValidateForMount(); err != nil {
		return err
	}

Configuration file format:

	global:
	  log_level: INFO
	  log_file: stdout
	  log_format: text

	service:
	  address: paciofs.example.com:8443
	  volume: vol1
	  cert_chain: /etc/posixfs/client.pem
	  private_key: /etc/posixfs/client.key
	  root_certs: s3://pki/paciofs-ca.pem
	  timeout: 0s
	  async_writes: false

	mount:
	  mount_point: /mnt/paciofs
	  fuse:
	    fsname: paciofs
	    allow_other: true
	    big_writes: true
	    default_permissions: true
	    noatime: true
	    max_readahead: 1048576
	    max_write: 131072

Environment variable mapping:

	POSIXFS_LOG_LEVEL="DEBUG"
	POSIXFS_ADDRESS="localhost:8080"
	POSIXFS_VOLUME="vol1"
	POSIXFS_ROOT_CERTS="/etc/ssl/paciofs-ca.pem"
	POSIXFS_TIMEOUT="10s"
	POSIXFS_METRICS_ENABLED="true"

FUSE options given as "-o key=value" are folded in with FuseOptions.ApplyOption;
keys without a typed field are passed through unchanged.
*/
package config
