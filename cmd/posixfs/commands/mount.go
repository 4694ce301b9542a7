package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/objectfs/posixfs/internal/client"
	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/internal/fuse"
	"github.com/objectfs/posixfs/internal/metrics"
	"github.com/objectfs/posixfs/internal/telemetry"
	"github.com/objectfs/posixfs/pkg/errors"
	"github.com/objectfs/posixfs/pkg/utils"
)

var (
	mountVolume      string
	mountOptions     []string
	mountAsyncWrites bool
)

var mountCmd = &cobra.Command{
	Use:   "mount <address> <mount-point>",
	Short: "Mount a PacioFS volume",
	Long: `Mount the volume given by --volume from the PacioFS service at <address>
on <mount-point>. The mount point must be an existing empty directory.

The command serves the filesystem in the foreground until it receives
SIGINT, SIGTERM or SIGHUP, then unmounts.

Examples:
  posixfs mount localhost:8080 /mnt/pacio --volume volume1
  posixfs mount localhost:8080 /mnt/pacio --volume volume1 -o allow_other=false -o max_write=65536
  posixfs mount paciofs:443 /mnt/pacio --volume volume1 \
    --root-certs s3://pki/paciofs/ca.pem --cert-chain client.pem --private-key client.key`,
	Args: cobra.ExactArgs(2),
	RunE: runMount,
}

func init() {
	mountCmd.Flags().StringVar(&mountVolume, "volume", "", "volume to mount")
	mountCmd.Flags().StringArrayVarP(&mountOptions, "option", "o", nil, "fuse option key[=value], repeatable")
	mountCmd.Flags().BoolVar(&mountAsyncWrites, "async-writes", false, "request asynchronous writes")
	addServiceFlags(mountCmd)
}

// mountConfig builds and validates the configuration for a mount.
func mountConfig(cmd *cobra.Command, args []string) (*config.Configuration, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	cfg.Service.Address = args[0]
	cfg.Mount.MountPoint = args[1]
	if cmd.Flags().Changed("volume") {
		cfg.Service.Volume = mountVolume
	}
	if cmd.Flags().Changed("async-writes") {
		cfg.Service.AsyncWrites = mountAsyncWrites
	}
	applyServiceFlags(cmd, &cfg.Service)

	for _, opt := range mountOptions {
		if err := cfg.Mount.Fuse.ApplyOption(opt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "invalid fuse option").
				WithComponent("cli").WithContext("option", opt)
		}
	}

	if err := cfg.ValidateForMount(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "invalid configuration").
			WithComponent("cli").WithOperation("mount")
	}
	return cfg, nil
}

func runMount(cmd *cobra.Command, args []string) error {
	cfg, err := mountConfig(cmd, args)
	if err != nil {
		return err
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()
	log := logger.WithComponent("cli")

	if err := fuse.ValidateMountPoint(cfg.Mount.MountPoint); err != nil {
		log.Error("invalid mount point", map[string]interface{}{"error": err.Error()})
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	collector, err := metrics.NewCollector(cfg.Monitoring.Metrics, logger)
	if err != nil {
		return err
	}
	if err := collector.Start(ctx); err != nil {
		return err
	}
	defer stopMetrics(collector, log)

	shutdownTracing, err := telemetry.Init(ctx, cfg.Monitoring.Tracing, Version)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidConfig, "failed to initialize tracing").WithComponent("cli")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error("tracing shutdown error", map[string]interface{}{"error": err.Error()})
		}
	}()

	conn, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	posixClient, err := client.NewPosixClient(conn, client.Options{
		Volume:      cfg.Service.Volume,
		AsyncWrites: cfg.Service.AsyncWrites,
		Timeout:     cfg.Service.Timeout,
		Logger:      logger,
		Recorder:    collector,
	})
	if err != nil {
		return err
	}
	defer posixClient.Close()

	pingCtx, pingCancel := oneShotContext(ctx, cfg.Service.Timeout)
	reachable := posixClient.Ping(pingCtx)
	pingCancel()
	if !reachable {
		log.Error("service is unreachable", map[string]interface{}{"address": cfg.Service.Address})
		return errors.NewError(errors.ErrCodeServiceUnreach, "service is unreachable").
			WithComponent("cli").WithOperation("mount").WithContext("address", cfg.Service.Address)
	}

	// Modes arrive from the host already masked by the caller's umask.
	unix.Umask(0)

	mm := fuse.NewMountManager(fuse.NewOperations(posixClient), cfg.Mount, logger)
	if err := mm.Mount(ctx); err != nil {
		return err
	}
	log.Info("serving", map[string]interface{}{
		"address":      cfg.Service.Address,
		"volume":       cfg.Service.Volume,
		"mount_point":  cfg.Mount.MountPoint,
		"backend":      fuse.Backend,
		"async_writes": cfg.Service.AsyncWrites,
		"tls":          cfg.Service.TLSEnabled(),
	})

	served := make(chan struct{})
	go func() {
		mm.Wait()
		close(served)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		log.Info("shutdown signal received", map[string]interface{}{"signal": sig.String()})
		if err := mm.Unmount(); err != nil {
			log.Error("unmount failed", map[string]interface{}{"error": err.Error()})
			return err
		}
		<-served
	case <-served:
		log.Info("filesystem was unmounted externally")
	}

	collector.LogSummary()
	return nil
}

func stopMetrics(c *metrics.Collector, log *utils.StructuredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Stop(ctx); err != nil {
		log.Warn("metrics server shutdown error", map[string]interface{}{"error": err.Error()})
	}
}
