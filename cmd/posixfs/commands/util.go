package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/objectfs/posixfs/internal/circuit"
	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/internal/transport"
	"github.com/objectfs/posixfs/pkg/errors"
	"github.com/objectfs/posixfs/pkg/utils"
)

// commandTimeout bounds the one-shot ping and mkfs round trips when no
// service timeout is configured.
const commandTimeout = 10 * time.Second

// extraDialOptions are appended to every Dial. Tests point them at an
// in-process service.
var extraDialOptions []transport.Option

// loadConfig layers defaults, the config file, the environment and the
// global flags.
func loadConfig() (*config.Configuration, error) {
	cfg := config.NewDefault()
	if cfgFile != "" {
		if err := cfg.LoadFromFile(cfgFile); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "failed to load configuration").
				WithComponent("cli").WithContext("config", cfgFile)
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "invalid environment").
			WithComponent("cli")
	}

	if logLevel != "" {
		cfg.Global.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.Global.LogFile = logFile
	}
	if logFormat != "" {
		cfg.Global.LogFormat = logFormat
	}
	return cfg, nil
}

func setupLogging(cfg *config.Configuration) (*utils.StructuredLogger, error) {
	logger, err := utils.SetupLogging(cfg.Global.LogLevel, cfg.Global.LogFile, cfg.Global.LogFormat)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "failed to set up logging").
			WithComponent("cli")
	}
	return logger, nil
}

// applyServiceFlags copies the TLS and timeout flags that were set on cmd.
func applyServiceFlags(cmd *cobra.Command, svc *config.ServiceConfig) {
	flags := cmd.Flags()
	if flags.Changed("cert-chain") {
		svc.CertChain, _ = flags.GetString("cert-chain")
	}
	if flags.Changed("private-key") {
		svc.PrivateKey, _ = flags.GetString("private-key")
	}
	if flags.Changed("root-certs") {
		svc.RootCerts, _ = flags.GetString("root-certs")
	}
	if flags.Changed("timeout") {
		svc.Timeout, _ = flags.GetDuration("timeout")
	}
}

func addServiceFlags(cmd *cobra.Command) {
	cmd.Flags().String("cert-chain", "", "client certificate chain (PEM file or s3://bucket/key)")
	cmd.Flags().String("private-key", "", "client private key (PEM file or s3://bucket/key)")
	cmd.Flags().String("root-certs", "", "trusted root certificates (PEM file or s3://bucket/key)")
	cmd.Flags().Duration("timeout", 0, "per-call deadline, 0 for none")
}

// connect dials the configured service, with a circuit breaker when
// enabled.
func connect(ctx context.Context, cfg *config.Configuration, logger *utils.StructuredLogger) (*grpc.ClientConn, error) {
	opts := []transport.Option{
		transport.WithLogger(logger),
		transport.WithPEMLoader(transport.NewPEMLoader(cfg.Storage.S3)),
	}

	if cb := cfg.Network.CircuitBreaker; cb.Enabled {
		log := logger.WithComponent("circuit")
		breaker := circuit.New("paciofs", circuit.GRPCConfig(uint32(cb.FailureThreshold), circuit.Config{
			Timeout: cb.Timeout,
			OnStateChange: func(name string, from, to circuit.State) {
				log.Warn("circuit breaker state changed", map[string]interface{}{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				})
			},
		}))
		opts = append(opts, transport.WithCircuitBreaker(breaker))
	}

	opts = append(opts, extraDialOptions...)
	return transport.Dial(ctx, cfg.Service, opts...)
}

func oneShotContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = commandTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
