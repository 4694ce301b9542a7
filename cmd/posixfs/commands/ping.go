package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/objectfs/posixfs/internal/client"
	"github.com/objectfs/posixfs/pkg/errors"
)

var pingCmd = &cobra.Command{
	Use:   "ping <address>",
	Short: "Check that a PacioFS service is reachable",
	Long: `Send a Ping to the PacioFS service at <address> and report whether it
answered. The command exits with status 1 when the service is unreachable.

Examples:
  posixfs ping localhost:8080
  posixfs ping paciofs.example.com:443 --root-certs /etc/paciofs/ca.pem`,
	Args: cobra.ExactArgs(1),
	RunE: runPing,
}

func init() {
	addServiceFlags(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Service.Address = args[0]
	applyServiceFlags(cmd, &cfg.Service)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidConfig, "invalid configuration").WithComponent("cli")
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	conn, err := connect(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := oneShotContext(cmd.Context(), cfg.Service.Timeout)
	defer cancel()

	if !client.NewVolumeClient(conn, 0, logger).Ping(ctx) {
		return errors.NewError(errors.ErrCodeServiceUnreach, "service is unreachable").
			WithComponent("cli").WithOperation("ping").WithContext("address", cfg.Service.Address)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is reachable\n", cfg.Service.Address)
	return nil
}
