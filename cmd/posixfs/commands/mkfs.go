package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/objectfs/posixfs/internal/client"
	"github.com/objectfs/posixfs/pkg/errors"
)

var mkfsCmd = &cobra.Command{
	Use:   "mkfs <address> <volume>",
	Short: "Create a PacioFS volume",
	Long: `Create <volume> on the PacioFS service at <address> and print the name
the service reports.

Examples:
  posixfs mkfs localhost:8080 volume1`,
	Args: cobra.ExactArgs(2),
	RunE: runMkfs,
}

func init() {
	addServiceFlags(mkfsCmd)
}

func runMkfs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Service.Address = args[0]
	cfg.Service.Volume = args[1]
	applyServiceFlags(cmd, &cfg.Service)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeVolumeName, "invalid configuration").
			WithComponent("cli").WithOperation("mkfs")
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

	volumes := client.NewVolumeClient(conn, 0, logger)
	if !volumes.Ping(ctx) {
		return errors.NewError(errors.ErrCodeServiceUnreach, "service is unreachable").
			WithComponent("cli").WithOperation("mkfs").WithContext("address", cfg.Service.Address)
	}

	name, err := volumes.CreateVolume(ctx, cfg.Service.Volume)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeVolumeCreate, "failed to create volume").
			WithComponent("cli").WithOperation("mkfs").WithContext("volume", cfg.Service.Volume)
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
