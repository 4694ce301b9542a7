package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"

	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/pkg/utils"
	"github.com/objectfs/posixfs/pkg/wire"
)

// VolumeClient talks to the volume administration service.
type VolumeClient struct {
	rpc     wire.PacioFsServiceClient
	timeout time.Duration
	log     *utils.StructuredLogger
}

// NewVolumeClient returns a client over cc. A zero timeout means no
// deadline.
func NewVolumeClient(cc grpc.ClientConnInterface, timeout time.Duration, logger *utils.StructuredLogger) *VolumeClient {
	if logger == nil {
		logger = utils.DefaultLogger()
	}
	return &VolumeClient{
		rpc:     wire.NewPacioFsServiceClient(cc),
		timeout: timeout,
		log:     logger.WithComponent("volume"),
	}
}

func (v *VolumeClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if v.timeout > 0 {
		return context.WithTimeout(ctx, v.timeout)
	}
	return context.WithCancel(ctx)
}

// Ping reports whether the service answers.
func (v *VolumeClient) Ping(ctx context.Context) bool {
	ctx, cancel := v.withTimeout(ctx)
	defer cancel()

	if _, err := v.rpc.Ping(ctx, &wire.PingRequest{}); err != nil {
		v.log.Warn("ping failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	return true
}

// CreateVolume creates name and returns the name the service reports.
func (v *VolumeClient) CreateVolume(ctx context.Context, name string) (string, error) {
	if err := config.ValidateVolumeName(name); err != nil {
		return "", err
	}

	ctx, cancel := v.withTimeout(ctx)
	defer cancel()

	resp, err := v.rpc.CreateVolume(ctx, &wire.CreateVolumeRequest{Volume: &wire.Volume{Name: name}})
	if err != nil {
		v.log.Warn("create volume failed", map[string]interface{}{"volume": name, "error": err.Error()})
		return "", &TransportError{Op: "create_volume", Err: err}
	}
	if resp.Volume == nil || resp.Volume.Name == "" {
		return "", &TransportError{Op: "create_volume", Err: fmt.Errorf("response carries no volume")}
	}

	v.log.Info("volume created", map[string]interface{}{"volume": resp.Volume.Name})
	return resp.Volume.Name, nil
}
