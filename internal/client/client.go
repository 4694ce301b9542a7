// Package client is the PacioFS RPC client: one blocking method per POSIX
// operation, each bound to a single volume. Methods speak wire modes and
// return either nil, a remote wire.Errno, or a *TransportError that reports
// as wire.EIO.
package client

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/internal/telemetry"
	"github.com/objectfs/posixfs/pkg/errors"
	"github.com/objectfs/posixfs/pkg/utils"
	"github.com/objectfs/posixfs/pkg/wire"
)

// Recorder receives per-call measurements. *metrics.Collector satisfies it.
type Recorder interface {
	RecordCall(op string, errno wire.Errno, d time.Duration)
	RecordTransportFailure(op string, d time.Duration)
	RecordBytesRead(n int)
	RecordBytesWritten(n int)
	WriteStarted()
	WriteFinished()
}

type nopRecorder struct{}

func (nopRecorder) RecordCall(string, wire.Errno, time.Duration) {}
func (nopRecorder) RecordTransportFailure(string, time.Duration) {}
func (nopRecorder) RecordBytesRead(int)                          {}
func (nopRecorder) RecordBytesWritten(int)                       {}
func (nopRecorder) WriteStarted()                                {}
func (nopRecorder) WriteFinished()                               {}

// DefaultQueueCapacity is the completion queue buffer used by NewPosixClient.
const DefaultQueueCapacity = 64

// maxTransferSize is the largest buffer a single read or write can carry:
// the wire size field is 32 bits.
const maxTransferSize = math.MaxUint32

// Options configures a PosixClient.
type Options struct {
	// Volume every path is qualified with. Required.
	Volume string

	// AsyncWrites selects the unimplemented asynchronous write mode; writes
	// then fail with ENOSYS.
	AsyncWrites bool

	// Timeout bounds each call. Zero means no deadline.
	Timeout time.Duration

	Logger   *utils.StructuredLogger
	Recorder Recorder
	Tracer   trace.Tracer
}

// PosixClient issues POSIX operations against one volume. It is safe for
// concurrent use.
type PosixClient struct {
	rpc        wire.PosixIoServiceClient
	normalizer PathNormalizer
	writes     *writeCoordinator
	queue      *CompletionQueue
	async      bool
	timeout    time.Duration
	log        *utils.StructuredLogger
	recorder   Recorder
	tracer     trace.Tracer
	maxIO      uint64
	closeOnce  sync.Once
}

// NewPosixClient binds a client to cc and opts.Volume. cc is not owned by
// the client.
func NewPosixClient(cc grpc.ClientConnInterface, opts Options) (*PosixClient, error) {
	if err := config.ValidateVolumeName(opts.Volume); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVolumeName, "invalid volume name").
			WithComponent("client").WithOperation("new")
	}
	if opts.Timeout < 0 {
		return nil, errors.NewError(errors.ErrCodeInvalidConfig, "timeout cannot be negative").
			WithComponent("client").WithOperation("new")
	}
	if opts.Logger == nil {
		opts.Logger = utils.DefaultLogger()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Tracer()
	}

	log := opts.Logger.WithComponent("client").WithField("volume", opts.Volume)
	rpc := wire.NewPosixIoServiceClient(cc)
	queue := NewCompletionQueue(DefaultQueueCapacity)

	c := &PosixClient{
		rpc:        rpc,
		normalizer: NewPathNormalizer(opts.Volume),
		queue:      queue,
		async:      opts.AsyncWrites,
		timeout:    opts.Timeout,
		log:        log,
		recorder:   opts.Recorder,
		tracer:     opts.Tracer,
		maxIO:      maxTransferSize,
	}
	c.writes = newWriteCoordinator(queue, func(ctx context.Context, req *wire.WriteRequest) (*wire.WriteResponse, error) {
		return rpc.Write(ctx, req)
	}, log, opts.Recorder)
	return c, nil
}

// Volume returns the bound volume name.
func (c *PosixClient) Volume() string { return c.normalizer.Volume() }

// Close shuts the completion queue down. Writes in flight and writes issued
// afterwards fail with EIO. The connection is left open.
func (c *PosixClient) Close() error {
	c.closeOnce.Do(func() {
		c.queue.Shutdown()
		c.log.Info("client closed", map[string]interface{}{"pending_writes": c.writes.inFlight()})
	})
	return nil
}

// call tracks one round trip from request to result.
type call struct {
	c      *PosixClient
	op     string
	path   string
	ctx    context.Context
	cancel context.CancelFunc
	span   trace.Span
	start  time.Time
}

func (c *PosixClient) begin(ctx context.Context, op, path string, attrs ...attribute.KeyValue) *call {
	if ctx == nil {
		ctx = context.Background()
	}
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	attrs = append(attrs,
		attribute.String(telemetry.AttrOperation, op),
		attribute.String(telemetry.AttrVolume, c.normalizer.Volume()),
	)
	if path != "" {
		attrs = append(attrs, attribute.String(telemetry.AttrPath, path))
	}
	ctx, span := c.tracer.Start(ctx, "posixfs."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	return &call{c: c, op: op, path: path, ctx: ctx, cancel: cancel, span: span, start: time.Now()}
}

// end finishes a call that produced a remote result.
func (r *call) end(errno wire.Errno) error {
	d := time.Since(r.start)
	r.span.SetAttributes(attribute.String(telemetry.AttrErrno, errno.String()))
	if !errno.OK() {
		r.span.SetStatus(otelcodes.Error, errno.String())
	}
	r.span.End()
	r.cancel()

	r.c.recorder.RecordCall(r.op, errno, d)
	if r.c.log.Enabled(utils.DEBUG) {
		r.c.log.Debug("rpc completed", map[string]interface{}{
			"op":       r.op,
			"path":     r.path,
			"errno":    errno.String(),
			"duration": d.String(),
		})
	}
	return remote(errno)
}

// fail finishes a call that never produced a remote result.
func (r *call) fail(err error) error {
	d := time.Since(r.start)
	r.span.RecordError(err)
	r.span.SetStatus(otelcodes.Error, err.Error())
	r.span.End()
	r.cancel()

	r.c.recorder.RecordTransportFailure(r.op, d)
	r.c.log.Warn("rpc transport failure", map[string]interface{}{
		"op":       r.op,
		"path":     r.path,
		"code":     status.Code(err).String(),
		"error":    err.Error(),
		"duration": d.String(),
	})
	return &TransportError{Op: r.op, Err: err}
}

// Ping reports whether the service answers.
func (c *PosixClient) Ping(ctx context.Context) bool {
	r := c.begin(ctx, "ping", "")
	if _, err := c.rpc.Ping(r.ctx, &wire.PingRequest{}); err != nil {
		_ = r.fail(err)
		return false
	}
	_ = r.end(wire.ESUCCESS)
	return true
}

// Stat returns the stat record of path. The mode is in wire layout.
func (c *PosixClient) Stat(ctx context.Context, path string) (*wire.Stat, error) {
	r := c.begin(ctx, "stat", c.normalizer.Normalize(path))
	resp, err := c.rpc.Stat(r.ctx, &wire.StatRequest{Path: r.path})
	if err != nil {
		return nil, r.fail(err)
	}
	if err := r.end(resp.Error); err != nil {
		return nil, err
	}
	if resp.Stat == nil {
		return &wire.Stat{}, nil
	}
	return resp.Stat, nil
}

// MkNod creates a node of the type and permissions in mode.
func (c *PosixClient) MkNod(ctx context.Context, path string, mode wire.Mode, dev int32) error {
	r := c.begin(ctx, "mknod", c.normalizer.Normalize(path))
	resp, err := c.rpc.MkNod(r.ctx, &wire.MkNodRequest{Path: r.path, Mode: mode, Dev: dev})
	if err != nil {
		return r.fail(err)
	}
	return r.end(resp.Error)
}

// MkDir creates a directory.
func (c *PosixClient) MkDir(ctx context.Context, path string, mode wire.Mode) error {
	r := c.begin(ctx, "mkdir", c.normalizer.Normalize(path))
	resp, err := c.rpc.MkDir(r.ctx, &wire.MkDirRequest{Path: r.path, Mode: mode})
	if err != nil {
		return r.fail(err)
	}
	return r.end(resp.Error)
}

// ChMod changes permission bits.
func (c *PosixClient) ChMod(ctx context.Context, path string, mode wire.Mode) error {
	r := c.begin(ctx, "chmod", c.normalizer.Normalize(path))
	resp, err := c.rpc.ChMod(r.ctx, &wire.ChModRequest{Path: r.path, Mode: mode})
	if err != nil {
		return r.fail(err)
	}
	return r.end(resp.Error)
}

// ChOwn changes the owner and group.
func (c *PosixClient) ChOwn(ctx context.Context, path string, uid, gid uint32) error {
	r := c.begin(ctx, "chown", c.normalizer.Normalize(path))
	resp, err := c.rpc.ChOwn(r.ctx, &wire.ChOwnRequest{Path: r.path, Uid: uid, Gid: gid})
	if err != nil {
		return r.fail(err)
	}
	return r.end(resp.Error)
}

// Open opens path and returns the service's file handle.
func (c *PosixClient) Open(ctx context.Context, path string, flags int32) (uint64, error) {
	r := c.begin(ctx, "open", c.normalizer.Normalize(path))
	resp, err := c.rpc.Open(r.ctx, &wire.OpenRequest{Path: r.path, Flags: flags})
	if err != nil {
		return 0, r.fail(err)
	}
	if err := r.end(resp.Error); err != nil {
		return 0, err
	}
	return resp.Fh, nil
}

// Read reads up to len(buf) bytes at offset into buf. It returns 0 at end
// of file. Buffers larger than the wire size field fail with EINVAL.
func (c *PosixClient) Read(ctx context.Context, path string, buf []byte, offset int64, fh uint64) (int, error) {
	if uint64(len(buf)) > c.maxIO {
		return 0, wire.EINVAL
	}
	r := c.begin(ctx, "read", c.normalizer.Normalize(path),
		attribute.Int64(telemetry.AttrOffset, offset),
		attribute.Int(telemetry.AttrCount, len(buf)),
	)
	req := &wire.ReadRequest{Path: r.path, Size: uint32(len(buf)), Offset: offset, Fh: fh}
	resp, err := c.rpc.Read(r.ctx, req)
	if err != nil {
		return 0, r.fail(err)
	}
	if resp.N > req.Size {
		return 0, r.fail(fmt.Errorf("%w: read %d of %d", ErrResponseTooLarge, resp.N, req.Size))
	}
	if resp.Error.OK() && uint32(len(resp.Buf)) < resp.N {
		return 0, r.fail(fmt.Errorf("read response carries %d bytes but reports %d", len(resp.Buf), resp.N))
	}
	if err := r.end(resp.Error); err != nil {
		return 0, err
	}

	n := copy(buf, resp.Buf[:resp.N])
	c.recorder.RecordBytesRead(n)
	return n, nil
}

// Write writes buf at offset and returns the count the service accepted.
// Buffers larger than the wire size field fail with EINVAL.
func (c *PosixClient) Write(ctx context.Context, path string, buf []byte, offset int64, fh uint64) (int, error) {
	if c.async {
		c.log.Debug("asynchronous write not supported", map[string]interface{}{"path": path})
		return 0, wire.ENOSYS
	}
	if uint64(len(buf)) > c.maxIO {
		return 0, wire.EINVAL
	}

	r := c.begin(ctx, "write", c.normalizer.Normalize(path),
		attribute.Int64(telemetry.AttrOffset, offset),
		attribute.Int(telemetry.AttrCount, len(buf)),
	)
	req := &wire.WriteRequest{Path: r.path, Buf: buf, Size: uint32(len(buf)), Offset: offset, Fh: fh}
	resp, err := c.writes.write(r.ctx, req)
	if err != nil {
		return 0, r.fail(err)
	}
	if resp.N > req.Size {
		return 0, r.fail(fmt.Errorf("%w: wrote %d of %d", ErrResponseTooLarge, resp.N, req.Size))
	}
	if err := r.end(resp.Error); err != nil {
		return 0, err
	}

	c.recorder.RecordBytesWritten(int(resp.N))
	return int(resp.N), nil
}

// ReadDir returns the entry names of path in service order.
func (c *PosixClient) ReadDir(ctx context.Context, path string) ([]string, error) {
	r := c.begin(ctx, "readdir", c.normalizer.Normalize(path))
	resp, err := c.rpc.ReadDir(r.ctx, &wire.ReadDirRequest{Path: r.path})
	if err != nil {
		return nil, r.fail(err)
	}
	if err := r.end(resp.Error); err != nil {
		return nil, err
	}

	names := make([]string, len(resp.Dirs))
	for i, d := range resp.Dirs {
		names[i] = d.Name
	}
	return names, nil
}

// Create creates and opens a regular file.
func (c *PosixClient) Create(ctx context.Context, path string, mode wire.Mode, flags int32) (uint64, error) {
	r := c.begin(ctx, "create", c.normalizer.Normalize(path))
	resp, err := c.rpc.Create(r.ctx, &wire.CreateRequest{Path: r.path, Mode: mode, Flags: flags})
	if err != nil {
		return 0, r.fail(err)
	}
	if err := r.end(resp.Error); err != nil {
		return 0, err
	}
	return resp.Fh, nil
}
