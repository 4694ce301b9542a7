package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/pkg/utils"
	"github.com/objectfs/posixfs/pkg/wire"
)

// Collector records client RPC metrics on a private registry. A disabled
// collector accepts every call and records nothing.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry
	logger   *utils.StructuredLogger

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytes             *prometheus.CounterVec
	transportFailures *prometheus.CounterVec
	writesInFlight    prometheus.Gauge

	mu      sync.Mutex
	summary map[string]*OperationStats
	started time.Time

	server *http.Server
}

// OperationStats is the running summary for one operation.
type OperationStats struct {
	Count             int64         `json:"count"`
	RemoteErrors      int64         `json:"remote_errors"`
	TransportFailures int64         `json:"transport_failures"`
	TotalDuration     time.Duration `json:"total_duration"`
}

// AvgDuration is the mean call duration.
func (s OperationStats) AvgDuration() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// NewCollector creates a collector from cfg.
func NewCollector(cfg config.MetricsConfig, logger *utils.StructuredLogger) (*Collector, error) {
	if logger == nil {
		logger = utils.DefaultLogger()
	}
	c := &Collector{
		config:  cfg,
		logger:  logger.WithComponent("metrics"),
		summary: make(map[string]*OperationStats),
		started: time.Now(),
	}
	if !cfg.Enabled {
		return c, nil
	}

	c.registry = prometheus.NewRegistry()
	c.initMetrics()
	if err := c.registerMetrics(); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return c, nil
}

// Enabled reports whether metrics are recorded.
func (c *Collector) Enabled() bool { return c.registry != nil }

// Registry returns the private registry, nil when disabled.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the metrics endpoint and a health probe.
func (c *Collector) Handler() http.Handler {
	mux := http.NewServeMux()
	if c.registry != nil {
		mux.Handle(c.config.Path, promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}))
	}
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","service":"posixfs"}`))
	})
	return mux
}

// Start serves Handler on the configured port until Stop.
func (c *Collector) Start(_ context.Context) error {
	if !c.Enabled() {
		return nil
	}

	c.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", c.config.Port),
		Handler:           c.Handler(),
		ReadHeaderTimeout: 30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error("metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	c.logger.Info("metrics endpoint started", map[string]interface{}{
		"port": c.config.Port,
		"path": c.config.Path,
	})
	return nil
}

// Stop shuts the metrics server down.
func (c *Collector) Stop(ctx context.Context) error {
	if c.server != nil {
		return c.server.Shutdown(ctx)
	}
	return nil
}

// RecordCall records a completed round trip and the errno it returned.
func (c *Collector) RecordCall(op string, errno wire.Errno, d time.Duration) {
	c.mu.Lock()
	s := c.stats(op)
	s.Count++
	s.TotalDuration += d
	if !errno.OK() {
		s.RemoteErrors++
	}
	c.mu.Unlock()

	if !c.Enabled() {
		return
	}
	c.operations.With(prometheus.Labels{"operation": op, "errno": errno.String()}).Inc()
	c.operationDuration.With(prometheus.Labels{"operation": op}).Observe(d.Seconds())
}

// RecordTransportFailure records a call that never produced a remote result.
func (c *Collector) RecordTransportFailure(op string, d time.Duration) {
	c.mu.Lock()
	s := c.stats(op)
	s.Count++
	s.TotalDuration += d
	s.TransportFailures++
	c.mu.Unlock()

	if !c.Enabled() {
		return
	}
	c.transportFailures.With(prometheus.Labels{"operation": op}).Inc()
	c.operationDuration.With(prometheus.Labels{"operation": op}).Observe(d.Seconds())
}

// RecordBytesRead adds n to the bytes read counter.
func (c *Collector) RecordBytesRead(n int) {
	if c.Enabled() && n > 0 {
		c.bytes.With(prometheus.Labels{"direction": "read"}).Add(float64(n))
	}
}

// RecordBytesWritten adds n to the bytes written counter.
func (c *Collector) RecordBytesWritten(n int) {
	if c.Enabled() && n > 0 {
		c.bytes.With(prometheus.Labels{"direction": "write"}).Add(float64(n))
	}
}

// WriteStarted and WriteFinished track dispatched writes awaiting their
// completion event.
func (c *Collector) WriteStarted() {
	if c.Enabled() {
		c.writesInFlight.Inc()
	}
}

func (c *Collector) WriteFinished() {
	if c.Enabled() {
		c.writesInFlight.Dec()
	}
}

// Snapshot returns a copy of the per-operation summary, recorded even when
// the Prometheus side is disabled.
func (c *Collector) Snapshot() map[string]OperationStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]OperationStats, len(c.summary))
	for op, s := range c.summary {
		out[op] = *s
	}
	return out
}

// LogSummary writes one INFO line per operation seen since start.
func (c *Collector) LogSummary() {
	snap := c.Snapshot()
	ops := make([]string, 0, len(snap))
	for op := range snap {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	for _, op := range ops {
		s := snap[op]
		c.logger.Info("operation summary", map[string]interface{}{
			"operation":          op,
			"count":              s.Count,
			"remote_errors":      s.RemoteErrors,
			"transport_failures": s.TransportFailures,
			"avg_duration":       s.AvgDuration().String(),
			"uptime":             time.Since(c.started).Round(time.Second).String(),
		})
	}
}

// stats returns the summary entry for op. Callers hold c.mu.
func (c *Collector) stats(op string) *OperationStats {
	s, ok := c.summary[op]
	if !ok {
		s = &OperationStats{}
		c.summary[op] = s
	}
	return s
}

func (c *Collector) initMetrics() {
	ns := c.config.Namespace

	c.operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "rpc_operations_total",
			Help:      "Completed RPC round trips by operation and returned errno",
		},
		[]string{"operation", "errno"},
	)

	c.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16), // 0.5ms to ~16s
		},
		[]string{"operation"},
	)

	c.bytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "bytes_total",
			Help:      "Payload bytes moved by read and write",
		},
		[]string{"direction"},
	)

	c.transportFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "rpc_transport_failures_total",
			Help:      "Calls that failed before a remote result was decoded",
		},
		[]string{"operation"},
	)

	c.writesInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "writes_in_flight",
			Help:      "Dispatched writes awaiting their completion event",
		},
	)
}

func (c *Collector) registerMetrics() error {
	metrics := []prometheus.Collector{
		c.operations,
		c.operationDuration,
		c.bytes,
		c.transportFailures,
		c.writesInFlight,
	}

	for _, metric := range metrics {
		if err := c.registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
