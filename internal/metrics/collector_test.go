package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/objectfs/posixfs/internal/config"
	"github.com/objectfs/posixfs/pkg/utils"
	"github.com/objectfs/posixfs/pkg/wire"
)

func enabledConfig() config.MetricsConfig {
	return config.MetricsConfig{Enabled: true, Port: 9464, Path: "/metrics", Namespace: "posixfs"}
}

func newTestCollector(t *testing.T, cfg config.MetricsConfig) *Collector {
	t.Helper()
	c, err := NewCollector(cfg, utils.NewNopLogger())
	if err != nil {
		t.Fatalf("NewCollector() error = %v", err)
	}
	return c
}

func TestNewCollector(t *testing.T) {
	t.Parallel()

	t.Run("enabled", func(t *testing.T) {
		c := newTestCollector(t, enabledConfig())
		if !c.Enabled() || c.Registry() == nil {
			t.Fatal("enabled collector has no registry")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		c := newTestCollector(t, config.MetricsConfig{})
		if c.Enabled() || c.Registry() != nil {
			t.Fatal("disabled collector should not have a registry")
		}
		// Every recorder is a no-op.
		c.RecordCall("stat", wire.ENOENT, time.Millisecond)
		c.RecordTransportFailure("stat", time.Millisecond)
		c.RecordBytesRead(10)
		c.RecordBytesWritten(10)
		c.WriteStarted()
		c.WriteFinished()
		if err := c.Start(context.Background()); err != nil {
			t.Fatalf("Start() on disabled collector = %v", err)
		}
		if err := c.Stop(context.Background()); err != nil {
			t.Fatalf("Stop() on disabled collector = %v", err)
		}
	})

	t.Run("two collectors do not collide", func(t *testing.T) {
		newTestCollector(t, enabledConfig())
		newTestCollector(t, enabledConfig())
	})
}

func TestRecordCall(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, enabledConfig())
	c.RecordCall("stat", wire.ESUCCESS, 2*time.Millisecond)
	c.RecordCall("stat", wire.ENOENT, 4*time.Millisecond)
	c.RecordCall("stat", wire.ENOENT, 6*time.Millisecond)

	if got := testutil.ToFloat64(c.operations.WithLabelValues("stat", "ESUCCESS")); got != 1 {
		t.Errorf("ESUCCESS count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.operations.WithLabelValues("stat", "ENOENT")); got != 2 {
		t.Errorf("ENOENT count = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(c.operationDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}

	s := c.Snapshot()["stat"]
	if s.Count != 3 || s.RemoteErrors != 2 || s.TransportFailures != 0 {
		t.Errorf("snapshot = %+v", s)
	}
	if s.AvgDuration() != 4*time.Millisecond {
		t.Errorf("AvgDuration() = %v, want 4ms", s.AvgDuration())
	}
}

func TestRecordTransportFailure(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, enabledConfig())
	c.RecordTransportFailure("read", time.Millisecond)

	if got := testutil.ToFloat64(c.transportFailures.WithLabelValues("read")); got != 1 {
		t.Errorf("transport failures = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(c.operations); got != 0 {
		t.Errorf("operation series = %d, want 0", got)
	}
	if s := c.Snapshot()["read"]; s.TransportFailures != 1 || s.Count != 1 {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestBytesAndInFlight(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, enabledConfig())
	c.RecordBytesRead(100)
	c.RecordBytesRead(0)
	c.RecordBytesWritten(42)
	c.WriteStarted()
	c.WriteStarted()
	c.WriteFinished()

	if got := testutil.ToFloat64(c.bytes.WithLabelValues("read")); got != 100 {
		t.Errorf("bytes read = %v, want 100", got)
	}
	if got := testutil.ToFloat64(c.bytes.WithLabelValues("write")); got != 42 {
		t.Errorf("bytes written = %v, want 42", got)
	}
	if got := testutil.ToFloat64(c.writesInFlight); got != 1 {
		t.Errorf("writes in flight = %v, want 1", got)
	}
}

func TestOperationStats_AvgDurationZero(t *testing.T) {
	t.Parallel()
	if got := (OperationStats{}).AvgDuration(); got != 0 {
		t.Errorf("AvgDuration() = %v, want 0", got)
	}
}

func TestHandler(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, enabledConfig())
	c.RecordCall("mkdir", wire.EEXIST, time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	want := `posixfs_rpc_operations_total{errno="EEXIST",operation="mkdir"} 1`
	if !strings.Contains(string(body), want) {
		t.Errorf("metrics output missing %q", want)
	}

	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
}

func TestStopWithoutStart(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, enabledConfig())
	if err := c.Stop(context.Background()); err != nil {
		t.Errorf("Stop() without Start() = %v", err)
	}
}
