/*
Package metrics records client RPC metrics for Prometheus.

A Collector owns a private registry so several clients in one process never
collide. It exports:

	<ns>_rpc_operations_total{operation, errno}   completed round trips
	<ns>_rpc_duration_seconds{operation}          latency histogram
	<ns>_rpc_transport_failures_total{operation}  calls with no remote result
	<ns>_bytes_total{direction}                   read and written payload bytes
	<ns>_writes_in_flight                         writes awaiting completion

Usage:

	collector, err := metrics.NewCollector(cfg.Monitoring.Metrics, logger)
	if err != nil {
		return err
	}
	if err := collector.Start(ctx); err != nil {
		return err
	}
	defer collector.Stop(ctx)

A disabled collector still keeps the per-operation Snapshot, which the mount
command logs on unmount.
*/
package metrics
