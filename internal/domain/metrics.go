package domain

import "context"

// MetricsPusher defines the interface for pushing workload metrics to a remote endpoint.
type MetricsPusher interface {
	// Push sends the result of one activation's workload.
	Push(ctx context.Context, identity string, result *WorkloadResult) error
}
