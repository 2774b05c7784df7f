// Package metrics pushes workload results to a Prometheus Pushgateway.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/sharkusmanch/svcwrap/internal/domain"
	"github.com/sharkusmanch/svcwrap/internal/http"
	"github.com/sharkusmanch/svcwrap/pkg/version"
)

const (
	metricsJobName = "svcwrap"
	namespace      = "svcwrap"
)

// PushgatewayClient pushes metrics to a Prometheus Pushgateway.
type PushgatewayClient struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// PushgatewayOption configures a PushgatewayClient.
type PushgatewayOption func(*PushgatewayClient)

// WithHTTPClient sets the retrying HTTP client used for pushes.
func WithHTTPClient(client *http.Client) PushgatewayOption {
	return func(p *PushgatewayClient) {
		p.httpClient = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) PushgatewayOption {
	return func(p *PushgatewayClient) {
		p.logger = logger
	}
}

// NewPushgatewayClient creates a new PushgatewayClient.
func NewPushgatewayClient(url string, opts ...PushgatewayOption) *PushgatewayClient {
	p := &PushgatewayClient{
		url:    strings.TrimSuffix(url, "/"),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.httpClient == nil {
		p.httpClient = http.NewClient(http.WithLogger(p.logger))
	}

	return p
}

// Push replaces the metrics of the identity's group with the given result.
func (p *PushgatewayClient) Push(ctx context.Context, identity string, result *domain.WorkloadResult) error {
	p.logger.Debug("pushing metrics to pushgateway", "url", p.url, "instance", identity)

	err := push.New(p.url, metricsJobName).
		Gatherer(p.registry(result)).
		Grouping("instance", identity).
		Client(p.httpClient).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}

	p.logger.Debug("metrics pushed successfully")
	return nil
}

// Validate checks that the Pushgateway is reachable.
func (p *PushgatewayClient) Validate(ctx context.Context) error {
	readyURL := p.url + "/-/ready"
	if err := p.httpClient.CheckConnectivity(ctx, readyURL); err != nil {
		// Older Pushgateways have no readiness endpoint
		if err2 := p.httpClient.CheckConnectivity(ctx, p.url); err2 != nil {
			return fmt.Errorf("pushgateway not reachable: %w", err)
		}
	}
	return nil
}

// registry builds a fresh registry describing one workload result.
func (p *PushgatewayClient) registry(r *domain.WorkloadResult) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "info",
		Help:      "Build information",
	}, []string{"version", "go_version"})
	info.WithLabelValues(version.Get().Version, runtime.Version()).Set(1)

	timestamp := newGauge("workload_last_run_timestamp_seconds", "Unix timestamp of the last workload run")
	success := newGauge("workload_last_run_success", "Whether the last workload run succeeded")
	duration := newGauge("workload_last_run_duration_seconds", "Duration of the last workload run")
	exitCode := newGauge("workload_last_exit_code", "Exit code of the last workload run, -1 if it never started")

	timestamp.Set(float64(r.EndTime.Unix()))
	if r.Success {
		success.Set(1)
	}
	duration.Set(r.Duration.Seconds())
	exitCode.Set(float64(r.ExitCode))

	reg.MustRegister(info, timestamp, success, duration, exitCode)
	return reg
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

// Ensure PushgatewayClient implements domain.MetricsPusher and the retrying
// client can carry pushes.
var (
	_ domain.MetricsPusher = (*PushgatewayClient)(nil)
	_ push.HTTPDoer        = (*http.Client)(nil)
)
