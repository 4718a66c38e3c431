package kube

import (
	"context"
	"log/slog"
	"time"

	"github.com/endfield/endfield/pkg/metrics"
)

// DefaultPollInterval is how often the background status poll runs.
const DefaultPollInterval = 5 * time.Second

// StatusPoller runs Status on a fixed interval and hands each result to a
// callback. A slow or failed poll never blocks anything else; the next tick
// just runs again.
type StatusPoller struct {
	client   *Client
	interval time.Duration
	onStatus func(ClusterStatus)
	log      *slog.Logger
}

// NewStatusPoller builds a poller. A zero interval uses the default.
func NewStatusPoller(client *Client, interval time.Duration, onStatus func(ClusterStatus), log *slog.Logger) *StatusPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &StatusPoller{client: client, interval: interval, onStatus: onStatus, log: log}
}

// Run polls until the context is cancelled. The first poll fires
// immediately.
func (p *StatusPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			p.log.Debug("status poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *StatusPoller) poll(ctx context.Context) {
	start := time.Now()
	status := p.client.Status(ctx)
	metrics.StatusPollDuration.Observe(time.Since(start).Seconds())

	if !status.Reachable {
		metrics.StatusPollErrors.Inc()
		p.log.Warn("cluster status poll failed", "error", status.Error)
	}
	p.onStatus(status)
}
