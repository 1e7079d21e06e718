package network

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// ProbeMonitor derives connectivity by periodically issuing a HEAD request
// against a known endpoint. While offline it probes on an exponential
// backoff schedule instead of the regular interval, so reconnecting is
// detected quickly without hammering the endpoint.
type ProbeMonitor struct {
	state

	probeURL   string
	interval   time.Duration
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewProbeMonitor(probeURL string, interval time.Duration, logger *logrus.Logger) *ProbeMonitor {
	return &ProbeMonitor{
		probeURL:   probeURL,
		interval:   interval,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

// Run probes until the context is cancelled. Blocking; run in a goroutine.
func (m *ProbeMonitor) Run(ctx context.Context) {
	m.logger.Info("NetworkMonitor.Run.starting")

	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = time.Second
	retry.MaxInterval = m.interval
	retry.MaxElapsedTime = 0

	// First probe establishes the initial state before any wait.
	m.probeOnce(ctx, retry)

	for {
		wait := m.interval
		if !m.IsOnline() {
			wait = retry.NextBackOff()
		}

		select {
		case <-ctx.Done():
			m.logger.Info("NetworkMonitor.Run.stopped")
			return
		case <-time.After(wait):
			m.probeOnce(ctx, retry)
		}
	}
}

func (m *ProbeMonitor) probeOnce(ctx context.Context, retry *backoff.ExponentialBackOff) {
	online := m.probe(ctx)
	if online {
		retry.Reset()
	}
	if m.setOnline(online) {
		m.logger.WithField("online", online).Info("NetworkMonitor.transition")
	}
}

func (m *ProbeMonitor) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.probeURL, nil)
	if err != nil {
		return false
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}
