// Package probe implements the container health check: an HTTP GET against
// the variant's health endpoint, with a fallback path and a bounded number
// of retries. Any 2xx response counts as healthy.
package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/NOGUCHILin/sonshi-ragflow/internal/config"
)

// Prober checks a running server for liveness.
type Prober struct {
	BaseURL  string
	Paths    []string // probed in order per attempt; first success wins
	Retries  int      // attempts before giving up (minimum 1)
	Interval time.Duration
	Timeout  time.Duration // per-request timeout

	client *http.Client
	log    *slog.Logger
}

// New returns a Prober for the server described by cfg, probing loopback on
// the resolved port with the variant's health paths.
func New(cfg config.Config, logger *slog.Logger) *Prober {
	return &Prober{
		BaseURL:  fmt.Sprintf("http://127.0.0.1:%d", cfg.Port),
		Paths:    cfg.Variant.HealthPaths(),
		Retries:  3,
		Interval: 5 * time.Second,
		Timeout:  10 * time.Second,
		log:      logger,
	}
}

// Check probes the server. It returns nil on the first successful response
// and the last error once all retries are exhausted.
func (p *Prober) Check(ctx context.Context) error {
	retries := p.Retries
	if retries < 1 {
		retries = 1
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: p.Timeout}
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		for _, path := range p.Paths {
			err := p.get(ctx, path)
			if err == nil {
				p.log.Info("healthy", "url", p.BaseURL+path, "attempt", attempt)
				return nil
			}
			lastErr = err
			p.log.Warn("probe failed", "url", p.BaseURL+path, "attempt", attempt, "error", err)
		}
		if attempt < retries {
			select {
			case <-time.After(p.Interval):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("unhealthy after %d attempts: %w", retries, lastErr)
}

func (p *Prober) get(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
