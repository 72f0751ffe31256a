package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/amishk599/skillradar/internal/model"
)

// Pacer enforces a fixed minimum delay between consecutive requests to the
// same host. The delay is constant; it never adapts to server responses.
type Pacer struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: host
	delay    time.Duration
}

// NewPacer creates a pacer that spaces requests to one host by delay.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{
		lastCall: make(map[string]time.Time),
		delay:    delay,
	}
}

// Delay returns the configured gap between requests.
func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Wait blocks until enough time has passed since the last request to host.
// Returns an error if the context is cancelled while waiting.
func (p *Pacer) Wait(ctx context.Context, host string) error {
	p.mu.Lock()
	last, ok := p.lastCall[host]
	now := time.Now()

	if !ok || p.delay <= 0 {
		p.lastCall[host] = now
		p.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= p.delay {
		p.lastCall[host] = now
		p.mu.Unlock()
		return nil
	}

	remaining := p.delay - elapsed
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("pacing wait for %s: %w", host, ctx.Err())
	case <-time.After(remaining):
	}

	p.mu.Lock()
	p.lastCall[host] = time.Now()
	p.mu.Unlock()

	return nil
}

// PacedFetcher is a decorator that waits on a Pacer before delegating to the
// wrapped PageFetcher.
type PacedFetcher struct {
	inner model.PageFetcher
	pacer *Pacer
}

// NewPacedFetcher wraps a PageFetcher with per-host pacing.
func NewPacedFetcher(inner model.PageFetcher, pacer *Pacer) *PacedFetcher {
	return &PacedFetcher{inner: inner, pacer: pacer}
}

// Fetch waits for the pacer to allow a request to the URL's host, then
// delegates to the wrapped fetcher.
func (f *PacedFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := f.pacer.Wait(ctx, hostOf(rawURL)); err != nil {
		return nil, err
	}
	return f.inner.Fetch(ctx, rawURL)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
