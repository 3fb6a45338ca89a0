// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// MODEL STATUS
// =============================================================================

// ModelStatus is the readiness state of the hosted model.
type ModelStatus int

const (
	// StatusLoading: the model is still warming up. Initial state.
	StatusLoading ModelStatus = iota
	// StatusReady: the model answered ready. Terminal for the session.
	StatusReady
	// StatusError: the last check failed (transport, non-2xx, or bad
	// JSON). Recoverable; the next successful check can leave it.
	StatusError
)

// String returns the display string for the status.
func (s ModelStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// =============================================================================
// STATUS POLLER
// =============================================================================

// DefaultPollInterval is the fixed cadence between readiness checks.
const DefaultPollInterval = 60 * time.Second

// CheckResult describes the outcome of one poller check.
type CheckResult struct {
	// Status is the poller's state after the check.
	Status ModelStatus
	// Performed is false when the check was throttled into a no-op.
	Performed bool
	// Reschedule is true when exactly one re-check should be scheduled
	// at the poll interval. Always false once Status is ready, and false
	// for throttled no-ops (a check is already pending).
	Reschedule bool
}

// StatusPoller tracks remote model readiness with a fixed, back-off-free
// re-check cadence. It is a plain state machine: the owner (the TUI
// update loop or a CLI wait loop) schedules the timer it asks for, which
// keeps at most one pending re-check alive at a time.
//
// A token-bucket limiter (1 token per interval, burst 1) throttles
// overlapping manual triggers: a check invoked before the interval since
// the last performed check has elapsed is a no-op.
//
// StatusPoller is not safe for concurrent use; like the conversation, it
// is owned by a single update loop.
type StatusPoller struct {
	client   *Client
	interval time.Duration
	limiter  *rate.Limiter
	status   ModelStatus
	checked  bool
}

// NewStatusPoller creates a poller with the default 60s cadence.
func NewStatusPoller(client *Client) *StatusPoller {
	return NewStatusPollerWithInterval(client, DefaultPollInterval)
}

// NewStatusPollerWithInterval creates a poller with a custom cadence.
// Tests use short intervals; production uses DefaultPollInterval.
func NewStatusPollerWithInterval(client *Client, interval time.Duration) *StatusPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &StatusPoller{
		client:   client,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		status:   StatusLoading,
	}
}

// Status returns the current readiness state.
func (p *StatusPoller) Status() ModelStatus {
	return p.status
}

// Interval returns the fixed re-check cadence.
func (p *StatusPoller) Interval() time.Duration {
	return p.interval
}

// Ready reports whether the model has been seen ready.
func (p *StatusPoller) Ready() bool {
	return p.status == StatusReady
}

// Check performs one readiness probe against the backend.
//
// Transitions:
//   - payload signals ready      -> StatusReady, no reschedule
//   - payload signals not ready  -> StatusLoading, reschedule at +interval
//   - transport / non-2xx / bad JSON -> StatusError, reschedule at +interval
//
// A call arriving inside the minimum interval after the last performed
// check is a throttled no-op, except that once ready the poller always
// answers ready without touching the network.
func (p *StatusPoller) Check(ctx context.Context) CheckResult {
	if p.status == StatusReady {
		return CheckResult{Status: StatusReady}
	}

	// Throttle guard. The first check always passes (the bucket starts
	// full); later manual triggers inside the interval are no-ops.
	if p.checked && !p.limiter.Allow() {
		return CheckResult{Status: p.status}
	}
	if !p.checked {
		// Consume the initial token so the throttle window starts now.
		p.limiter.Allow()
		p.checked = true
	}

	ready, err := p.client.ModelReady(ctx)
	switch {
	case err != nil:
		p.status = StatusError
		return CheckResult{Status: StatusError, Performed: true, Reschedule: true}
	case ready:
		p.status = StatusReady
		return CheckResult{Status: StatusReady, Performed: true}
	default:
		p.status = StatusLoading
		return CheckResult{Status: StatusLoading, Performed: true, Reschedule: true}
	}
}

// WaitReady polls until the model is ready or the context ends. Used by
// the CLI commands, which have no update loop to schedule timers on.
// The poll cadence is the poller's interval.
func (p *StatusPoller) WaitReady(ctx context.Context) error {
	for {
		res := p.Check(ctx)
		if res.Status == StatusReady {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.interval):
		}
	}
}
