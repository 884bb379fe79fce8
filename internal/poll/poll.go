// Package poll provides a shared "probe until ready or timeout" primitive for
// long-running cloud operations. Both the certificate and the distribution
// waiters are built on top of Until so the loop logic lives in exactly one
// place, parameterized by the status probe, the poll interval, and the
// caller-supplied timeout.
package poll

import (
	"context"
	"time"
)

// Status classifies how a wait ended.
type Status int

const (
	// Ready means the probe reported the resource as ready before the timeout.
	Ready Status = iota

	// TimedOut means the timeout elapsed while the resource was still pending.
	TimedOut

	// Failed means the probe returned an error, either from the underlying
	// API call or because the resource entered a terminal failure state.
	Failed
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case TimedOut:
		return "timed out"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of a wait. A wait never silently succeeds past its
// timeout: once the deadline has passed, the next iteration returns TimedOut
// without probing again.
type Outcome struct {
	// Status says how the wait ended.
	Status Status

	// LastState is the last remote state string the probe observed, so a
	// timeout error can report what the resource was still doing.
	LastState string

	// Elapsed is the total time spent waiting.
	Elapsed time.Duration

	// Err carries the failure cause when Status is Failed.
	Err error
}

// Probe checks the remote resource once. It returns the observed state string,
// whether the resource is ready, and any error. A returned error terminates
// the wait with Status Failed.
type Probe func(ctx context.Context) (state string, done bool, err error)

// Until repeatedly invokes probe every interval until it reports done, returns
// an error, or timeout elapses. The first probe happens immediately. Context
// cancellation terminates the wait with Status Failed and the context error.
func Until(ctx context.Context, probe Probe, interval, timeout time.Duration) Outcome {
	start := time.Now()
	deadline := start.Add(timeout)

	var lastState string
	for {
		if !time.Now().Before(deadline) {
			return Outcome{Status: TimedOut, LastState: lastState, Elapsed: time.Since(start)}
		}

		state, done, err := probe(ctx)
		if state != "" {
			lastState = state
		}
		if err != nil {
			return Outcome{Status: Failed, LastState: lastState, Elapsed: time.Since(start), Err: err}
		}
		if done {
			return Outcome{Status: Ready, LastState: lastState, Elapsed: time.Since(start)}
		}

		select {
		case <-ctx.Done():
			return Outcome{Status: Failed, LastState: lastState, Elapsed: time.Since(start), Err: ctx.Err()}
		case <-time.After(interval):
		}
	}
}
