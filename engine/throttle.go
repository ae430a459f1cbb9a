package engine

import (
	"context"

	"golang.org/x/time/rate"
)

// SetMaxTicksPerSecond bounds how fast AdvanceUntilEventHours steps in
// wall-clock time, for a host that drives the simulation live (e.g. a
// server ticking alongside real time) rather than batching days at once.
// It is never consulted inside tickOneTickHours itself — simulation
// results are identical with or without a limiter, only wall-clock pacing
// changes. Passing rps <= 0 disables the limiter.
func (e *Engine) SetMaxTicksPerSecond(rps float64) {
	if rps <= 0 {
		e.tickLimiter = nil
		return
	}
	e.tickLimiter = rate.NewLimiter(rate.Limit(rps), 1)
}

// throttleTick blocks until the tick-rate limiter (if any) admits another
// tick. Called once per outer-loop iteration in AdvanceUntilEventHours.
func (e *Engine) throttleTick() {
	if e.tickLimiter == nil {
		return
	}
	_ = e.tickLimiter.Wait(context.Background())
}
