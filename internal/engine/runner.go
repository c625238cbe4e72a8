package engine

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Runner drives one simulated day per wall-clock interval. Speed is a
// multiplier: 1.0 runs at the base interval, 0 pauses the loop without
// stopping it.
type Runner struct {
	engine   *Engine
	Interval time.Duration

	speed   atomic.Int64 // speed × 1000
	running atomic.Bool

	// OnDay runs after each simulated day, outside the engine lock.
	OnDay func(day int)

	days int
}

// NewRunner creates a runner at 1x speed with a one-second day interval.
func NewRunner(e *Engine) *Runner {
	r := &Runner{engine: e, Interval: time.Second}
	r.speed.Store(1000)
	return r
}

// Speed returns the current speed multiplier.
func (r *Runner) Speed() float64 {
	return float64(r.speed.Load()) / 1000
}

// SetSpeed changes the multiplier. Negative values are treated as pause.
func (r *Runner) SetSpeed(mult float64) {
	if mult < 0 {
		mult = 0
	}
	r.speed.Store(int64(mult * 1000))
	slog.Info("simulation speed changed", "speed", mult)
}

// Run blocks, simulating days until Stop is called.
func (r *Runner) Run() {
	r.running.Store(true)
	slog.Info("simulation loop started", "interval", r.Interval, "speed", r.Speed())

	for r.running.Load() {
		speed := r.Speed()
		if speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		r.engine.SimulateDay()
		r.days++
		if r.OnDay != nil {
			r.OnDay(r.days)
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(r.Interval) / speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation loop stopped", "days", r.days)
}

// Stop halts the loop after the current day completes.
func (r *Runner) Stop() {
	r.running.Store(false)
}
