// Package clock provides the fixed-step simulation clock.
package clock

import "time"

// GameTime is the time passed to per-frame updates.
type GameTime struct {
	Elapsed time.Duration // Simulated time since start, including this tick
	Delta   time.Duration // Length of this tick
}

// Seconds returns Delta in seconds.
func (t GameTime) Seconds() float32 {
	return float32(t.Delta.Seconds())
}

// Clock produces evenly spaced ticks.
type Clock struct {
	step    time.Duration
	elapsed time.Duration
	ticks   uint64
	pending time.Duration
}

// New creates a clock ticking every step. A non-positive step means 60Hz.
func New(step time.Duration) *Clock {
	if step <= 0 {
		step = time.Second / 60
	}
	return &Clock{step: step}
}

// Step returns the fixed tick length.
func (c *Clock) Step() time.Duration {
	return c.step
}

// Ticks returns the number of ticks produced so far.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Now returns the time of the last tick.
func (c *Clock) Now() GameTime {
	if c.ticks == 0 {
		return GameTime{}
	}
	return GameTime{Elapsed: c.elapsed, Delta: c.step}
}

// Tick advances the clock by one step.
func (c *Clock) Tick() GameTime {
	c.ticks++
	c.elapsed += c.step
	return GameTime{Elapsed: c.elapsed, Delta: c.step}
}

// Advance feeds real elapsed time and returns how many fixed ticks are due.
// Leftover time carries into the next call. The count is capped at limit to
// avoid a spiral after a long stall; limit <= 0 disables the cap.
func (c *Clock) Advance(d time.Duration, limit int) int {
	c.pending += d
	n := int(c.pending / c.step)
	if limit > 0 && n > limit {
		n = limit
		c.pending = 0
	} else {
		c.pending -= time.Duration(n) * c.step
	}
	return n
}
