package systems

// Countdown is a cancelable timer advanced by the frame clock.
// The zero value is disarmed.
type Countdown struct {
	remaining float64
	armed     bool
}

// Start arms the timer for ms milliseconds, replacing any pending run.
func (c *Countdown) Start(ms float64) {
	c.remaining = ms
	c.armed = true
}

// Cancel disarms the timer. Safe to call when already disarmed.
func (c *Countdown) Cancel() {
	c.armed = false
	c.remaining = 0
}

// Armed reports whether the timer is pending.
func (c *Countdown) Armed() bool {
	return c.armed
}

// Remaining returns the ms left, or 0 when disarmed.
func (c *Countdown) Remaining() float64 {
	if !c.armed {
		return 0
	}
	return c.remaining
}

// Tick advances the timer and reports true exactly once, on the tick it fires.
func (c *Countdown) Tick(dtMs float64) bool {
	if !c.armed {
		return false
	}
	c.remaining -= dtMs
	if c.remaining > 0 {
		return false
	}
	c.armed = false
	c.remaining = 0
	return true
}
