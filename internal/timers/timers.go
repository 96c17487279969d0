// Package timers implements the CHIP-8's delay and sound counters, both
// saturating down-counters intended to be ticked at 60 Hz by the host.
package timers

// Timers holds the delay and sound counters.
type Timers struct {
	delay byte
	sound byte
}

// New returns a Timers with both counters at zero.
func New() *Timers {
	return &Timers{}
}

// Reset zeroes both counters.
func (t *Timers) Reset() {
	t.delay = 0
	t.sound = 0
}

// Tick decrements each non-zero counter by one. It is invoked by the host
// at 60 Hz, independent of instruction execution.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// SetDelay sets the delay counter.
func (t *Timers) SetDelay(v byte) {
	t.delay = v
}

// GetDelay returns the current delay counter value.
func (t *Timers) GetDelay() byte {
	return t.delay
}

// SetSound sets the sound counter.
func (t *Timers) SetSound(v byte) {
	t.sound = v
}

// GetSound returns the current sound counter value.
func (t *Timers) GetSound() byte {
	return t.sound
}

// BeeperActive reports whether the sound timer currently gates the
// beeper, i.e. whether it is greater than zero.
func (t *Timers) BeeperActive() bool {
	return t.sound > 0
}
