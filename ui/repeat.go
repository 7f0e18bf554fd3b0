package ui

import "time"

// Default auto-repeat timing for held keys.
const (
	RepeatDelay    = 200 * time.Millisecond
	RepeatRate     = 50 * time.Millisecond
	SoftDropRepeat = 50 * time.Millisecond
)

// Repeater fires once when a key goes down and then repeatedly while it is
// held: first after Delay, then every Rate.
type Repeater struct {
	Delay time.Duration
	Rate  time.Duration

	held time.Duration
}

// NewRepeater returns a repeater with the default horizontal timing.
func NewRepeater() *Repeater {
	return &Repeater{Delay: RepeatDelay, Rate: RepeatRate}
}

// Update advances the repeater by dt. pressed is true on the frame the key
// went down, down while it stays held. It returns how many times the action fires.
func (r *Repeater) Update(pressed, down bool, dt time.Duration) int {
	switch {
	case pressed:
		r.held = 0
		return 1
	case !down:
		r.held = 0
		return 0
	}

	r.held += dt
	fires := 0
	for r.held > r.Delay {
		fires++
		if r.Rate <= 0 {
			r.held = r.Delay
			break
		}
		r.held -= r.Rate
	}
	return fires
}

// Reset forgets the held time.
func (r *Repeater) Reset() {
	r.held = 0
}
