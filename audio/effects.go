package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite wave generator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear fade in over attack and fade out over release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// clearBase is the first note of the line-clear arpeggio. Each extra line
// raises the arpeggio by a whole tone.
const clearBase = 523.25

// Effect builds the streamer for cue. lines is only used by CueClear.
func Effect(cue Cue, lines int, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case CueRotate:
		return newVolume(tone(660, 40*time.Millisecond, WaveSquare, rate), 0.25)

	case CueLock:
		d := 70 * time.Millisecond
		thud := tone(110, d, WaveSine, rate)
		click := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, time.Millisecond, d-time.Millisecond, rate)
		return beep.Mix(newVolume(thud, 0.6), newVolume(click, 0.15))

	case CueClear:
		if lines < 1 {
			lines = 1
		}
		step := math.Pow(2, 2.0/12.0*float64(lines-1))
		notes := make([]beep.Streamer, 0, lines+1)
		for i := range lines + 1 {
			freq := clearBase * step * math.Pow(2, 4.0/12.0*float64(i))
			notes = append(notes, tone(freq, 60*time.Millisecond, WaveSquare, rate))
		}
		return newVolume(beep.Seq(notes...), 0.35)

	case CueLevelUp:
		return newVolume(beep.Seq(
			tone(659.25, 90*time.Millisecond, WaveSine, rate),
			tone(783.99, 90*time.Millisecond, WaveSine, rate),
			tone(1046.5, 180*time.Millisecond, WaveSine, rate),
		), 0.5)

	case CueGameOver:
		return newVolume(beep.Seq(
			tone(392, 200*time.Millisecond, WaveSaw, rate),
			tone(311.13, 200*time.Millisecond, WaveSaw, rate),
			tone(196, 500*time.Millisecond, WaveSaw, rate),
		), 0.3)
	}
	return nil
}
