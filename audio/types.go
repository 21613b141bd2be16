package audio

import "errors"

// Clock reports the audio clock in seconds of rendered output
type Clock interface {
	Now() float64
}

// Graph creates sound sources timed on its clock
type Graph interface {
	Clock
	NewTone(freq float64, wf Waveform) (Tone, error)
	Click(kind ClickKind, at, level float64) error
}

// Tone is a running oscillator whose gain follows an automation timeline.
// All times are absolute seconds on the owning Graph's clock.
type Tone interface {
	SetGainAt(v, at float64)
	LinearRampTo(v, at float64)
	ExponentialRampTo(v, at float64)
	CancelFrom(at float64)
	CancelAndHoldAt(at float64)
	GainAt(at float64) float64
	StopAt(at float64)
	Stop()
}

// Waveform selects the oscillator shape of a tone
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Sawtooth
	Square
)

var waveformNames = [...]string{"sine", "triangle", "sawtooth", "square"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return waveformNames[Sine]
	}
	return waveformNames[w]
}

// ClickKind selects the metronome click voice
type ClickKind int

const (
	ClickAccent ClickKind = iota // downbeat kick
	ClickTick                    // hi-hat
)

func (k ClickKind) String() string {
	if k == ClickAccent {
		return "accent"
	}
	return "tick"
}

// Sentinel errors
var (
	ErrVoiceLimit   = errors.New("voice limit reached")
	ErrEngineClosed = errors.New("audio engine closed")
)
