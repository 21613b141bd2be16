package drone

import "go-metronome/audio"

// Timbre is the instrument colour of the drone
type Timbre int

const (
	Hammond Timbre = iota
	Organ
	Piano
	Horns
	Guitar
	Strings
)

var timbreNames = [...]string{"hammond", "organ", "piano", "horns", "guitar", "strings"}

func (t Timbre) String() string {
	if t < 0 || int(t) >= len(timbreNames) {
		return timbreNames[Hammond]
	}
	return timbreNames[t]
}

// Timbres lists every timbre in display order
func Timbres() []Timbre {
	return []Timbre{Hammond, Organ, Piano, Horns, Guitar, Strings}
}

// ParseTimbre fails closed to Hammond
func ParseTimbre(s string) (Timbre, bool) {
	for i, n := range timbreNames {
		if n == s {
			return Timbre(i), true
		}
	}
	return Hammond, false
}

// Class groups timbres by envelope behaviour
type Class int

const (
	Sustained Class = iota
	Plucked
	Pad
)

// Class returns the envelope class of the timbre
func (t Timbre) Class() Class {
	switch t {
	case Piano, Guitar:
		return Plucked
	case Strings:
		return Pad
	}
	return Sustained
}

// Waveform returns the oscillator shape
func (t Timbre) Waveform() audio.Waveform {
	switch t {
	case Piano, Guitar:
		return audio.Triangle
	case Horns, Strings:
		return audio.Sawtooth
	}
	return audio.Sine
}

// GainScale boosts percussive timbres and tames the bright ones
func (t Timbre) GainScale() float64 {
	switch t {
	case Piano, Guitar:
		return 1.5
	case Horns:
		return 1.2
	case Strings:
		return 0.8
	}
	return 1.0
}

// Attack is the ramp time to full level on a trigger
func (t Timbre) Attack() float64 {
	if t.Class() == Pad {
		return 0.05
	}
	return 0.01
}

// Release is the per-beat decay time after the attack
func (t Timbre) Release() float64 {
	switch t.Class() {
	case Plucked:
		return 0.5
	case Pad:
		return 0.3
	}
	return 0.1
}

// LayerGains are the base levels of the octave layers, lowest first
var LayerGains = [...]float64{0.02, 0.015, 0.01}

// Mode selects how the drone is shaped over time
type Mode int

const (
	Constant Mode = iota
	PerBeat
	PerBar
)

var modeNames = [...]string{"constant", "per-beat", "per-bar"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return modeNames[Constant]
	}
	return modeNames[m]
}

// Pulsed reports modes that start silent and sound on triggers
func (m Mode) Pulsed() bool {
	return m == PerBeat || m == PerBar
}

// Modes lists every mode
func Modes() []Mode {
	return []Mode{Constant, PerBeat, PerBar}
}

// ParseMode fails closed to Constant
func ParseMode(s string) (Mode, bool) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), true
		}
	}
	return Constant, false
}
