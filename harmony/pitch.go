package harmony

import "strings"

// PitchClass is a note name independent of octave (0 = C ... 11 = B)
type PitchClass int

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Third-octave frequencies (C3..B3), the lowest drone layer
var baseFrequencies = [12]float64{
	130.81, 138.59, 146.83, 155.56, 164.81, 174.61,
	185.00, 196.00, 207.65, 220.00, 233.08, 246.94,
}

// PitchClasses returns all twelve pitch classes in chromatic order
func PitchClasses() []PitchClass {
	out := make([]PitchClass, 12)
	for i := range out {
		out[i] = PitchClass(i)
	}
	return out
}

// Normalize folds any integer into 0..11
func (p PitchClass) Normalize() PitchClass {
	n := int(p) % 12
	if n < 0 {
		n += 12
	}
	return PitchClass(n)
}

// Transpose moves the pitch class up by semitones (negative moves down)
func (p PitchClass) Transpose(semitones int) PitchClass {
	return PitchClass(int(p) + semitones).Normalize()
}

func (p PitchClass) String() string {
	return pitchNames[p.Normalize()]
}

// Frequency returns the root frequency in Hz of the third octave
func (p PitchClass) Frequency() float64 {
	return baseFrequencies[p.Normalize()]
}

// ParsePitchClass accepts sharp names ("C#") and the common flat spellings ("Db").
// Unknown names fail closed to C.
func ParsePitchClass(name string) (PitchClass, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return C, false
	}
	// Normalise case of the letter, keep accidentals as typed
	name = strings.ToUpper(name[:1]) + name[1:]
	for i, n := range pitchNames {
		if n == name {
			return PitchClass(i), true
		}
	}
	flats := map[string]PitchClass{
		"Db": CSharp, "Eb": DSharp, "Gb": FSharp, "Ab": GSharp, "Bb": ASharp,
		"D♭": CSharp, "E♭": DSharp, "G♭": FSharp, "A♭": GSharp, "B♭": ASharp,
	}
	if p, ok := flats[name]; ok {
		return p, true
	}
	return C, false
}
