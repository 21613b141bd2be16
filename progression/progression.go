package progression

import "go-metronome/harmony"

// ID names a chord progression
type ID int

const (
	None ID = iota
	OneFourFive
	TwoFiveOne
	TwelveBarBlues
	EightBarBlues
	OneFiveSixFour
	SixFourOneFive
	OneSixTwoFive
	OneSixFourFive
	RhythmChanges
	AutumnLeaves
	MinorSevenSixFive
	MinorFourSevenThree
	MinorSixThreeSeven
	CircleOfFifths
	numIDs
)

var idNames = [numIDs]string{
	"none", "I-IV-V", "ii-V-I", "12-bar-blues", "8-bar-blues",
	"I-V-vi-IV", "vi-IV-I-V", "I-vi-ii-V", "I-vi-IV-V", "rhythm-changes",
	"autumn-leaves", "i-VII-VI-V", "i-iv-VII-III", "i-VI-III-VII", "circle-of-fifths",
}

var idLabels = [numIDs]string{
	"None", "I-IV-V", "ii-V-I", "12 Bar Blues", "8 Bar Blues",
	"I-V-vi-IV", "vi-IV-I-V", "I-vi-ii-V", "I-vi-IV-V", "Rhythm Changes",
	"Autumn Leaves", "i-VII-VI-V", "i-iv-VII-III", "i-VI-III-VII", "Circle of Fifths",
}

func (id ID) valid() bool {
	return id >= 0 && id < numIDs
}

func (id ID) String() string {
	if !id.valid() {
		return idNames[None]
	}
	return idNames[id]
}

// Label is the human-readable name
func (id ID) Label() string {
	if !id.valid() {
		return idLabels[None]
	}
	return idLabels[id]
}

// All lists every progression, None first
func All() []ID {
	out := make([]ID, 0, numIDs)
	for id := None; id < numIDs; id++ {
		out = append(out, id)
	}
	return out
}

// Parse fails closed to None
func Parse(s string) (ID, bool) {
	for i, n := range idNames {
		if n == s {
			return ID(i), true
		}
	}
	return None, false
}

// Length returns the pattern length in bars (1 for None)
func Length(id ID) int {
	p, ok := patterns[id]
	if !ok {
		return 1
	}
	return len(p.Slots)
}

// ChordAt returns the chord sounding at bar for the given key and progression.
// It is pure: the same arguments always give the same chord, so the next chord
// can be previewed with bar+1.
func ChordAt(bar int, root harmony.PitchClass, q harmony.Quality, id ID) harmony.Chord {
	p, ok := patterns[id]
	if !ok || len(p.Slots) == 0 {
		return harmony.Chord{Root: root.Normalize(), Quality: q}
	}
	return p.Slots[wrap(bar, len(p.Slots))].resolve(root, q)
}

// Window returns the chords of bars [from, from+n)
func Window(from, n int, root harmony.PitchClass, q harmony.Quality, id ID) []harmony.Chord {
	out := make([]harmony.Chord, 0, n)
	for bar := from; bar < from+n; bar++ {
		out = append(out, ChordAt(bar, root, q, id))
	}
	return out
}

func wrap(bar, n int) int {
	i := bar % n
	if i < 0 {
		i += n
	}
	return i
}
