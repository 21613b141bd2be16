package progression

import "go-metronome/harmony"

// QualityRule picks the quality of a scale degree
type QualityRule struct {
	force   bool
	quality harmony.Quality
}

// Keep uses the input quality
var Keep = QualityRule{}

// Force substitutes q unless the input is a reduced voicing
func Force(q harmony.Quality) QualityRule {
	return QualityRule{force: true, quality: q}
}

func (r QualityRule) apply(in harmony.Quality) harmony.Quality {
	if !r.force || in.Reduced() {
		return in
	}
	return r.quality
}

// ExtensionRule picks the extension override of a scale degree
type ExtensionRule int

const (
	NoExtension ExtensionRule = iota
	Seventh                   // diatonic 7
	Dominant                  // dom7
)

func (r ExtensionRule) apply(in harmony.Quality) harmony.Extension {
	if in.Reduced() {
		return harmony.ExtNone
	}
	switch r {
	case Seventh:
		return harmony.Ext7
	case Dominant:
		return harmony.ExtDom7
	}
	return harmony.ExtNone
}

// Slot is one bar of a pattern
type Slot struct {
	Degree    int // semitones above the key root
	Quality   QualityRule
	Extension ExtensionRule
}

func (s Slot) resolve(root harmony.PitchClass, q harmony.Quality) harmony.Chord {
	return harmony.Chord{
		Root:      root.Transpose(s.Degree),
		Quality:   s.Quality.apply(q),
		Extension: s.Extension.apply(q),
	}
}

// Pattern is a cyclic list of one slot per bar
type Pattern struct {
	ID    ID
	Slots []Slot
}

func slot(degree int, q QualityRule, ext ExtensionRule) Slot {
	return Slot{Degree: degree, Quality: q, Extension: ext}
}

// bars repeats s n times
func bars(n int, s Slot) []Slot {
	out := make([]Slot, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func seq(parts ...[]Slot) []Slot {
	var out []Slot
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var (
	forceMaj = Force(harmony.Major)
	forceMin = Force(harmony.Minor)
	forceDim = Force(harmony.Diminished)
)

var patterns = map[ID]Pattern{}

func register(id ID, slots ...[]Slot) {
	patterns[id] = Pattern{ID: id, Slots: seq(slots...)}
}

func init() {
	var (
		i7   = slot(0, Keep, Seventh)
		iv7  = slot(5, Keep, Seventh)
		v7   = slot(7, forceMaj, Dominant)
		ii7  = slot(2, forceMin, Seventh)
		vi7  = slot(9, forceMin, Seventh)
		iii7 = slot(4, forceMin, Seventh)
		vii7 = slot(11, forceDim, Seventh)

		blI  = slot(0, forceMaj, Dominant)
		blIV = slot(5, forceMaj, Dominant)
		blV  = slot(7, forceMaj, Dominant)

		tI  = slot(0, Keep, NoExtension)
		tIV = slot(5, Keep, NoExtension)
		tV  = slot(7, forceMaj, NoExtension)
		tvi = slot(9, forceMin, NoExtension)
	)

	register(OneFourFive, bars(2, i7), bars(2, iv7), bars(2, i7), bars(2, v7))
	register(TwoFiveOne, bars(1, ii7), bars(1, v7), bars(2, i7))

	register(TwelveBarBlues,
		bars(4, blI), bars(2, blIV), bars(2, blI),
		bars(1, blV), bars(1, blIV), bars(1, blI), bars(1, blV))
	register(EightBarBlues,
		bars(2, blI), bars(2, blIV), bars(2, blI), bars(1, blV), bars(1, blI))

	register(OneFiveSixFour, []Slot{tI, tV, tvi, tIV})
	register(SixFourOneFive, []Slot{tvi, tIV, tI, tV})
	register(OneSixTwoFive, []Slot{i7, vi7, ii7, v7})
	register(OneSixFourFive, []Slot{tI, tvi, tIV, tV})

	// AABA: the A turnaround I-VI-ii-V twice per 8 bars, bridge on dominants
	a := []Slot{tI, slot(9, forceMaj, NoExtension), slot(2, forceMin, NoExtension), tV}
	bridge := seq(
		bars(2, slot(4, forceMaj, NoExtension)),
		bars(2, slot(9, forceMaj, NoExtension)),
		bars(2, slot(2, forceMaj, NoExtension)),
		bars(2, tV),
	)
	register(RhythmChanges, a, a, a, a, bridge, a, a)

	register(AutumnLeaves, []Slot{ii7, v7, i7, iv7, vii7, iii7, vi7, vi7})

	register(MinorSevenSixFive, []Slot{
		slot(0, forceMin, NoExtension), slot(10, forceMaj, NoExtension),
		slot(8, forceMaj, NoExtension), slot(7, forceMaj, NoExtension),
	})
	register(MinorFourSevenThree, []Slot{
		slot(0, forceMin, NoExtension), slot(5, forceMin, NoExtension),
		slot(10, forceMaj, NoExtension), slot(3, forceMaj, NoExtension),
	})
	register(MinorSixThreeSeven, []Slot{
		slot(0, forceMin, NoExtension), slot(8, forceMaj, NoExtension),
		slot(3, forceMaj, NoExtension), slot(10, forceMaj, NoExtension),
	})

	register(CircleOfFifths, []Slot{
		slot(0, Keep, NoExtension), slot(5, Keep, NoExtension),
		slot(11, forceDim, NoExtension), slot(4, forceMin, NoExtension),
		slot(9, forceMin, NoExtension), slot(2, forceMin, NoExtension),
		slot(7, forceMaj, NoExtension), slot(0, Keep, NoExtension),
	})
}

// PatternFor exposes the slot table of a progression
func PatternFor(id ID) (Pattern, bool) {
	p, ok := patterns[id]
	return p, ok
}
