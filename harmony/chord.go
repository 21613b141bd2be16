package harmony

// Quality is the triad type of a chord
type Quality int

const (
	Major Quality = iota
	Minor
	Diminished
	Augmented
	Power
	Octave
)

var qualityNames = [...]string{"major", "minor", "diminished", "augmented", "power", "octave"}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return qualityNames[Major]
	}
	return qualityNames[q]
}

// Reduced reports two-note voicings that take no extensions or alterations
func (q Quality) Reduced() bool {
	return q == Power || q == Octave
}

// Qualities lists every quality in display order
func Qualities() []Quality {
	return []Quality{Major, Minor, Augmented, Diminished, Power, Octave}
}

// ParseQuality fails closed to Major
func ParseQuality(s string) (Quality, bool) {
	for i, n := range qualityNames {
		if n == s {
			return Quality(i), true
		}
	}
	return Major, false
}

// Extension stacks tones above the triad
type Extension int

const (
	ExtNone Extension = iota
	Ext6
	Ext7
	ExtDom7
	Ext9
	Ext11
	Ext13
)

var extensionNames = [...]string{"none", "6", "7", "dom7", "9", "11", "13"}

func (e Extension) String() string {
	if e < 0 || int(e) >= len(extensionNames) {
		return extensionNames[ExtNone]
	}
	return extensionNames[e]
}

// Extensions lists every extension in display order
func Extensions() []Extension {
	return []Extension{ExtNone, Ext6, Ext7, ExtDom7, Ext9, Ext11, Ext13}
}

// ParseExtension fails closed to ExtNone
func ParseExtension(s string) (Extension, bool) {
	for i, n := range extensionNames {
		if n == s {
			return Extension(i), true
		}
	}
	return ExtNone, false
}

// Alteration modifies the fifth or the ninth
type Alteration int

const (
	AltNone Alteration = iota
	AltFlat5
	AltSharp5
	AltFlat9
	AltSharp9
)

var alterationNames = [...]string{"none", "b5", "#5", "b9", "#9"}

func (a Alteration) String() string {
	if a < 0 || int(a) >= len(alterationNames) {
		return alterationNames[AltNone]
	}
	return alterationNames[a]
}

// Alterations lists every alteration in display order
func Alterations() []Alteration {
	return []Alteration{AltNone, AltFlat5, AltSharp5, AltFlat9, AltSharp9}
}

// ParseAlteration fails closed to AltNone
func ParseAlteration(s string) (Alteration, bool) {
	for i, n := range alterationNames {
		if n == s {
			return Alteration(i), true
		}
	}
	return AltNone, false
}

// Chord describes the chord active for a bar. Extension is an override of the
// user-selected extension; ExtNone means no override.
type Chord struct {
	Root      PitchClass
	Quality   Quality
	Extension Extension
}

// Effective returns the extension to voice: the override if set, else user
func (c Chord) Effective(user Extension) Extension {
	if c.Extension != ExtNone {
		return c.Extension
	}
	return user
}

// Intervals resolves the chord with the user's extension and alteration
func (c Chord) Intervals(user Extension, alt Alteration) []int {
	return ResolveIntervals(c.Quality, c.Effective(user), alt)
}

// Name formats the chord symbol with the user's extension and alteration
func (c Chord) Name(user Extension, alt Alteration) string {
	return FormatName(c.Root, c.Quality, c.Effective(user), alt)
}

// ResolveIntervals returns semitone offsets above the root: triad first, then
// stacked extensions in order. Alterations are applied as given; callers are
// expected to have rejected illegal combinations.
func ResolveIntervals(q Quality, ext Extension, alt Alteration) []int {
	if q < Major || q > Octave {
		q = Major
	}
	var iv []int
	switch q {
	case Power:
		return []int{0, 7}
	case Octave:
		return []int{0, 12}
	case Minor:
		iv = []int{0, 3, 7}
	case Diminished:
		iv = []int{0, 3, 6}
	case Augmented:
		iv = []int{0, 4, 8}
	default:
		iv = []int{0, 4, 7}
	}

	switch alt {
	case AltFlat5:
		if q != Augmented {
			iv[2] = 6
		}
	case AltSharp5:
		if q != Augmented {
			iv[2] = 8
		}
	}

	switch ext {
	case Ext6:
		iv = append(iv, 9)
	case Ext7:
		iv = append(iv, seventh(q))
	case ExtDom7:
		iv = append(iv, 10)
	case Ext9:
		iv = append(iv, stackedSeventh(q), ninth(alt))
	case Ext11:
		iv = append(iv, stackedSeventh(q), 14, 17)
	case Ext13:
		iv = append(iv, stackedSeventh(q), 14, 21)
	}
	return iv
}

// seventh is the plain "7" extension: maj7, dim7 or m7
func seventh(q Quality) int {
	switch q {
	case Major:
		return 11
	case Diminished:
		return 9
	default:
		return 10
	}
}

// stackedSeventh is the seventh under a 9/11/13
func stackedSeventh(q Quality) int {
	if q == Major {
		return 11
	}
	return 10
}

func ninth(alt Alteration) int {
	switch alt {
	case AltFlat9:
		return 13
	case AltSharp9:
		return 15
	default:
		return 14
	}
}
