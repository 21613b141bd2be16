package harmony

// FormatName builds a chord symbol such as "Cmaj7", "Dm7", "G7" or "Em9♭9"
func FormatName(root PitchClass, q Quality, ext Extension, alt Alteration) string {
	name := root.String()

	switch q {
	case Minor:
		name += "m"
	case Diminished:
		name += "°"
	case Augmented:
		name += "+"
	case Power:
		name += "5"
	}

	if q.Reduced() {
		return name
	}

	switch {
	case ext == ExtNone:
	case q == Major && ext == Ext7:
		name += "maj7"
	case ext == ExtDom7:
		// dominant seventh reads as a bare 7 (G7)
		name += "7"
	default:
		name += ext.String()
	}

	switch alt {
	case AltFlat5:
		name += "♭5"
	case AltSharp5:
		name += "#5"
	case AltFlat9:
		name += "♭9"
	case AltSharp9:
		name += "#9"
	}
	return name
}
