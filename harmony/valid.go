package harmony

// ExtensionValid reports whether a host should offer ext for quality q.
// ResolveIntervals itself never checks this.
func ExtensionValid(q Quality, ext Extension) bool {
	if ext == ExtNone {
		return true
	}
	if q.Reduced() {
		return false
	}
	if ext == ExtDom7 {
		return q == Major
	}
	if q == Augmented || q == Diminished {
		return ext == Ext7
	}
	return true
}

// AlterationValid reports whether a host should offer alt for (q, ext)
func AlterationValid(q Quality, ext Extension, alt Alteration) bool {
	if alt == AltNone {
		return true
	}
	if q.Reduced() {
		return false
	}

	sevenths := ext == Ext7 || ext == Ext9 || ext == Ext11 || ext == Ext13
	switch alt {
	case AltFlat5:
		if q == Diminished || q == Augmented {
			return false
		}
		return sevenths
	case AltSharp5:
		if q == Augmented {
			return false
		}
		return sevenths
	case AltFlat9, AltSharp9:
		return ext == Ext9 || ext == Ext11 || ext == Ext13
	}
	return false
}

// Sanitize drops an extension or alteration the host would not offer.
// Used when the quality changes under an existing selection.
func Sanitize(q Quality, ext Extension, alt Alteration) (Extension, Alteration) {
	if !ExtensionValid(q, ext) {
		ext = ExtNone
	}
	if !AlterationValid(q, ext, alt) {
		alt = AltNone
	}
	return ext, alt
}
