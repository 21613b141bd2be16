package harmony

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatName(t *testing.T) {
	cases := []struct {
		root PitchClass
		q    Quality
		ext  Extension
		alt  Alteration
		want string
	}{
		{C, Major, ExtNone, AltNone, "C"},
		{C, Major, Ext7, AltNone, "Cmaj7"},
		{G, Major, ExtDom7, AltNone, "G7"},
		{D, Minor, Ext7, AltNone, "Dm7"},
		{B, Diminished, Ext7, AltNone, "B°7"},
		{GSharp, Augmented, ExtNone, AltNone, "G#+"},
		{E, Minor, Ext9, AltFlat9, "Em9♭9"},
		{F, Major, Ext13, AltSharp5, "F13#5"},
		{C, Power, Ext7, AltFlat5, "C5"},
		{A, Octave, Ext9, AltNone, "A"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatName(tc.root, tc.q, tc.ext, tc.alt))
	}
}

func TestPitchClassTranspose(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(D, C.Transpose(2))
	assert.Equal(B, C.Transpose(11))
	assert.Equal(C, B.Transpose(1))
	assert.Equal(ASharp, C.Transpose(-2))
	assert.Equal(E, E.Transpose(24))
	assert.Equal("F#", FSharp.String())
}

func TestParsePitchClass(t *testing.T) {
	assert := assert.New(t)
	p, ok := ParsePitchClass("c#")
	assert.True(ok)
	assert.Equal(CSharp, p)

	p, ok = ParsePitchClass("Bb")
	assert.True(ok)
	assert.Equal(ASharp, p)

	p, ok = ParsePitchClass("H")
	assert.False(ok)
	assert.Equal(C, p)
}

func TestFrequencyTable(t *testing.T) {
	assert.InDelta(t, 220.0, A.Frequency(), 1e-9)
	// each semitone is roughly 2^(1/12) above the last
	for _, p := range PitchClasses()[:11] {
		ratio := p.Transpose(1).Frequency() / p.Frequency()
		assert.InDelta(t, math.Pow(2, 1.0/12), ratio, 0.001, p.String())
	}
}

func TestHostValidity(t *testing.T) {
	assert := assert.New(t)
	assert.False(ExtensionValid(Power, Ext7))
	assert.True(ExtensionValid(Power, ExtNone))
	assert.True(ExtensionValid(Major, ExtDom7))
	assert.False(ExtensionValid(Minor, ExtDom7))
	assert.True(ExtensionValid(Diminished, Ext7))
	assert.False(ExtensionValid(Augmented, Ext9))

	assert.False(AlterationValid(Diminished, Ext7, AltFlat5))
	assert.False(AlterationValid(Major, ExtNone, AltFlat5))
	assert.True(AlterationValid(Major, Ext7, AltFlat5))
	assert.False(AlterationValid(Augmented, Ext7, AltSharp5))
	assert.False(AlterationValid(Minor, Ext7, AltFlat9))
	assert.True(AlterationValid(Minor, Ext11, AltSharp9))

	ext, alt := Sanitize(Power, Ext9, AltFlat9)
	assert.Equal(ExtNone, ext)
	assert.Equal(AltNone, alt)
}
