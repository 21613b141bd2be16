package harmony

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReducedQualitiesIgnoreExtensionsAndAlterations(t *testing.T) {
	want := map[Quality][]int{
		Power:  {0, 7},
		Octave: {0, 12},
	}
	for q, base := range want {
		for _, ext := range Extensions() {
			for _, alt := range Alterations() {
				name := fmt.Sprintf("%s/%s/%s", q, ext, alt)
				t.Run(name, func(t *testing.T) {
					assert.Equal(t, base, ResolveIntervals(q, ext, alt))
				})
			}
		}
	}
}

func TestBaseTriads(t *testing.T) {
	cases := []struct {
		q    Quality
		want []int
	}{
		{Major, []int{0, 4, 7}},
		{Minor, []int{0, 3, 7}},
		{Diminished, []int{0, 3, 6}},
		{Augmented, []int{0, 4, 8}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveIntervals(tc.q, ExtNone, AltNone), tc.q.String())
	}
}

func TestSeventhDependsOnQuality(t *testing.T) {
	assert := assert.New(t)
	assert.Contains(ResolveIntervals(Major, Ext7, AltNone), 11)
	assert.Contains(ResolveIntervals(Minor, Ext7, AltNone), 10)
	assert.Contains(ResolveIntervals(Diminished, Ext7, AltNone), 9)
	assert.Contains(ResolveIntervals(Augmented, Ext7, AltNone), 10)
	assert.Equal([]int{0, 3, 6, 9}, ResolveIntervals(Diminished, Ext7, AltNone))
}

func TestDominantSeventhIsAlwaysMinorSeventh(t *testing.T) {
	for _, q := range []Quality{Major, Minor, Diminished, Augmented} {
		iv := ResolveIntervals(q, ExtDom7, AltNone)
		assert.Contains(t, iv, 10, q.String())
		assert.NotContains(t, iv, 11, q.String())
	}
}

func TestStackedExtensions(t *testing.T) {
	cases := []struct {
		q    Quality
		ext  Extension
		alt  Alteration
		want []int
	}{
		{Major, Ext6, AltNone, []int{0, 4, 7, 9}},
		{Major, Ext9, AltNone, []int{0, 4, 7, 11, 14}},
		{Major, Ext9, AltFlat9, []int{0, 4, 7, 11, 13}},
		{Minor, Ext9, AltSharp9, []int{0, 3, 7, 10, 15}},
		{Minor, Ext11, AltNone, []int{0, 3, 7, 10, 14, 17}},
		{Major, Ext13, AltNone, []int{0, 4, 7, 11, 14, 21}},
		{Diminished, Ext9, AltNone, []int{0, 3, 6, 10, 14}},
	}
	for _, tc := range cases {
		name := fmt.Sprintf("%s %s %s", tc.q, tc.ext, tc.alt)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveIntervals(tc.q, tc.ext, tc.alt))
		})
	}
}

func TestFifthAlterations(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{0, 4, 6, 11}, ResolveIntervals(Major, Ext7, AltFlat5))
	assert.Equal([]int{0, 3, 8, 10}, ResolveIntervals(Minor, Ext7, AltSharp5))
	// augmented keeps its raised fifth whatever is asked
	assert.Equal([]int{0, 4, 8}, ResolveIntervals(Augmented, ExtNone, AltFlat5))
	assert.Equal([]int{0, 4, 8}, ResolveIntervals(Augmented, ExtNone, AltSharp5))
	// applied literally on diminished even though a host would not offer it
	assert.Equal([]int{0, 3, 8}, ResolveIntervals(Diminished, ExtNone, AltSharp5))
}

func TestUnknownValuesFailClosed(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{0, 4, 7}, ResolveIntervals(Quality(42), ExtNone, AltNone))
	// an unknown quality takes major sevenths too
	assert.Equal([]int{0, 4, 7, 11}, ResolveIntervals(Quality(42), Ext7, AltNone))
	assert.Equal([]int{0, 4, 7, 11, 14}, ResolveIntervals(Quality(-1), Ext9, AltNone))
	assert.Equal([]int{0, 4, 6, 11}, ResolveIntervals(Quality(42), Ext7, AltFlat5))
	assert.Equal([]int{0, 3, 7}, ResolveIntervals(Minor, Extension(-1), Alteration(99)))

	q, ok := ParseQuality("lydian")
	assert.False(ok)
	assert.Equal(Major, q)
	e, ok := ParseExtension("dom7")
	assert.True(ok)
	assert.Equal(ExtDom7, e)
	a, ok := ParseAlteration("#9")
	assert.True(ok)
	assert.Equal(AltSharp9, a)
}

func TestIntervalsAreFreshSlices(t *testing.T) {
	a := ResolveIntervals(Major, ExtNone, AltNone)
	a[0] = 99
	assert.Equal(t, []int{0, 4, 7}, ResolveIntervals(Major, ExtNone, AltNone))
}

func TestChordEffectiveExtension(t *testing.T) {
	assert := assert.New(t)
	c := Chord{Root: G, Quality: Major, Extension: ExtDom7}
	assert.Equal(ExtDom7, c.Effective(Ext9))
	assert.Equal([]int{0, 4, 7, 10}, c.Intervals(Ext9, AltNone))

	plain := Chord{Root: C, Quality: Minor}
	assert.Equal(Ext9, plain.Effective(Ext9))
}
