package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"go-metronome/theme"
)

// plain strips styling so tests compare symbols only
func plain(s string) string {
	var out strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && ((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')):
			inEsc = false
		case !inEsc:
			out.WriteRune(r)
		}
	}
	return out.String()
}

func TestBeatRow(t *testing.T) {
	th := theme.New(nil)
	assert.Equal(t, "● ○ ○ ○", plain(BeatRow(th, 4, -1, false)))
	assert.Equal(t, "● ◉ ○ ○", plain(BeatRow(th, 4, 1, false)))
	assert.Equal(t, "◉ ◦ ○ ◦", plain(BeatRow(th, 4, 0, true)))
	assert.Empty(t, BeatRow(th, 0, -1, false))
}

func TestLayerMeter(t *testing.T) {
	th := theme.New(nil)
	out := plain(LayerMeter(th, []int{3, 2, 3}, 3))
	assert.Equal(t, "oct+2 ▮▮▮\noct+1 ▮▮▯\noct+0 ▮▮▮", out)
}

func TestChordCard(t *testing.T) {
	th := theme.New(nil)
	card := ChordCard(th, "Dm7", "G7", "ii-V-I")
	assert.Contains(t, plain(card), "Dm7")
	assert.Contains(t, plain(card), "G7")
	assert.Contains(t, plain(card), "ii-V-I")
	assert.Equal(t, 4, lipgloss.Height(card))
}
