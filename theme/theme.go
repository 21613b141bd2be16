package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Beat wheel
	Downbeat rune // ● accented beat
	Beat     rune // ○ plain beat
	Swung    rune // ◦ off-beat under swing
	Playhead rune // ◉ beat sounding now

	// Transport
	Playing rune // ▶
	Stopped rune // ■

	// Drone layers
	VoiceOn  rune // ▮ sounding voice
	VoiceOff rune // ▯ failed or silent slot
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Plasma()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Downbeat: '●',
			Beat:     '○',
			Swung:    '◦',
			Playhead: '◉',

			Playing: '▶',
			Stopped: '■',

			VoiceOn:  '▮',
			VoiceOff: '▯',
		},
	}
}

// Load builds a theme from a GIMP palette, falling back to the built-in
// palette when path is empty or unreadable. The load error is returned so
// the caller can report it.
func Load(path string) (*Theme, error) {
	if path == "" {
		return New(Plasma()), nil
	}
	p, err := LoadGPL(path)
	if err != nil {
		return New(Plasma()), err
	}
	return New(p), nil
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.1
	RoleMuted   = 0.25
	RoleFG      = 0.45
	RoleAccent  = 0.5
	RoleCursor  = 0.6
	RoleActive  = 0.7
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return t.Color(RoleBG)
}

func (t *Theme) FG() lipgloss.Color {
	return t.Color(RoleFG)
}

func (t *Theme) Accent() lipgloss.Color {
	return t.Color(RoleAccent)
}

func (t *Theme) Muted() lipgloss.Color {
	return t.Color(RoleMuted)
}

func (t *Theme) Active() lipgloss.Color {
	return t.Color(RoleActive)
}

func (t *Theme) Cursor() lipgloss.Color {
	return t.Color(RoleCursor)
}

func (t *Theme) Warning() lipgloss.Color {
	return t.Color(RoleWarning)
}

func (t *Theme) Success() lipgloss.Color {
	return t.Color(RoleSuccess)
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(norm).Hex())
}

// Layer returns the color of a drone octave layer, lowest darkest
func (t *Theme) Layer(layer, layers int) lipgloss.Color {
	if layers <= 1 {
		return t.Accent()
	}
	return t.Color(RoleMuted + (RoleSuccess-RoleMuted)*float64(layer)/float64(layers-1))
}
