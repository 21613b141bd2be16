package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-metronome/theme"
)

// BeatRow renders one symbol per beat of the bar. current is the beat
// sounding now, or -1 when stopped.
func BeatRow(th *theme.Theme, beats, current int, swung bool) string {
	sym := th.Symbols
	var out strings.Builder
	for i := range beats {
		if i > 0 {
			out.WriteString(" ")
		}

		r, color := sym.Beat, th.Muted()
		switch {
		case i == current:
			r, color = sym.Playhead, th.Success()
		case i == 0:
			r, color = sym.Downbeat, th.Accent()
		case swung && i%2 == 1:
			r = sym.Swung
		}
		out.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(r)))
	}
	return out.String()
}

// ChordCard shows the sounding chord and the one the next bar brings
func ChordCard(th *theme.Theme, now, next, progression string) string {
	title := lipgloss.NewStyle().Foreground(th.Muted())
	big := lipgloss.NewStyle().Foreground(th.Active()).Bold(true)
	dim := lipgloss.NewStyle().Foreground(th.FG())

	body := fmt.Sprintf("%s %s   %s %s",
		title.Render("now"), big.Render(fmt.Sprintf("%-8s", now)),
		title.Render("next"), dim.Render(next))
	if progression != "" {
		body += "\n" + title.Render(progression)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Muted()).
		Padding(0, 1).
		Render(body)
}

// LayerMeter renders the drone voices of each octave layer, highest first.
// counts[i] is the number of live voices on layer i out of perLayer.
func LayerMeter(th *theme.Theme, counts []int, perLayer int) string {
	sym := th.Symbols
	var lines []string
	for layer := len(counts) - 1; layer >= 0; layer-- {
		on := lipgloss.NewStyle().Foreground(th.Layer(layer, len(counts)))
		off := lipgloss.NewStyle().Foreground(th.Muted())

		var line strings.Builder
		line.WriteString(off.Render(fmt.Sprintf("oct+%d ", layer)))
		for i := range perLayer {
			if i < counts[layer] {
				line.WriteString(on.Render(string(sym.VoiceOn)))
			} else {
				line.WriteString(off.Render(string(sym.VoiceOff)))
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// Field renders "label value" with the label dimmed
func Field(th *theme.Theme, label, value string) string {
	return lipgloss.NewStyle().Foreground(th.Muted()).Render(label) + " " +
		lipgloss.NewStyle().Foreground(th.FG()).Render(value)
}
