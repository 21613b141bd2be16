package theme

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// RGB is an 8-bit sRGB triple
type RGB [3]uint8

// Palette is an ordered color ramp. Colors is never empty once loaded.
type Palette struct {
	Name   string
	Colors []RGB
}

var errNoColors = errors.New("no colors found")

// Plasma is the built-in palette, dark violet through magenta to yellow
func Plasma() *Palette {
	return &Palette{
		Name: "plasma",
		Colors: []RGB{
			{13, 8, 135},
			{75, 3, 161},
			{125, 3, 168},
			{168, 34, 150},
			{203, 70, 121},
			{229, 107, 93},
			{248, 148, 65},
			{253, 195, 40},
			{240, 249, 33},
		},
	}
}

// LoadGPL reads a GIMP palette file
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ParseGPL(f)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// ParseGPL parses GIMP palette text. Header lines are skipped apart from
// "Name:", and color lines with a channel outside 0-255 are ignored.
func ParseGPL(r io.Reader) (*Palette, error) {
	p := &Palette{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"),
			strings.HasPrefix(line, "GIMP"), strings.HasPrefix(line, "Columns"):
		case strings.HasPrefix(line, "Name:"):
			p.Name = strings.TrimSpace(line[len("Name:"):])
		default:
			if c, ok := parseColor(strings.Fields(line)); ok {
				p.Colors = append(p.Colors, c)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(p.Colors) == 0 {
		return nil, errNoColors
	}
	return p, nil
}

// parseColor reads "R G B [name...]"
func parseColor(fields []string) (RGB, bool) {
	var c RGB
	if len(fields) < len(c) {
		return c, false
	}
	for i := range c {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return c, false
		}
		c[i] = uint8(v)
	}
	return c, true
}

// Lookup blends between neighbouring colors; norm is clamped to 0..1.
func (p *Palette) Lookup(norm float64) RGB {
	last := len(p.Colors) - 1
	switch {
	case norm <= 0 || last == 0:
		return p.Colors[0]
	case norm >= 1:
		return p.Colors[last]
	}

	pos := norm * float64(last)
	i := int(pos)
	a, b := p.Colors[i], p.Colors[i+1]
	var out RGB
	for ch := range out {
		out[ch] = mix(a[ch], b[ch], pos-float64(i))
	}
	return out
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Index returns the i-th color, clamped to the ends of the ramp
func (p *Palette) Index(i int) RGB {
	return p.Colors[max(0, min(i, len(p.Colors)-1))]
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
