package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPL = `GIMP Palette
Name: Mono
Columns: 2
# comment
  0   0   0	Black
255 255 255	White
300 0 0	out of range
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(sampleGPL))
	require.NoError(t, err)
	assert.Equal(t, "Mono", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {255, 255, 255}}, p.Colors)
}

func TestParseGPLWithoutColors(t *testing.T) {
	_, err := ParseGPL(strings.NewReader("GIMP Palette\nName: Empty\n"))
	assert.Error(t, err)
}

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
	assert.Equal(t, RGB{200, 100, 50}, p.Index(9))
	assert.Equal(t, "#c86432", p.Index(1).Hex())

	single := &Palette{Colors: []RGB{{1, 2, 3}}}
	assert.Equal(t, RGB{1, 2, 3}, single.Lookup(0.5))
}

func TestLoadFallsBackToBuiltin(t *testing.T) {
	th, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "plasma", th.Palette.Name)

	th, err = Load(filepath.Join(t.TempDir(), "missing.gpl"))
	assert.Error(t, err)
	require.NotNil(t, th)
	assert.Equal(t, "plasma", th.Palette.Name)

	path := filepath.Join(t.TempDir(), "mono.gpl")
	require.NoError(t, os.WriteFile(path, []byte(sampleGPL), 0644))
	th, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Mono", th.Palette.Name)
	assert.Equal(t, "#000000", string(th.BG()))
}

func TestLayerColorsSpanPalette(t *testing.T) {
	th := New(nil)
	assert.Equal(t, th.Color(RoleMuted), th.Layer(0, 3))
	assert.Equal(t, th.Color(RoleSuccess), th.Layer(2, 3))
	assert.Equal(t, th.Accent(), th.Layer(0, 1))
}
