package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-metronome/drone"
	"go-metronome/harmony"
	"go-metronome/progression"
	"go-metronome/sequencer"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, sequencer.DefaultSettings(), cfg.Settings())
	assert.Equal(t, sequencer.DefaultDroneSettings(), cfg.DroneSettings())
	assert.Equal(t, "C", cfg.Drone.Root)
	assert.Equal(t, "none", cfg.Drone.Progression)

	a := cfg.AudioConfig()
	assert.True(t, a.Enabled)
	assert.Equal(t, 44100, a.SampleRate)
	assert.Equal(t, 20*time.Millisecond, a.BufferDuration)
	assert.InDelta(t, 0.8, a.MasterVolume, 1e-9)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := DefaultConfig()
	cfg.Remember(
		sequencer.Settings{Tempo: 96, Swing: 30, BeatsPerMeasure: 3},
		sequencer.DroneSettings{
			Enabled:     true,
			Root:        harmony.FSharp,
			Quality:     harmony.Minor,
			Extension:   harmony.Ext9,
			Alteration:  harmony.AltFlat5,
			Volume:      70,
			Timbre:      drone.Strings,
			Mode:        drone.PerBar,
			Progression: progression.AutumnLeaves,
		},
	)
	cfg.UI.Palette = "/tmp/colors.gpl"
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	d := loaded.DroneSettings()
	assert.Equal(t, harmony.FSharp, d.Root)
	assert.Equal(t, drone.Strings, d.Timbre)
	assert.Equal(t, progression.AutumnLeaves, d.Progression)
	assert.Equal(t, 96, loaded.Settings().Tempo)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"metronome":{"tempo":140}}`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 140, cfg.Metronome.Tempo)
	assert.Equal(t, 4, cfg.Metronome.BeatsPerMeasure)
	assert.Equal(t, "hammond", cfg.Drone.Timbre)
	assert.True(t, cfg.Audio.Enabled)
}

func TestLoadRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"metronome":`), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestApplyEnvFromFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"GO_METRONOME_TEMPO=90\n"+
			"GO_METRONOME_ROOT=Bb\n"+
			"GO_METRONOME_DRONE=true\n"+
			"GO_METRONOME_MODE=per-beat\n"+
			"GO_METRONOME_SWING=not-a-number\n",
	), 0644))

	// the process environment wins over the file
	t.Setenv("GO_METRONOME_TEMPO", "150")
	t.Setenv("GO_METRONOME_MASTER_VOLUME", "25")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(envFile, filepath.Join(dir, "missing.env")))

	assert.Equal(t, 150, cfg.Metronome.Tempo)
	assert.Equal(t, 0, cfg.Metronome.Swing)
	assert.True(t, cfg.Drone.Enabled)
	assert.Equal(t, "per-beat", cfg.Drone.Mode)

	d := cfg.DroneSettings()
	assert.Equal(t, harmony.ASharp, d.Root)
	assert.Equal(t, drone.PerBeat, d.Mode)
	assert.InDelta(t, 0.25, cfg.AudioConfig().MasterVolume, 1e-9)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metronome.Tempo = 0
	cfg.Drone.Root = "H"
	cfg.Drone.Timbre = "theremin"
	cfg.Drone.Progression = "giant-steps"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, sequencer.ErrInvalidTempo))
	assert.True(t, errors.Is(err, ErrUnknownValue))
	assert.Contains(t, err.Error(), `"theremin"`)
	assert.Contains(t, err.Error(), `"giant-steps"`)

	// unknown names fall back
	d := cfg.DroneSettings()
	assert.Equal(t, harmony.C, d.Root)
	assert.Equal(t, drone.Hammond, d.Timbre)
	assert.Equal(t, progression.None, d.Progression)
}

func TestDroneSettingsDropsIllegalCombinations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Drone.Quality = "power"
	cfg.Drone.Extension = "13"
	cfg.Drone.Alteration = "b9"
	cfg.Drone.Volume = 400

	d := cfg.DroneSettings()
	assert.Equal(t, harmony.ExtNone, d.Extension)
	assert.Equal(t, harmony.AltNone, d.Alteration)
	assert.Equal(t, 100, d.Volume)
}
