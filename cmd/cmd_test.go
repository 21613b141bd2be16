package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-metronome/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestProgressionsCommand(t *testing.T) {
	out, err := execute(t, "progressions", "ii-V-I", "circle-of-fifths")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ii-V-I", "Dm7", "G7", "Cmaj7", "Cmaj7"}, strings.Fields(lines[0]))
	assert.Equal(t, "circle-of-fifths", strings.Fields(lines[1])[0])
	assert.Len(t, strings.Fields(lines[1]), 13)
}

func TestProgressionsInAnotherKey(t *testing.T) {
	out, err := execute(t, "progressions", "--root", "A", "--quality", "minor", "--bars", "2", "--extension", "none", "i-VII-VI-V")
	require.NoError(t, err)
	assert.Equal(t, []string{"i-VII-VI-V", "Am", "G"}, strings.Fields(out))
}

func TestProgressionsRejectsUnknownNames(t *testing.T) {
	_, err := execute(t, "progressions", "--root", "C", "--quality", "major", "--bars", "0", "giant-steps")
	assert.Error(t, err)
}

func TestConfigInitWritesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	path := filepath.Join(home, ".config", "go-metronome", "config.json")
	assert.Equal(t, path, strings.TrimSpace(out))

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = execute(t, "config", "init")
	assert.Error(t, err, "existing config is kept")
}

func TestFlagsOverrideConfig(t *testing.T) {
	require.NoError(t, rootCmd.Flags().Parse([]string{"--tempo", "90", "--root", "Eb", "--drone", "--no-audio"}))

	cfg := config.DefaultConfig()
	applyFlags(cfg, rootCmd.Flags())
	assert.Equal(t, 90, cfg.Metronome.Tempo)
	assert.Equal(t, "Eb", cfg.Drone.Root)
	assert.True(t, cfg.Drone.Enabled)
	assert.False(t, cfg.Audio.Enabled)
	// untouched flags leave the file's values alone
	assert.Equal(t, 4, cfg.Metronome.BeatsPerMeasure)
	assert.Equal(t, "hammond", cfg.Drone.Timbre)
}

func TestApplyFlagsReadsTypedValues(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("volume", 0, "")
	flags.String("timbre", "", "")
	flags.Bool("drone", false, "")
	flags.Bool("no-audio", false, "")
	require.NoError(t, flags.Parse([]string{"--volume", "35", "--timbre", "piano", "--drone=false", "--no-audio=false"}))

	cfg := config.DefaultConfig()
	cfg.Drone.Enabled = true
	cfg.Audio.Enabled = false
	applyFlags(cfg, flags)
	assert.Equal(t, 35, cfg.Drone.Volume)
	assert.Equal(t, "piano", cfg.Drone.Timbre)
	assert.False(t, cfg.Drone.Enabled)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, config.DefaultConfig().Metronome, cfg.Metronome)
}

func TestMain(m *testing.M) {
	// keep tests away from a real ~/.config
	home, err := os.MkdirTemp("", "go-metronome-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("HOME", home)
	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}
