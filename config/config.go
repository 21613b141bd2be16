package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"go-metronome/audio"
	"go-metronome/drone"
	"go-metronome/harmony"
	"go-metronome/progression"
	"go-metronome/sequencer"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "GO_METRONOME_"

// ErrUnknownValue is returned by Validate for names that do not parse
var ErrUnknownValue = errors.New("unknown value")

// MetronomeConfig stores the timing settings
type MetronomeConfig struct {
	Tempo           int `json:"tempo"`
	Swing           int `json:"swing"`
	BeatsPerMeasure int `json:"beatsPerMeasure"`
}

// DroneConfig stores the drone settings by name so the file stays readable
type DroneConfig struct {
	Enabled     bool   `json:"enabled"`
	Root        string `json:"root"`
	Quality     string `json:"quality"`
	Extension   string `json:"extension,omitempty"`
	Alteration  string `json:"alteration,omitempty"`
	Volume      int    `json:"volume"`
	Timbre      string `json:"timbre"`
	Mode        string `json:"mode"`
	Progression string `json:"progression,omitempty"`
}

// AudioConfig stores output preferences
type AudioConfig struct {
	Enabled      bool `json:"enabled"`
	SampleRate   int  `json:"sampleRate,omitempty"`
	BufferMs     int  `json:"bufferMs,omitempty"`
	MaxVoices    int  `json:"maxVoices,omitempty"`
	MasterVolume int  `json:"masterVolume"` // 0-100
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette  string `json:"palette,omitempty"` // GIMP .gpl file, empty for the built-in palette
	ShowHelp bool   `json:"showHelp"`
}

// Config is the main configuration structure
type Config struct {
	Metronome MetronomeConfig `json:"metronome"`
	Drone     DroneConfig     `json:"drone"`
	Audio     AudioConfig     `json:"audio"`
	UI        UIConfig        `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	s := sequencer.DefaultSettings()
	d := sequencer.DefaultDroneSettings()
	a := audio.DefaultAudioConfig()
	c := &Config{
		Audio: AudioConfig{
			Enabled:      a.Enabled,
			SampleRate:   a.SampleRate,
			BufferMs:     int(a.BufferDuration / time.Millisecond),
			MaxVoices:    a.MaxVoices,
			MasterVolume: int(a.MasterVolume * 100),
		},
		UI: UIConfig{ShowHelp: true},
	}
	c.Remember(s, d)
	return c
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-metronome"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Missing fields keep their defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides the config from GO_METRONOME_* variables. Values in the
// process environment win over the given .env files; missing files are skipped.
func (c *Config) ApplyEnv(envFiles ...string) error {
	vars := make(map[string]string)
	for _, f := range envFiles {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("read %s: %w", f, err)
		}
		maps.Copy(vars, m)
	}
	lookup := func(key string) (string, bool) {
		key = EnvPrefix + key
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}

	envInt(lookup, "TEMPO", &c.Metronome.Tempo)
	envInt(lookup, "SWING", &c.Metronome.Swing)
	envInt(lookup, "METER", &c.Metronome.BeatsPerMeasure)

	envBool(lookup, "DRONE", &c.Drone.Enabled)
	envString(lookup, "ROOT", &c.Drone.Root)
	envString(lookup, "QUALITY", &c.Drone.Quality)
	envString(lookup, "EXTENSION", &c.Drone.Extension)
	envString(lookup, "ALTERATION", &c.Drone.Alteration)
	envInt(lookup, "DRONE_VOLUME", &c.Drone.Volume)
	envString(lookup, "TIMBRE", &c.Drone.Timbre)
	envString(lookup, "MODE", &c.Drone.Mode)
	envString(lookup, "PROGRESSION", &c.Drone.Progression)

	envBool(lookup, "AUDIO_ENABLED", &c.Audio.Enabled)
	envInt(lookup, "SAMPLE_RATE", &c.Audio.SampleRate)
	envInt(lookup, "MASTER_VOLUME", &c.Audio.MasterVolume)
	return nil
}

type lookupFunc func(string) (string, bool)

func envString(lookup lookupFunc, key string, dst *string) {
	if v, ok := lookup(key); ok && v != "" {
		*dst = v
	}
}

func envInt(lookup lookupFunc, key string, dst *int) {
	if v, ok := lookup(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(lookup lookupFunc, key string, dst *bool) {
	if v, ok := lookup(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// Validate reports every setting that would be rejected or replaced by its
// default
func (c *Config) Validate() error {
	var errs []error
	if err := c.Settings().Validate(); err != nil {
		errs = append(errs, err)
	}

	d := c.Drone
	check := func(field, value string, ok bool) {
		if !ok {
			errs = append(errs, fmt.Errorf("drone %s %q: %w", field, value, ErrUnknownValue))
		}
	}
	_, ok := harmony.ParsePitchClass(d.Root)
	check("root", d.Root, ok)
	_, ok = harmony.ParseQuality(d.Quality)
	check("quality", d.Quality, ok)
	_, ok = parseOptional(d.Extension, harmony.ParseExtension)
	check("extension", d.Extension, ok)
	_, ok = parseOptional(d.Alteration, harmony.ParseAlteration)
	check("alteration", d.Alteration, ok)
	_, ok = drone.ParseTimbre(d.Timbre)
	check("timbre", d.Timbre, ok)
	_, ok = drone.ParseMode(d.Mode)
	check("mode", d.Mode, ok)
	_, ok = parseOptional(d.Progression, progression.Parse)
	check("progression", d.Progression, ok)

	return errors.Join(errs...)
}

// parseOptional treats an empty name as the zero value
func parseOptional[T any](s string, parse func(string) (T, bool)) (T, bool) {
	if s == "" {
		var zero T
		return zero, true
	}
	return parse(s)
}

// Settings returns the scheduler settings
func (c *Config) Settings() sequencer.Settings {
	return sequencer.Settings{
		Tempo:           c.Metronome.Tempo,
		Swing:           c.Metronome.Swing,
		BeatsPerMeasure: c.Metronome.BeatsPerMeasure,
	}
}

// DroneSettings resolves the drone names; unknown names fall back to defaults
func (c *Config) DroneSettings() sequencer.DroneSettings {
	d := c.Drone
	root, _ := harmony.ParsePitchClass(d.Root)
	quality, _ := harmony.ParseQuality(d.Quality)
	ext, _ := parseOptional(d.Extension, harmony.ParseExtension)
	alt, _ := parseOptional(d.Alteration, harmony.ParseAlteration)
	timbre, _ := drone.ParseTimbre(d.Timbre)
	mode, _ := drone.ParseMode(d.Mode)
	prog, _ := parseOptional(d.Progression, progression.Parse)

	ext, alt = harmony.Sanitize(quality, ext, alt)
	return sequencer.DroneSettings{
		Enabled:     d.Enabled,
		Root:        root,
		Quality:     quality,
		Extension:   ext,
		Alteration:  alt,
		Volume:      max(0, min(100, d.Volume)),
		Timbre:      timbre,
		Mode:        mode,
		Progression: prog,
	}
}

// AudioConfig returns the engine configuration
func (c *Config) AudioConfig() *audio.AudioConfig {
	a := audio.DefaultAudioConfig()
	a.Enabled = c.Audio.Enabled
	if c.Audio.SampleRate > 0 {
		a.SampleRate = c.Audio.SampleRate
	}
	if c.Audio.BufferMs > 0 {
		a.BufferDuration = time.Duration(c.Audio.BufferMs) * time.Millisecond
	}
	if c.Audio.MaxVoices > 0 {
		a.MaxVoices = c.Audio.MaxVoices
	}
	a.MasterVolume = float64(max(0, min(100, c.Audio.MasterVolume))) / 100
	return a
}

// Remember stores the session's settings for the next start
func (c *Config) Remember(s sequencer.Settings, d sequencer.DroneSettings) {
	c.Metronome = MetronomeConfig{
		Tempo:           s.Tempo,
		Swing:           s.Swing,
		BeatsPerMeasure: s.BeatsPerMeasure,
	}
	c.Drone = DroneConfig{
		Enabled:     d.Enabled,
		Root:        d.Root.String(),
		Quality:     d.Quality.String(),
		Extension:   d.Extension.String(),
		Alteration:  d.Alteration.String(),
		Volume:      d.Volume,
		Timbre:      d.Timbre.String(),
		Mode:        d.Mode.String(),
		Progression: d.Progression.String(),
	}
}
