package drone

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"go-metronome/audio"
	"go-metronome/debug"
	"go-metronome/harmony"
)

// Driver timing
const (
	DefaultReleaseFade  = 0.005 // fade applied to voices being torn down
	DefaultRestartDelay = 0.01  // gap between an old chord's tail and the new attack
	pluckFloor          = 0.001
	padDip              = 0.7
	padDipTime          = 0.1
)

// VoiceKey addresses a voice in the arena
type VoiceKey struct {
	Layer    int // octave above the base octave
	Interval int // index into the chord's interval set
}

// Voice is one sounding tone of the drone
type Voice struct {
	Key       VoiceKey
	BaseGain  float64
	Freq      float64
	Semitones int
	tone      audio.Tone
	start     float64 // audio time the voice begins sounding
}

// Driver turns a chord into tones across the octave layers and shapes their
// gain for the selected mode. It exclusively owns the voice arena: voices are
// created by Start/Restart and destroyed by Restart/Stop.
type Driver struct {
	graph audio.Graph

	ReleaseFade  float64
	RestartDelay float64

	mu     sync.Mutex
	voices map[VoiceKey]*Voice
	chord  harmony.Chord
	active bool
	volume int // 0-100
	timbre Timbre
	mode   Mode
	tempo  int
	meter  int
}

// NewDriver creates an idle driver on graph
func NewDriver(g audio.Graph) *Driver {
	return &Driver{
		graph:        g,
		ReleaseFade:  DefaultReleaseFade,
		RestartDelay: DefaultRestartDelay,
		voices:       make(map[VoiceKey]*Voice),
		volume:       50,
		timbre:       Hammond,
		mode:         Constant,
		tempo:        120,
		meter:        4,
	}
}

// Start replaces any live voices with the chord's voices, sounding from at.
// Voices that cannot be allocated are reported together; the rest play.
func (d *Driver) Start(chord harmony.Chord, intervals []int, at float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.teardown(at)
	return d.allocate(chord, intervals, at)
}

// Restart fades the current chord out at at and brings the new one in
// RestartDelay later
func (d *Driver) Restart(chord harmony.Chord, intervals []int, at float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.teardown(at)
	return d.allocate(chord, intervals, at+d.RestartDelay)
}

// teardown fades and stops every voice; caller holds mu
func (d *Driver) teardown(at float64) {
	if len(d.voices) == 0 {
		return
	}
	end := at + d.ReleaseFade
	for key, v := range d.voices {
		v.tone.CancelAndHoldAt(at)
		v.tone.LinearRampTo(0, end)
		v.tone.StopAt(end)
		delete(d.voices, key)
	}
	debug.Log("drone", "teardown at %.3f", at)
}

// allocate creates one tone per (layer, interval); caller holds mu
func (d *Driver) allocate(chord harmony.Chord, intervals []int, start float64) error {
	d.chord = chord
	d.active = true

	root := chord.Root.Frequency()
	vol := d.level()
	var errs []error
	for layer, lg := range LayerGains {
		for i, semis := range intervals {
			freq := root * math.Pow(2, float64(semis)/12) * math.Pow(2, float64(layer))
			tone, err := d.graph.NewTone(freq, d.timbre.Waveform())
			if err != nil {
				errs = append(errs, fmt.Errorf("voice %d/%d: %w", layer, i, err))
				continue
			}

			base := lg * d.timbre.GainScale()
			if d.mode == Constant {
				tone.SetGainAt(base*vol, start)
			} else {
				tone.SetGainAt(0, start)
			}
			key := VoiceKey{Layer: layer, Interval: i}
			d.voices[key] = &Voice{
				Key:       key,
				BaseGain:  base,
				Freq:      freq,
				Semitones: semis,
				tone:      tone,
				start:     start,
			}
		}
	}

	debug.Log("drone", "start %s %v voices=%d mode=%s timbre=%s", chord.Root, intervals, len(d.voices), d.mode, d.timbre)
	if len(errs) > 0 {
		debug.Log("drone", "%d voices failed", len(errs))
	}
	return errors.Join(errs...)
}

func (d *Driver) level() float64 {
	return float64(d.volume) / 100
}

// Trigger pulses every voice at at. Constant mode and an inactive driver
// ignore triggers.
func (d *Driver) Trigger(at float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active || !d.mode.Pulsed() {
		return
	}

	attack := d.timbre.Attack()
	peak := at + attack
	for _, v := range d.voices {
		target := v.BaseGain * d.level()
		t := v.tone

		t.CancelAndHoldAt(at)
		t.LinearRampTo(target, peak)

		if d.mode == PerBar {
			release := math.Max(0, d.barDuration()-attack)
			t.LinearRampTo(0, peak+release)
			continue
		}

		switch d.timbre.Class() {
		case Plucked:
			t.ExponentialRampTo(pluckFloor, peak+d.timbre.Release())
		case Pad:
			t.LinearRampTo(target*padDip, peak+padDipTime)
			t.LinearRampTo(0, peak+d.timbre.Release())
		default:
			t.LinearRampTo(0, peak+d.timbre.Release())
		}
	}
	debug.LogEvery(8, "drone", "trigger at %.3f mode=%s", at, d.mode)
}

func (d *Driver) barDuration() float64 {
	return 60.0 / float64(d.tempo) * float64(d.meter)
}

// Stop silences and releases every voice immediately
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.teardown(d.graph.Now())
	d.active = false
	d.chord = harmony.Chord{}
}

// SetVolume sets the drone level 0-100; sustained voices are re-levelled in
// place without retriggering
func (d *Driver) SetVolume(volume int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.volume = max(0, min(100, volume))
	if d.mode != Constant || !d.active {
		return
	}
	now := d.graph.Now()
	for _, v := range d.voices {
		// a voice allocated ahead of the clock is re-levelled from its start
		at := max(now, v.start)
		v.tone.CancelFrom(at)
		v.tone.SetGainAt(v.BaseGain*d.level(), at)
	}
}

// SetTiming sets the tempo and meter used by per-bar releases
func (d *Driver) SetTiming(tempo, meter int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if tempo > 0 {
		d.tempo = tempo
	}
	if meter > 0 {
		d.meter = meter
	}
}

// SetTimbre applies from the next Start or Restart
func (d *Driver) SetTimbre(t Timbre) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timbre = t
}

// SetMode applies from the next Start or Restart
func (d *Driver) SetMode(m Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode = m
}

// Mode returns the active mode
func (d *Driver) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Active reports whether the drone is sounding
func (d *Driver) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Chord returns the chord being voiced
func (d *Driver) Chord() harmony.Chord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.chord
}

// Voices returns the live voices ordered by layer then interval
func (d *Driver) Voices() []Voice {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]VoiceKey, 0, len(d.voices))
	for k := range d.voices {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Layer != keys[j].Layer {
			return keys[i].Layer < keys[j].Layer
		}
		return keys[i].Interval < keys[j].Interval
	})

	out := make([]Voice, len(keys))
	for i, k := range keys {
		out[i] = *d.voices[k]
		out[i].tone = nil
	}
	return out
}
