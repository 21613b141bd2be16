package sequencer

import (
	"context"
	"sync"
	"time"

	"go-metronome/audio"
	"go-metronome/debug"
	"go-metronome/drone"
	"go-metronome/harmony"
	"go-metronome/progression"
)

// DroneSettings are the harmonic inputs of the drone
type DroneSettings struct {
	Enabled     bool               `json:"enabled"`
	Root        harmony.PitchClass `json:"root"`
	Quality     harmony.Quality    `json:"quality"`
	Extension   harmony.Extension  `json:"extension"`
	Alteration  harmony.Alteration `json:"alteration"`
	Volume      int                `json:"volume"` // 0-100
	Timbre      drone.Timbre       `json:"timbre"`
	Mode        drone.Mode         `json:"mode"`
	Progression progression.ID     `json:"progression"`
}

// DefaultDroneSettings returns a quiet C major hammond drone, off
func DefaultDroneSettings() DroneSettings {
	return DroneSettings{
		Root:    harmony.C,
		Quality: harmony.Major,
		Volume:  50,
		Timbre:  drone.Hammond,
		Mode:    drone.Constant,
	}
}

// chordAt resolves the chord for bar
func (d DroneSettings) chordAt(bar int) harmony.Chord {
	return progression.ChordAt(bar, d.Root, d.Quality, d.Progression)
}

func (d DroneSettings) intervals(c harmony.Chord) []int {
	return c.Intervals(d.Extension, d.Alteration)
}

// Manager wires the scheduler's beats to clicks, the progression and the
// drone. Control calls are serialised by ctrl; mu guards what the beat
// callback reads, and is never held while the scheduler is stopped or
// started because Stop waits for the callback to return.
type Manager struct {
	graph audio.Graph
	sched *Scheduler
	drone *drone.Driver

	ctrl sync.Mutex

	mu       sync.Mutex
	ctx      context.Context
	playing  bool
	settings Settings
	droneCfg DroneSettings
	chord    harmony.Chord
	bar      int // last scheduled bar
	lastErr  error

	// scheduled beats run up to a lookahead ahead of the audio; the
	// display follows the clock through pending
	pending   []Event
	heardBeat int
	heardBar  int

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// NewManager creates a stopped manager on graph
func NewManager(g audio.Graph, settings Settings, droneCfg DroneSettings) *Manager {
	m := &Manager{
		graph:      g,
		drone:      drone.NewDriver(g),
		settings:   settings.normalized(),
		droneCfg:   droneCfg,
		UpdateChan: make(chan struct{}, 1),
	}
	m.sched = NewScheduler(g, m.settings)
	m.sched.OnEvent = m.onEvent
	m.configureDrone()
	return m
}

// Scheduler exposes the beat scheduler
func (m *Manager) Scheduler() *Scheduler {
	return m.sched
}

// Drone exposes the drone driver
func (m *Manager) Drone() *drone.Driver {
	return m.drone
}

func (m *Manager) configureDrone() {
	m.drone.SetTiming(m.settings.Tempo, m.settings.BeatsPerMeasure)
	m.drone.SetVolume(m.droneCfg.Volume)
	m.drone.SetTimbre(m.droneCfg.Timbre)
	m.drone.SetMode(m.droneCfg.Mode)
}

// Play starts the drone on bar 0 (if enabled) and then the clicks
func (m *Manager) Play(ctx context.Context) error {
	m.ctrl.Lock()
	defer m.ctrl.Unlock()

	m.mu.Lock()
	if m.playing {
		m.mu.Unlock()
		return nil
	}
	if err := m.settings.Validate(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.ctx = ctx
	m.playing = true
	m.resetCountersLocked()
	m.lastErr = nil
	m.startDroneLocked(m.graph.Now())
	m.mu.Unlock()

	m.sched.ResetBar()
	if err := m.sched.Start(ctx); err != nil {
		m.mu.Lock()
		m.playing = false
		m.mu.Unlock()
		m.drone.Stop()
		return err
	}
	debug.Log("manager", "play")
	m.notifyUpdate()
	return nil
}

// Stop halts clicks and drone and resets the bar counter
func (m *Manager) Stop() {
	m.ctrl.Lock()
	defer m.ctrl.Unlock()

	m.mu.Lock()
	if !m.playing {
		m.mu.Unlock()
		return
	}
	m.playing = false
	m.mu.Unlock()

	m.sched.Stop()
	m.sched.ResetBar()
	m.drone.Stop()

	m.mu.Lock()
	m.resetCountersLocked()
	m.mu.Unlock()
	debug.Log("manager", "stop")
	m.notifyUpdate()
}

// Toggle starts or stops playback
func (m *Manager) Toggle(ctx context.Context) error {
	if m.Playing() {
		m.Stop()
		return nil
	}
	return m.Play(ctx)
}

// Playing reports whether playback is running
func (m *Manager) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// resetCountersLocked rewinds to bar 0; caller holds mu
func (m *Manager) resetCountersLocked() {
	m.bar = 0
	m.heardBeat, m.heardBar = 0, 0
	m.pending = m.pending[:0]
}

// catchUpLocked moves the displayed beat to the last one the audio clock
// has reached; caller holds mu
func (m *Manager) catchUpLocked() {
	now := m.graph.Now()
	n := 0
	for _, ev := range m.pending {
		if ev.Time > now {
			break
		}
		m.heardBeat, m.heardBar = ev.Beat, ev.Bar
		n++
	}
	m.pending = append(m.pending[:0], m.pending[n:]...)
}

// startDroneLocked voices the chord of the current bar; caller holds mu
func (m *Manager) startDroneLocked(at float64) {
	if !m.droneCfg.Enabled {
		m.drone.Stop()
		return
	}
	m.chord = m.droneCfg.chordAt(m.bar)
	if err := m.drone.Start(m.chord, m.droneCfg.intervals(m.chord), at); err != nil {
		m.lastErr = err
		debug.Log("drone", "start: %v", err)
	}
}

// onEvent runs for every scheduled beat
func (m *Manager) onEvent(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.playing {
		return
	}
	m.bar = ev.Bar
	m.pending = append(m.pending, ev)

	kind := audio.ClickTick
	if ev.Accent {
		kind = audio.ClickAccent
	}
	if err := m.graph.Click(kind, ev.Time, ev.Level); err != nil {
		m.lastErr = err
		debug.Log("audio", "click %d/%d: %v", ev.Bar, ev.Beat, err)
	}
	debug.LogEvery(16, "sched", "beat %d bar %d at %.3f", ev.Beat, ev.Bar, ev.Time)

	if m.droneCfg.Enabled {
		m.droneOnBeat(ev)
	}
	m.notifyAt(ev.Time)
}

// droneOnBeat follows the progression and pulses the drone; caller holds mu
func (m *Manager) droneOnBeat(ev Event) {
	mode := m.droneCfg.Mode
	triggered := false

	if ev.Beat == 0 {
		chord := m.droneCfg.chordAt(ev.Bar)
		if m.droneCfg.Progression != progression.None && chord != m.chord {
			m.chord = chord
			if err := m.drone.Restart(chord, m.droneCfg.intervals(chord), ev.Nominal); err != nil {
				m.lastErr = err
				debug.Log("drone", "restart bar %d: %v", ev.Bar, err)
			}
			if mode.Pulsed() {
				m.drone.Trigger(ev.Nominal + m.drone.RestartDelay)
				triggered = true
			}
		} else if mode == drone.PerBar {
			m.drone.Trigger(ev.Time)
			triggered = true
		}
	}
	if mode == drone.PerBeat && !triggered {
		m.drone.Trigger(ev.Time)
	}
}

// SetTempo sets the BPM, clamped to 20-300
func (m *Manager) SetTempo(bpm int) error {
	bpm = max(MinTempo, min(MaxTempo, bpm))
	return m.updateTiming(func(s *Settings) { s.Tempo = bpm })
}

// SetSwing sets swing 0-100
func (m *Manager) SetSwing(swing int) error {
	return m.updateTiming(func(s *Settings) { s.Swing = swing })
}

// SetTempoAndSwing applies both with a single restart
func (m *Manager) SetTempoAndSwing(bpm, swing int) error {
	bpm = max(MinTempo, min(MaxTempo, bpm))
	return m.updateTiming(func(s *Settings) {
		s.Tempo = bpm
		s.Swing = swing
	})
}

// SetMeter sets beats per measure, clamped to 1-16
func (m *Manager) SetMeter(beats int) error {
	beats = max(1, min(MaxMeter, beats))
	return m.updateTiming(func(s *Settings) { s.BeatsPerMeasure = beats })
}

// updateTiming restarts playback from bar 0 when running
func (m *Manager) updateTiming(apply func(*Settings)) error {
	m.ctrl.Lock()
	defer m.ctrl.Unlock()

	m.mu.Lock()
	next := m.settings
	apply(&next)
	next = next.normalized()
	if err := next.Validate(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.settings = next
	m.drone.SetTiming(next.Tempo, next.BeatsPerMeasure)
	playing, ctx := m.playing, m.ctx
	m.mu.Unlock()

	if !playing {
		return m.sched.Configure(next)
	}

	// full stop and restart, the drone follows from bar 0
	m.mu.Lock()
	m.playing = false
	m.mu.Unlock()
	m.sched.Stop()

	if err := m.sched.Configure(next); err != nil {
		return err
	}
	m.sched.ResetBar()

	m.mu.Lock()
	m.playing = true
	m.resetCountersLocked()
	m.chord = harmony.Chord{}
	m.startDroneLocked(m.graph.Now())
	m.mu.Unlock()

	debug.Log("manager", "retime: tempo=%d swing=%d meter=%d", next.Tempo, next.Swing, next.BeatsPerMeasure)
	return m.sched.Start(ctx)
}

// UpdateDrone replaces the drone settings; a playing drone is restarted on
// the current bar's chord
func (m *Manager) UpdateDrone(apply func(*DroneSettings)) {
	m.ctrl.Lock()
	defer m.ctrl.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.droneCfg
	apply(&m.droneCfg)
	m.droneCfg.Volume = max(0, min(100, m.droneCfg.Volume))
	m.configureDrone()

	// volume alone re-levels in place
	volumeOnly := prev
	volumeOnly.Volume = m.droneCfg.Volume
	if volumeOnly == m.droneCfg || !m.playing {
		m.notifyUpdate()
		return
	}

	now := m.graph.Now()
	m.startDroneLocked(now)
	if m.droneCfg.Enabled && m.droneCfg.Mode.Pulsed() {
		m.drone.Trigger(now + m.drone.RestartDelay)
	}
	debug.Log("manager", "drone: %+v", m.droneCfg)
	m.notifyUpdate()
}

// SetDroneEnabled turns the drone on or off
func (m *Manager) SetDroneEnabled(on bool) {
	m.UpdateDrone(func(d *DroneSettings) { d.Enabled = on })
}

// SetDroneVolume sets the drone level 0-100
func (m *Manager) SetDroneVolume(v int) {
	m.UpdateDrone(func(d *DroneSettings) { d.Volume = v })
}

// Settings returns the timing settings
func (m *Manager) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// DroneSettings returns the drone settings
func (m *Manager) DroneSettings() DroneSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.droneCfg
}

// ChordAt resolves the chord a bar will carry with the current settings
func (m *Manager) ChordAt(bar int) harmony.Chord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.droneCfg.chordAt(bar)
}

// Status returns a snapshot for display. Beat, bar and chord are the ones
// currently sounding, not the ones already scheduled ahead.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.catchUpLocked()
	d := m.droneCfg
	now := d.chordAt(m.heardBar)
	next := d.chordAt(m.heardBar + 1)
	return Status{
		Playing:   m.playing,
		Settings:  m.settings,
		Drone:     d,
		Beat:      m.heardBeat,
		Bar:       m.heardBar,
		Chord:     now.Name(d.Extension, d.Alteration),
		NextChord: next.Name(d.Extension, d.Alteration),
		Voices:    len(m.drone.Voices()),
		Dropped:   m.sched.Dropped(),
		Err:       m.lastErr,
	}
}

// notifyAt wakes the TUI once the audio clock reaches at
func (m *Manager) notifyAt(at float64) {
	delay := at - m.graph.Now()
	if delay <= 0 {
		m.notifyUpdate()
		return
	}
	time.AfterFunc(time.Duration(delay*float64(time.Second)), m.notifyUpdate)
}

// notifyUpdate wakes the TUI without blocking
func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}
