package audio

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"go-metronome/debug"
)

// Engine mixes tones and clicks into one stereo stream and keeps the audio
// clock: the number of samples rendered so far. It is a beep.Streamer; Open
// attaches it to the speaker, otherwise Render or Pump drive it.
type Engine struct {
	cfg AudioConfig
	sr  beep.SampleRate

	mu     sync.Mutex // guards the mixer and every tone's automation
	mixer  *beep.Mixer
	master *effects.Volume
	rng    *rand.Rand
	closed bool
	output bool

	pos     atomic.Int64 // samples rendered
	dropped atomic.Int64 // sources refused by the voice limit
}

// NewEngine creates an engine that renders only when asked to
func NewEngine(cfg *AudioConfig) *Engine {
	c := DefaultAudioConfig()
	if cfg != nil {
		c = cfg
	}
	conf := *c
	conf.normalize()

	e := &Engine{
		cfg:   conf,
		sr:    beep.SampleRate(conf.SampleRate),
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	e.master = newVolume(e.mixer, conf.MasterVolume)
	return e
}

// Open creates an engine and plays it through the default output device
func Open(cfg *AudioConfig) (*Engine, error) {
	e := NewEngine(cfg)
	if err := speaker.Init(e.sr, e.sr.N(e.cfg.BufferDuration)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(e)
	e.output = true
	debug.Log("audio", "speaker open: %dHz buffer=%v", e.cfg.SampleRate, e.cfg.BufferDuration)
	return e, nil
}

// SampleRate returns the engine's sample rate
func (e *Engine) SampleRate() beep.SampleRate {
	return e.sr
}

// Now returns the audio clock in seconds
func (e *Engine) Now() float64 {
	return float64(e.pos.Load()) / float64(e.sr)
}

func (e *Engine) sampleAt(t float64) int64 {
	return int64(math.Round(t * float64(e.sr)))
}

// Stream renders the mix; it never drains so the clock keeps running
func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	e.mu.Lock()
	n, _ = e.master.Stream(samples)
	e.pos.Add(int64(len(samples)))
	e.mu.Unlock()

	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	for i := range samples {
		samples[i][0] = softLimit(samples[i][0])
		samples[i][1] = softLimit(samples[i][1])
	}
	return len(samples), true
}

func (e *Engine) Err() error { return nil }

// Render streams n samples and returns them
func (e *Engine) Render(n int) [][2]float64 {
	buf := make([][2]float64, n)
	e.Stream(buf)
	return buf
}

// Pump advances the clock in real time without an output device, discarding
// the rendered audio. It returns when ctx is cancelled.
func (e *Engine) Pump(ctx context.Context) {
	period := e.cfg.BufferDuration
	buf := make([][2]float64, e.sr.N(period))
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	debug.Log("audio", "silent pump started")
	last := time.Now()
	owed := 0
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			owed += e.sr.N(now.Sub(last))
			last = now
			for owed > 0 {
				k := min(owed, len(buf))
				e.Stream(buf[:k])
				owed -= k
			}
		}
	}
}

// SetVolume sets the master volume (0.0 - 1.0)
func (e *Engine) SetVolume(vol float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.MasterVolume = math.Max(0, math.Min(1, vol))
	setLinearVolume(e.master, e.cfg.MasterVolume)
}

// Voices returns the number of sounding sources
func (e *Engine) Voices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mixer.Len()
}

// Dropped returns how many sources were refused by the voice limit
func (e *Engine) Dropped() int64 {
	return e.dropped.Load()
}

// admit checks a new source can be added; caller holds mu
func (e *Engine) admit() error {
	if e.closed {
		return ErrEngineClosed
	}
	if e.mixer.Len() >= e.cfg.MaxVoices {
		e.dropped.Add(1)
		return ErrVoiceLimit
	}
	return nil
}

// NewTone starts an oscillator at zero gain
func (e *Engine) NewTone(freq float64, wf Waveform) (Tone, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.admit(); err != nil {
		return nil, fmt.Errorf("tone %.2fHz: %w", freq, err)
	}
	src, err := source(freq, wf, e.sr)
	if err != nil {
		return nil, fmt.Errorf("tone %s: %w", wf, err)
	}

	t := &tone{
		e:    e,
		src:  src,
		gain: NewParam(0),
		pos:  e.pos.Load(),
		stop: -1,
	}
	e.mixer.Add(t)
	return t, nil
}

// Click schedules a metronome click at audio time at. Times in the past play
// immediately.
func (e *Engine) Click(kind ClickKind, at, level float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.admit(); err != nil {
		return fmt.Errorf("%s click: %w", kind, err)
	}

	var s beep.Streamer = newClick(kind, level, e.sr, e.rng)
	if delay := e.sampleAt(at) - e.pos.Load(); delay > 0 {
		s = beep.Seq(beep.Silence(int(delay)), s)
	}
	e.mixer.Add(s)
	return nil
}

// Close silences everything and releases the output device
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mixer.Clear()
	output := e.output
	e.mu.Unlock()

	// the speaker goroutine takes e.mu inside Stream, never hold it here
	if output {
		speaker.Clear()
		speaker.Close()
	}
	debug.Log("audio", "engine closed at %.3fs", e.Now())
	return nil
}

// tone streams its source through a gain timeline. Automation calls lock the
// engine; Stream runs with the engine lock already held by the mixer.
type tone struct {
	e    *Engine
	src  beep.Streamer
	gain *Param
	pos  int64 // absolute index of the next sample
	stop int64 // -1 while unscheduled
	done bool
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.done {
		return 0, false
	}
	sr := float64(t.e.sr)
	t.gain.Prune(float64(t.pos) / sr)

	n, ok = t.src.Stream(samples)
	for i := 0; i < n; i++ {
		if t.stop >= 0 && t.pos >= t.stop {
			t.done = true
			return i, i > 0
		}
		g := t.gain.ValueAt(float64(t.pos) / sr)
		samples[i][0] *= g
		samples[i][1] *= g
		t.pos++
	}
	if !ok {
		t.done = true
	}
	return n, ok
}

func (t *tone) Err() error { return t.src.Err() }

func (t *tone) SetGainAt(v, at float64) {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	t.gain.SetValueAt(v, at)
}

func (t *tone) LinearRampTo(v, at float64) {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	t.gain.LinearRampTo(v, at)
}

func (t *tone) ExponentialRampTo(v, at float64) {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	t.gain.ExponentialRampTo(v, at)
}

func (t *tone) CancelFrom(at float64) {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	t.gain.CancelFrom(at)
}

func (t *tone) CancelAndHoldAt(at float64) {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	t.gain.CancelAndHoldAt(at)
}

func (t *tone) GainAt(at float64) float64 {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	return t.gain.ValueAt(at)
}

// StopAt ends the tone at audio time at; the earliest request wins
func (t *tone) StopAt(at float64) {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	s := t.e.sampleAt(at)
	if t.stop < 0 || s < t.stop {
		t.stop = s
	}
}

func (t *tone) Stop() {
	t.StopAt(t.e.Now())
}
