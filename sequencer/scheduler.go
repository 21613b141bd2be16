package sequencer

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go-metronome/audio"
	"go-metronome/debug"
)

// Scheduler defaults
const (
	DefaultLookahead     = 0.1 // seconds scheduled ahead of the audio clock
	DefaultInterval      = 25 * time.Millisecond
	DefaultLateTolerance = 0.05
	DefaultHumanize      = 0.003 // total width, ±1.5ms
)

// Scheduler wakes up every Interval and hands out every beat that falls
// within Lookahead of the audio clock, timestamped on that clock. Jitter in
// the wake-ups only shifts when a beat is scheduled, never when it sounds.
type Scheduler struct {
	clock audio.Clock

	Lookahead     float64
	Interval      time.Duration
	LateTolerance float64 // beats older than this are dropped, not played late
	HumanizeRange float64
	OnEvent       func(Event)

	mu       sync.Mutex
	settings Settings
	state    ScheduleState
	rng      *rand.Rand
	running  bool
	parent   context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	dropped  int64
}

// NewScheduler creates a stopped scheduler on clock
func NewScheduler(clock audio.Clock, settings Settings) *Scheduler {
	return &Scheduler{
		clock:         clock,
		Lookahead:     DefaultLookahead,
		Interval:      DefaultInterval,
		LateTolerance: DefaultLateTolerance,
		HumanizeRange: DefaultHumanize,
		settings:      settings.normalized(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start resets the counters, anchors the schedule to the audio clock and
// launches the wake-up loop. Starting a running scheduler restarts it.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	err := s.settings.Validate()
	running := s.running
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if running {
		s.Stop()
	}

	s.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.state = ScheduleState{NextEventTime: s.clock.Now()}
	s.parent = ctx
	s.cancel = cancel
	s.done = done
	s.running = true
	settings := s.settings
	s.mu.Unlock()

	debug.Log("sched", "start: tempo=%d swing=%d meter=%d", settings.Tempo, settings.Swing, settings.BeatsPerMeasure)

	s.Tick()
	go s.run(loopCtx, done)
	return nil
}

// Stop cancels the wake-up loop, waits for it to exit and resets the beat.
// The bar counter is left for the caller (see ResetBar).
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.state.BeatIndex = 0
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done

	s.mu.Lock()
	s.state.BeatIndex = 0
	s.mu.Unlock()
	debug.Log("sched", "stop")
}

// Configure applies new settings; a running scheduler is stopped and
// restarted, the in-flight window is not retimed
func (s *Scheduler) Configure(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = settings.normalized()
	running, parent := s.running, s.parent
	s.mu.Unlock()

	if !running {
		return nil
	}
	s.Stop()
	return s.Start(parent)
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(s.Interval)
	defer func() {
		ticker.Stop()
		s.mu.Lock()
		if s.done == done {
			s.running = false
		}
		s.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick drains every beat whose nominal time falls before now + Lookahead and
// advances the counters once per beat. Events are delivered after the lock
// is released.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}

	now := s.clock.Now()
	horizon := now + s.Lookahead
	var events []Event
	for s.state.NextEventTime < horizon {
		nominal := s.state.NextEventTime
		if now-nominal > s.LateTolerance {
			s.dropped++
			debug.Log("sched", "dropped late beat %d/%d (%.3fs behind)", s.state.BarIndex, s.state.BeatIndex, now-nominal)
		} else {
			events = append(events, s.event(nominal))
		}
		s.advance()
	}
	onEvent := s.OnEvent
	s.mu.Unlock()

	if onEvent == nil {
		return
	}
	for _, ev := range events {
		onEvent(ev)
	}
}

// event builds the beat at the current counters; caller holds mu
func (s *Scheduler) event(nominal float64) Event {
	beat := s.state.BeatIndex
	accent := beat == 0
	swung := s.settings.Swing > 0 && beat%2 == 1

	at := nominal
	if s.HumanizeRange > 0 {
		at += (s.rng.Float64() - 0.5) * s.HumanizeRange
	}
	at = max(at, 0)

	return Event{
		Time:    at,
		Nominal: nominal,
		Beat:    beat,
		Bar:     s.state.BarIndex,
		Accent:  accent,
		Swung:   swung,
		Level:   clickLevel(accent, swung),
	}
}

// advance moves to the next beat on nominal time only; caller holds mu
func (s *Scheduler) advance() {
	s.state.NextEventTime += s.settings.BeatDuration(s.state.BeatIndex)
	s.state.BeatIndex++
	if s.state.BeatIndex >= s.settings.BeatsPerMeasure {
		s.state.BeatIndex = 0
		s.state.BarIndex++
	}
}

// ResetBar zeroes the bar counter
func (s *Scheduler) ResetBar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.BarIndex = 0
}

// Settings returns the active settings
func (s *Scheduler) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// State returns a copy of the schedule state
func (s *Scheduler) State() ScheduleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeatIndex is the beat that will be scheduled next
func (s *Scheduler) BeatIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.BeatIndex
}

// BarIndex counts completed measures since start
func (s *Scheduler) BarIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.BarIndex
}

// Running reports whether the wake-up loop is active
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Dropped returns how many late beats were skipped
func (s *Scheduler) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
