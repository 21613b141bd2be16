package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"go-metronome/audio"
	"go-metronome/drone"
	"go-metronome/harmony"
	"go-metronome/progression"
	"go-metronome/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = play()
	case "render":
		err = render()
	case "voices":
		err = voices()
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Audio Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  play [bpm]          - Two bars of clicks and a ii-V-I drone on the speaker")
	fmt.Println("  render <file> [bpm] - Render four bars to a WAV file, no device needed")
	fmt.Println("  voices              - Push the engine to its voice limit")
}

func tempoArg(i int) int {
	if len(os.Args) > i {
		if n, err := strconv.Atoi(os.Args[i]); err == nil {
			return n
		}
	}
	return 120
}

func testDrone() sequencer.DroneSettings {
	d := sequencer.DefaultDroneSettings()
	d.Enabled = true
	d.Mode = drone.PerBeat
	d.Timbre = drone.Piano
	d.Progression = progression.TwoFiveOne
	return d
}

func play() error {
	e, err := audio.Open(audio.DefaultAudioConfig())
	if err != nil {
		return err
	}
	defer e.Close()

	settings := sequencer.DefaultSettings()
	settings.Tempo = tempoArg(2)
	m := sequencer.NewManager(e, settings, testDrone())

	fmt.Printf("=== %d bpm, two bars ===\n", settings.Tempo)
	if err := m.Play(context.Background()); err != nil {
		return err
	}

	deadline := time.After(time.Duration(2 * settings.BarDuration() * float64(time.Second)))
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-deadline:
			m.Stop()
			st := m.Status()
			fmt.Printf("dropped=%d voices=%d err=%v\n", st.Dropped, e.Voices(), st.Err)
			return nil
		case <-ticker.C:
			st := m.Status()
			fmt.Printf("\rbar %d beat %d  %-8s", st.Bar+1, st.Beat+1, st.Chord)
		}
	}
}

// ticking drives the scheduler from the render loop instead of a wall clock
type ticking struct {
	e *audio.Engine
	s *sequencer.Scheduler
}

func (t ticking) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.e.Stream(samples)
	t.s.Tick()
	return n, ok
}

func (t ticking) Err() error { return t.e.Err() }

func render() error {
	if len(os.Args) < 3 {
		usage()
		return nil
	}
	f, err := os.Create(os.Args[2])
	if err != nil {
		return err
	}
	defer f.Close()

	e := audio.NewEngine(audio.DefaultAudioConfig())
	defer e.Close()

	settings := sequencer.DefaultSettings()
	settings.Tempo = tempoArg(3)
	m := sequencer.NewManager(e, settings, testDrone())
	m.Scheduler().Interval = time.Hour // ticked by the render loop
	m.Scheduler().HumanizeRange = 0
	if err := m.Play(context.Background()); err != nil {
		return err
	}
	defer m.Stop()

	sr := e.SampleRate()
	n := sr.N(time.Duration(4 * settings.BarDuration() * float64(time.Second)))
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(n, ticking{e: e, s: m.Scheduler()}), format); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	fmt.Printf("wrote %s: %d samples, dropped=%d\n", os.Args[2], n, m.Status().Dropped)
	return nil
}

func voices() error {
	cfg := audio.DefaultAudioConfig()
	cfg.MaxVoices = 16
	e := audio.NewEngine(cfg)
	defer e.Close()

	d := drone.NewDriver(e)
	c := harmony.Chord{Root: harmony.C, Quality: harmony.Major}
	err := d.Start(c, c.Intervals(harmony.Ext13, harmony.AltSharp9), 0)
	fmt.Printf("voices=%d/%d dropped=%d\n", len(d.Voices()), cfg.MaxVoices, e.Dropped())
	if err != nil {
		fmt.Printf("expected failure: %v\n", err)
	}
	return nil
}
