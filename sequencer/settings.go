package sequencer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrInvalidTempo = errors.New("tempo must be positive")
	ErrInvalidMeter = errors.New("beats per measure must be positive")
)

// Tempo bounds applied by the Manager
const (
	MinTempo = 20
	MaxTempo = 300
	MaxMeter = 16
)

// Settings are the timing inputs of the scheduler
type Settings struct {
	Tempo           int `json:"tempo"`           // BPM
	Swing           int `json:"swing"`           // 0-100
	BeatsPerMeasure int `json:"beatsPerMeasure"` // 1-16
}

// DefaultSettings returns 120 BPM, straight, 4/4
func DefaultSettings() Settings {
	return Settings{Tempo: 120, Swing: 0, BeatsPerMeasure: 4}
}

// Validate rejects settings that would stall or divide by zero
func (s Settings) Validate() error {
	if s.Tempo <= 0 {
		return fmt.Errorf("tempo %d: %w", s.Tempo, ErrInvalidTempo)
	}
	if s.BeatsPerMeasure <= 0 {
		return fmt.Errorf("meter %d: %w", s.BeatsPerMeasure, ErrInvalidMeter)
	}
	return nil
}

// normalized clamps swing into 0-100
func (s Settings) normalized() Settings {
	s.Swing = max(0, min(100, s.Swing))
	return s
}

// BaseDuration is one unswung beat in seconds
func (s Settings) BaseDuration() float64 {
	return 60.0 / float64(s.Tempo)
}

// Swung reports whether beats alternate long/short
func (s Settings) Swung() bool {
	return s.Swing > 0 && s.BeatsPerMeasure > 1
}

// SwingRatio maps swing 0-100 onto 0.5 (straight) to ~0.667 (triplet)
func (s Settings) SwingRatio() float64 {
	swing := s.normalized().Swing
	return 0.5 + float64(swing)/100*0.167
}

// BeatDuration returns the length of the beat at index beat. Under swing an
// even beat and the following odd beat always sum to two base durations.
func (s Settings) BeatDuration(beat int) float64 {
	base := s.BaseDuration()
	if !s.Swung() {
		return base
	}
	ratio := s.SwingRatio()
	if beat%2 == 0 {
		return base * ratio * 2
	}
	return base * (1 - ratio) * 2
}

// BarDuration is the nominal length of a measure
func (s Settings) BarDuration() float64 {
	return s.BaseDuration() * float64(s.BeatsPerMeasure)
}
