package audio

import "time"

// AudioConfig holds output settings
type AudioConfig struct {
	Enabled        bool
	SampleRate     int
	BufferDuration time.Duration
	MaxVoices      int
	MasterVolume   float64 // 0.0 - 1.0
}

// DefaultAudioConfig returns sensible defaults
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:        true,
		SampleRate:     44100,
		BufferDuration: 20 * time.Millisecond,
		MaxVoices:      64,
		MasterVolume:   0.8,
	}
}

func (c *AudioConfig) normalize() {
	d := DefaultAudioConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.BufferDuration <= 0 {
		c.BufferDuration = d.BufferDuration
	}
	if c.MaxVoices <= 0 {
		c.MaxVoices = d.MaxVoices
	}
	if c.MasterVolume < 0 {
		c.MasterVolume = 0
	}
	if c.MasterVolume > 1 {
		c.MasterVolume = 1
	}
}
