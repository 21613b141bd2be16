package audio

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// tones maps each waveform to its beep generator
var tones = map[Waveform]func(beep.SampleRate, float64) (beep.Streamer, error){
	Sine:     generators.SineTone,
	Triangle: generators.TriangleTone,
	Sawtooth: generators.SawtoothTone,
	Square:   generators.SquareTone,
}

// source picks the generator for a waveform; unknown shapes play as sine
func source(freq float64, wave Waveform, sr beep.SampleRate) (beep.Streamer, error) {
	if freq <= 0 || freq >= float64(sr)/2 {
		return nil, fmt.Errorf("frequency %.2fHz out of range", freq)
	}
	gen, ok := tones[wave]
	if !ok {
		gen = generators.SineTone
	}
	return gen(sr, freq)
}

// noise is white noise for the hi-hat
type noise struct {
	rng *rand.Rand
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// onePole is a one-pole low-pass; high-pass is the input minus its output
type onePole struct {
	a, y float64
}

func newOnePole(cutoff float64, sr beep.SampleRate) *onePole {
	return &onePole{a: 1 - math.Exp(-2*math.Pi*cutoff/float64(sr))}
}

func (f *onePole) lowpass(x float64) float64 {
	f.y += f.a * (x - f.y)
	return f.y
}

func (f *onePole) highpass(x float64) float64 {
	return x - f.lowpass(x)
}

// softLimit compresses peaks above 0.8 and hard clips at 1
func softLimit(v float64) float64 {
	if v > 0.8 {
		v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
	} else if v < -0.8 {
		v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
	}
	return math.Max(-1, math.Min(1, v))
}

// newVolume scales s linearly by vol; effects.Volume works in log2 steps
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setLinearVolume(v, vol)
	return v
}

// math.Log2(0) is -Inf, so zero volume is handled as silent
func setLinearVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(vol), false
}
