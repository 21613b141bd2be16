package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// Click voice shapes
const (
	kickStartFreq = 120.0
	kickEndFreq   = 35.0
	kickSweep     = 0.06
	kickAttack    = 0.01
	kickDecay     = 0.2
	kickLowpass   = 150.0

	hatDecay    = 0.05
	hatHighpass = 7000.0

	clickFloor = 0.01
)

// kick is a sine swept down from 120 to 35 Hz through a low-pass
type kick struct {
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
	env   *Param
	lp    *onePole
}

func newKick(sr beep.SampleRate) *kick {
	env := NewParam(0)
	env.LinearRampTo(1, kickAttack)
	env.ExponentialRampTo(clickFloor, kickDecay)
	return &kick{
		sr:    sr,
		total: sr.N(time.Duration(kickDecay * float64(time.Second))),
		env:   env,
		lp:    newOnePole(kickLowpass, sr),
	}
}

func (k *kick) Stream(samples [][2]float64) (n int, ok bool) {
	if k.pos >= k.total {
		return 0, false
	}
	for i := range samples {
		if k.pos >= k.total {
			return i, true
		}
		t := k.sr.D(k.pos).Seconds()
		freq := kickEndFreq
		if t < kickSweep {
			freq = kickStartFreq * math.Pow(kickEndFreq/kickStartFreq, t/kickSweep)
		}
		k.phase += freq / float64(k.sr)
		k.phase -= math.Floor(k.phase)

		// the filter sits at the sweep floor, makeup gain keeps the body audible
		v := k.lp.lowpass(math.Sin(2*math.Pi*k.phase)) * 2 * k.env.ValueAt(t)
		samples[i][0] = v
		samples[i][1] = v
		k.pos++
	}
	return len(samples), true
}

func (k *kick) Err() error { return nil }

// hat is high-passed white noise with a fast exponential decay
type hat struct {
	sr    beep.SampleRate
	pos   int
	total int
	src   *noise
	hp    *onePole
	buf   [][2]float64
}

func newHat(sr beep.SampleRate, rng *rand.Rand) *hat {
	return &hat{
		sr:    sr,
		total: sr.N(time.Duration(hatDecay * float64(time.Second))),
		src:   &noise{rng: rng},
		hp:    newOnePole(hatHighpass, sr),
	}
}

func (h *hat) Stream(samples [][2]float64) (n int, ok bool) {
	if h.pos >= h.total {
		return 0, false
	}
	n = min(len(samples), h.total-h.pos)
	if cap(h.buf) < n {
		h.buf = make([][2]float64, n)
	}
	buf := h.buf[:n]
	h.src.Stream(buf)

	for i := range buf {
		t := h.sr.D(h.pos).Seconds()
		// 1 -> 0.01 over the decay
		env := math.Pow(clickFloor, t/hatDecay)
		v := h.hp.highpass(buf[i][0]) * env
		samples[i][0] = v
		samples[i][1] = v
		h.pos++
	}
	return n, true
}

func (h *hat) Err() error { return nil }

// newClick builds the voice for kind at the given level
func newClick(kind ClickKind, level float64, sr beep.SampleRate, rng *rand.Rand) beep.Streamer {
	var s beep.Streamer
	if kind == ClickAccent {
		s = newKick(sr)
	} else {
		s = newHat(sr, rng)
	}
	return newVolume(s, level)
}
