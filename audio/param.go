package audio

import (
	"math"
	"slices"
	"sort"
)

type rampKind int

const (
	stepEvent rampKind = iota
	linearEvent
	expEvent
)

type paramEvent struct {
	kind  rampKind
	at    float64
	value float64
}

// Param is a gain automation timeline on the audio clock. Events are kept in
// time order; a ramp runs from the preceding event to its own time.
// Not safe for concurrent use, the owner serialises access.
type Param struct {
	initial float64
	events  []paramEvent
}

// NewParam returns a timeline holding v until the first event
func NewParam(v float64) *Param {
	return &Param{initial: v}
}

func (p *Param) insert(e paramEvent) {
	// after any event at the same instant
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].at > e.at })
	p.events = slices.Insert(p.events, i, e)
}

// SetValueAt jumps to v at time at
func (p *Param) SetValueAt(v, at float64) {
	p.insert(paramEvent{kind: stepEvent, at: at, value: v})
}

// LinearRampTo reaches v at time at along a straight line
func (p *Param) LinearRampTo(v, at float64) {
	p.insert(paramEvent{kind: linearEvent, at: at, value: v})
}

// ExponentialRampTo reaches v at time at along an exponential curve.
// A ramp from or to zero, or across a sign change, holds the previous value.
func (p *Param) ExponentialRampTo(v, at float64) {
	p.insert(paramEvent{kind: expEvent, at: at, value: v})
}

// CancelFrom drops every event at or after at
func (p *Param) CancelFrom(at float64) {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].at >= at })
	p.events = p.events[:i]
}

// CancelAndHoldAt drops automation after at but keeps the curve leading up
// to at, so the timeline holds the value it had reached at at
func (p *Param) CancelAndHoldAt(at float64) {
	v := p.ValueAt(at)
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].at > at })
	if i > 0 && p.events[i-1].at == at {
		p.events = p.events[:i]
		return
	}

	// the cancelled segment that runs through at keeps its shape up to at
	kind := stepEvent
	if i < len(p.events) {
		kind = p.events[i].kind
	}
	p.events = append(p.events[:i], paramEvent{kind: kind, at: at, value: v})
}

// ValueAt evaluates the timeline at time t
func (p *Param) ValueAt(t float64) float64 {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].at > t })

	v0, t0 := p.initial, 0.0
	if i > 0 {
		v0, t0 = p.events[i-1].value, p.events[i-1].at
	}
	if i == len(p.events) {
		return v0
	}

	next := p.events[i]
	if next.kind == stepEvent || next.at <= t0 {
		return v0
	}
	frac := (t - t0) / (next.at - t0)
	if frac < 0 {
		frac = 0
	}

	switch next.kind {
	case linearEvent:
		return v0 + (next.value-v0)*frac
	case expEvent:
		if v0 == 0 || next.value == 0 || (v0 > 0) != (next.value > 0) {
			return v0
		}
		return v0 * math.Pow(next.value/v0, frac)
	}
	return v0
}

// Prune forgets events that no longer affect values at or after t
func (p *Param) Prune(t float64) {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].at > t })
	if i <= 1 {
		return
	}
	p.events = append(p.events[:0], p.events[i-1:]...)
}

// Len returns the number of pending events
func (p *Param) Len() int {
	return len(p.events)
}
