package tui

import (
	"slices"

	"go-metronome/harmony"
	"go-metronome/sequencer"
)

// cycle steps through list from cur, skipping values ok rejects. cur is
// returned when nothing else is acceptable.
func cycle[T comparable](list []T, cur T, step int, ok func(T) bool) T {
	n := len(list)
	if n == 0 {
		return cur
	}
	i := slices.Index(list, cur)
	if i < 0 {
		i = 0
	}
	for range n {
		i = ((i+step)%n + n) % n
		if ok == nil || ok(list[i]) {
			return list[i]
		}
	}
	return cur
}

// nextQuality also drops an extension or alteration the new quality does not take
func nextQuality(d sequencer.DroneSettings) sequencer.DroneSettings {
	d.Quality = cycle(harmony.Qualities(), d.Quality, 1, nil)
	d.Extension, d.Alteration = harmony.Sanitize(d.Quality, d.Extension, d.Alteration)
	return d
}

// nextExtension offers only extensions the quality takes
func nextExtension(d sequencer.DroneSettings) sequencer.DroneSettings {
	d.Extension = cycle(harmony.Extensions(), d.Extension, 1, func(e harmony.Extension) bool {
		return harmony.ExtensionValid(d.Quality, e)
	})
	_, d.Alteration = harmony.Sanitize(d.Quality, d.Extension, d.Alteration)
	return d
}

// nextAlteration offers only alterations legal for the quality and extension
func nextAlteration(d sequencer.DroneSettings) sequencer.DroneSettings {
	d.Alteration = cycle(harmony.Alterations(), d.Alteration, 1, func(a harmony.Alteration) bool {
		return harmony.AlterationValid(d.Quality, d.Extension, a)
	})
	return d
}
