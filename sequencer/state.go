package sequencer

// ScheduleState is owned by the Scheduler and written only by its tick
type ScheduleState struct {
	NextEventTime float64 // audio clock seconds of the next nominal beat
	BeatIndex     int     // 0 .. BeatsPerMeasure-1
	BarIndex      int
}

// Event is one beat handed to the audio layer
type Event struct {
	Time    float64 // humanised fire time on the audio clock
	Nominal float64 // unperturbed schedule time
	Beat    int
	Bar     int
	Accent  bool    // downbeat
	Swung   bool    // off-beat under swing
	Level   float64 // click gain
}

// Click levels
const (
	AccentLevel    = 0.9
	TickLevel      = 0.3
	SwungIntensity = 0.85
)

func clickLevel(accent, swung bool) float64 {
	if accent {
		return AccentLevel
	}
	intensity := 1.0
	if swung {
		intensity = SwungIntensity
	}
	return TickLevel * (0.7 + intensity*0.3)
}

// Status is a snapshot of the Manager for the UI
type Status struct {
	Playing   bool
	Settings  Settings
	Drone     DroneSettings
	Beat      int
	Bar       int
	Chord     string
	NextChord string
	Voices    int
	Dropped   int64
	Err       error // last non-fatal audio error
}
