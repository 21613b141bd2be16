package tui

import "github.com/charmbracelet/bubbles/key"

func binding(help string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
}

type keyMap struct {
	Play      key.Binding
	TempoUp   key.Binding
	TempoDown key.Binding
	TempoJump key.Binding
	TempoDrop key.Binding
	SwingUp   key.Binding
	SwingDown key.Binding
	MeterUp   key.Binding
	MeterDown key.Binding

	Drone       key.Binding
	RootUp      key.Binding
	RootDown    key.Binding
	Quality     key.Binding
	Extension   key.Binding
	Alteration  key.Binding
	Progression key.Binding
	Timbre      key.Binding
	Mode        key.Binding
	VolumeUp    key.Binding
	VolumeDown  key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play:      key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/stop")),
		TempoUp:   binding("tempo +1", "+", "="),
		TempoDown: binding("tempo -1", "-", "_"),
		TempoJump: binding("tempo +10", ">", "."),
		TempoDrop: binding("tempo -10", "<", ","),
		SwingUp:   binding("swing +5", "s"),
		SwingDown: binding("swing -5", "S"),
		MeterUp:   binding("beats +1", "b"),
		MeterDown: binding("beats -1", "B"),

		Drone:       binding("drone on/off", "d"),
		RootUp:      binding("root up", "r"),
		RootDown:    binding("root down", "R"),
		Quality:     binding("quality", "c"),
		Extension:   binding("extension", "e"),
		Alteration:  binding("alteration", "a"),
		Progression: binding("progression", "g"),
		Timbre:      binding("timbre", "t"),
		Mode:        binding("drone mode", "m"),
		VolumeUp:    binding("drone vol +5", "v"),
		VolumeDown:  binding("drone vol -5", "V"),

		Help: binding("more", "?"),
		Quit: binding("quit", "q", "ctrl+c"),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.TempoUp, k.TempoDown, k.Drone, k.Progression, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.TempoUp, k.TempoDown, k.TempoJump, k.TempoDrop},
		{k.SwingUp, k.SwingDown, k.MeterUp, k.MeterDown},
		{k.Drone, k.RootUp, k.RootDown, k.Quality, k.Extension, k.Alteration},
		{k.Progression, k.Timbre, k.Mode, k.VolumeUp, k.VolumeDown},
		{k.Help, k.Quit},
	}
}
