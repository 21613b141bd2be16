package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-metronome/debug"
	"go-metronome/drone"
	"go-metronome/progression"
	"go-metronome/sequencer"
	"go-metronome/theme"
	"go-metronome/widgets"
)

// retimeDelay collapses key repeat on tempo and swing into one restart
const retimeDelay = 150 * time.Millisecond

type Model struct {
	Manager *sequencer.Manager
	Theme   *theme.Theme

	ctx       context.Context
	keys      keyMap
	help      help.Model
	debounced func(func())

	// targets of a pending debounced retime
	tempo int
	swing int

	err      error
	quitting bool
}

type UpdateMsg struct{}

func NewModel(ctx context.Context, manager *sequencer.Manager, th *theme.Theme, showHelp bool) Model {
	s := manager.Settings()
	h := help.New()
	h.ShowAll = showHelp
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(th.Accent())
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(th.Accent())
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(th.Muted())
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(th.Muted())
	return Model{
		Manager:   manager,
		Theme:     th,
		ctx:       ctx,
		keys:      defaultKeyMap(),
		help:      h,
		debounced: debounce.New(retimeDelay),
		tempo:     s.Tempo,
		swing:     s.Swing,
	}
}

func ListenForUpdates(manager *sequencer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Manager)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	mgr := m.Manager
	m.err = nil

	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		mgr.Stop()
		return m, tea.Quit

	case key.Matches(msg, k.Play):
		m.err = mgr.Toggle(m.ctx)

	case key.Matches(msg, k.TempoUp):
		m.retime(m.tempo+1, m.swing)
	case key.Matches(msg, k.TempoDown):
		m.retime(m.tempo-1, m.swing)
	case key.Matches(msg, k.TempoJump):
		m.retime(m.tempo+10, m.swing)
	case key.Matches(msg, k.TempoDrop):
		m.retime(m.tempo-10, m.swing)
	case key.Matches(msg, k.SwingUp):
		m.retime(m.tempo, m.swing+5)
	case key.Matches(msg, k.SwingDown):
		m.retime(m.tempo, m.swing-5)

	case key.Matches(msg, k.MeterUp):
		m.err = mgr.SetMeter(mgr.Settings().BeatsPerMeasure + 1)
	case key.Matches(msg, k.MeterDown):
		m.err = mgr.SetMeter(mgr.Settings().BeatsPerMeasure - 1)

	case key.Matches(msg, k.Drone):
		mgr.UpdateDrone(func(d *sequencer.DroneSettings) { d.Enabled = !d.Enabled })
	case key.Matches(msg, k.RootUp):
		mgr.UpdateDrone(func(d *sequencer.DroneSettings) { d.Root = d.Root.Transpose(1) })
	case key.Matches(msg, k.RootDown):
		mgr.UpdateDrone(func(d *sequencer.DroneSettings) { d.Root = d.Root.Transpose(-1) })
	case key.Matches(msg, k.Quality):
		mgr.UpdateDrone(func(d *sequencer.DroneSettings) { *d = nextQuality(*d) })
	case key.Matches(msg, k.Extension):
		mgr.UpdateDrone(func(d *sequencer.DroneSettings) { *d = nextExtension(*d) })
	case key.Matches(msg, k.Alteration):
		mgr.UpdateDrone(func(d *sequencer.DroneSettings) { *d = nextAlteration(*d) })
	case key.Matches(msg, k.Progression):
		mgr.UpdateDrone(func(d *sequencer.DroneSettings) {
			d.Progression = cycle(progression.All(), d.Progression, 1, nil)
		})
	case key.Matches(msg, k.Timbre):
		mgr.UpdateDrone(func(d *sequencer.DroneSettings) { d.Timbre = cycle(drone.Timbres(), d.Timbre, 1, nil) })
	case key.Matches(msg, k.Mode):
		mgr.UpdateDrone(func(d *sequencer.DroneSettings) { d.Mode = cycle(drone.Modes(), d.Mode, 1, nil) })
	case key.Matches(msg, k.VolumeUp):
		mgr.SetDroneVolume(mgr.DroneSettings().Volume + 5)
	case key.Matches(msg, k.VolumeDown):
		mgr.SetDroneVolume(mgr.DroneSettings().Volume - 5)

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// retime updates the displayed tempo and swing now and applies them once
// the keys settle
func (m *Model) retime(tempo, swing int) {
	m.tempo = max(sequencer.MinTempo, min(sequencer.MaxTempo, tempo))
	m.swing = max(0, min(100, swing))

	mgr := m.Manager
	tempo, swing = m.tempo, m.swing
	m.debounced(func() {
		if err := mgr.SetTempoAndSwing(tempo, swing); err != nil {
			debug.Log("tui", "retime: %v", err)
		}
	})
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Manager.Status()
	th := m.Theme

	headerStyle := lipgloss.NewStyle().Foreground(th.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(th.Warning())

	transport := fmt.Sprintf("%c STOP", th.Symbols.Stopped)
	if st.Playing {
		transport = fmt.Sprintf("%c PLAY", th.Symbols.Playing)
	}
	s := st.Settings
	header := headerStyle.Render(fmt.Sprintf("go-metronome  %s  %3dbpm  swing:%3d  beats:%d  bar:%03d",
		transport, m.tempo, m.swing, s.BeatsPerMeasure, st.Bar+1))

	current := -1
	if st.Playing {
		current = st.Beat
	}
	beats := widgets.BeatRow(th, s.BeatsPerMeasure, current, m.swing > 0 && s.BeatsPerMeasure > 1)

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n  ")
	out.WriteString(beats)
	out.WriteString("\n\n")
	out.WriteString(m.droneView(st))
	out.WriteString("\n")

	if st.Dropped > 0 {
		out.WriteString(dimStyle.Render(fmt.Sprintf("late beats dropped: %d", st.Dropped)))
		out.WriteString("\n")
	}
	if err := m.err; err != nil {
		out.WriteString(warnStyle.Render(err.Error()))
		out.WriteString("\n")
	} else if st.Err != nil {
		out.WriteString(warnStyle.Render(st.Err.Error()))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(m.help.View(m.keys))
	return out.String()
}

func (m Model) droneView(st sequencer.Status) string {
	th := m.Theme
	d := st.Drone
	if !d.Enabled {
		return lipgloss.NewStyle().Foreground(th.Muted()).Render("drone off")
	}

	label := ""
	if d.Progression != progression.None {
		label = d.Progression.Label()
	}
	card := widgets.ChordCard(th, st.Chord, st.NextChord, label)

	fields := strings.Join([]string{
		widgets.Field(th, "root", d.Root.String()),
		widgets.Field(th, "quality", d.Quality.String()),
		widgets.Field(th, "ext", d.Extension.String()),
		widgets.Field(th, "alt", d.Alteration.String()),
		widgets.Field(th, "timbre", d.Timbre.String()),
		widgets.Field(th, "mode", d.Mode.String()),
		widgets.Field(th, "vol", fmt.Sprintf("%d", d.Volume)),
	}, "  ")

	chord := m.Manager.ChordAt(st.Bar)
	perLayer := len(chord.Intervals(d.Extension, d.Alteration))
	counts := make([]int, len(drone.LayerGains))
	for _, v := range m.Manager.Drone().Voices() {
		counts[v.Key.Layer]++
	}
	meter := widgets.LayerMeter(th, counts, perLayer)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, card, "  ", meter),
		fields,
	)
}
