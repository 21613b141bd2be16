package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go-metronome/audio"
	"go-metronome/config"
	"go-metronome/debug"
	"go-metronome/sequencer"
	"go-metronome/theme"
	"go-metronome/tui"
)

var rootCmd = &cobra.Command{
	Use:   "go-metronome",
	Short: "Metronome with a harmonic drone",
	Long: `go-metronome plays a sample-accurate click with optional swing and
humanising, and can sound a drone that follows a chord progression bar by bar.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg)
	},
}

var (
	debugFlag  bool
	noSaveFlag bool
	envFile    string
)

func init() {
	f := rootCmd.Flags()
	f.Int("tempo", 0, "beats per minute (20-300)")
	f.Int("swing", 0, "swing amount (0-100)")
	f.Int("meter", 0, "beats per measure (1-16)")
	f.Bool("drone", false, "sound the drone")
	f.String("root", "", "drone root, e.g. C, F#, Bb")
	f.String("quality", "", "major, minor, diminished, augmented, power, octave")
	f.String("extension", "", "none, 6, 7, dom7, 9, 11, 13")
	f.String("alteration", "", "none, b5, #5, b9, #9")
	f.Int("volume", 0, "drone volume (0-100)")
	f.String("timbre", "", "hammond, organ, piano, horns, guitar, strings")
	f.String("mode", "", "constant, per-beat, per-bar")
	f.String("progression", "", "progression name, see the progressions command")
	f.String("palette", "", "GIMP palette file for the UI")
	f.Bool("no-audio", false, "run without an output device")

	f.BoolVar(&noSaveFlag, "no-save", false, "do not remember settings on exit")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with GO_METRONOME_* overrides")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !debugFlag {
			return nil
		}
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		return nil
	}
}

func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}

// loadConfig layers the config file, the environment and the changed flags
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	applyFlags(cfg, flags)

	// unknown names fall back to defaults, the user just gets told
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		debug.Log("config", "validate: %v", err)
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "tempo":
			cfg.Metronome.Tempo, _ = flags.GetInt(f.Name)
		case "swing":
			cfg.Metronome.Swing, _ = flags.GetInt(f.Name)
		case "meter":
			cfg.Metronome.BeatsPerMeasure, _ = flags.GetInt(f.Name)
		case "drone":
			cfg.Drone.Enabled, _ = flags.GetBool(f.Name)
		case "root":
			cfg.Drone.Root = v
		case "quality":
			cfg.Drone.Quality = v
		case "extension":
			cfg.Drone.Extension = v
		case "alteration":
			cfg.Drone.Alteration = v
		case "volume":
			cfg.Drone.Volume, _ = flags.GetInt(f.Name)
		case "timbre":
			cfg.Drone.Timbre = v
		case "mode":
			cfg.Drone.Mode = v
		case "progression":
			cfg.Drone.Progression = v
		case "palette":
			cfg.UI.Palette = v
		case "no-audio":
			off, _ := flags.GetBool(f.Name)
			cfg.Audio.Enabled = !off
		}
	})
}

// openEngine plays through the speaker when possible. Without a device the
// engine is clocked in real time so the UI still runs.
func openEngine(ctx context.Context, cfg *audio.AudioConfig) *audio.Engine {
	if cfg.Enabled {
		e, err := audio.Open(cfg)
		if err == nil {
			return e
		}
		fmt.Fprintf(os.Stderr, "audio: %v, continuing silently\n", err)
		debug.Log("audio", "open: %v", err)
	}
	e := audio.NewEngine(cfg)
	go e.Pump(ctx)
	return e
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	th, err := theme.Load(cfg.UI.Palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "theme: %v\n", err)
	}

	engine := openEngine(ctx, cfg.AudioConfig())
	defer engine.Close()

	settings := cfg.Settings()
	settings.Tempo = max(sequencer.MinTempo, min(sequencer.MaxTempo, settings.Tempo))
	settings.BeatsPerMeasure = max(1, min(sequencer.MaxMeter, settings.BeatsPerMeasure))
	manager := sequencer.NewManager(engine, settings, cfg.DroneSettings())

	m := tui.NewModel(ctx, manager, th, cfg.UI.ShowHelp)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	manager.Stop()

	if noSaveFlag {
		return nil
	}
	cfg.Remember(manager.Settings(), manager.DroneSettings())
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
