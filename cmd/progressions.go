package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-metronome/harmony"
	"go-metronome/progression"
)

func init() {
	f := progressionsCmd.Flags()
	f.String("root", "C", "key root")
	f.String("quality", "major", "key quality")
	f.String("extension", "none", "extension applied to chords without one")
	f.Int("bars", 0, "bars to print (0 for one full cycle)")
	rootCmd.AddCommand(progressionsCmd)
}

var progressionsCmd = &cobra.Command{
	Use:   "progressions [name...]",
	Short: "Print the chords of each progression",
	Long:  `Print the chord of every bar of each progression (or the named ones) in a key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		rootName, _ := f.GetString("root")
		qualityName, _ := f.GetString("quality")
		extName, _ := f.GetString("extension")
		bars, _ := f.GetInt("bars")

		root, ok := harmony.ParsePitchClass(rootName)
		if !ok {
			return fmt.Errorf("unknown root %q", rootName)
		}
		q, ok := harmony.ParseQuality(qualityName)
		if !ok {
			return fmt.Errorf("unknown quality %q", qualityName)
		}
		ext, ok := harmony.ParseExtension(extName)
		if !ok {
			return fmt.Errorf("unknown extension %q", extName)
		}

		ids := progression.All()[1:]
		if len(args) > 0 {
			ids = ids[:0]
			for _, name := range args {
				id, ok := progression.Parse(name)
				if !ok {
					return fmt.Errorf("unknown progression %q", name)
				}
				ids = append(ids, id)
			}
		}

		out := cmd.OutOrStdout()
		for _, id := range ids {
			n := bars
			if n <= 0 {
				n = progression.Length(id)
			}
			names := make([]string, 0, n)
			for _, c := range progression.Window(0, n, root, q, id) {
				names = append(names, fmt.Sprintf("%-7s", c.Name(ext, harmony.AltNone)))
			}
			fmt.Fprintf(out, "%-17s %s\n", id, strings.TrimRight(strings.Join(names, " "), " "))
		}
		return nil
	},
}
