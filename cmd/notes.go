package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"noteplayer/pitch"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Print the pitch class frequency table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-3s %10s %10s\n", "", "octave 0", "octave 4")
		for _, c := range pitch.Classes() {
			base, err := pitch.Base(c)
			if err != nil {
				return err
			}
			n := pitch.Note{Class: c, Octave: pitch.DefaultOctave}
			fmt.Fprintf(out, "%-3s %10.2f %10.2f\n", c, base, n.Frequency())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
}
