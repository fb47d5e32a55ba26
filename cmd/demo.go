package cmd

import (
	"github.com/spf13/cobra"
)

// demoSong is a C major scale followed by two chords.
const demoSong = "C4 D4 E4 F4 G4 A4 B4 C5 C4,E4,G4:600 D4,F4,A4:500"

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play a short built-in song",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer s.Close()
		return s.play(cmd.Context(), demoSong)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
