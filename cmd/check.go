package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"noteplayer/conductor"
	"noteplayer/notation"
	"noteplayer/synth"
)

var checkNotes string

var checkCmd = &cobra.Command{
	Use:   "check [song-file]",
	Short: "Parse a song and list its events without playing it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song := checkNotes
		if song == "" {
			if len(args) == 0 {
				return fmt.Errorf("no song: give a file or --notes")
			}
			var err error
			if song, err = readSong(args[0]); err != nil {
				return err
			}
		}
		printScore(cmd.OutOrStdout(), notation.Parse(song))
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkNotes, "notes", "n", "", "song text instead of a file")
	rootCmd.AddCommand(checkCmd)
}

func printScore(w io.Writer, sc notation.Score) {
	for _, warn := range sc.Warnings {
		fmt.Fprintln(w, warn.Error())
	}
	var samples int
	for i, ev := range sc.Events {
		freqs := make([]string, len(ev.Freqs))
		for j, f := range ev.Freqs {
			freqs[j] = fmt.Sprintf("%.2f", f)
		}
		n := synth.Samples(ev.DurationMs)
		samples += n
		fmt.Fprintf(w, "%3d  %-14s %8gms  %6d samples  %s Hz\n", i+1, ev.Token, ev.DurationMs, n, strings.Join(freqs, " "))
	}
	total := time.Duration(samples) * time.Second / synth.SampleRate
	fmt.Fprintf(w, "%d events, %d warnings, %s of audio, %s PCM\n",
		len(sc.Events), len(sc.Warnings), conductor.FormatDuration(total), humanize.Bytes(uint64(samples)))
}
