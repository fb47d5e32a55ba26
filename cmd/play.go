package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"noteplayer/conductor"
	"noteplayer/logging"
	"noteplayer/playback"
)

var (
	playNotes string
	playPick  bool
	playWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play [song-file]",
	Short: "Play a song file, stdin (-) or --notes",
	Long: `Play a song. The song is read from the file argument ("-" for stdin),
from --notes, or from a file chosen with --pick. In files, blank lines and
lines starting with '#' are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	f := playCmd.Flags()
	f.StringVarP(&playNotes, "notes", "n", "", `song text, e.g. "C4 E4 G4 C4,E4,G4:800"`)
	f.BoolVar(&playPick, "pick", false, "choose the song file with a dialog")
	f.BoolVarP(&playWatch, "watch", "w", false, "replay the song file whenever it changes")
	f.Bool("precache", cfg.Precache, "render every event before playback starts")
	f.Float64("volume", cfg.Volume, "player volume, 0 to 1")
	cobra.CheckErr(v.BindPFlag("precache", f.Lookup("precache")))
	cobra.CheckErr(v.BindPFlag("volume", f.Lookup("volume")))
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	if playPick {
		p, err := pickSong()
		if err != nil {
			return err
		}
		if p == "" {
			return nil
		}
		path = p
	}
	if playWatch && (playNotes != "" || path == "" || path == "-") {
		return errors.New("--watch needs a song file")
	}

	var song string
	switch {
	case playNotes != "":
		song = playNotes
	case path != "":
		var err error
		if song, err = readSong(path); err != nil {
			return err
		}
	default:
		return errors.New("no song: give a file, --notes or --pick")
	}

	s, err := openSession(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.play(ctx, song); err != nil || !playWatch {
		return err
	}
	return watchFile(ctx, path, func() error {
		song, err := readSong(path)
		if err != nil {
			logging.Errorf("%v", err)
			return nil
		}
		return s.play(ctx, song)
	})
}

// session is an open playback device with a conductor in front of it.
type session struct {
	sink playback.Sink
	c    *conductor.Conductor
	out  io.Writer
	stop func()
}

func openSession(out io.Writer) (*session, error) {
	sink, err := openSink()
	if err != nil {
		return nil, err
	}
	s := &session{sink: sink, out: out}
	opts := []conductor.Option{conductor.WithOutput(out)}
	if cfg.Precache {
		opts = append(opts, conductor.WithPrecache(cfg.Workers))
	}
	if cfg.Discord {
		if show, stop := startPresence(cfg.DiscordAppID); show != nil {
			s.stop = stop
			opts = append(opts, conductor.WithOnEvent(show))
		}
	}
	s.c = conductor.New(sink, opts...)
	return s, nil
}

// play performs song and prints its report. Interruption is not an error.
func (s *session) play(ctx context.Context, song string) error {
	rep, err := s.c.Perform(ctx, song)
	fmt.Fprintln(s.out, rep)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *session) Close() {
	if s.stop != nil {
		s.stop()
	}
	if err := s.sink.Close(); err != nil {
		logging.Errorf("close %s backend: %v", cfg.Backend, err)
	}
}
