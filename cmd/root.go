// Package cmd implements the noteplayer command line.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"noteplayer/config"
	"noteplayer/logging"
	"noteplayer/playback"
)

var (
	cfgFile string
	v       = config.New()
	cfg     = config.Defaults()
)

var rootCmd = &cobra.Command{
	Use:   "noteplayer",
	Short: "Play note notation through the speakers",
	Long: `noteplayer synthesizes sine tones for a song written as note names and
plays them in order. Events are separated by whitespace:

  C4 D4 E4 C4,E4,G4:600 a:250

A comma joins notes into a chord and ":<ms>" sets the duration (default 500).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		logging.Setup(cfg.LogDir, cfg.Debug)
		logging.Debugf("config: backend=%s volume=%v precache=%v", cfg.Backend, cfg.Volume, cfg.Precache)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default "+config.Path()+")")
	pf.String("backend", cfg.Backend, "audio backend: ebiten, oto or silent")
	pf.Bool("debug", false, "verbose/debug logging")
	cobra.CheckErr(v.BindPFlag("backend", pf.Lookup("backend")))
	cobra.CheckErr(v.BindPFlag("debug", pf.Lookup("debug")))
}

// Execute runs the root command until ctx is cancelled or the command ends.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openSink opens the configured playback backend.
func openSink() (playback.Sink, error) {
	return playback.Open(playback.Options{
		Backend:   cfg.Backend,
		Volume:    cfg.Volume,
		DrainPoll: cfg.DrainPoll,
		Realtime:  cfg.Realtime,
	})
}
