// Package conductor plays a song: it parses the notation, renders each
// event and hands the waveforms to a playback sink in order.
package conductor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/remeh/sizedwaitgroup"

	"noteplayer/logging"
	"noteplayer/notation"
	"noteplayer/pitch"
	"noteplayer/playback"
	"noteplayer/synth"
)

// Option configures a Conductor.
type Option func(*Conductor)

// WithOutput sets where status lines are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Conductor) { c.out = w }
}

// WithPrecache renders every event on up to workers goroutines before the
// first one is played.
func WithPrecache(workers int) Option {
	return func(c *Conductor) {
		c.precache = true
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithOnEvent registers fn to be called just before each event is played.
func WithOnEvent(fn func(notation.Event)) Option {
	return func(c *Conductor) { c.onEvent = fn }
}

type Conductor struct {
	sink     playback.Sink
	out      io.Writer
	waves    *cache.Cache
	precache bool
	workers  int
	onEvent  func(notation.Event)
}

func New(sink playback.Sink, opts ...Option) *Conductor {
	c := &Conductor{
		sink:    sink,
		out:     os.Stdout,
		waves:   cache.New(30*time.Minute, time.Hour),
		workers: 4,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Perform plays song from start to finish. Notation problems are reported
// on the status writer and skipped. A sink failure stops the performance
// and is returned together with the report so far.
func (c *Conductor) Perform(ctx context.Context, song string) (Report, error) {
	start := time.Now()
	sc := notation.Parse(song)
	rep := Report{Warnings: sc.Warnings}
	for _, w := range sc.Warnings {
		fmt.Fprintln(c.out, w.Error())
		if errors.Is(w, pitch.ErrUnknownPitchClass) {
			rep.Skipped++
		}
	}
	logging.Debugf("parsed %d events, %d warnings", len(sc.Events), len(sc.Warnings))

	if c.precache {
		c.renderAll(sc.Events)
	}

	for _, ev := range sc.Events {
		if err := ctx.Err(); err != nil {
			rep.Elapsed = time.Since(start)
			return rep, err
		}
		w, err := c.render(ev)
		if err != nil {
			// Only reachable for octaves high enough to overflow.
			fmt.Fprintf(c.out, "Cannot play %s: %v\n", ev.Token, err)
			rep.Skipped++
			rep.Warnings = append(rep.Warnings, err)
			continue
		}
		fmt.Fprintln(c.out, ev.Describe())
		if c.onEvent != nil {
			c.onEvent(ev)
		}
		if err := c.sink.Play(ctx, w); err != nil {
			rep.Elapsed = time.Since(start)
			return rep, fmt.Errorf("play %s: %w", ev.Token, err)
		}
		rep.Played++
		rep.Samples += len(w)
	}
	rep.Elapsed = time.Since(start)
	return rep, nil
}

// render returns the waveform for ev, synthesizing it on a cache miss.
func (c *Conductor) render(ev notation.Event) (synth.Waveform, error) {
	k := waveKey(ev)
	if v, ok := c.waves.Get(k); ok {
		return v.(synth.Waveform), nil
	}
	w, err := synth.Synthesize(ev.Freqs, ev.DurationMs)
	if err != nil {
		return nil, err
	}
	c.waves.Set(k, w, cache.DefaultExpiration)
	return w, nil
}

func (c *Conductor) renderAll(events []notation.Event) {
	swg := sizedwaitgroup.New(c.workers)
	seen := make(map[string]bool, len(events))
	for _, ev := range events {
		k := waveKey(ev)
		if seen[k] {
			continue
		}
		seen[k] = true
		swg.Add()
		go func() {
			defer swg.Done()
			if _, err := c.render(ev); err != nil {
				logging.Debugf("precache %s: %v", ev.Token, err)
			}
		}()
	}
	swg.Wait()
}

// waveKey identifies a waveform by its exact inputs.
func waveKey(ev notation.Event) string {
	var b strings.Builder
	for i, f := range ev.Freqs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	b.WriteByte('@')
	b.WriteString(strconv.FormatFloat(ev.DurationMs, 'g', -1, 64))
	return b.String()
}
