package conductor

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"noteplayer/synth"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// Report summarises a performance.
type Report struct {
	Played   int
	Skipped  int
	Samples  int
	Elapsed  time.Duration
	Warnings []error
}

// Audio returns how much sound was played.
func (r Report) Audio() time.Duration {
	return time.Duration(r.Samples) * time.Second / synth.SampleRate
}

func (r Report) String() string {
	return fmt.Sprintf("Played %d events (%d skipped, %d warnings): %s of audio, %s PCM, in %s",
		r.Played, r.Skipped, len(r.Warnings),
		FormatDuration(r.Audio()),
		humanize.Bytes(uint64(r.Samples)),
		FormatDuration(r.Elapsed))
}

// FormatDuration renders d with its two largest units, e.g. "1 m 30 s".
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "0s"
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}
